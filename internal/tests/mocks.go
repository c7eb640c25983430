package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{vehicles: make(map[string]*domain.Vehicle)}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.VIN == vehicle.VIN || v.Plate == vehicle.Plate {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.Plate == plate {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) ListByStatuses(ctx context.Context, statuses ...domain.VehicleStatus) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		for _, status := range statuses {
			if v.Status == status {
				copy := *v
				result = append(result, &copy)
				break
			}
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.Status == domain.VehicleStatusSuspended {
			continue
		}
		if v.RegoExpiry.Before(cutoff) || v.CtpExpiry.Before(cutoff) || v.PinkSlipExpiry.Before(cutoff) {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *vehicle
	m.vehicles[vehicle.ID] = &copy
	return nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Status = status
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount        int32
	AdjustBalanceCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{drivers: make(map[string]*domain.Driver)}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers {
		if d.Email == driver.Email || d.LicenseNo == driver.LicenseNo {
			return repository.ErrDuplicate
		}
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.Email == email {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) FindByEmailOrLicense(ctx context.Context, email, licenseNo string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.Email == email || d.LicenseNo == licenseNo {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) GetAll(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Driver
	for _, d := range m.drivers {
		if status != "" && d.Status != status {
			continue
		}
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *driver
	m.drivers[driver.ID] = &copy
	return nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

func (m *MockDriverRepository) AdjustBalance(ctx context.Context, id string, delta float64) error {
	atomic.AddInt32(&m.AdjustBalanceCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Balance += delta
	return nil
}

// ──────────────────────────────────────────────
// MOCK RENTAL REPOSITORY
// ──────────────────────────────────────────────

// MockRentalRepository is a mock implementation of RentalRepository.
// When Vehicles is set, CreateActive and Complete flip the vehicle
// status the way the transactional implementation does.
type MockRentalRepository struct {
	mu      sync.RWMutex
	rentals map[string]*domain.Rental

	Vehicles *MockVehicleRepository

	// Counters for verification
	CreateActiveCallCount int32

	// Error injection
	CreateActiveError error
}

// NewMockRentalRepository creates a new mock rental repository.
func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{rentals: make(map[string]*domain.Rental)}
}

// AddRental adds a rental to the mock repository.
func (m *MockRentalRepository) AddRental(rental *domain.Rental) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = rental
}

// GetRental returns a rental for test assertions.
func (m *MockRentalRepository) GetRental(id string) *domain.Rental {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rentals[id]
}

func (m *MockRentalRepository) CreateActive(ctx context.Context, rental *domain.Rental) error {
	atomic.AddInt32(&m.CreateActiveCallCount, 1)
	if m.CreateActiveError != nil {
		return m.CreateActiveError
	}

	if m.Vehicles != nil {
		m.Vehicles.mu.Lock()
		vehicle, ok := m.Vehicles.vehicles[rental.VehicleID]
		if !ok {
			m.Vehicles.mu.Unlock()
			return repository.ErrNotFound
		}
		if vehicle.Status == domain.VehicleStatusRented || vehicle.Status == domain.VehicleStatusSuspended {
			m.Vehicles.mu.Unlock()
			return repository.ErrConflict
		}
		vehicle.Status = domain.VehicleStatusRented
		m.Vehicles.mu.Unlock()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = rental
	return nil
}

func (m *MockRentalRepository) Complete(ctx context.Context, rental *domain.Rental, endDate time.Time) error {
	m.mu.Lock()
	stored, ok := m.rentals[rental.ID]
	if !ok {
		m.mu.Unlock()
		return repository.ErrNotFound
	}
	if stored.Status != domain.RentalStatusActive {
		m.mu.Unlock()
		return repository.ErrConflict
	}
	stored.Status = domain.RentalStatusCompleted
	stored.EndDate = endDate
	m.mu.Unlock()

	if m.Vehicles != nil {
		return m.Vehicles.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable)
	}
	return nil
}

func (m *MockRentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rental, ok := m.rentals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rental
	return &copy, nil
}

func (m *MockRentalRepository) GetActiveByDriverID(ctx context.Context, driverID string) (*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rentals {
		if r.DriverID == driverID && r.Status == domain.RentalStatusActive {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRentalRepository) GetActiveByVehicleID(ctx context.Context, vehicleID string) (*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rentals {
		if r.VehicleID == vehicleID && r.Status == domain.RentalStatusActive {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRentalRepository) GetAll(ctx context.Context, status domain.RentalStatus) ([]*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Rental
	for _, r := range m.rentals {
		if status != "" && r.Status != status {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRentalRepository) ListDueForInvoicing(ctx context.Context, cutoff time.Time) ([]*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Rental
	for _, r := range m.rentals {
		if r.Status == domain.RentalStatusActive && !r.NextPaymentDate.After(cutoff) {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRentalRepository) UpdateNextPaymentDate(ctx context.Context, id string, next time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rental, ok := m.rentals[id]
	if !ok {
		return repository.ErrNotFound
	}
	rental.NextPaymentDate = next
	return nil
}

// ──────────────────────────────────────────────
// MOCK INVOICE REPOSITORY
// ──────────────────────────────────────────────

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockInvoiceRepository creates a new mock invoice repository.
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{invoices: make(map[string]*domain.Invoice)}
}

// AddInvoice adds an invoice to the mock repository.
func (m *MockInvoiceRepository) AddInvoice(invoice *domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
}

// GetInvoice returns an invoice for test assertions.
func (m *MockInvoiceRepository) GetInvoice(id string) *domain.Invoice {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invoices[id]
}

// CountInvoices returns the number of stored invoices.
func (m *MockInvoiceRepository) CountInvoices() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.invoices)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
	return nil
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *invoice
	return &copy, nil
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Invoice
	for _, i := range m.invoices {
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		if filter.RentalID != "" && i.RentalID != filter.RentalID {
			continue
		}
		copy := *i
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockInvoiceRepository) FindForPeriod(ctx context.Context, rentalID string, dueOnOrAfter time.Time) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, i := range m.invoices {
		if i.RentalID == rentalID && !i.DueDate.Before(dueOnOrAfter) {
			copy := *i
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockInvoiceRepository) FindPendingByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var oldest *domain.Invoice
	for _, i := range m.invoices {
		if i.RentalID != rentalID || i.Status != domain.InvoiceStatusPending {
			continue
		}
		if oldest == nil || i.DueDate.Before(oldest.DueDate) {
			oldest = i
		}
	}
	if oldest == nil {
		return nil, nil
	}
	copy := *oldest
	return &copy, nil
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return repository.ErrNotFound
	}
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = paidAt
	return nil
}

func (m *MockInvoiceRepository) MarkOverdueBefore(ctx context.Context, today time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, i := range m.invoices {
		if i.Status == domain.InvoiceStatusPending && i.DueDate.Before(today) {
			i.Status = domain.InvoiceStatusOverdue
			count++
		}
	}
	return count, nil
}

func (m *MockInvoiceRepository) AddTolls(ctx context.Context, id string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	invoice, ok := m.invoices[id]
	if !ok {
		return repository.ErrNotFound
	}
	invoice.Tolls += amount
	invoice.Amount += amount
	return nil
}

// ──────────────────────────────────────────────
// MOCK ALERT REPOSITORY
// ──────────────────────────────────────────────

// MockAlertRepository is a mock implementation of AlertRepository.
type MockAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]*domain.Alert

	// Counters for verification
	CreateCallCount int32
}

// NewMockAlertRepository creates a new mock alert repository.
func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{alerts: make(map[string]*domain.Alert)}
}

// CountAlerts returns the number of stored alerts.
func (m *MockAlertRepository) CountAlerts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.alerts)
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	alert, ok := m.alerts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *alert
	return &copy, nil
}

func (m *MockAlertRepository) FindUnresolved(ctx context.Context, vehicleID string, alertType domain.AlertType) (*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.alerts {
		if a.VehicleID == vehicleID && a.Type == alertType && !a.Resolved {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockAlertRepository) ListUnresolved(ctx context.Context) ([]*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Alert
	for _, a := range m.alerts {
		if !a.Resolved {
			copy := *a
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockAlertRepository) Resolve(ctx context.Context, id string, resolvedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	alert, ok := m.alerts[id]
	if !ok {
		return repository.ErrNotFound
	}
	alert.Resolved = true
	alert.ResolvedAt = resolvedAt
	return nil
}

// ──────────────────────────────────────────────
// MOCK TOLL REPOSITORY
// ──────────────────────────────────────────────

// MockTollRepository is a mock implementation of TollRepository.
type MockTollRepository struct {
	mu    sync.RWMutex
	tolls []*domain.TollCharge

	// Error injection
	CreateError error
}

// NewMockTollRepository creates a new mock toll repository.
func NewMockTollRepository() *MockTollRepository {
	return &MockTollRepository{}
}

// CountTolls returns the number of stored toll charges.
func (m *MockTollRepository) CountTolls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tolls)
}

func (m *MockTollRepository) Create(ctx context.Context, toll *domain.TollCharge) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tolls = append(m.tolls, toll)
	return nil
}

func (m *MockTollRepository) List(ctx context.Context, filter repository.TollFilter) ([]*domain.TollCharge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.TollCharge
	for _, t := range m.tolls {
		if filter.Plate != "" && t.Plate != filter.Plate {
			continue
		}
		if !filter.StartDate.IsZero() && t.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && t.Date.After(filter.EndDate) {
			continue
		}
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK ONBOARDING TOKEN REPOSITORY
// ──────────────────────────────────────────────

// MockOnboardingTokenRepository is a mock implementation of
// OnboardingTokenRepository.
type MockOnboardingTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]*domain.OnboardingToken
}

// NewMockOnboardingTokenRepository creates a new mock token repository.
func NewMockOnboardingTokenRepository() *MockOnboardingTokenRepository {
	return &MockOnboardingTokenRepository{tokens: make(map[string]*domain.OnboardingToken)}
}

// GetToken returns a token for test assertions.
func (m *MockOnboardingTokenRepository) GetToken(token string) *domain.OnboardingToken {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[token]
}

func (m *MockOnboardingTokenRepository) Create(ctx context.Context, token *domain.OnboardingToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Token] = token
	return nil
}

func (m *MockOnboardingTokenRepository) GetByToken(ctx context.Context, token string) (*domain.OnboardingToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *t
	return &copy, nil
}

func (m *MockOnboardingTokenRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return repository.ErrNotFound
	}
	t.Used = true
	t.UsedAt = usedAt
	return nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK SHIFT REPOSITORY
// ──────────────────────────────────────────────

// MockShiftRepository is a mock implementation of ShiftRepository.
type MockShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]*domain.Shift

	// Counters for verification
	CreateCallCount int32
}

// NewMockShiftRepository creates a new mock shift repository.
func NewMockShiftRepository() *MockShiftRepository {
	return &MockShiftRepository{shifts: make(map[string]*domain.Shift)}
}

// AddShift adds a shift to the mock repository.
func (m *MockShiftRepository) AddShift(shift *domain.Shift) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[shift.ID] = shift
}

// GetShift returns a shift for test assertions.
func (m *MockShiftRepository) GetShift(id string) *domain.Shift {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shifts[id]
}

func (m *MockShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[shift.ID] = shift
	return nil
}

func (m *MockShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	shift, ok := m.shifts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *shift
	return &copy, nil
}

func (m *MockShiftRepository) FindForRentalSince(ctx context.Context, rentalID, driverID string, since time.Time) (*domain.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *domain.Shift
	for _, s := range m.shifts {
		if s.RentalID != rentalID || s.DriverID != driverID || s.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copy := *latest
	return &copy, nil
}

func (m *MockShiftRepository) Start(ctx context.Context, id string, startedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shift, ok := m.shifts[id]
	if !ok {
		return repository.ErrNotFound
	}
	shift.Status = domain.ShiftStatusActive
	shift.StartedAt = startedAt
	return nil
}

func (m *MockShiftRepository) End(ctx context.Context, id string, endedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shift, ok := m.shifts[id]
	if !ok {
		return repository.ErrNotFound
	}
	shift.Status = domain.ShiftStatusEnded
	shift.EndedAt = endedAt
	return nil
}

// ──────────────────────────────────────────────
// MOCK CONDITION REPORT REPOSITORY
// ──────────────────────────────────────────────

// MockConditionReportRepository is a mock implementation of
// ConditionReportRepository.
type MockConditionReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.ConditionReport
}

// NewMockConditionReportRepository creates a new mock condition report
// repository.
func NewMockConditionReportRepository() *MockConditionReportRepository {
	return &MockConditionReportRepository{reports: make(map[string]*domain.ConditionReport)}
}

// CountReports returns the number of stored condition reports.
func (m *MockConditionReportRepository) CountReports() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}

func (m *MockConditionReportRepository) Create(ctx context.Context, report *domain.ConditionReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = report
	return nil
}

func (m *MockConditionReportRepository) GetByShiftID(ctx context.Context, shiftID string) (*domain.ConditionReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.ShiftID == shiftID {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────
// MOCK ACCIDENT REPORT REPOSITORY
// ──────────────────────────────────────────────

// MockAccidentReportRepository is a mock implementation of
// AccidentReportRepository.
type MockAccidentReportRepository struct {
	mu      sync.RWMutex
	reports []*domain.AccidentReport
}

// NewMockAccidentReportRepository creates a new mock accident report
// repository.
func NewMockAccidentReportRepository() *MockAccidentReportRepository {
	return &MockAccidentReportRepository{}
}

// CountReports returns the number of stored accident reports.
func (m *MockAccidentReportRepository) CountReports() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}

func (m *MockAccidentReportRepository) Create(ctx context.Context, report *domain.AccidentReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return nil
}

func (m *MockAccidentReportRepository) ListByVehicleID(ctx context.Context, vehicleID string) ([]*domain.AccidentReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AccidentReport
	for _, r := range m.reports {
		if r.VehicleID == vehicleID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}
