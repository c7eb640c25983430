package handler

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/domain"
	"fleetsync/internal/repository"
	"fleetsync/internal/service"
)

// TollHandler handles toll statement uploads and listings.
type TollHandler struct {
	tollService *service.TollService
}

// NewTollHandler creates a new TollHandler.
func NewTollHandler(tollService *service.TollService) *TollHandler {
	return &TollHandler{tollService: tollService}
}

// TollResponse is the HTTP representation of a toll charge.
type TollResponse struct {
	ID        string  `json:"id"`
	Plate     string  `json:"plate"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Location  string  `json:"location,omitempty"`
	InvoiceID string  `json:"invoiceId,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func newTollResponse(t *domain.TollCharge) TollResponse {
	return TollResponse{
		ID:        t.ID,
		Plate:     t.Plate,
		Date:      t.Date.Format(timeFormat),
		Amount:    t.Amount,
		Location:  t.Location,
		InvoiceID: t.InvoiceID,
		CreatedAt: t.CreatedAt.Format(timeFormat),
	}
}

// Upload handles POST /api/tolls/upload. The statement is a CSV file
// in the "file" form field with plate, date, amount and location
// columns.
func (h *TollHandler) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file upload"})
		return
	}
	defer file.Close()

	records, err := parseTollCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.tollService.Ingest(c.Request.Context(), records)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, result)
}

// parseTollCSV reads a toll provider statement. The first row is a
// header naming plate, date, amount and location columns in any order.
func parseTollCSV(r io.Reader) ([]service.TollRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"plate", "date", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required CSV column %q", required)
		}
	}

	var records []service.TollRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		date, err := parseTollDate(row[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("invalid date on line %d: %w", line, err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[cols["amount"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount on line %d: %w", line, err)
		}

		record := service.TollRecord{
			Plate:  strings.TrimSpace(row[cols["plate"]]),
			Date:   date,
			Amount: amount,
		}
		if idx, ok := cols["location"]; ok && idx < len(row) {
			record.Location = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}
	return records, nil
}

func parseTollDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// GetAll handles GET /api/tolls
func (h *TollHandler) GetAll(c *gin.Context) {
	filter := repository.TollFilter{Plate: c.Query("plate")}
	if v := c.Query("startDate"); v != "" {
		t, err := parseTollDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.StartDate = t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseTollDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		filter.EndDate = t
	}

	tolls, err := h.tollService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TollResponse, 0, len(tolls))
	for _, t := range tolls {
		response = append(response, newTollResponse(t))
	}
	respondJSON(c, http.StatusOK, response)
}
