package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/repository"
	"fleetsync/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrTokenInvalid):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRentalID),
		errors.Is(err, service.ErrInvalidInvoiceID),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassportNo),
		errors.Is(err, service.ErrNoPassportOnFile):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrVehicleExists),
		errors.Is(err, service.ErrVehicleSuspended),
		errors.Is(err, service.ErrVehicleAlreadyRented),
		errors.Is(err, service.ErrVehicleHasActiveRental),
		errors.Is(err, service.ErrDriverExists),
		errors.Is(err, service.ErrDriverBlocked),
		errors.Is(err, service.ErrDriverNotActive),
		errors.Is(err, service.ErrDriverHasActiveRental),
		errors.Is(err, service.ErrRentalNotActive),
		errors.Is(err, service.ErrShiftEnded),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrTokenUsed),
		errors.Is(err, service.ErrTokenExpired):
		return http.StatusConflict

	// Unauthorized
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrVevoDenied),
		errors.Is(err, service.ErrApplicationRejected):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
