package groups

import (
	"errors"
	"net/http"
)

// Domain errors for product group operations.
var (
	ErrNotFound    = errors.New("product group not found")
	ErrDuplicate   = errors.New("product group already exists")
	ErrInvalidName = errors.New("product group name must not be empty")
)

// MapHTTPStatus maps product group domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidName) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
