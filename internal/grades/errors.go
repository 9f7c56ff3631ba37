package grades

import (
	"errors"
	"net/http"
)

// Domain errors for steel grade operations.
var (
	ErrNotFound      = errors.New("steel grade not found")
	ErrDuplicate     = errors.New("steel grade already exists in product group")
	ErrInvalidName   = errors.New("steel grade name must not be empty")
	ErrGroupNotFound = errors.New("product group not found")
)

// MapHTTPStatus maps steel grade domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrGroupNotFound) {
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
