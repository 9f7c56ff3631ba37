package forecasts

import (
	"errors"
	"net/http"
)

// Domain errors for forecast operations.
var (
	ErrInvalidInput   = errors.New("invalid forecast input")
	ErrEmptyGroup     = errors.New("product group has no registered grades")
	ErrNoForecastData = errors.New("no forecast data for requested month")
	ErrNotFound       = errors.New("monthly forecast not found")
	ErrDuplicate      = errors.New("monthly forecast already exists for product group and month")
)

// MapHTTPStatus maps forecast domain errors to appropriate HTTP status codes.
// An empty group indicates inconsistent upstream data rather than a bad
// request, so it surfaces as a conflict.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoForecastData) || errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyGroup) || errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
