package uploads

import (
	"errors"
	"net/http"

	"github.com/stahlwerk/meltplan/pkg/storage"
)

// Domain errors for upload operations.
var (
	ErrNotFound        = errors.New("upload not found")
	ErrDuplicate       = errors.New("upload already exists")
	ErrInvalidFile     = errors.New("invalid or missing upload file")
	ErrFileTooLarge    = errors.New("upload exceeds maximum file size")
	ErrInvalidWorkbook = errors.New("workbook could not be parsed")
	ErrNoRecords       = errors.New("workbook contains no usable records")
	ErrUnknownKind     = errors.New("unknown workbook kind")
)

// MapHTTPStatus maps upload domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrInvalidWorkbook) ||
		errors.Is(err, ErrNoRecords) ||
		errors.Is(err, ErrUnknownKind) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
