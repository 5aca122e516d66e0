package models

import (
	"errors"
	"net/http"
)

// Error kinds shared across handlers. Wrapping one of these sentinels lets a
// handler map any failure to an HTTP status without parsing message text.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// ErrorStatus returns the HTTP status code for an error based on its kind.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
