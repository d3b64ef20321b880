package domain

import "errors"

// Error taxonomy surfaced to HTTP callers. Services wrap these with
// fmt.Errorf("%w: reason") and handlers map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)
