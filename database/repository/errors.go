package repository

import "errors"

// Sentinel errors surfaced by repositories. Handlers translate them into the
// matching HTTP status; callers test with errors.Is.
var (
	ErrValidation = errors.New("invalid attributes")
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("ownership mismatch")
	ErrConflict   = errors.New("uniqueness conflict")
)
