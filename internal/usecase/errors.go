package usecase

import "errors"

// Shared error taxonomy. Handlers translate these into HTTP statuses:
// invalid input 400, forbidden 403, not found 404, conflict 409, internal
// 500. Validation and authorization failures are raised before any mutating
// statement runs.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)
