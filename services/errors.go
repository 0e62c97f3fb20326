package services

import "errors"

// Business-rule failures surfaced by the services. Handlers map these to
// HTTP statuses; anything else collapses to a generic 500.
var (
	// ErrNotFound covers both "does not exist" and "exists but not yours".
	// Callers must not be able to tell the two apart.
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupportedMedia   = errors.New("only PDF, PNG or JPEG files are allowed")
	ErrPayloadTooLarge    = errors.New("file too large (max 5MB)")
	ErrStorage            = errors.New("storage failure")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(msg string) error {
	return &ValidationError{Msg: msg}
}
