// Package fault holds the error kinds every usecase returns. Handlers map
// them to HTTP status codes with errors.Is; the wrapped text is shown to
// the user as-is.
package fault

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorized      = errors.New("unauthorized")
)
