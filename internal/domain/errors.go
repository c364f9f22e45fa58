package domain

import "errors"

// Error kinds. Handlers match on these with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("duplicate")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("missing token")
	ErrUpstream           = errors.New("upstream unavailable")
)

// Error carries a client-facing message alongside its kind
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Safe to return to the caller
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validation returns a ValidationError with the given message
func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

// Duplicate returns a DuplicateError with the given message
func Duplicate(msg string) error { return &Error{Kind: ErrDuplicate, Message: msg} }

// Conflict returns a ConflictError with the given message
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// NotFound returns a NotFoundError with the given message
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

// Forbidden returns a ForbiddenError with the given message
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

// InvalidCredentials returns an InvalidCredentialsError with the given message
func InvalidCredentials(msg string) error { return &Error{Kind: ErrInvalidCredentials, Message: msg} }

// Upstream returns an error for a failed essential third-party call
func Upstream(msg string) error { return &Error{Kind: ErrUpstream, Message: msg} }
