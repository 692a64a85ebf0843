package services

import "errors"

// Sentinel errors shared by the workflow services. Controllers map these
// onto HTTP status codes at the API boundary.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("not allowed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicatePledge   = errors.New("request already pledged")
)

// ValidationError marks missing or malformed caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
