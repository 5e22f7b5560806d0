package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError is returned for caller mistakes (bad index, bad input,
// future-dated toggle). Handlers map it to a 400 instead of a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
