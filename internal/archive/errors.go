package archive

import "errors"

// ValidationError indicates a request field outside its domain.
// Always client-caused; never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError indicates the destination path is already occupied and the
// caller did not ask to overwrite.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return "File already exists. Set overwrite=True to replace it."
}

// IsValidationError returns true if the error is a field validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflictError returns true if the error is a destination conflict.
func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
