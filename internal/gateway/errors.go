package gateway

import "errors"

// ExecutionError wraps an engine-level failure during statement execution.
//
// Error() returns the engine's message text verbatim so callers can pass it
// through for diagnosability; no prefix is added.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsExecutionError returns true if the error is an engine execution failure.
// Uses errors.As to handle wrapped errors.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}
