package reconcile

import "fmt"

// ValidationError indicates the request is malformed and was never sent
// anywhere. The message is safe to show to the operator verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates a locally held reference (an excess line, a lot)
// could not be resolved. It usually means the caller's excess index is stale
// and should be re-fetched before retrying.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// RemoteError wraps a failure that happened after a request passed validation
// and was submitted to storage or another backend.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
