package kafka

import "fmt"

// PermanentError marks a record as unprocessable. The consumer commits the
// offset instead of retrying it forever.
type PermanentError struct {
	Reason string
	Err    error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as non-retryable.
func Permanent(reason string, err error) PermanentError {
	return PermanentError{Reason: reason, Err: err}
}
