package pipeline

import "fmt"

// InputError reports a request that could not be decoded or failed validation.
// Field names the offending part of the request.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
