package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPrompt is returned before any call is made when the prompt is blank.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrEmptyCompletion means the service answered with blank text.
	ErrEmptyCompletion = errors.New("model returned empty completion")
)

// ServiceError wraps a failure of the underlying text service
// (network, quota, bad credential, ...).
type ServiceError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Provider, e.Model, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsServiceError reports whether err came from the text service call itself.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
