package llm

import (
	"errors"
	"fmt"
)

// Error types for classifying completion failures.

// ConfigurationError reports a call that was never attempted because the
// server is missing a required credential or endpoint. Operator-fixable.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return "llm configuration: " + e.msg
}

// NewConfigurationError creates a ConfigurationError with the given detail.
func NewConfigurationError(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// TransportError reports a network failure or a non-success provider status.
type TransportError struct {
	// Status is the HTTP status the provider returned, or 0 when the
	// request never completed.
	Status int
	err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("llm transport (status %d): %v", e.Status, e.err)
	}
	return fmt.Sprintf("llm transport: %v", e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// NewTransportError wraps an error as a transport failure.
func NewTransportError(status int, err error) error {
	return &TransportError{Status: status, err: err}
}

// EmptyResponseError reports a successful provider call that produced no
// usable completion text.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "llm returned an empty completion"
}

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool {
	var c *ConfigurationError
	return errors.As(err, &c)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsEmptyResponse reports whether err is an EmptyResponseError.
func IsEmptyResponse(err error) bool {
	var e *EmptyResponseError
	return errors.As(err, &e)
}
