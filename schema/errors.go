package schema

import (
	"errors"
	"fmt"
)

// MalformedOutputError reports a completion whose payload could not be parsed
// as JSON. Terminal: no repair beyond fence stripping is attempted.
type MalformedOutputError struct {
	err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.err
}

// SchemaViolationError reports parsed JSON that does not satisfy the
// contract, naming the offending field.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	if e.Field == "" {
		return "schema violation: " + e.Reason
	}
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}

// IsMalformedOutput reports whether err is a MalformedOutputError.
func IsMalformedOutput(err error) bool {
	var m *MalformedOutputError
	return errors.As(err, &m)
}

// IsSchemaViolation reports whether err is a SchemaViolationError.
func IsSchemaViolation(err error) bool {
	var v *SchemaViolationError
	return errors.As(err, &v)
}
