package task

import "errors"

// ValidationError reports caller input that fails a stated constraint. The
// detail is safe to surface: it tells the caller how to self-correct.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// ServiceError reports a provider-, normalization- or configuration-level
// failure. Callers see only a generic message; the cause stays in logs.
type ServiceError struct {
	cause error
}

func (e *ServiceError) Error() string {
	return "An internal error occurred while processing the request."
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewServiceError wraps a diagnostic cause into a caller-generic failure.
func NewServiceError(cause error) error {
	return &ServiceError{cause: cause}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var s *ServiceError
	return errors.As(err, &s)
}
