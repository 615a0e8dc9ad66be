package tracker

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures of a label operation.
type ErrorType int

const (
	// ErrorTypeConfiguration indicates a required input or credential is missing
	ErrorTypeConfiguration ErrorType = iota
	// ErrorTypeNotFound indicates the issue or label does not exist in the remote service
	ErrorTypeNotFound
	// ErrorTypeTransport indicates a network, auth or service-side failure
	ErrorTypeTransport
)

// String returns the string representation of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "Configuration"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeTransport:
		return "Transport"
	default:
		return "Unknown"
	}
}

// Error is the structured error returned by trackers and the label applier.
//
// Without a Message, Error() returns the wrapped error's message unchanged so that
// callers see the remote service's text verbatim.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the original error
func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a missing required input.
func ConfigurationError(format string, args ...interface{}) error {
	return &Error{Type: ErrorTypeConfiguration, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an issue or label absent in the remote service.
func NotFoundError(format string, args ...interface{}) error {
	return &Error{Type: ErrorTypeNotFound, Message: fmt.Sprintf(format, args...)}
}

// TransportError wraps a failure of a remote call. A nil err returns nil.
// An err that already carries a classification is returned as is.
func TransportError(err error) error {
	if err == nil {
		return nil
	}
	var trErr *Error
	if errors.As(err, &trErr) {
		return err
	}
	return &Error{Type: ErrorTypeTransport, Err: err}
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	return hasType(err, ErrorTypeConfiguration)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsTransportError checks if the error is a transport error
func IsTransportError(err error) bool {
	return hasType(err, ErrorTypeTransport)
}

func hasType(err error, t ErrorType) bool {
	var trErr *Error
	if errors.As(err, &trErr) {
		return trErr.Type == t
	}
	return false
}
