package eid

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the library matches exactly one of
// these with errors.Is.
var (
	ErrConfig         = errors.New("frejaeid: configuration error")
	ErrValidation     = errors.New("frejaeid: validation error")
	ErrService        = errors.New("frejaeid: service error")
	ErrTransport      = errors.New("frejaeid: transport error")
	ErrPollingTimeout = errors.New("frejaeid: polling timeout")
)

// ConfigError reports invalid client construction parameters
type ConfigError struct {
	Message string
	Cause   error
}

// NewConfigError creates a ConfigError with a formatted message
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// WrapConfigError wraps err as a ConfigError
func WrapConfigError(err error, format string, args ...any) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...), Cause: err}
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return "configuration error: " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches ErrConfig
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// FieldError is one violated field of a request
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

func (f FieldError) String() string {
	if f.Message != "" {
		return f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%s: failed %q", f.Field, f.Rule)
}

// ValidationError reports a malformed request. Nothing was sent.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField reports whether field is among the violations
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ServiceError is a structured error returned by the remote service
type ServiceError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %d: %s", e.Code, e.Message)
}

// Is matches ErrService
func (e *ServiceError) Is(target error) bool { return target == ErrService }

// TransportError reports a failed round trip: no connection, a timeout, an
// unstructured error status or an undecodable response.
type TransportError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("transport error")
	if e.URL != "" {
		b.WriteString(" calling ")
		b.WriteString(e.URL)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// PollingTimeoutError reports that a bounded poll ran out of time before a
// terminal status was observed.
type PollingTimeoutError struct {
	TimeoutSeconds int
	LastStatus     TransactionStatus
}

func (e *PollingTimeoutError) Error() string {
	return fmt.Sprintf("a timeout of %ds was reached while polling for result", e.TimeoutSeconds)
}

// Is matches ErrPollingTimeout
func (e *PollingTimeoutError) Is(target error) bool { return target == ErrPollingTimeout }
