package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error for boundary translation. The dispatcher
// propagates agent errors unmodified; channels map the kind to a transport
// status. Nothing in between swallows or rewrites errors.
type ErrorKind string

const (
	// KindValidation marks malformed or missing request fields. Client fault.
	KindValidation ErrorKind = "validation"
	// KindUnknownAgentType marks a request for an unregistered agent tag. Client fault.
	KindUnknownAgentType ErrorKind = "unknown_agent_type"
	// KindInitialization marks a failed agent setup (bad credentials, missing config). Server fault.
	KindInitialization ErrorKind = "initialization"
	// KindUpstream marks a failed external model or service call. Upstream fault.
	KindUpstream ErrorKind = "upstream"
)

// Error is the single error type crossing the dispatcher boundary.
// It carries a kind for translation and optionally wraps a cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError reports a malformed or missing request field.
func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// UnknownAgentTypeError reports a request for an unregistered agent tag.
func UnknownAgentTypeError(tag string) *Error {
	return &Error{Kind: KindUnknownAgentType, Message: fmt.Sprintf("agent type %q is not registered", tag)}
}

// InitializationError reports a failed agent setup.
func InitializationError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInitialization, Message: fmt.Sprintf(format, args...), Err: err}
}

// UpstreamError reports a failed external model or service call.
func UpstreamError(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the ErrorKind from any error in the chain.
// Errors without a kind are treated as upstream faults, so an unexpected
// failure is never silently reported as a client error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}
