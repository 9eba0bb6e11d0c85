package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the binding lifecycle the error occurred
type Phase string

const (
	PhaseBind    Phase = "bind"    // adapter publication
	PhaseAttach  Phase = "attach"  // wrapper handle attachment
	PhaseRelease Phase = "release" // cross-reference release
	PhaseQuery   Phase = "query"   // read-only slot access
	PhaseRuntime Phase = "runtime" // external runtime operations
	PhaseConfig  Phase = "config"  // tool configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNotBound      Kind = "not_bound"
	KindAlreadyBound  Kind = "already_bound"
	KindInvalidHandle Kind = "invalid_handle"
	KindMissingExport Kind = "missing_export"
	KindClosed        Kind = "closed"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NotBound creates the error for slot access with no external runtime bound
func NotBound() *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindNotBound,
		Detail: "no external runtime bound",
	}
}

// AlreadyBound creates the error for a second bind with a different adapter
func AlreadyBound() *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindAlreadyBound,
		Detail: "slot is already bound to a different adapter",
	}
}

// AlreadyAttached creates the error for a second attach with a different handle
func AlreadyAttached(h uint64) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindAlreadyBound,
		Detail: "slot already holds a different wrapper handle",
		Value:  h,
	}
}

// InvalidHandle creates an invalid handle error
func InvalidHandle(phase Phase, h uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %d is not valid", h),
		Value:  h,
	}
}

// MissingExport creates the error for a guest module lacking a release export
func MissingExport(name string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindMissingExport,
		Detail: fmt.Sprintf("guest module does not export %q", name),
	}
}

// Closed creates the error for operations on a closed wrapper table
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
