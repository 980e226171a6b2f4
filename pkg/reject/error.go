package reject

import (
	"errors"
	"fmt"
)

// Error is the reject raised by every engine component.
//
// Code and Message form the contract. Component, Operation, Detail and
// Retryable are diagnostic context for logs and audit records.
type Error struct {
	Code      string
	Message   string
	Component string
	Operation string
	Detail    string
	Retryable bool
}

// New creates a reject for the given code.
func New(code, message, component, operation string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a reject with the same code, so that
// errors.Is(err, &reject.Error{Code: reject.CodeGitSync}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail returns a copy of the reject carrying detail.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithRetryable returns a copy of the reject with the retryable flag set.
func (e *Error) WithRetryable(retryable bool) *Error {
	cp := *e
	cp.Retryable = retryable
	return &cp
}

// As extracts the reject from err's chain.
func As(err error) (*Error, bool) {
	var r *Error
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// CodeOf returns the reject code carried by err, or "" if err is not a reject.
func CodeOf(err error) string {
	if r, ok := As(err); ok {
		return r.Code
	}
	return ""
}

// Is reports whether err carries the given reject code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
