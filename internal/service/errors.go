package service

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindInvalidOperation
	KindValidationFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidOperation:
		return "invalid operation"
	case KindValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// Error is a domain failure. Store faults are never wrapped in it.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any Error of the same kind, so errors.Is(err, ErrNotFound) works
// whatever the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrValidationFailed = &Error{Kind: KindValidationFailed}
)

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalidOperation(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func validationFailed(format string, args ...interface{}) error {
	return &Error{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a domain error, or 0 for anything else
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
