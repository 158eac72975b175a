package star

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes export list errors.
type ErrorCode string

const (
	// ErrCodeResolution indicates the namespace could not be located, or its
	// export list attribute holds a value that is not an export list.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILED"

	// ErrCodeInvalidEntity indicates an item exposes no usable name.
	ErrCodeInvalidEntity ErrorCode = "INVALID_ENTITY"

	// ErrCodeFrozen indicates a mutation was attempted after Freeze.
	ErrCodeFrozen ErrorCode = "FROZEN_LIST"
)

// Sentinel errors for errors.Is matching against an *Error.
var (
	ErrResolution    = errors.New("namespace resolution failed")
	ErrInvalidEntity = errors.New("invalid entity")
	ErrFrozen        = errors.New("export list is frozen")
)

// Error is returned by every failing Star operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Namespace is the key of the namespace involved.
	Namespace string

	// Item describes the offending item (INVALID_ENTITY only).
	Item string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s (namespace=%s)", e.Code, e.Message, e.Namespace)
	if e.Item != "" {
		msg = fmt.Sprintf("%s: %s (namespace=%s, item=%s)", e.Code, e.Message, e.Namespace, e.Item)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's code.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrResolution:
		return e.Code == ErrCodeResolution
	case ErrInvalidEntity:
		return e.Code == ErrCodeInvalidEntity
	case ErrFrozen:
		return e.Code == ErrCodeFrozen
	}
	return false
}

// IsResolutionError reports whether err is a RESOLUTION_FAILED error.
func IsResolutionError(err error) bool {
	return hasCode(err, ErrCodeResolution)
}

// IsInvalidEntityError reports whether err is an INVALID_ENTITY error.
func IsInvalidEntityError(err error) bool {
	return hasCode(err, ErrCodeInvalidEntity)
}

// IsFrozenError reports whether err is a FROZEN_LIST error.
func IsFrozenError(err error) bool {
	return hasCode(err, ErrCodeFrozen)
}

// hasCode uses errors.As so wrapped errors still match.
func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func newResolutionError(namespace, message string, cause error) *Error {
	return &Error{
		Code:      ErrCodeResolution,
		Message:   message,
		Namespace: namespace,
		Err:       cause,
	}
}

func newInvalidEntityError(namespace, item string, cause error) *Error {
	return &Error{
		Code:      ErrCodeInvalidEntity,
		Message:   "item exposes no usable name",
		Namespace: namespace,
		Item:      item,
		Err:       cause,
	}
}

func newFrozenError(namespace string) *Error {
	return &Error{
		Code:      ErrCodeFrozen,
		Message:   "export list is frozen",
		Namespace: namespace,
	}
}
