// Package apperr defines the domain error kinds shared by the filter engine,
// the validation gate, the stores and the services. Handlers translate the
// kinds into HTTP status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrInvariant  = errors.New("invariant violated")
	ErrNoMatch    = errors.New("no entity matches the search criteria")
)

// Error carries a human-readable message and unwraps to its kind.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation reports a rejected input field.
func Validation(field, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity of the given kind.
func NotFound(entity string, key any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s %v not found", entity, key)}
}

// Invariant reports an operation refused because it would break a structural rule.
func Invariant(format string, args ...any) error {
	return &Error{Kind: ErrInvariant, Message: fmt.Sprintf(format, args...)}
}

// NoMatch reports a search whose criteria left no candidate.
func NoMatch(entity string) error {
	return &Error{Kind: ErrNoMatch, Message: fmt.Sprintf("no %s matches the search criteria", entity)}
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
