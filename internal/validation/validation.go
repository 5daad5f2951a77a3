// Package validation runs ordered rule tables against create/update inputs.
//
// A rule table is a slice of Rule values checked in order; Check stops at the
// first failing rule and reports it as a validation error carrying the rule's
// field and message.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ukydev/fleet-rental/internal/apperr"
)

// Number covers the numeric field types used by the inputs.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// Rule is one precondition on an input of type T.
type Rule[T any] struct {
	Field   string
	Message string
	Valid   func(T) bool
}

// Check returns the first violated rule as an apperr validation error.
func Check[T any](v T, rules []Rule[T]) error {
	for _, r := range rules {
		if !r.Valid(v) {
			return apperr.Validation(r.Field, "%s", r.Message)
		}
	}
	return nil
}

// NotBlank requires a non-nil string with at least one non-space character.
func NotBlank[T any](field string, get func(T) *string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " is required",
		Valid: func(v T) bool {
			s := get(v)
			return s != nil && strings.TrimSpace(*s) != ""
		},
	}
}

// NotNil requires the value to be present.
func NotNil[T any, V any](field string, get func(T) *V) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " is required",
		Valid:   func(v T) bool { return get(v) != nil },
	}
}

// Positive requires a present value strictly greater than zero.
func Positive[T any, N Number](field string, get func(T) *N) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must be greater than 0",
		Valid: func(v T) bool {
			n := get(v)
			return n != nil && *n > 0
		},
	}
}

// NonNegative requires a present value >= 0.
func NonNegative[T any, N Number](field string, get func(T) *N) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must be greater than or equal to 0",
		Valid: func(v T) bool {
			n := get(v)
			return n != nil && *n >= 0
		},
	}
}

// Optional wraps a rule so that it only runs when the field is present.
func Optional[T any, V any](r Rule[T], get func(T) *V) Rule[T] {
	inner := r.Valid
	r.Valid = func(v T) bool { return get(v) == nil || inner(v) }
	return r
}

// Supplied reads a blank string as absent. Paired with Optional it matches
// fields that a partial update only writes when non-blank.
func Supplied[T any](get func(T) *string) func(T) *string {
	return func(v T) *string {
		s := get(v)
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		return s
	}
}

// NotEmpty requires a non-empty collection.
func NotEmpty[T any, E any](field string, get func(T) []E) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must not be empty",
		Valid:   func(v T) bool { return len(get(v)) > 0 },
	}
}

// Matches requires a present string matching re.
func Matches[T any](field, message string, re *regexp.Regexp, get func(T) *string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: message,
		Valid: func(v T) bool {
			s := get(v)
			return s != nil && re.MatchString(*s)
		},
	}
}

// Length requires a present string whose rune count is within [min, max].
func Length[T any](field string, min, max int, get func(T) *string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " length is out of range",
		Valid: func(v T) bool {
			s := get(v)
			if s == nil {
				return false
			}
			n := utf8.RuneCountInString(*s)
			return n >= min && n <= max
		},
	}
}

// Known requires a present value belonging to vocabulary.
func Known[T any, S ~string](field string, vocabulary []S, get func(T) *S) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " has an unknown value",
		Valid: func(v T) bool {
			s := get(v)
			return s != nil && slices.Contains(vocabulary, *s)
		},
	}
}

// AllKnown requires every element of a collection to belong to vocabulary.
func AllKnown[T any, S ~string](field string, vocabulary []S, get func(T) []S) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " contains an unknown value",
		Valid: func(v T) bool {
			for _, s := range get(v) {
				if !slices.Contains(vocabulary, s) {
					return false
				}
			}
			return true
		},
	}
}

// MinAge requires a birth date at least years before the reference instant.
func MinAge[T any](field string, years int, birth func(T) *time.Time, reference func(T) time.Time) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: fmt.Sprintf("%s: age must be at least %d years", field, years),
		Valid: func(v T) bool {
			b := birth(v)
			if b == nil {
				return false
			}
			return !b.AddDate(years, 0, 0).After(reference(v))
		},
	}
}

// PasswordSymbols is the set of symbols accepted by StrongPassword.
const PasswordSymbols = "@#$%^&+=!"

// IsStrongPassword reports whether s has 8 to 16 characters, no whitespace,
// and at least one lowercase letter, uppercase letter, digit and symbol.
func IsStrongPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 8 || n > 16 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// StrongPassword requires a present password satisfying IsStrongPassword.
func StrongPassword[T any](field string, get func(T) *string) Rule[T] {
	return Rule[T]{
		Field:   field,
		Message: field + " must contain a lowercase letter, an uppercase letter, a digit and one of " + PasswordSymbols,
		Valid: func(v T) bool {
			s := get(v)
			return s != nil && IsStrongPassword(*s)
		},
	}
}

var mailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Mail requires a well-formed address.
func Mail[T any](field string, get func(T) *string) Rule[T] {
	return Matches(field, field+" is not a valid address", mailPattern, get)
}
