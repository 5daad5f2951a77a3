// Package filter narrows an in-memory candidate list with optional criteria.
//
// Every criterion is independently gated: a criterion whose value is unset
// (nil, or failing its own gate such as "strictly positive") is inactive and
// leaves the list untouched. Active criteria are combined with AND by applying
// them one after another, each step keeping the survivors of the previous one.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/ukydev/fleet-rental/internal/apperr"
)

// Number covers the numeric field types used by the entities.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// Criterion is one narrowing step.
type Criterion[T any] struct {
	Name   string
	Active bool
	Match  func(T) bool
}

// Narrow keeps the items matching c. An inactive criterion returns items unchanged.
func Narrow[T any](items []T, c Criterion[T]) []T {
	if !c.Active {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if c.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Apply threads items through criteria in order. An empty result is reported
// as a no-match error for entity rather than as an empty slice.
func Apply[T any](entity string, items []T, criteria ...Criterion[T]) ([]T, error) {
	out := items
	for _, c := range criteria {
		out = Narrow(out, c)
	}
	if len(out) == 0 {
		return nil, apperr.NoMatch(entity)
	}
	return out, nil
}

// Identity matches an exact identifier; nil and zero are ignored.
func Identity[T any, K Number](name string, want *K, get func(T) K) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil && *want != 0,
		Match:  func(t T) bool { return get(t) == *want },
	}
}

// Contains matches when the field contains want as a substring.
func Contains[T any](name string, want *string, get func(T) string) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil,
		Match:  func(t T) bool { return strings.Contains(get(t), *want) },
	}
}

// Positive matches by equality, only for values strictly greater than zero.
// A stored value of 0 can therefore never be searched for.
func Positive[T any, N Number](name string, want *N, get func(T) N) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil && *want > 0,
		Match:  func(t T) bool { return get(t) == *want },
	}
}

// NonNegative matches by equality for values >= 0.
func NonNegative[T any, N Number](name string, want *N, get func(T) N) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil && *want >= 0,
		Match:  func(t T) bool { return get(t) == *want },
	}
}

// OneOf matches by equality when want belongs to allowed. A value outside the
// vocabulary is silently ignored.
func OneOf[T any, S ~string](name string, want *S, allowed []S, get func(T) S) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil && slices.Contains(allowed, *want),
		Match:  func(t T) bool { return get(t) == *want },
	}
}

// FirstOf matches entities whose set contains the first element of want.
// The remaining elements are not consulted.
func FirstOf[T any, E comparable](name string, want []E, get func(T) []E) Criterion[T] {
	c := Criterion[T]{Name: name, Active: len(want) > 0}
	if c.Active {
		key := want[0]
		c.Match = func(t T) bool { return slices.Contains(get(t), key) }
	}
	return c
}

// Equal matches by equality whenever want is set.
func Equal[T any, V comparable](name string, want *V, get func(T) V) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil,
		Match:  func(t T) bool { return get(t) == *want },
	}
}

// SameDate matches an exact instant whenever want is set.
func SameDate[T any](name string, want *time.Time, get func(T) time.Time) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil,
		Match:  func(t T) bool { return get(t).Equal(*want) },
	}
}

// SameOptionalDate is SameDate for fields that may be unset on the entity.
func SameOptionalDate[T any](name string, want *time.Time, get func(T) *time.Time) Criterion[T] {
	return Criterion[T]{
		Name:   name,
		Active: want != nil,
		Match: func(t T) bool {
			got := get(t)
			return got != nil && got.Equal(*want)
		},
	}
}

// ActiveNames lists the criteria that will narrow the list, for logging.
func ActiveNames[T any](criteria []Criterion[T]) []string {
	var names []string
	for _, c := range criteria {
		if c.Active {
			names = append(names, c.Name)
		}
	}
	return names
}
