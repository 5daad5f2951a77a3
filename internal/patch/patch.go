// Package patch holds the field-level overwrite rules used by partial updates.
// Each helper copies a proposed value into dst only when the value is
// present and meaningful for that kind of field; otherwise dst is untouched.
package patch

import (
	"strings"
	"time"
)

// Number covers the numeric field types used by the entities.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}

// String overwrites when v is non-nil, blank values included.
func String(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// NonBlank overwrites when v is non-nil and not only whitespace.
func NonBlank(dst *string, v *string) {
	if v != nil && strings.TrimSpace(*v) != "" {
		*dst = *v
	}
}

// Positive overwrites when v is non-nil and strictly greater than zero.
func Positive[N Number](dst *N, v *N) {
	if v != nil && *v > 0 {
		*dst = *v
	}
}

// NonNegative overwrites when v is non-nil and >= 0.
func NonNegative[N Number](dst *N, v *N) {
	if v != nil && *v >= 0 {
		*dst = *v
	}
}

// Value overwrites whenever v is non-nil. Used for booleans, dates and enums.
func Value[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}

// TimePtr sets an optional date field whenever v is non-nil.
func TimePtr(dst **time.Time, v *time.Time) {
	if v != nil {
		t := *v
		*dst = &t
	}
}

// Slice replaces a collection when v is non-empty.
func Slice[E any](dst *[]E, v []E) {
	if len(v) > 0 {
		*dst = append([]E(nil), v...)
	}
}
