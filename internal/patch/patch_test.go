package patch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[V any](v V) *V { return &v }

func TestStringRules(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(dst *string, v *string)
		proposed *string
		expected string
	}{
		{"string nil keeps", String, nil, "Clio"},
		{"string blank overwrites", String, ptr(""), ""},
		{"string value overwrites", String, ptr("Megane"), "Megane"},
		{"non blank nil keeps", NonBlank, nil, "Clio"},
		{"non blank whitespace keeps", NonBlank, ptr("   "), "Clio"},
		{"non blank value overwrites", NonBlank, ptr("Megane"), "Megane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := "Clio"
			tt.apply(&dst, tt.proposed)
			assert.Equal(t, tt.expected, dst)
		})
	}
}

func TestNumericRules(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(dst *int, v *int)
		proposed *int
		expected int
	}{
		{"positive nil keeps", Positive[int], nil, 14},
		{"positive zero keeps", Positive[int], ptr(0), 14},
		{"positive negative keeps", Positive[int], ptr(-3), 14},
		{"positive value overwrites", Positive[int], ptr(9), 9},
		{"non negative nil keeps", NonNegative[int], nil, 14},
		{"non negative zero overwrites", NonNegative[int], ptr(0), 0},
		{"non negative negative keeps", NonNegative[int], ptr(-1), 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := 14
			tt.apply(&dst, tt.proposed)
			assert.Equal(t, tt.expected, dst)
		})
	}
}

func TestValueAndDates(t *testing.T) {
	active := true
	Value(&active, nil)
	assert.True(t, active)
	Value(&active, ptr(false))
	assert.False(t, active)

	var validated *time.Time
	TimePtr(&validated, nil)
	assert.Nil(t, validated)
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	TimePtr(&validated, &day)
	if assert.NotNil(t, validated) {
		assert.True(t, validated.Equal(day))
	}
}

func TestSlice(t *testing.T) {
	licenses := []string{"B"}
	Slice(&licenses, nil)
	assert.Equal(t, []string{"B"}, licenses)
	Slice(&licenses, []string{})
	assert.Equal(t, []string{"B"}, licenses)

	proposed := []string{"A", "B"}
	Slice(&licenses, proposed)
	assert.Equal(t, []string{"A", "B"}, licenses)
	proposed[0] = "C"
	assert.Equal(t, "A", licenses[0])
}
