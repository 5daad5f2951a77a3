package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validation("mail", "mail is required"), ErrValidation},
		{"not found", NotFound("voiture", 3), ErrNotFound},
		{"invariant", Invariant("cannot delete the last administrator"), ErrInvariant},
		{"no match", NoMatch("moto"), ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			for _, other := range []error{ErrValidation, ErrNotFound, ErrInvariant, ErrNoMatch} {
				if other != tt.kind {
					assert.False(t, errors.Is(tt.err, other), "%v should not be %v", tt.err, other)
				}
			}
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "voiture 3 not found", NotFound("voiture", 3).Error())
	assert.Equal(t, "no moto matches the search criteria", NoMatch("moto").Error())
	assert.Equal(t, "age must be at least 18", Validation("birth_date", "age must be at least %d", 18).Error())
}

func TestFieldOf(t *testing.T) {
	assert.Equal(t, "mail", FieldOf(fmt.Errorf("wrap: %w", Validation("mail", "bad"))))
	assert.Equal(t, "", FieldOf(errors.New("plain")))
}
