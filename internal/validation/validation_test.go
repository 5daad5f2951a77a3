package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-rental/internal/apperr"
)

type signup struct {
	Mail     *string
	Password *string
	Seats    *int
	Odometer *int
	Tags     []string
	Fuel     *string
	Birth    *time.Time
	Now      time.Time
}

func ptr[V any](v V) *V { return &v }

var rules = []Rule[signup]{
	NotBlank("mail", func(s signup) *string { return s.Mail }),
	Mail("mail", func(s signup) *string { return s.Mail }),
	StrongPassword("password", func(s signup) *string { return s.Password }),
	Positive("seats", func(s signup) *int { return s.Seats }),
	NonNegative("odometer", func(s signup) *int { return s.Odometer }),
	NotEmpty("tags", func(s signup) []string { return s.Tags }),
	AllKnown("tags", []string{"A", "B"}, func(s signup) []string { return s.Tags }),
	Optional(Known("fuel", []string{"diesel", "essence"}, func(s signup) *string { return s.Fuel }), func(s signup) *string { return s.Fuel }),
	MinAge("birth_date", 18, func(s signup) *time.Time { return s.Birth }, func(s signup) time.Time { return s.Now }),
}

func valid() signup {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return signup{
		Mail:     ptr("jane@example.com"),
		Password: ptr("Secret#123"),
		Seats:    ptr(5),
		Odometer: ptr(0),
		Tags:     []string{"B"},
		Birth:    ptr(now.AddDate(-19, 0, 0)),
		Now:      now,
	}
}

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, Check(valid(), rules))
}

func TestCheck_FirstViolationWins(t *testing.T) {
	in := valid()
	in.Mail = nil
	in.Seats = ptr(0)

	err := Check(in, rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "mail", apperr.FieldOf(err))
	assert.Equal(t, "mail is required", err.Error())
}

func TestCheck_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*signup)
		field  string
	}{
		{"blank mail", func(s *signup) { s.Mail = ptr("  ") }, "mail"},
		{"malformed mail", func(s *signup) { s.Mail = ptr("jane.example.com") }, "mail"},
		{"weak password", func(s *signup) { s.Password = ptr("secret123") }, "password"},
		{"missing password", func(s *signup) { s.Password = nil }, "password"},
		{"zero seats", func(s *signup) { s.Seats = ptr(0) }, "seats"},
		{"negative seats", func(s *signup) { s.Seats = ptr(-2) }, "seats"},
		{"missing seats", func(s *signup) { s.Seats = nil }, "seats"},
		{"negative odometer", func(s *signup) { s.Odometer = ptr(-1) }, "odometer"},
		{"empty tags", func(s *signup) { s.Tags = nil }, "tags"},
		{"unknown tag", func(s *signup) { s.Tags = []string{"B", "Z"} }, "tags"},
		{"unknown fuel", func(s *signup) { s.Fuel = ptr("vapeur") }, "fuel"},
		{"too young", func(s *signup) { s.Birth = ptr(s.Now.AddDate(-10, 0, 0)) }, "birth_date"},
		{"one day short of 18", func(s *signup) { s.Birth = ptr(s.Now.AddDate(-18, 0, 1)) }, "birth_date"},
		{"missing birth date", func(s *signup) { s.Birth = nil }, "birth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			err := Check(in, rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.field, apperr.FieldOf(err))
		})
	}
}

func TestCheck_ExactlyEighteen(t *testing.T) {
	in := valid()
	in.Birth = ptr(in.Now.AddDate(-18, 0, 0))
	assert.NoError(t, Check(in, rules))
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		expected bool
	}{
		{"Secret#123", true},
		{"Aa1!aaaa", true},
		{"Aa1!aaa", false},
		{"Aa1!aaaaaaaaaaaaa", false},
		{"aa1!aaaa", false},
		{"AA1!AAAA", false},
		{"Aaa!aaaa", false},
		{"Aa1aaaaa", false},
		{"Aa1! aaaa", false},
		{"Aa1*aaaa", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsStrongPassword(tt.password))
		})
	}
}

func TestLength(t *testing.T) {
	r := Length("password", 8, 16, func(s *string) *string { return s })
	assert.False(t, r.Valid(nil))
	assert.False(t, r.Valid(ptr("short")))
	assert.True(t, r.Valid(ptr("exactly8")))
	assert.False(t, r.Valid(ptr("seventeen-chars!!")))
}

func TestOptional_SuppliedSkipsBlank(t *testing.T) {
	fuel := func(s signup) *string { return s.Fuel }
	patchRules := []Rule[signup]{
		Optional(Known("fuel", []string{"diesel", "essence"}, fuel), Supplied(fuel)),
	}

	tests := []struct {
		name  string
		fuel  *string
		field string
	}{
		{"absent", nil, ""},
		{"blank", ptr("  "), ""},
		{"known", ptr("diesel"), ""},
		{"unknown", ptr("kerosene"), "fuel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(signup{Fuel: tt.fuel}, patchRules)
			assert.Equal(t, tt.field, apperr.FieldOf(err))
		})
	}
}
