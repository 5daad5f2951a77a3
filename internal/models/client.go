package models

import (
	"time"

	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// MinimumClientAge is the age a client must have reached on registration.
const MinimumClientAge = 18

// Address is owned by its client and stored inline with it.
type Address struct {
	Street     string `json:"street" bson:"street" gorm:"size:200"`
	PostalCode string `json:"postal_code" bson:"postal_code" gorm:"size:20"`
	City       string `json:"city" bson:"city" gorm:"size:100"`
}

type AddressInput struct {
	Street     *string `json:"street"`
	PostalCode *string `json:"postal_code"`
	City       *string `json:"city"`
}

func (a *Address) merge(in *AddressInput) {
	if in == nil {
		return
	}
	patch.NonBlank(&a.Street, in.Street)
	patch.NonBlank(&a.PostalCode, in.PostalCode)
	patch.NonBlank(&a.City, in.City)
}

// Client is a customer who can book rentals.
type Client struct {
	UserBase         `bson:",inline"`
	Address          Address   `json:"address" bson:"address" gorm:"embedded;embeddedPrefix:address_"`
	BirthDate        time.Time `json:"birth_date" bson:"birth_date"`
	RegistrationDate time.Time `json:"registration_date" bson:"registration_date"`
	Licenses         []License `json:"licenses" bson:"licenses" gorm:"serializer:json"`
	Deactivated      bool      `json:"deactivated" bson:"deactivated"`
	// Rentals is filled on reads from the rental store.
	Rentals []int64 `json:"rentals" bson:"-" gorm:"-"`
}

func (*Client) Role() Role { return RoleClient }

// ClientInput is a create or partial-update request for a client.
type ClientInput struct {
	UserBaseInput
	Address          *AddressInput `json:"address"`
	BirthDate        *time.Time    `json:"birth_date"`
	RegistrationDate *time.Time    `json:"registration_date"`
	Licenses         []License     `json:"licenses"`
	Deactivated      *bool         `json:"deactivated"`
}

func addressField(get func(*AddressInput) *string) func(ClientInput) *string {
	return func(in ClientInput) *string {
		if in.Address == nil {
			return nil
		}
		return get(in.Address)
	}
}

// clientRules returns the creation rules; the age rule is measured against
// the registration date, or now when none is given.
func clientRules(now time.Time) []validation.Rule[ClientInput] {
	return []validation.Rule[ClientInput]{
		validation.NotBlank("mail", func(in ClientInput) *string { return in.Mail }),
		validation.Mail("mail", func(in ClientInput) *string { return in.Mail }),
		validation.NotBlank("password", func(in ClientInput) *string { return in.Password }),
		validation.Length("password", 8, 16, func(in ClientInput) *string { return in.Password }),
		validation.StrongPassword("password", func(in ClientInput) *string { return in.Password }),
		validation.NotBlank("last_name", func(in ClientInput) *string { return in.LastName }),
		validation.NotBlank("first_name", func(in ClientInput) *string { return in.FirstName }),
		validation.NotNil("birth_date", func(in ClientInput) *time.Time { return in.BirthDate }),
		validation.MinAge("birth_date", MinimumClientAge,
			func(in ClientInput) *time.Time { return in.BirthDate },
			func(in ClientInput) time.Time {
				if in.RegistrationDate != nil {
					return *in.RegistrationDate
				}
				return now
			}),
		validation.NotNil("address", func(in ClientInput) *AddressInput { return in.Address }),
		validation.NotBlank("address.street", addressField(func(a *AddressInput) *string { return a.Street })),
		validation.NotBlank("address.postal_code", addressField(func(a *AddressInput) *string { return a.PostalCode })),
		validation.NotBlank("address.city", addressField(func(a *AddressInput) *string { return a.City })),
		validation.AllKnown("licenses", LicenseCategories, func(in ClientInput) []License { return in.Licenses }),
	}
}

// Validate checks a creation request at the current time.
func (in ClientInput) Validate() error {
	return in.ValidateAt(time.Now())
}

// ValidateAt checks a creation request, using now when no registration date is given.
func (in ClientInput) ValidateAt(now time.Time) error {
	return validation.Check(in, clientRules(now))
}

// clientPatchRules checks a partial update of stored. The age rule runs when
// either date is supplied and combines it with the stored one.
func clientPatchRules(stored *Client) []validation.Rule[ClientInput] {
	birth := func(in ClientInput) *time.Time {
		if in.BirthDate != nil {
			return in.BirthDate
		}
		return &stored.BirthDate
	}
	registered := func(in ClientInput) time.Time {
		if in.RegistrationDate != nil {
			return *in.RegistrationDate
		}
		return stored.RegistrationDate
	}
	dated := func(in ClientInput) *time.Time {
		if in.BirthDate != nil {
			return in.BirthDate
		}
		return in.RegistrationDate
	}
	return []validation.Rule[ClientInput]{
		validation.Optional(validation.MinAge("birth_date", MinimumClientAge, birth, registered), dated),
		validation.AllKnown("licenses", LicenseCategories, func(in ClientInput) []License { return in.Licenses }),
	}
}

// ValidatePatch checks a partial update against the stored client.
func (in ClientInput) ValidatePatch(stored *Client) error {
	if err := in.PatchPassword(); err != nil {
		return err
	}
	return validation.Check(in, clientPatchRules(stored))
}

// Build maps a validated request to a new client. The password is left for
// the caller to hash; the registration date defaults to now.
func (in ClientInput) Build(now time.Time) *Client {
	c := &Client{
		UserBase:         in.UserBaseInput.build(),
		BirthDate:        deref(in.BirthDate),
		RegistrationDate: now,
		Licenses:         append([]License(nil), in.Licenses...),
		Deactivated:      deref(in.Deactivated),
	}
	if in.Address != nil {
		c.Address = Address{
			Street:     deref(in.Address.Street),
			PostalCode: deref(in.Address.PostalCode),
			City:       deref(in.Address.City),
		}
	}
	if in.RegistrationDate != nil {
		c.RegistrationDate = *in.RegistrationDate
	}
	return c
}

// Merge applies a partial update. Mail and password are not touched here.
func (c *Client) Merge(in ClientInput) {
	patch.NonBlank(&c.LastName, in.LastName)
	patch.NonBlank(&c.FirstName, in.FirstName)
	c.Address.merge(in.Address)
	patch.Value(&c.BirthDate, in.BirthDate)
	patch.Value(&c.RegistrationDate, in.RegistrationDate)
	patch.Slice(&c.Licenses, in.Licenses)
	patch.Value(&c.Deactivated, in.Deactivated)
}

// ClientCriteria holds the optional search criteria for clients.
type ClientCriteria struct {
	Mail             *string    `json:"mail"`
	LastName         *string    `json:"last_name"`
	FirstName        *string    `json:"first_name"`
	City             *string    `json:"city"`
	PostalCode       *string    `json:"postal_code"`
	BirthDate        *time.Time `json:"birth_date"`
	RegistrationDate *time.Time `json:"registration_date"`
	Licenses         []License  `json:"licenses"`
	Deactivated      *bool      `json:"deactivated"`
}

func (c ClientCriteria) Criteria() []filter.Criterion[*Client] {
	return []filter.Criterion[*Client]{
		filter.Contains("mail", c.Mail, func(v *Client) string { return v.Mail }),
		filter.Contains("last_name", c.LastName, func(v *Client) string { return v.LastName }),
		filter.Contains("first_name", c.FirstName, func(v *Client) string { return v.FirstName }),
		filter.Contains("city", c.City, func(v *Client) string { return v.Address.City }),
		filter.Contains("postal_code", c.PostalCode, func(v *Client) string { return v.Address.PostalCode }),
		filter.SameDate("birth_date", c.BirthDate, func(v *Client) time.Time { return v.BirthDate }),
		filter.SameDate("registration_date", c.RegistrationDate, func(v *Client) time.Time { return v.RegistrationDate }),
		filter.FirstOf("licenses", c.Licenses, func(v *Client) []License { return v.Licenses }),
		filter.Equal("deactivated", c.Deactivated, func(v *Client) bool { return v.Deactivated }),
	}
}
