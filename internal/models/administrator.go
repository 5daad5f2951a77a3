package models

import (
	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// Administrator manages the fleet, the clients and the rentals.
type Administrator struct {
	UserBase `bson:",inline"`
	JobTitle string `json:"job_title" bson:"job_title" gorm:"size:100"`
}

func (*Administrator) Role() Role { return RoleAdmin }

type AdministratorInput struct {
	UserBaseInput
	JobTitle *string `json:"job_title"`
}

var administratorRules = []validation.Rule[AdministratorInput]{
	validation.NotBlank("mail", func(in AdministratorInput) *string { return in.Mail }),
	validation.Mail("mail", func(in AdministratorInput) *string { return in.Mail }),
	validation.NotBlank("password", func(in AdministratorInput) *string { return in.Password }),
	validation.StrongPassword("password", func(in AdministratorInput) *string { return in.Password }),
	validation.NotBlank("last_name", func(in AdministratorInput) *string { return in.LastName }),
	validation.NotBlank("first_name", func(in AdministratorInput) *string { return in.FirstName }),
	validation.NotBlank("job_title", func(in AdministratorInput) *string { return in.JobTitle }),
}

func (in AdministratorInput) Validate() error {
	return validation.Check(in, administratorRules)
}

var administratorPatchRules = []validation.Rule[AdministratorInput]{
	validation.Optional(
		validation.NotBlank("last_name", func(in AdministratorInput) *string { return in.LastName }),
		func(in AdministratorInput) *string { return in.LastName }),
	validation.Optional(
		validation.NotBlank("first_name", func(in AdministratorInput) *string { return in.FirstName }),
		func(in AdministratorInput) *string { return in.FirstName }),
	validation.Optional(
		validation.NotBlank("job_title", func(in AdministratorInput) *string { return in.JobTitle }),
		func(in AdministratorInput) *string { return in.JobTitle }),
}

// ValidatePatch checks a partial update: a supplied password must be strong
// and supplied names may not be blank.
func (in AdministratorInput) ValidatePatch() error {
	if err := in.PatchPassword(); err != nil {
		return err
	}
	return validation.Check(in, administratorPatchRules)
}

func (in AdministratorInput) Build() *Administrator {
	return &Administrator{
		UserBase: in.UserBaseInput.build(),
		JobTitle: deref(in.JobTitle),
	}
}

// Merge applies a partial update. Present values are written even when blank.
func (a *Administrator) Merge(in AdministratorInput) {
	patch.String(&a.LastName, in.LastName)
	patch.String(&a.FirstName, in.FirstName)
	patch.String(&a.JobTitle, in.JobTitle)
}

type AdministratorCriteria struct {
	Mail      *string `json:"mail"`
	LastName  *string `json:"last_name"`
	FirstName *string `json:"first_name"`
	JobTitle  *string `json:"job_title"`
}

func (c AdministratorCriteria) Criteria() []filter.Criterion[*Administrator] {
	return []filter.Criterion[*Administrator]{
		filter.Contains("mail", c.Mail, func(v *Administrator) string { return v.Mail }),
		filter.Contains("last_name", c.LastName, func(v *Administrator) string { return v.LastName }),
		filter.Contains("first_name", c.FirstName, func(v *Administrator) string { return v.FirstName }),
		filter.Contains("job_title", c.JobTitle, func(v *Administrator) string { return v.JobTitle }),
	}
}
