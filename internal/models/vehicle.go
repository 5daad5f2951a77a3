package models

import (
	"time"

	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// Vehicle is implemented by every fleet variant.
type Vehicle interface {
	Kind() Kind
	Base() *VehicleBase
}

// VehicleBase holds the fields shared by every vehicle variant.
type VehicleBase struct {
	ID        int64     `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	Brand     string    `json:"brand" bson:"brand" gorm:"size:100;not null"`
	Model     string    `json:"model" bson:"model" gorm:"size:100;not null"`
	Color     string    `json:"color" bson:"color" gorm:"size:50"`
	Category  string    `json:"category" bson:"category" gorm:"size:50;index"`
	DailyRate int       `json:"daily_rate" bson:"daily_rate"` // in euros
	Odometer  int       `json:"odometer" bson:"odometer"`     // in kilometers
	Active    bool      `json:"active" bson:"active"`
	Retired   bool      `json:"retired" bson:"retired"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (b *VehicleBase) Base() *VehicleBase { return b }
func (b *VehicleBase) Key() int64         { return b.ID }
func (b *VehicleBase) SetKey(id int64)    { b.ID = id }

// Touch records a write at now.
func (b *VehicleBase) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// VehicleBaseInput is the shared part of every vehicle create/patch request.
type VehicleBaseInput struct {
	Brand     *string `json:"brand"`
	Model     *string `json:"model"`
	Color     *string `json:"color"`
	Category  *string `json:"category"`
	DailyRate *int    `json:"daily_rate"`
	Odometer  *int    `json:"odometer"`
	Active    *bool   `json:"active"`
	Retired   *bool   `json:"retired"`
}

func (in VehicleBaseInput) build() VehicleBase {
	return VehicleBase{
		Brand:     deref(in.Brand),
		Model:     deref(in.Model),
		Color:     deref(in.Color),
		Category:  deref(in.Category),
		DailyRate: deref(in.DailyRate),
		Odometer:  deref(in.Odometer),
		Active:    deref(in.Active),
		Retired:   deref(in.Retired),
	}
}

func (b *VehicleBase) merge(in VehicleBaseInput) {
	patch.NonBlank(&b.Brand, in.Brand)
	patch.NonBlank(&b.Model, in.Model)
	patch.String(&b.Color, in.Color)
	patch.String(&b.Category, in.Category)
	patch.Positive(&b.DailyRate, in.DailyRate)
	patch.NonNegative(&b.Odometer, in.Odometer)
	patch.Value(&b.Active, in.Active)
	patch.Value(&b.Retired, in.Retired)
}

func vehicleBaseRules(categories []string) []validation.Rule[VehicleBaseInput] {
	return []validation.Rule[VehicleBaseInput]{
		validation.NotBlank("brand", func(in VehicleBaseInput) *string { return in.Brand }),
		validation.NotBlank("model", func(in VehicleBaseInput) *string { return in.Model }),
		validation.NotBlank("color", func(in VehicleBaseInput) *string { return in.Color }),
		validation.NotBlank("category", func(in VehicleBaseInput) *string { return in.Category }),
		validation.Known("category", categories, func(in VehicleBaseInput) *string { return in.Category }),
		validation.Positive("daily_rate", func(in VehicleBaseInput) *int { return in.DailyRate }),
		validation.NonNegative("odometer", func(in VehicleBaseInput) *int { return in.Odometer }),
		validation.NotNil("active", func(in VehicleBaseInput) *bool { return in.Active }),
		validation.NotNil("retired", func(in VehicleBaseInput) *bool { return in.Retired }),
	}
}

// vehicleBasePatchRules covers the shared fields a partial update writes as
// given. Fields merged only when meaningful need no rule here.
func vehicleBasePatchRules(categories []string) []validation.Rule[VehicleBaseInput] {
	color := func(in VehicleBaseInput) *string { return in.Color }
	category := func(in VehicleBaseInput) *string { return in.Category }
	return []validation.Rule[VehicleBaseInput]{
		validation.Optional(validation.NotBlank("color", color), color),
		validation.Optional(validation.Known("category", categories, category), category),
	}
}

// VehicleBaseCriteria is the shared part of every vehicle search.
type VehicleBaseCriteria struct {
	ID        *int64  `json:"id"`
	Brand     *string `json:"brand"`
	Model     *string `json:"model"`
	Color     *string `json:"color"`
	Category  *string `json:"category"`
	DailyRate *int    `json:"daily_rate"`
	Odometer  *int    `json:"odometer"`
	Active    *bool   `json:"active"`
	Retired   *bool   `json:"retired"`
}

func vehicleBaseCriteria[T Vehicle](c VehicleBaseCriteria, categories []string) []filter.Criterion[T] {
	return []filter.Criterion[T]{
		filter.Identity("id", c.ID, func(v T) int64 { return v.Base().ID }),
		filter.Contains("brand", c.Brand, func(v T) string { return v.Base().Brand }),
		filter.Contains("model", c.Model, func(v T) string { return v.Base().Model }),
		filter.Contains("color", c.Color, func(v T) string { return v.Base().Color }),
		filter.OneOf("category", c.Category, categories, func(v T) string { return v.Base().Category }),
		filter.Positive("daily_rate", c.DailyRate, func(v T) int { return v.Base().DailyRate }),
		filter.NonNegative("odometer", c.Odometer, func(v T) int { return v.Base().Odometer }),
		filter.Equal("active", c.Active, func(v T) bool { return v.Base().Active }),
		filter.Equal("retired", c.Retired, func(v T) bool { return v.Base().Retired }),
	}
}
