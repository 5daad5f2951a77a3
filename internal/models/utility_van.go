package models

import (
	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// UtilityVan represents a light commercial vehicle.
type UtilityVan struct {
	VehicleBase    `bson:",inline"`
	Seats          int       `json:"seats" bson:"seats"`
	Fuel           string    `json:"fuel" bson:"fuel" gorm:"size:20"`
	Payload        int       `json:"payload" bson:"payload"`           // in kg
	GrossWeight    int       `json:"gross_weight" bson:"gross_weight"` // in kg
	Volume         int       `json:"volume" bson:"volume"`             // in m3
	ClimateControl bool      `json:"climate_control" bson:"climate_control"`
	Licenses       []License `json:"licenses" bson:"licenses" gorm:"serializer:json"`
}

func (*UtilityVan) Kind() Kind { return KindUtilityVan }

type UtilityVanInput struct {
	VehicleBaseInput
	Seats          *int      `json:"seats"`
	Fuel           *string   `json:"fuel"`
	Payload        *int      `json:"payload"`
	GrossWeight    *int      `json:"gross_weight"`
	Volume         *int      `json:"volume"`
	ClimateControl *bool     `json:"climate_control"`
	Licenses       []License `json:"licenses"`
}

var (
	utilityVanBaseRules = vehicleBaseRules(UtilityVanCategories)
	utilityVanRules     = []validation.Rule[UtilityVanInput]{
		validation.Positive("seats", func(in UtilityVanInput) *int { return in.Seats }),
		validation.NotBlank("fuel", func(in UtilityVanInput) *string { return in.Fuel }),
		validation.Known("fuel", Fuels, func(in UtilityVanInput) *string { return in.Fuel }),
		validation.Positive("payload", func(in UtilityVanInput) *int { return in.Payload }),
		validation.Positive("gross_weight", func(in UtilityVanInput) *int { return in.GrossWeight }),
		validation.Positive("volume", func(in UtilityVanInput) *int { return in.Volume }),
		validation.NotNil("climate_control", func(in UtilityVanInput) *bool { return in.ClimateControl }),
		validation.NotEmpty("licenses", func(in UtilityVanInput) []License { return in.Licenses }),
		validation.AllKnown("licenses", LicenseCategories, func(in UtilityVanInput) []License { return in.Licenses }),
	}
)

func (in UtilityVanInput) Validate() error {
	if err := validation.Check(in.VehicleBaseInput, utilityVanBaseRules); err != nil {
		return err
	}
	return validation.Check(in, utilityVanRules)
}

var (
	utilityVanBasePatchRules = vehicleBasePatchRules(UtilityVanCategories)
	utilityVanPatchRules     = []validation.Rule[UtilityVanInput]{
		validation.Optional(
			validation.Known("fuel", Fuels, func(in UtilityVanInput) *string { return in.Fuel }),
			validation.Supplied(func(in UtilityVanInput) *string { return in.Fuel })),
		validation.AllKnown("licenses", LicenseCategories, func(in UtilityVanInput) []License { return in.Licenses }),
	}
)

func (in UtilityVanInput) ValidatePatch() error {
	if err := validation.Check(in.VehicleBaseInput, utilityVanBasePatchRules); err != nil {
		return err
	}
	return validation.Check(in, utilityVanPatchRules)
}

func (in UtilityVanInput) Build() *UtilityVan {
	return &UtilityVan{
		VehicleBase:    in.VehicleBaseInput.build(),
		Seats:          deref(in.Seats),
		Fuel:           deref(in.Fuel),
		Payload:        deref(in.Payload),
		GrossWeight:    deref(in.GrossWeight),
		Volume:         deref(in.Volume),
		ClimateControl: deref(in.ClimateControl),
		Licenses:       append([]License(nil), in.Licenses...),
	}
}

func (u *UtilityVan) Merge(in UtilityVanInput) {
	u.VehicleBase.merge(in.VehicleBaseInput)
	patch.Positive(&u.Seats, in.Seats)
	patch.NonBlank(&u.Fuel, in.Fuel)
	patch.Positive(&u.Payload, in.Payload)
	patch.Positive(&u.GrossWeight, in.GrossWeight)
	patch.Positive(&u.Volume, in.Volume)
	patch.Value(&u.ClimateControl, in.ClimateControl)
	patch.Slice(&u.Licenses, in.Licenses)
}

type UtilityVanCriteria struct {
	VehicleBaseCriteria
	Seats          *int      `json:"seats"`
	Fuel           *string   `json:"fuel"`
	Payload        *int      `json:"payload"`
	GrossWeight    *int      `json:"gross_weight"`
	Volume         *int      `json:"volume"`
	ClimateControl *bool     `json:"climate_control"`
	Licenses       []License `json:"licenses"`
}

func (c UtilityVanCriteria) Criteria() []filter.Criterion[*UtilityVan] {
	return append(vehicleBaseCriteria[*UtilityVan](c.VehicleBaseCriteria, UtilityVanCategories),
		filter.Positive("seats", c.Seats, func(v *UtilityVan) int { return v.Seats }),
		filter.OneOf("fuel", c.Fuel, Fuels, func(v *UtilityVan) string { return v.Fuel }),
		filter.Positive("payload", c.Payload, func(v *UtilityVan) int { return v.Payload }),
		filter.Positive("gross_weight", c.GrossWeight, func(v *UtilityVan) int { return v.GrossWeight }),
		filter.Positive("volume", c.Volume, func(v *UtilityVan) int { return v.Volume }),
		filter.Equal("climate_control", c.ClimateControl, func(v *UtilityVan) bool { return v.ClimateControl }),
		filter.FirstOf("licenses", c.Licenses, func(v *UtilityVan) []License { return v.Licenses }),
	)
}
