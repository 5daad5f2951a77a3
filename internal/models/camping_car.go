package models

import (
	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// CampingCar represents a motorhome.
type CampingCar struct {
	VehicleBase `bson:",inline"`
	Seats       int       `json:"seats" bson:"seats"`
	Berths      int       `json:"berths" bson:"berths"`
	Length      int       `json:"length" bson:"length"` // in cm
	Fuel        string    `json:"fuel" bson:"fuel" gorm:"size:20"`
	Kitchen     bool      `json:"kitchen" bson:"kitchen"`
	Shower      bool      `json:"shower" bson:"shower"`
	Licenses    []License `json:"licenses" bson:"licenses" gorm:"serializer:json"`
}

func (*CampingCar) Kind() Kind { return KindCampingCar }

type CampingCarInput struct {
	VehicleBaseInput
	Seats    *int      `json:"seats"`
	Berths   *int      `json:"berths"`
	Length   *int      `json:"length"`
	Fuel     *string   `json:"fuel"`
	Kitchen  *bool     `json:"kitchen"`
	Shower   *bool     `json:"shower"`
	Licenses []License `json:"licenses"`
}

var (
	campingCarBaseRules = vehicleBaseRules(CampingCarCategories)
	campingCarRules     = []validation.Rule[CampingCarInput]{
		validation.Positive("seats", func(in CampingCarInput) *int { return in.Seats }),
		validation.Positive("berths", func(in CampingCarInput) *int { return in.Berths }),
		validation.Positive("length", func(in CampingCarInput) *int { return in.Length }),
		validation.NotBlank("fuel", func(in CampingCarInput) *string { return in.Fuel }),
		validation.Known("fuel", Fuels, func(in CampingCarInput) *string { return in.Fuel }),
		validation.NotNil("kitchen", func(in CampingCarInput) *bool { return in.Kitchen }),
		validation.NotNil("shower", func(in CampingCarInput) *bool { return in.Shower }),
		validation.NotEmpty("licenses", func(in CampingCarInput) []License { return in.Licenses }),
		validation.AllKnown("licenses", LicenseCategories, func(in CampingCarInput) []License { return in.Licenses }),
	}
)

func (in CampingCarInput) Validate() error {
	if err := validation.Check(in.VehicleBaseInput, campingCarBaseRules); err != nil {
		return err
	}
	return validation.Check(in, campingCarRules)
}

var (
	campingCarBasePatchRules = vehicleBasePatchRules(CampingCarCategories)
	campingCarPatchRules     = []validation.Rule[CampingCarInput]{
		validation.Optional(
			validation.Known("fuel", Fuels, func(in CampingCarInput) *string { return in.Fuel }),
			validation.Supplied(func(in CampingCarInput) *string { return in.Fuel })),
		validation.AllKnown("licenses", LicenseCategories, func(in CampingCarInput) []License { return in.Licenses }),
	}
)

func (in CampingCarInput) ValidatePatch() error {
	if err := validation.Check(in.VehicleBaseInput, campingCarBasePatchRules); err != nil {
		return err
	}
	return validation.Check(in, campingCarPatchRules)
}

func (in CampingCarInput) Build() *CampingCar {
	return &CampingCar{
		VehicleBase: in.VehicleBaseInput.build(),
		Seats:       deref(in.Seats),
		Berths:      deref(in.Berths),
		Length:      deref(in.Length),
		Fuel:        deref(in.Fuel),
		Kitchen:     deref(in.Kitchen),
		Shower:      deref(in.Shower),
		Licenses:    append([]License(nil), in.Licenses...),
	}
}

func (c *CampingCar) Merge(in CampingCarInput) {
	c.VehicleBase.merge(in.VehicleBaseInput)
	patch.Positive(&c.Seats, in.Seats)
	patch.Positive(&c.Berths, in.Berths)
	patch.Positive(&c.Length, in.Length)
	patch.NonBlank(&c.Fuel, in.Fuel)
	patch.Value(&c.Kitchen, in.Kitchen)
	patch.Value(&c.Shower, in.Shower)
	patch.Slice(&c.Licenses, in.Licenses)
}

type CampingCarCriteria struct {
	VehicleBaseCriteria
	Seats    *int      `json:"seats"`
	Berths   *int      `json:"berths"`
	Length   *int      `json:"length"`
	Fuel     *string   `json:"fuel"`
	Kitchen  *bool     `json:"kitchen"`
	Shower   *bool     `json:"shower"`
	Licenses []License `json:"licenses"`
}

func (c CampingCarCriteria) Criteria() []filter.Criterion[*CampingCar] {
	return append(vehicleBaseCriteria[*CampingCar](c.VehicleBaseCriteria, CampingCarCategories),
		filter.Positive("seats", c.Seats, func(v *CampingCar) int { return v.Seats }),
		filter.Positive("berths", c.Berths, func(v *CampingCar) int { return v.Berths }),
		filter.Positive("length", c.Length, func(v *CampingCar) int { return v.Length }),
		filter.OneOf("fuel", c.Fuel, Fuels, func(v *CampingCar) string { return v.Fuel }),
		filter.Equal("kitchen", c.Kitchen, func(v *CampingCar) bool { return v.Kitchen }),
		filter.Equal("shower", c.Shower, func(v *CampingCar) bool { return v.Shower }),
		filter.FirstOf("licenses", c.Licenses, func(v *CampingCar) []License { return v.Licenses }),
	)
}
