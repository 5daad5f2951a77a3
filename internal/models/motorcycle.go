package models

import (
	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// Motorcycle represents a motorbike or scooter of the fleet.
type Motorcycle struct {
	VehicleBase `bson:",inline"`
	Cylinders   int       `json:"cylinders" bson:"cylinders"`     // displacement in cm3
	Weight      int       `json:"weight" bson:"weight"`           // in kg
	Power       int       `json:"power" bson:"power"`             // in hp
	SeatHeight  int       `json:"seat_height" bson:"seat_height"` // in mm
	Licenses    []License `json:"licenses" bson:"licenses" gorm:"serializer:json"`
}

func (*Motorcycle) Kind() Kind { return KindMotorcycle }

// MotorcycleInput is a create or partial-update request for a motorcycle.
type MotorcycleInput struct {
	VehicleBaseInput
	Cylinders  *int      `json:"cylinders"`
	Weight     *int      `json:"weight"`
	Power      *int      `json:"power"`
	SeatHeight *int      `json:"seat_height"`
	Licenses   []License `json:"licenses"`
}

var (
	motorcycleBaseRules = vehicleBaseRules(MotorcycleCategories)
	motorcycleRules     = []validation.Rule[MotorcycleInput]{
		validation.Positive("cylinders", func(in MotorcycleInput) *int { return in.Cylinders }),
		validation.Positive("weight", func(in MotorcycleInput) *int { return in.Weight }),
		validation.Positive("power", func(in MotorcycleInput) *int { return in.Power }),
		validation.Positive("seat_height", func(in MotorcycleInput) *int { return in.SeatHeight }),
		validation.NotEmpty("licenses", func(in MotorcycleInput) []License { return in.Licenses }),
		validation.AllKnown("licenses", LicenseCategories, func(in MotorcycleInput) []License { return in.Licenses }),
	}
)

func (in MotorcycleInput) Validate() error {
	if err := validation.Check(in.VehicleBaseInput, motorcycleBaseRules); err != nil {
		return err
	}
	return validation.Check(in, motorcycleRules)
}

var (
	motorcycleBasePatchRules = vehicleBasePatchRules(MotorcycleCategories)
	motorcyclePatchRules     = []validation.Rule[MotorcycleInput]{
		validation.AllKnown("licenses", LicenseCategories, func(in MotorcycleInput) []License { return in.Licenses }),
	}
)

func (in MotorcycleInput) ValidatePatch() error {
	if err := validation.Check(in.VehicleBaseInput, motorcycleBasePatchRules); err != nil {
		return err
	}
	return validation.Check(in, motorcyclePatchRules)
}

func (in MotorcycleInput) Build() *Motorcycle {
	return &Motorcycle{
		VehicleBase: in.VehicleBaseInput.build(),
		Cylinders:   deref(in.Cylinders),
		Weight:      deref(in.Weight),
		Power:       deref(in.Power),
		SeatHeight:  deref(in.SeatHeight),
		Licenses:    append([]License(nil), in.Licenses...),
	}
}

func (m *Motorcycle) Merge(in MotorcycleInput) {
	m.VehicleBase.merge(in.VehicleBaseInput)
	patch.Positive(&m.Cylinders, in.Cylinders)
	patch.Positive(&m.Weight, in.Weight)
	patch.Positive(&m.Power, in.Power)
	patch.Positive(&m.SeatHeight, in.SeatHeight)
	patch.Slice(&m.Licenses, in.Licenses)
}

type MotorcycleCriteria struct {
	VehicleBaseCriteria
	Cylinders  *int      `json:"cylinders"`
	Weight     *int      `json:"weight"`
	Power      *int      `json:"power"`
	SeatHeight *int      `json:"seat_height"`
	Licenses   []License `json:"licenses"`
}

func (c MotorcycleCriteria) Criteria() []filter.Criterion[*Motorcycle] {
	return append(vehicleBaseCriteria[*Motorcycle](c.VehicleBaseCriteria, MotorcycleCategories),
		filter.Positive("cylinders", c.Cylinders, func(v *Motorcycle) int { return v.Cylinders }),
		filter.Positive("weight", c.Weight, func(v *Motorcycle) int { return v.Weight }),
		filter.Positive("power", c.Power, func(v *Motorcycle) int { return v.Power }),
		filter.Positive("seat_height", c.SeatHeight, func(v *Motorcycle) int { return v.SeatHeight }),
		filter.FirstOf("licenses", c.Licenses, func(v *Motorcycle) []License { return v.Licenses }),
	)
}
