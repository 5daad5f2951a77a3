package models

import (
	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// Bicycle represents a bike, electric or not.
type Bicycle struct {
	VehicleBase     `bson:",inline"`
	FrameSize       int  `json:"frame_size" bson:"frame_size"` // in cm
	Weight          int  `json:"weight" bson:"weight"`         // in kg
	Electric        bool `json:"electric" bson:"electric"`
	BatteryCapacity int  `json:"battery_capacity" bson:"battery_capacity"` // in Wh
	Range           int  `json:"range" bson:"range"`                       // in km
	DiscBrakes      bool `json:"disc_brakes" bson:"disc_brakes"`
}

func (*Bicycle) Kind() Kind { return KindBicycle }

type BicycleInput struct {
	VehicleBaseInput
	FrameSize       *int  `json:"frame_size"`
	Weight          *int  `json:"weight"`
	Electric        *bool `json:"electric"`
	BatteryCapacity *int  `json:"battery_capacity"`
	Range           *int  `json:"range"`
	DiscBrakes      *bool `json:"disc_brakes"`
}

var (
	bicycleBaseRules = vehicleBaseRules(BicycleCategories)
	bicycleRules     = []validation.Rule[BicycleInput]{
		validation.Positive("frame_size", func(in BicycleInput) *int { return in.FrameSize }),
		validation.Positive("weight", func(in BicycleInput) *int { return in.Weight }),
		validation.NotNil("electric", func(in BicycleInput) *bool { return in.Electric }),
		validation.Positive("battery_capacity", func(in BicycleInput) *int { return in.BatteryCapacity }),
		validation.Positive("range", func(in BicycleInput) *int { return in.Range }),
		validation.NotNil("disc_brakes", func(in BicycleInput) *bool { return in.DiscBrakes }),
	}
)

func (in BicycleInput) Validate() error {
	if err := validation.Check(in.VehicleBaseInput, bicycleBaseRules); err != nil {
		return err
	}
	return validation.Check(in, bicycleRules)
}

var bicycleBasePatchRules = vehicleBasePatchRules(BicycleCategories)

// ValidatePatch checks the supplied fields of a partial update. Numeric
// fields are merged only when positive and need no rule.
func (in BicycleInput) ValidatePatch() error {
	return validation.Check(in.VehicleBaseInput, bicycleBasePatchRules)
}

func (in BicycleInput) Build() *Bicycle {
	return &Bicycle{
		VehicleBase:     in.VehicleBaseInput.build(),
		FrameSize:       deref(in.FrameSize),
		Weight:          deref(in.Weight),
		Electric:        deref(in.Electric),
		BatteryCapacity: deref(in.BatteryCapacity),
		Range:           deref(in.Range),
		DiscBrakes:      deref(in.DiscBrakes),
	}
}

func (b *Bicycle) Merge(in BicycleInput) {
	b.VehicleBase.merge(in.VehicleBaseInput)
	patch.Positive(&b.FrameSize, in.FrameSize)
	patch.Positive(&b.Weight, in.Weight)
	patch.Value(&b.Electric, in.Electric)
	patch.Positive(&b.BatteryCapacity, in.BatteryCapacity)
	patch.Positive(&b.Range, in.Range)
	patch.Value(&b.DiscBrakes, in.DiscBrakes)
}

type BicycleCriteria struct {
	VehicleBaseCriteria
	FrameSize       *int  `json:"frame_size"`
	Weight          *int  `json:"weight"`
	Electric        *bool `json:"electric"`
	BatteryCapacity *int  `json:"battery_capacity"`
	Range           *int  `json:"range"`
	DiscBrakes      *bool `json:"disc_brakes"`
}

func (c BicycleCriteria) Criteria() []filter.Criterion[*Bicycle] {
	return append(vehicleBaseCriteria[*Bicycle](c.VehicleBaseCriteria, BicycleCategories),
		filter.Positive("frame_size", c.FrameSize, func(v *Bicycle) int { return v.FrameSize }),
		filter.Positive("weight", c.Weight, func(v *Bicycle) int { return v.Weight }),
		filter.Equal("electric", c.Electric, func(v *Bicycle) bool { return v.Electric }),
		filter.Positive("battery_capacity", c.BatteryCapacity, func(v *Bicycle) int { return v.BatteryCapacity }),
		filter.Positive("range", c.Range, func(v *Bicycle) int { return v.Range }),
		filter.Equal("disc_brakes", c.DiscBrakes, func(v *Bicycle) bool { return v.DiscBrakes }),
	)
}
