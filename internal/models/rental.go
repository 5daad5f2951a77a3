package models

import (
	"time"

	"github.com/ukydev/fleet-rental/internal/filter"
	"github.com/ukydev/fleet-rental/internal/patch"
	"github.com/ukydev/fleet-rental/internal/validation"
)

// Rental links a client to one vehicle of the fleet for a date range.
type Rental struct {
	ID             int64        `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	ClientMail     string       `json:"client_mail" bson:"client_mail" gorm:"size:191;index"`
	VehicleKind    Kind         `json:"vehicle_kind" bson:"vehicle_kind" gorm:"size:20"`
	VehicleID      int64        `json:"vehicle_id" bson:"vehicle_id" gorm:"index"`
	Accessory      Accessory    `json:"accessory,omitempty" bson:"accessory,omitempty" gorm:"size:30"`
	StartDate      time.Time    `json:"start_date" bson:"start_date"`
	EndDate        time.Time    `json:"end_date" bson:"end_date"`
	Distance       int          `json:"distance" bson:"distance"` // in kilometers
	Amount         int          `json:"amount" bson:"amount"`     // in euros
	ValidationDate *time.Time   `json:"validation_date,omitempty" bson:"validation_date,omitempty"`
	Status         RentalStatus `json:"status" bson:"status" gorm:"size:20"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

func (r *Rental) Key() int64      { return r.ID }
func (r *Rental) SetKey(id int64) { r.ID = id }

func (r *Rental) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// RentalInput is a create or partial-update request for a rental.
type RentalInput struct {
	ClientMail     *string       `json:"client_mail"`
	VehicleKind    *Kind         `json:"vehicle_kind"`
	VehicleID      *int64        `json:"vehicle_id"`
	Accessory      *Accessory    `json:"accessory"`
	StartDate      *time.Time    `json:"start_date"`
	EndDate        *time.Time    `json:"end_date"`
	Distance       *int          `json:"distance"`
	Amount         *int          `json:"amount"`
	ValidationDate *time.Time    `json:"validation_date"`
	Status         *RentalStatus `json:"status"`
}

var rentalRules = []validation.Rule[RentalInput]{
	validation.NotBlank("client_mail", func(in RentalInput) *string { return in.ClientMail }),
	validation.NotNil("vehicle_kind", func(in RentalInput) *Kind { return in.VehicleKind }),
	validation.Known("vehicle_kind", Kinds, func(in RentalInput) *Kind { return in.VehicleKind }),
	validation.Positive("vehicle_id", func(in RentalInput) *int64 { return in.VehicleID }),
	validation.NotNil("start_date", func(in RentalInput) *time.Time { return in.StartDate }),
	validation.NotNil("status", func(in RentalInput) *RentalStatus { return in.Status }),
	validation.Known("status", RentalStatuses, func(in RentalInput) *RentalStatus { return in.Status }),
	validation.Optional(
		validation.Known("accessory", Accessories, func(in RentalInput) *Accessory { return in.Accessory }),
		func(in RentalInput) *Accessory { return in.Accessory }),
	validation.Optional(
		validation.NonNegative("distance", func(in RentalInput) *int { return in.Distance }),
		func(in RentalInput) *int { return in.Distance }),
	validation.Positive("amount", func(in RentalInput) *int { return in.Amount }),
}

func (in RentalInput) Validate() error {
	return validation.Check(in, rentalRules)
}

var rentalPatchRules = []validation.Rule[RentalInput]{
	validation.Optional(
		validation.Known("vehicle_kind", Kinds, func(in RentalInput) *Kind { return in.VehicleKind }),
		func(in RentalInput) *Kind { return in.VehicleKind }),
	validation.Optional(
		validation.Known("status", RentalStatuses, func(in RentalInput) *RentalStatus { return in.Status }),
		func(in RentalInput) *RentalStatus { return in.Status }),
	validation.Optional(
		validation.Known("accessory", Accessories, func(in RentalInput) *Accessory { return in.Accessory }),
		func(in RentalInput) *Accessory { return in.Accessory }),
}

// ValidatePatch checks the supplied fields of a partial update.
func (in RentalInput) ValidatePatch() error {
	return validation.Check(in, rentalPatchRules)
}

func (in RentalInput) Build() *Rental {
	r := &Rental{
		ClientMail:  deref(in.ClientMail),
		VehicleKind: deref(in.VehicleKind),
		VehicleID:   deref(in.VehicleID),
		Accessory:   deref(in.Accessory),
		StartDate:   deref(in.StartDate),
		EndDate:     deref(in.EndDate),
		Distance:    deref(in.Distance),
		Amount:      deref(in.Amount),
		Status:      deref(in.Status),
	}
	patch.TimePtr(&r.ValidationDate, in.ValidationDate)
	return r
}

// Merge applies a partial update. Status is written as given; there is no
// transition check.
func (r *Rental) Merge(in RentalInput) {
	patch.NonBlank(&r.ClientMail, in.ClientMail)
	if in.VehicleKind != nil && IsValidKind(*in.VehicleKind) {
		r.VehicleKind = *in.VehicleKind
	}
	patch.Positive(&r.VehicleID, in.VehicleID)
	patch.Value(&r.Accessory, in.Accessory)
	patch.Value(&r.StartDate, in.StartDate)
	patch.Value(&r.EndDate, in.EndDate)
	patch.NonNegative(&r.Distance, in.Distance)
	patch.Positive(&r.Amount, in.Amount)
	patch.TimePtr(&r.ValidationDate, in.ValidationDate)
	patch.Value(&r.Status, in.Status)
}

type RentalCriteria struct {
	ID             *int64        `json:"id"`
	ClientMail     *string       `json:"client_mail"`
	VehicleKind    *Kind         `json:"vehicle_kind"`
	VehicleID      *int64        `json:"vehicle_id"`
	Accessory      *Accessory    `json:"accessory"`
	StartDate      *time.Time    `json:"start_date"`
	EndDate        *time.Time    `json:"end_date"`
	ValidationDate *time.Time    `json:"validation_date"`
	Distance       *int          `json:"distance"`
	Amount         *int          `json:"amount"`
	Status         *RentalStatus `json:"status"`
}

func (c RentalCriteria) Criteria() []filter.Criterion[*Rental] {
	return []filter.Criterion[*Rental]{
		filter.Identity("id", c.ID, func(v *Rental) int64 { return v.ID }),
		filter.Contains("client_mail", c.ClientMail, func(v *Rental) string { return v.ClientMail }),
		filter.OneOf("vehicle_kind", c.VehicleKind, Kinds, func(v *Rental) Kind { return v.VehicleKind }),
		filter.Identity("vehicle_id", c.VehicleID, func(v *Rental) int64 { return v.VehicleID }),
		filter.OneOf("accessory", c.Accessory, Accessories, func(v *Rental) Accessory { return v.Accessory }),
		filter.SameDate("start_date", c.StartDate, func(v *Rental) time.Time { return v.StartDate }),
		filter.SameDate("end_date", c.EndDate, func(v *Rental) time.Time { return v.EndDate }),
		filter.SameOptionalDate("validation_date", c.ValidationDate, func(v *Rental) *time.Time { return v.ValidationDate }),
		filter.NonNegative("distance", c.Distance, func(v *Rental) int { return v.Distance }),
		filter.Positive("amount", c.Amount, func(v *Rental) int { return v.Amount }),
		filter.OneOf("status", c.Status, RentalStatuses, func(v *Rental) RentalStatus { return v.Status }),
	}
}
