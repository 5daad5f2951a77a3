package service

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/models"
)

type RentalService = Service[models.Rental, int64, models.RentalInput, models.RentalCriteria]

// NewRentalService creates the rental service. Every written rental must
// reference a stored client and a stored vehicle, and its accessory must fit
// the vehicle kind.
func NewRentalService(store db.Store[models.Rental, int64], clients Lookup[string], fleet *Fleet, pub events.Publisher) *RentalService {
	return New[models.Rental, int64, models.RentalInput, models.RentalCriteria](Definition[models.Rental, models.RentalInput]{
		Name:          "rental",
		Validate:      models.RentalInput.Validate,
		Build:         models.RentalInput.Build,
		Merge:         (*models.Rental).Merge,
		ValidatePatch: models.RentalInput.ValidatePatch,
		Check: func(ctx context.Context, r *models.Rental) error {
			if r.Accessory != "" && !r.Accessory.Fits(r.VehicleKind) {
				return apperr.Validation("accessory", "accessory %s does not fit a %s (expected one of %v)",
					r.Accessory, r.VehicleKind, models.AccessoriesFor(r.VehicleKind))
			}
			found, err := clients.ExistsByID(ctx, r.ClientMail)
			if err != nil {
				return fmt.Errorf("lookup client %s: %w", r.ClientMail, err)
			}
			if !found {
				return apperr.NotFound("client", r.ClientMail)
			}
			return fleet.Exists(ctx, r.VehicleKind, r.VehicleID)
		},
	}, store, pub)
}
