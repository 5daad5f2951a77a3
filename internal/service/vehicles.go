package service

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/models"
)

type (
	CarService        = Service[models.Car, int64, models.CarInput, models.CarCriteria]
	MotorcycleService = Service[models.Motorcycle, int64, models.MotorcycleInput, models.MotorcycleCriteria]
	BicycleService    = Service[models.Bicycle, int64, models.BicycleInput, models.BicycleCriteria]
	UtilityVanService = Service[models.UtilityVan, int64, models.UtilityVanInput, models.UtilityVanCriteria]
	CampingCarService = Service[models.CampingCar, int64, models.CampingCarInput, models.CampingCarCriteria]
)

func NewCarService(store db.Store[models.Car, int64], pub events.Publisher) *CarService {
	return New[models.Car, int64, models.CarInput, models.CarCriteria](Definition[models.Car, models.CarInput]{
		Name:          string(models.KindCar),
		Validate:      models.CarInput.Validate,
		Build:         models.CarInput.Build,
		Merge:         (*models.Car).Merge,
		ValidatePatch: models.CarInput.ValidatePatch,
	}, store, pub)
}

func NewMotorcycleService(store db.Store[models.Motorcycle, int64], pub events.Publisher) *MotorcycleService {
	return New[models.Motorcycle, int64, models.MotorcycleInput, models.MotorcycleCriteria](Definition[models.Motorcycle, models.MotorcycleInput]{
		Name:          string(models.KindMotorcycle),
		Validate:      models.MotorcycleInput.Validate,
		Build:         models.MotorcycleInput.Build,
		Merge:         (*models.Motorcycle).Merge,
		ValidatePatch: models.MotorcycleInput.ValidatePatch,
	}, store, pub)
}

func NewBicycleService(store db.Store[models.Bicycle, int64], pub events.Publisher) *BicycleService {
	return New[models.Bicycle, int64, models.BicycleInput, models.BicycleCriteria](Definition[models.Bicycle, models.BicycleInput]{
		Name:          string(models.KindBicycle),
		Validate:      models.BicycleInput.Validate,
		Build:         models.BicycleInput.Build,
		Merge:         (*models.Bicycle).Merge,
		ValidatePatch: models.BicycleInput.ValidatePatch,
	}, store, pub)
}

func NewUtilityVanService(store db.Store[models.UtilityVan, int64], pub events.Publisher) *UtilityVanService {
	return New[models.UtilityVan, int64, models.UtilityVanInput, models.UtilityVanCriteria](Definition[models.UtilityVan, models.UtilityVanInput]{
		Name:          string(models.KindUtilityVan),
		Validate:      models.UtilityVanInput.Validate,
		Build:         models.UtilityVanInput.Build,
		Merge:         (*models.UtilityVan).Merge,
		ValidatePatch: models.UtilityVanInput.ValidatePatch,
	}, store, pub)
}

func NewCampingCarService(store db.Store[models.CampingCar, int64], pub events.Publisher) *CampingCarService {
	return New[models.CampingCar, int64, models.CampingCarInput, models.CampingCarCriteria](Definition[models.CampingCar, models.CampingCarInput]{
		Name:          string(models.KindCampingCar),
		Validate:      models.CampingCarInput.Validate,
		Build:         models.CampingCarInput.Build,
		Merge:         (*models.CampingCar).Merge,
		ValidatePatch: models.CampingCarInput.ValidatePatch,
	}, store, pub)
}

// Lookup reports whether a key is stored.
type Lookup[K comparable] interface {
	ExistsByID(ctx context.Context, id K) (bool, error)
}

// Fleet resolves vehicle references across every vehicle kind.
type Fleet struct {
	kinds map[models.Kind]Lookup[int64]
}

func NewFleet() *Fleet {
	return &Fleet{kinds: make(map[models.Kind]Lookup[int64])}
}

// Register makes the vehicles of kind resolvable.
func (f *Fleet) Register(kind models.Kind, l Lookup[int64]) *Fleet {
	f.kinds[kind] = l
	return f
}

// Exists reports an apperr error when no vehicle of kind is stored under id.
func (f *Fleet) Exists(ctx context.Context, kind models.Kind, id int64) error {
	l, ok := f.kinds[kind]
	if !ok {
		return apperr.Validation("vehicle_kind", "vehicle kind %q is not managed", kind)
	}
	found, err := l.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup %s %d: %w", kind, id, err)
	}
	if !found {
		return apperr.NotFound(string(kind), id)
	}
	return nil
}
