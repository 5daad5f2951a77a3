package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/config"
	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/models"
)

// stores holds one store per entity for the configured driver.
type stores struct {
	cars           db.Store[models.Car, int64]
	motorcycles    db.Store[models.Motorcycle, int64]
	bicycles       db.Store[models.Bicycle, int64]
	utilityVans    db.Store[models.UtilityVan, int64]
	campingCars    db.Store[models.CampingCar, int64]
	clients        db.Store[models.Client, string]
	administrators db.Store[models.Administrator, string]
	rentals        db.Store[models.Rental, int64]
	close          func(context.Context) error
}

func openStores(ctx context.Context, cfg config.StoreConfig) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memoryStores(), nil
	case config.DriverMongo:
		return mongoStores(ctx, cfg)
	case config.DriverPostgres, config.DriverMySQL:
		return gormStores(cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func memoryStores() *stores {
	return &stores{
		cars:           db.NewMemoryStore[models.Car, int64]("car", db.Counter()),
		motorcycles:    db.NewMemoryStore[models.Motorcycle, int64]("motorcycle", db.Counter()),
		bicycles:       db.NewMemoryStore[models.Bicycle, int64]("bicycle", db.Counter()),
		utilityVans:    db.NewMemoryStore[models.UtilityVan, int64]("utility_van", db.Counter()),
		campingCars:    db.NewMemoryStore[models.CampingCar, int64]("camping_car", db.Counter()),
		clients:        db.NewMemoryStore[models.Client, string]("client", nil),
		administrators: db.NewMemoryStore[models.Administrator, string]("administrator", nil),
		rentals:        db.NewMemoryStore[models.Rental, int64]("rental", db.Counter()),
		close:          func(context.Context) error { return nil },
	}
}

func mongoStores(ctx context.Context, cfg config.StoreConfig) (*stores, error) {
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.MongoDB)
	counters := database.Collection("counters")
	log.WithField("database", cfg.MongoDB).Info("connected to MongoDB")

	return &stores{
		cars:           db.NewMongoStore[models.Car, int64]("car", database.Collection("cars"), db.MongoSequence(counters, "cars")),
		motorcycles:    db.NewMongoStore[models.Motorcycle, int64]("motorcycle", database.Collection("motorcycles"), db.MongoSequence(counters, "motorcycles")),
		bicycles:       db.NewMongoStore[models.Bicycle, int64]("bicycle", database.Collection("bicycles"), db.MongoSequence(counters, "bicycles")),
		utilityVans:    db.NewMongoStore[models.UtilityVan, int64]("utility_van", database.Collection("utility_vans"), db.MongoSequence(counters, "utility_vans")),
		campingCars:    db.NewMongoStore[models.CampingCar, int64]("camping_car", database.Collection("camping_cars"), db.MongoSequence(counters, "camping_cars")),
		clients:        db.NewMongoStore[models.Client, string]("client", database.Collection("clients"), nil),
		administrators: db.NewMongoStore[models.Administrator, string]("administrator", database.Collection("administrators"), nil),
		rentals:        db.NewMongoStore[models.Rental, int64]("rental", database.Collection("rentals"), db.MongoSequence(counters, "rentals")),
		close:          client.Disconnect,
	}, nil
}

func gormStores(cfg config.StoreConfig) (*stores, error) {
	conn, err := db.OpenGorm(cfg.Driver, cfg.DatabaseURL, cfg.GormLogLevel())
	if err != nil {
		return nil, err
	}
	err = db.Migrate(conn,
		&models.Car{}, &models.Motorcycle{}, &models.Bicycle{}, &models.UtilityVan{}, &models.CampingCar{},
		&models.Client{}, &models.Administrator{}, &models.Rental{},
	)
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	log.WithField("driver", cfg.Driver).Info("connected to SQL database")

	return &stores{
		cars:           db.NewGormStore[models.Car, int64]("car", conn, "id"),
		motorcycles:    db.NewGormStore[models.Motorcycle, int64]("motorcycle", conn, "id"),
		bicycles:       db.NewGormStore[models.Bicycle, int64]("bicycle", conn, "id"),
		utilityVans:    db.NewGormStore[models.UtilityVan, int64]("utility_van", conn, "id"),
		campingCars:    db.NewGormStore[models.CampingCar, int64]("camping_car", conn, "id"),
		clients:        db.NewGormStore[models.Client, string]("client", conn, "mail"),
		administrators: db.NewGormStore[models.Administrator, string]("administrator", conn, "mail"),
		rentals:        db.NewGormStore[models.Rental, int64]("rental", conn, "id"),
		close:          func(context.Context) error { return sqlDB.Close() },
	}, nil
}
