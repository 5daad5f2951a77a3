package db

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/models"
	"gorm.io/gorm/logger"
)

func TestOpenGorm_UnsupportedDriver(t *testing.T) {
	db, err := OpenGorm("oracle", "dsn", logger.Silent)
	assert.Error(t, err)
	assert.Nil(t, db)
}

// Integration test (requires running PostgreSQL)
func TestGormStore_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	gdb, err := OpenGorm("postgres", dsn, logger.Silent)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	_ = gdb.Migrator().DropTable(&models.Motorcycle{}, &models.Administrator{})
	require.NoError(t, Migrate(gdb, &models.Motorcycle{}, &models.Administrator{}))

	ctx := context.Background()
	bikes := NewGormStore[models.Motorcycle, int64]("motorcycle", gdb, "id")

	m, err := bikes.Save(ctx, &models.Motorcycle{
		VehicleBase: models.VehicleBase{Brand: "Yamaha", Model: "MT-07", DailyRate: 60},
		Power:       73,
		Licenses:    []models.License{models.LicenseA2},
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)

	m.Power = 75
	_, err = bikes.Save(ctx, m)
	require.NoError(t, err)

	got, err := bikes.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, got.Power)
	assert.Equal(t, []models.License{models.LicenseA2}, got.Licenses)

	require.NoError(t, bikes.DeleteByID(ctx, m.ID))
	_, err = bikes.FindByID(ctx, m.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	admins := NewGormStore[models.Administrator, string]("administrator", gdb, "mail")
	_, err = admins.Save(ctx, &models.Administrator{UserBase: models.UserBase{Mail: "boss@example.com", Password: "hash"}})
	require.NoError(t, err)
	n, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
