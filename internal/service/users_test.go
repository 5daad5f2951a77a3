package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/auth"
	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/models"
)

// MockHasher is a mock implementation of Hasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func adminInput(mail string) models.AdministratorInput {
	return models.AdministratorInput{
		UserBaseInput: models.UserBaseInput{
			Mail:      ptr(mail),
			Password:  ptr("Adm1n@pass"),
			LastName:  ptr("Smith"),
			FirstName: ptr("Ann"),
		},
		JobTitle: ptr("Fleet manager"),
	}
}

func clientInput(mail string, birth time.Time) models.ClientInput {
	return models.ClientInput{
		UserBaseInput: models.UserBaseInput{
			Mail:      ptr(mail),
			Password:  ptr("Cl1ent#pass"),
			LastName:  ptr("Doe"),
			FirstName: ptr("Jane"),
		},
		Address: &models.AddressInput{
			Street:     ptr("1 place Bellecour"),
			PostalCode: ptr("69002"),
			City:       ptr("Lyon"),
		},
		BirthDate: &birth,
		Licenses:  []models.License{models.LicenseB},
	}
}

func newAdminService(h Hasher) (*AdministratorService, db.Store[models.Administrator, string]) {
	store := db.NewMemoryStore[models.Administrator, string]("administrator", nil)
	return NewAdministratorService(store, h, nil), store
}

func TestAdministratorService_AddHashesOnce(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", "Adm1n@pass").Return("hashed", nil)
	svc, _ := newAdminService(h)

	admin, err := svc.Add(context.Background(), adminInput("boss@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "hashed", admin.Password)
	h.AssertNumberOfCalls(t, "HashPassword", 1)
}

func TestAdministratorService_DuplicateMail(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, _ := newAdminService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, adminInput("boss@example.com"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, adminInput("boss@example.com"))
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "mail", apperr.FieldOf(err))
}

func TestAdministratorService_DeleteLastAdministrator(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, store := newAdminService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, adminInput("first@example.com"))
	require.NoError(t, err)

	err = svc.Delete(ctx, "first@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvariant))

	_, err = svc.Add(ctx, adminInput("second@example.com"))
	require.NoError(t, err)
	before, _ := store.Count(ctx)

	require.NoError(t, svc.Delete(ctx, "first@example.com"))
	after, _ := store.Count(ctx)
	assert.Equal(t, before-1, after)

	err = svc.Delete(ctx, "second@example.com")
	assert.True(t, errors.Is(err, apperr.ErrInvariant))
}

func TestAdministratorService_DeleteUnknown(t *testing.T) {
	svc, _ := newAdminService(new(MockHasher))
	err := svc.Delete(context.Background(), "ghost@example.com")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAdministratorService_UpdatePassword(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", "Adm1n@pass").Return("hashed", nil)
	h.On("HashPassword", "N3w@passw").Return("rehashed", nil)
	svc, _ := newAdminService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, adminInput("boss@example.com"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "boss@example.com", models.AdministratorInput{
		UserBaseInput: models.UserBaseInput{Password: ptr("weak")},
	})
	assert.Equal(t, "password", apperr.FieldOf(err))

	admin, err := svc.Update(ctx, "boss@example.com", models.AdministratorInput{
		UserBaseInput: models.UserBaseInput{Password: ptr("N3w@passw")},
		JobTitle:      ptr("Director"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rehashed", admin.Password)
	assert.Equal(t, "Director", admin.JobTitle)
	assert.Equal(t, "Smith", admin.LastName)
}

func TestAdministratorService_EnsureBootstrap(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, _ := newAdminService(h)
	ctx := context.Background()

	created, err := svc.EnsureBootstrap(ctx, adminInput("root@example.com"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureBootstrap(ctx, adminInput("other@example.com"))
	require.NoError(t, err)
	assert.False(t, created)
}

func newClientService(h Hasher) (*ClientService, db.Store[models.Rental, int64]) {
	rentals := db.NewMemoryStore[models.Rental, int64]("rental", db.Counter())
	clients := db.NewMemoryStore[models.Client, string]("client", nil)
	return NewClientService(clients, rentals, h, nil), rentals
}

func TestClientService_AddChecksAge(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", "Cl1ent#pass").Return("hashed", nil)
	svc, _ := newClientService(h)
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Add(ctx, clientInput("kid@example.com", now.AddDate(-10, 0, 0)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Contains(t, err.Error(), "age")
	h.AssertNotCalled(t, "HashPassword", mock.Anything)

	c, err := svc.Add(ctx, clientInput("adult@example.com", now.AddDate(-19, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, "hashed", c.Password)
	assert.Equal(t, now, c.RegistrationDate)
	h.AssertNumberOfCalls(t, "HashPassword", 1)
}

func TestClientService_AttachesRentalHistory(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, rentals := newClientService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)
	_, err = svc.Add(ctx, clientInput("john@example.com", time.Now().AddDate(-40, 0, 0)))
	require.NoError(t, err)

	r, err := rentals.Save(ctx, &models.Rental{ClientMail: "jane@example.com", Amount: 10})
	require.NoError(t, err)

	jane, err := svc.FindByID(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, []int64{r.ID}, jane.Rentals)

	john, err := svc.FindByID(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Empty(t, john.Rentals)

	found, err := svc.Search(ctx, models.ClientCriteria{City: ptr("Lyon"), Mail: ptr("jane")})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []int64{r.ID}, found[0].Rentals)
}

func TestClientService_UpdateAndDelete(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, _ := newClientService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	c, err := svc.Update(ctx, "jane@example.com", models.ClientInput{
		Address: &models.AddressInput{City: ptr("Paris")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Paris", c.Address.City)
	assert.Equal(t, "1 place Bellecour", c.Address.Street)
	h.AssertNumberOfCalls(t, "HashPassword", 1)

	_, err = svc.Update(ctx, "ghost@example.com", models.ClientInput{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, "jane@example.com"))
	_, err = svc.FindByID(ctx, "jane@example.com")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRentalService_ChecksReferences(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	clients, rentalStore := newClientService(h)
	ctx := context.Background()

	cars := db.NewMemoryStore[models.Car, int64]("car", db.Counter())
	car, err := cars.Save(ctx, &models.Car{VehicleBase: models.VehicleBase{Brand: "Fiat"}})
	require.NoError(t, err)
	fleet := NewFleet().Register(models.KindCar, cars)
	svc := NewRentalService(rentalStore, clients, fleet, nil)

	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	in := models.RentalInput{
		ClientMail:  ptr("jane@example.com"),
		VehicleKind: ptr(models.KindCar),
		VehicleID:   ptr(car.ID),
		StartDate:   &start,
		Amount:      ptr(120),
		Status:      ptr(models.RentalPending),
	}

	_, err = svc.Add(ctx, in)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "client is not registered yet")

	_, err = clients.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	r, err := svc.Add(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, r.ID)

	_, err = svc.Update(ctx, r.ID, models.RentalInput{VehicleID: ptr(car.ID + 10)})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	stored, err := svc.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, stored.VehicleID)

	r, err = svc.Update(ctx, r.ID, models.RentalInput{Status: ptr(models.RentalCompleted), Distance: ptr(310)})
	require.NoError(t, err)
	assert.Equal(t, models.RentalCompleted, r.Status)
	assert.Equal(t, 310, r.Distance)
}

func TestAccounts_Login(t *testing.T) {
	tokens, err := auth.NewService("secret", time.Hour)
	require.NoError(t, err)
	admins := NewAdministratorService(db.NewMemoryStore[models.Administrator, string]("administrator", nil), tokens, nil)
	clients := NewClientService(db.NewMemoryStore[models.Client, string]("client", nil), nil, tokens, nil)
	accounts := NewAccounts(admins, clients, tokens)
	ctx := context.Background()

	_, err = admins.Add(ctx, adminInput("boss@example.com"))
	require.NoError(t, err)
	_, err = clients.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	resp, err := accounts.Login(ctx, models.LoginRequest{Mail: "boss@example.com", Password: "Adm1n@pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", claims.Mail)

	resp, err = accounts.Login(ctx, models.LoginRequest{Mail: "jane@example.com", Password: "Cl1ent#pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, resp.Role)

	_, err = accounts.Login(ctx, models.LoginRequest{Mail: "boss@example.com", Password: "wrong"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	_, err = accounts.Login(ctx, models.LoginRequest{Mail: "ghost@example.com", Password: "Adm1n@pass"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	_, err = clients.Update(ctx, "jane@example.com", models.ClientInput{Deactivated: ptr(true)})
	require.NoError(t, err)
	_, err = accounts.Login(ctx, models.LoginRequest{Mail: "jane@example.com", Password: "Cl1ent#pass"})
	assert.Equal(t, auth.ErrUserInactive, err)
}

func TestClientService_UpdateChecksSuppliedFields(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	svc, _ := newClientService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "jane@example.com", models.ClientInput{BirthDate: ptr(time.Now().AddDate(-12, 0, 0))})
	assert.Equal(t, "birth_date", apperr.FieldOf(err))

	_, err = svc.Update(ctx, "jane@example.com", models.ClientInput{Licenses: []models.License{"ZZ"}})
	assert.Equal(t, "licenses", apperr.FieldOf(err))

	stored, err := svc.FindByID(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.License{models.LicenseB}, stored.Licenses)
	assert.True(t, stored.BirthDate.Before(time.Now().AddDate(-29, 0, 0)))
}

func TestAdministratorService_UpdateRejectsBlankNames(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", "Adm1n@pass").Return("hashed", nil)
	svc, _ := newAdminService(h)
	ctx := context.Background()

	_, err := svc.Add(ctx, adminInput("boss@example.com"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "boss@example.com", models.AdministratorInput{JobTitle: ptr(" ")})
	assert.Equal(t, "job_title", apperr.FieldOf(err))

	admin, err := svc.FindByID(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Fleet manager", admin.JobTitle)
}

func TestRentalService_ChecksUpdatesAndAccessories(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	clients, rentalStore := newClientService(h)
	ctx := context.Background()
	_, err := clients.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	bikes := db.NewMemoryStore[models.Bicycle, int64]("bicycle", db.Counter())
	bike, err := bikes.Save(ctx, &models.Bicycle{VehicleBase: models.VehicleBase{Brand: "Giant"}})
	require.NoError(t, err)
	svc := NewRentalService(rentalStore, clients, NewFleet().Register(models.KindBicycle, bikes), nil)

	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	in := models.RentalInput{
		ClientMail:  ptr("jane@example.com"),
		VehicleKind: ptr(models.KindBicycle),
		VehicleID:   ptr(bike.ID),
		Accessory:   ptr(models.AccessorySnowChains),
		StartDate:   &start,
		Amount:      ptr(30),
		Status:      ptr(models.RentalPending),
	}

	_, err = svc.Add(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "accessory", apperr.FieldOf(err))

	in.Accessory = ptr(models.AccessoryLock)
	r, err := svc.Add(ctx, in)
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    models.RentalInput
		field string
	}{
		{"unknown status", models.RentalInput{Status: ptr(models.RentalStatus("bogus"))}, "status"},
		{"unknown accessory", models.RentalInput{Accessory: ptr(models.Accessory("jetpack"))}, "accessory"},
		{"accessory for another kind", models.RentalInput{Accessory: ptr(models.AccessoryHelmet)}, "accessory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, r.ID, tt.in)
			assert.Equal(t, tt.field, apperr.FieldOf(err))
		})
	}

	stored, err := rentalStore.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalPending, stored.Status)
	assert.Equal(t, models.AccessoryLock, stored.Accessory)
}

func TestAccounts_MailIsUniqueAcrossRoles(t *testing.T) {
	h := new(MockHasher)
	h.On("HashPassword", mock.Anything).Return("hashed", nil)
	admins, _ := newAdminService(h)
	clients, _ := newClientService(h)
	NewAccounts(admins, clients, nil)
	ctx := context.Background()

	_, err := admins.Add(ctx, adminInput("shared@example.com"))
	require.NoError(t, err)

	_, err = clients.Add(ctx, clientInput("shared@example.com", time.Now().AddDate(-30, 0, 0)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "mail", apperr.FieldOf(err))

	_, err = clients.Add(ctx, clientInput("jane@example.com", time.Now().AddDate(-30, 0, 0)))
	require.NoError(t, err)

	_, err = admins.Add(ctx, adminInput("jane@example.com"))
	assert.Equal(t, "mail", apperr.FieldOf(err))
	h.AssertNumberOfCalls(t, "HashPassword", 2)
}
