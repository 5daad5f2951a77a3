package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/apperr"
	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/models"
)

const administratorEntity = "administrator"

// AdministratorService manages administrators. At least one administrator
// always remains stored.
type AdministratorService struct {
	store  db.Store[models.Administrator, string]
	hasher Hasher
	events events.Publisher
	now    func() time.Time
	others []Lookup[string]
}

func NewAdministratorService(store db.Store[models.Administrator, string], hasher Hasher, pub events.Publisher) *AdministratorService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &AdministratorService{store: store, hasher: hasher, events: pub, now: time.Now}
}

func (s *AdministratorService) Name() string { return administratorEntity }

// Add validates and stores a new administrator, hashing the password once.
func (s *AdministratorService) Add(ctx context.Context, in models.AdministratorInput) (*models.Administrator, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	admin := in.Build()
	if err := checkMailFree(ctx, admin.Mail, append([]Lookup[string]{s.store}, s.others...)...); err != nil {
		return nil, err
	}
	hash, err := s.hasher.HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}
	admin.Password = hash
	return s.write(ctx, admin, events.Created)
}

func (s *AdministratorService) FindByID(ctx context.Context, mail string) (*models.Administrator, error) {
	return s.store.FindByID(ctx, mail)
}

func (s *AdministratorService) FindAll(ctx context.Context) ([]*models.Administrator, error) {
	return s.store.FindAll(ctx)
}

func (s *AdministratorService) Update(ctx context.Context, mail string, in models.AdministratorInput) (*models.Administrator, error) {
	admin, err := s.store.FindByID(ctx, mail)
	if err != nil {
		return nil, err
	}
	if err := in.ValidatePatch(); err != nil {
		return nil, err
	}
	admin.Merge(in)
	if in.Password != nil {
		hash, err := s.hasher.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		admin.Password = hash
	}
	return s.write(ctx, admin, events.Updated)
}

// Delete removes an administrator unless it is the last one stored.
func (s *AdministratorService) Delete(ctx context.Context, mail string) error {
	found, err := s.store.ExistsByID(ctx, mail)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound(administratorEntity, mail)
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return apperr.Invariant("cannot delete %s: at least one administrator must remain", mail)
	}
	if err := s.store.DeleteByID(ctx, mail); err != nil {
		return err
	}
	publish(ctx, s.events, s.now(), administratorEntity, events.Deleted, mail, nil)
	return nil
}

func (s *AdministratorService) Search(ctx context.Context, c models.AdministratorCriteria) ([]*models.Administrator, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return Narrow(administratorEntity, all, c)
}

// EnsureBootstrap creates the first administrator from in when none is
// stored yet. It reports whether one was created.
func (s *AdministratorService) EnsureBootstrap(ctx context.Context, in models.AdministratorInput) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	admin, err := s.Add(ctx, in)
	if err != nil {
		return false, fmt.Errorf("bootstrap administrator: %w", err)
	}
	log.WithField("mail", admin.Mail).Info("created bootstrap administrator")
	return true, nil
}

func (s *AdministratorService) write(ctx context.Context, admin *models.Administrator, kind events.Type) (*models.Administrator, error) {
	admin.Touch(s.now())
	saved, err := s.store.Save(ctx, admin)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", administratorEntity, err)
	}
	publish(ctx, s.events, s.now(), administratorEntity, kind, saved.Mail, saved)
	return saved, nil
}
