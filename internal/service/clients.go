package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/models"
)

// Hasher turns a plaintext password into the stored hash.
type Hasher interface {
	HashPassword(password string) (string, error)
}

const clientEntity = "client"

// ClientService manages customers. Reads attach the ids of the client's
// rentals.
type ClientService struct {
	store   db.Store[models.Client, string]
	rentals db.Store[models.Rental, int64]
	hasher  Hasher
	events  events.Publisher
	now     func() time.Time
	// others holds the stores that share the client mail space.
	others []Lookup[string]
}

func NewClientService(store db.Store[models.Client, string], rentals db.Store[models.Rental, int64], hasher Hasher, pub events.Publisher) *ClientService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &ClientService{store: store, rentals: rentals, hasher: hasher, events: pub, now: time.Now}
}

func (s *ClientService) Name() string { return clientEntity }

// Add validates and stores a new client, hashing the password once.
func (s *ClientService) Add(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	now := s.now()
	if err := in.ValidateAt(now); err != nil {
		return nil, err
	}
	client := in.Build(now)
	if err := checkMailFree(ctx, client.Mail, append([]Lookup[string]{s.store}, s.others...)...); err != nil {
		return nil, err
	}
	hash, err := s.hasher.HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}
	client.Password = hash
	return s.write(ctx, client, events.Created)
}

func (s *ClientService) FindByID(ctx context.Context, mail string) (*models.Client, error) {
	client, err := s.store.FindByID(ctx, mail)
	if err != nil {
		return nil, err
	}
	if err := s.attachRentals(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) FindAll(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachRentals(ctx, clients...); err != nil {
		return nil, err
	}
	return clients, nil
}

// Update merges the meaningful fields of in. A supplied password must be
// strong and is re-hashed.
func (s *ClientService) Update(ctx context.Context, mail string, in models.ClientInput) (*models.Client, error) {
	client, err := s.store.FindByID(ctx, mail)
	if err != nil {
		return nil, err
	}
	if err := in.ValidatePatch(client); err != nil {
		return nil, err
	}
	client.Merge(in)
	if in.Password != nil {
		hash, err := s.hasher.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		client.Password = hash
	}
	saved, err := s.write(ctx, client, events.Updated)
	if err != nil {
		return nil, err
	}
	if err := s.attachRentals(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *ClientService) Delete(ctx context.Context, mail string) error {
	if err := s.store.DeleteByID(ctx, mail); err != nil {
		return err
	}
	publish(ctx, s.events, s.now(), clientEntity, events.Deleted, mail, nil)
	return nil
}

func (s *ClientService) Search(ctx context.Context, c models.ClientCriteria) ([]*models.Client, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return Narrow(clientEntity, all, c)
}

// ExistsByID lets rentals resolve their client reference.
func (s *ClientService) ExistsByID(ctx context.Context, mail string) (bool, error) {
	return s.store.ExistsByID(ctx, mail)
}

func (s *ClientService) write(ctx context.Context, client *models.Client, kind events.Type) (*models.Client, error) {
	client.Touch(s.now())
	saved, err := s.store.Save(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", clientEntity, err)
	}
	publish(ctx, s.events, s.now(), clientEntity, kind, saved.Mail, saved)
	return saved, nil
}

func (s *ClientService) attachRentals(ctx context.Context, clients ...*models.Client) error {
	if s.rentals == nil || len(clients) == 0 {
		return nil
	}
	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load rentals: %w", err)
	}
	byMail := make(map[string][]int64)
	for _, r := range rentals {
		byMail[r.ClientMail] = append(byMail[r.ClientMail], r.ID)
	}
	for _, c := range clients {
		c.Rentals = byMail[c.Mail]
		if c.Rentals == nil {
			c.Rentals = []int64{}
		}
	}
	return nil
}
