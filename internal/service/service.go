// Package service orchestrates validation, storage, partial updates and
// criteria search for every entity kind.
package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/db"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/filter"
)

// Criteria is implemented by the search records of every entity kind.
type Criteria[T any] interface {
	Criteria() []filter.Criterion[T]
}

type toucher interface {
	Touch(now time.Time)
}

// Definition describes how one entity kind is validated, built and merged.
type Definition[T any, I any] struct {
	Name     string
	Validate func(I) error
	Build    func(I) *T
	Merge    func(*T, I)
	// ValidatePatch checks the supplied fields of a partial update before
	// they are merged.
	ValidatePatch func(I) error
	// Check runs on the entity about to be written, after build or merge.
	Check func(ctx context.Context, entity *T) error
}

// Service is the generic create/read/update/delete/search orchestrator.
type Service[T any, K comparable, I any, C Criteria[*T]] struct {
	def    Definition[T, I]
	store  db.Store[T, K]
	events events.Publisher
	now    func() time.Time
}

// New creates a service for def backed by store.
func New[T any, K comparable, I any, C Criteria[*T]](def Definition[T, I], store db.Store[T, K], pub events.Publisher) *Service[T, K, I, C] {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service[T, K, I, C]{def: def, store: store, events: pub, now: time.Now}
}

// Name returns the entity name used in errors and events.
func (s *Service[T, K, I, C]) Name() string { return s.def.Name }

// Add validates in, builds the entity and stores it.
func (s *Service[T, K, I, C]) Add(ctx context.Context, in I) (*T, error) {
	if err := s.def.Validate(in); err != nil {
		return nil, err
	}
	entity := s.def.Build(in)
	if s.def.Check != nil {
		if err := s.def.Check(ctx, entity); err != nil {
			return nil, err
		}
	}
	return s.write(ctx, entity, events.Created)
}

// FindByID returns the entity stored under id.
func (s *Service[T, K, I, C]) FindByID(ctx context.Context, id K) (*T, error) {
	return s.store.FindByID(ctx, id)
}

// FindAll returns every stored entity.
func (s *Service[T, K, I, C]) FindAll(ctx context.Context) ([]*T, error) {
	return s.store.FindAll(ctx)
}

// Update merges the meaningful fields of in into the entity stored under id.
// Supplied fields are checked first; absent ones are not required.
func (s *Service[T, K, I, C]) Update(ctx context.Context, id K, in I) (*T, error) {
	entity, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.def.ValidatePatch != nil {
		if err := s.def.ValidatePatch(in); err != nil {
			return nil, err
		}
	}
	s.def.Merge(entity, in)
	if s.def.Check != nil {
		if err := s.def.Check(ctx, entity); err != nil {
			return nil, err
		}
	}
	return s.write(ctx, entity, events.Updated)
}

// Delete removes the entity stored under id.
func (s *Service[T, K, I, C]) Delete(ctx context.Context, id K) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Deleted, id, nil)
	return nil
}

// Search narrows the full list with the active criteria of c. An empty
// result is reported as a no-match error.
func (s *Service[T, K, I, C]) Search(ctx context.Context, c C) ([]*T, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return Narrow(s.def.Name, all, c)
}

// Narrow applies the criteria of c to items.
func Narrow[T any](entity string, items []T, c Criteria[T]) ([]T, error) {
	criteria := c.Criteria()
	log.WithFields(log.Fields{
		"entity":     entity,
		"candidates": len(items),
		"criteria":   filter.ActiveNames(criteria),
	}).Debug("search")
	return filter.Apply(entity, items, criteria...)
}

func (s *Service[T, K, I, C]) write(ctx context.Context, entity *T, kind events.Type) (*T, error) {
	if t, ok := any(entity).(toucher); ok {
		t.Touch(s.now())
	}
	saved, err := s.store.Save(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.def.Name, err)
	}
	var key any
	if e, ok := any(saved).(db.Entity[K]); ok {
		key = e.Key()
	}
	s.publish(ctx, kind, key, saved)
	return saved, nil
}

func (s *Service[T, K, I, C]) publish(ctx context.Context, kind events.Type, key any, data any) {
	publish(ctx, s.events, s.now(), s.def.Name, kind, key, data)
}

// publish sends an event and only logs delivery failures.
func publish(ctx context.Context, pub events.Publisher, at time.Time, entity string, kind events.Type, key any, data any) {
	err := pub.Publish(ctx, events.Event{Entity: entity, Type: kind, Key: key, At: at, Data: data})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"entity": entity, "event": kind}).Warn("failed to publish event")
	}
}
