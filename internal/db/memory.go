package db

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ukydev/fleet-rental/internal/apperr"
)

// MemoryStore keeps entities in process memory. Reads and writes copy the
// entity so callers never share state with the store.
type MemoryStore[T any, K comparable, P interface {
	*T
	Entity[K]
}] struct {
	name  string
	next  Sequence[K]
	mu    sync.RWMutex
	items map[K]T
	order []K
}

// NewMemoryStore creates an empty store. next may be nil when keys are
// always supplied by the caller.
func NewMemoryStore[T any, K comparable, P interface {
	*T
	Entity[K]
}](name string, next Sequence[K]) *MemoryStore[T, K, P] {
	return &MemoryStore[T, K, P]{
		name:  name,
		next:  next,
		items: make(map[K]T),
	}
}

func (s *MemoryStore[T, K, P]) FindByID(_ context.Context, id K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound(s.name, id)
	}
	return &v, nil
}

func (s *MemoryStore[T, K, P]) FindAll(context.Context) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.order))
	for _, k := range s.order {
		v := s.items[k]
		out = append(out, &v)
	}
	return out, nil
}

func (s *MemoryStore[T, K, P]) Save(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, fmt.Errorf("%s: nil entity", s.name)
	}
	v := *entity
	p := P(&v)
	if isZero(p.Key()) {
		if s.next == nil {
			return nil, fmt.Errorf("%s: missing key", s.name)
		}
		k, err := s.next(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: next key: %w", s.name, err)
		}
		p.SetKey(k)
	}

	s.mu.Lock()
	if _, ok := s.items[p.Key()]; !ok {
		s.order = append(s.order, p.Key())
	}
	s.items[p.Key()] = v
	s.mu.Unlock()

	out := v
	return &out, nil
}

func (s *MemoryStore[T, K, P]) ExistsByID(_ context.Context, id K) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

func (s *MemoryStore[T, K, P]) DeleteByID(_ context.Context, id K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return apperr.NotFound(s.name, id)
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(k K) bool { return k == id })
	return nil
}

func (s *MemoryStore[T, K, P]) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}
