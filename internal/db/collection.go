package db

import (
	"context"
	"sync/atomic"
)

// Entity is a stored record addressed by a key of type K.
type Entity[K comparable] interface {
	Key() K
	SetKey(K)
}

// Store defines the key-based CRUD operations the services rely on.
// FindByID and DeleteByID report a missing key as an apperr not-found error.
type Store[T any, K comparable] interface {
	FindByID(ctx context.Context, id K) (*T, error)
	FindAll(ctx context.Context) ([]*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	ExistsByID(ctx context.Context, id K) (bool, error)
	DeleteByID(ctx context.Context, id K) error
	Count(ctx context.Context) (int64, error)
}

// Sequence hands out keys for entities saved without one.
type Sequence[K comparable] func(ctx context.Context) (K, error)

// Counter returns an in-process int64 sequence starting at 1.
func Counter() Sequence[int64] {
	var n atomic.Int64
	return func(context.Context) (int64, error) {
		return n.Add(1), nil
	}
}

func isZero[K comparable](k K) bool {
	var zero K
	return k == zero
}
