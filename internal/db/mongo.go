package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-rental/internal/apperr"
)

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoStore stores one entity kind in one collection, keyed by _id.
type MongoStore[T any, K comparable, P interface {
	*T
	Entity[K]
}] struct {
	Collection *mongo.Collection
	name       string
	next       Sequence[K]
}

// NewMongoStore wraps coll. next may be nil when keys are always supplied.
func NewMongoStore[T any, K comparable, P interface {
	*T
	Entity[K]
}](name string, coll *mongo.Collection, next Sequence[K]) *MongoStore[T, K, P] {
	return &MongoStore[T, K, P]{Collection: coll, name: name, next: next}
}

func (s *MongoStore[T, K, P]) check() error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	return nil
}

// FindByID finds an entity by its key.
func (s *MongoStore[T, K, P]) FindByID(ctx context.Context, id K) (*T, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var out T
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(s.name, id)
		}
		return nil, err
	}
	return &out, nil
}

// FindAll returns every entity ordered by key.
func (s *MongoStore[T, K, P]) FindAll(ctx context.Context) ([]*T, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	cursor, err := s.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts or replaces an entity, drawing a key from the sequence when
// the entity has none.
func (s *MongoStore[T, K, P]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	p := P(entity)
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
	_, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": p.Key()}, entity, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *MongoStore[T, K, P]) ExistsByID(ctx context.Context, id K) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	n, err := s.Collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByID deletes an entity by its key.
func (s *MongoStore[T, K, P]) DeleteByID(ctx context.Context, id K) error {
	if err := s.check(); err != nil {
		return err
	}
	result, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound(s.name, id)
	}
	return nil
}

func (s *MongoStore[T, K, P]) Count(ctx context.Context) (int64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.Collection.CountDocuments(ctx, bson.M{})
}

// MongoSequence draws int64 keys from a counters collection, one document
// per sequence name.
func MongoSequence(counters *mongo.Collection, name string) Sequence[int64] {
	return func(ctx context.Context) (int64, error) {
		var doc struct {
			Value int64 `bson:"value"`
		}
		err := counters.FindOneAndUpdate(ctx,
			bson.M{"_id": name},
			bson.M{"$inc": bson.M{"value": int64(1)}},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&doc)
		if err != nil {
			return 0, err
		}
		return doc.Value, nil
	}
}
