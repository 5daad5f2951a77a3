package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ukydev/fleet-rental/internal/apperr"
)

// OpenGorm opens a relational database. driver is "postgres" or "mysql".
func OpenGorm(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables of models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// GormStore stores one entity kind in one table. Integer keys left at zero
// are assigned by the database on insert.
type GormStore[T any, K comparable, P interface {
	*T
	Entity[K]
}] struct {
	db   *gorm.DB
	name string
	pk   string
}

// NewGormStore wraps db for the table of T; pk is the primary key column.
func NewGormStore[T any, K comparable, P interface {
	*T
	Entity[K]
}](name string, db *gorm.DB, pk string) *GormStore[T, K, P] {
	return &GormStore[T, K, P]{db: db, name: name, pk: pk}
}

func (s *GormStore[T, K, P]) FindByID(ctx context.Context, id K) (*T, error) {
	var out T
	err := s.db.WithContext(ctx).Where(s.pk+" = ?", id).First(&out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(s.name, id)
		}
		return nil, err
	}
	return &out, nil
}

func (s *GormStore[T, K, P]) FindAll(ctx context.Context) ([]*T, error) {
	out := []*T{}
	if err := s.db.WithContext(ctx).Order(s.pk).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore[T, K, P]) Save(ctx context.Context, entity *T) (*T, error) {
	tx := s.db.WithContext(ctx)
	p := P(entity)
	if isZero(p.Key()) {
		if err := tx.Create(entity).Error; err != nil {
			return nil, err
		}
		return entity, nil
	}

	exists, err := s.ExistsByID(ctx, p.Key())
	if err != nil {
		return nil, err
	}
	if exists {
		err = tx.Save(entity).Error
	} else {
		err = tx.Create(entity).Error
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *GormStore[T, K, P]) ExistsByID(ctx context.Context, id K) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where(s.pk+" = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore[T, K, P]) DeleteByID(ctx context.Context, id K) error {
	result := s.db.WithContext(ctx).Where(s.pk+" = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(s.name, id)
	}
	return nil
}

func (s *GormStore[T, K, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
