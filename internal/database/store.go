package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/mediateca/internal/catalog"
)

// RecordValidator checks a candidate record before it is written.
type RecordValidator interface {
	Validate(ctx context.Context, kind catalog.Kind, record any) error
}

// Store is the create/list access path for one entity kind.
type Store[T any] struct {
	db        *gorm.DB
	kind      catalog.Kind
	registry  *catalog.Registry
	validator RecordValidator
	preloads  []preload
}

type preload struct {
	name  string
	scope func(*gorm.DB) *gorm.DB
}

// NewStore creates a store for kind. validator may be nil, in which case
// records go straight to the database constraints.
func NewStore[T any](db *gorm.DB, kind catalog.Kind, registry *catalog.Registry, validator RecordValidator, preloads ...string) *Store[T] {
	s := &Store[T]{
		db:        db,
		kind:      kind,
		registry:  registry,
		validator: validator,
	}
	for _, name := range preloads {
		s.preloads = append(s.preloads, preload{name: name})
	}
	return s
}

func (s *Store[T]) Kind() catalog.Kind {
	return s.kind
}

// Create validates record and inserts it, filling in its ID. Associated
// structs are never upserted; only foreign key columns are written.
func (s *Store[T]) Create(ctx context.Context, record *T) error {
	if err := s.validate(ctx, record); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return s.wrap("create", err)
	}
	return nil
}

// List returns every row in registry order. Each call reads current state.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.query(ctx).Order(s.registry.OrderClause(s.kind)).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	err := s.query(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %d: %w", s.kind, id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", s.kind, id, err)
	}
	return &out, nil
}

func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", s.kind, err)
	}
	return n, nil
}

// Delete removes a row by id. Join records referencing it are removed by
// the store's cascade rules; restricted references fail as integrity errors.
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return s.wrap("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", s.kind, id, catalog.ErrNotFound)
	}
	return nil
}

func (s *Store[T]) validate(ctx context.Context, record *T) error {
	if s.validator == nil {
		return nil
	}
	return s.validator.Validate(ctx, s.kind, record)
}

func (s *Store[T]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		if p.scope != nil {
			q = q.Preload(p.name, p.scope)
			continue
		}
		q = q.Preload(p.name)
	}
	return q
}

// wrap returns integrity errors as-is and adds context to everything else.
func (s *Store[T]) wrap(op string, err error) error {
	err = translateError(s.kind, err)
	var integrity *catalog.IntegrityError
	if errors.As(err, &integrity) {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, s.kind, err)
}
