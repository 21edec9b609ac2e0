package store

import (
	"context"

	"gorm.io/gorm"
)

// Store defines the database access surface shared by the services. Each
// intake runs inside its own Transaction scope; lookups use DB directly.
type Store interface {
	DB() *gorm.DB
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB returns the underlying GORM handle.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a single database transaction. Any error
// returned by fn rolls back everything written within the scope.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
