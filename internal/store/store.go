package store

import (
	"context"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Store defines the interface for event storage
type Store interface {
	UpsertEvents(ctx context.Context, events []models.Event) error
	QueryEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	Health(ctx context.Context) error
}

// Database interface for dependency injection
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (interface{}, error)
	QueryRow(ctx context.Context, sql string, args ...any) interface{}
	Health(ctx context.Context) error
	IsConfigured() bool
}

// New creates a store backed by the database when one is configured,
// falling back to in-memory storage otherwise.
func New(db Database) Store {
	if db.IsConfigured() {
		return NewPostgresStore(db)
	}
	return NewInMemoryStore()
}
