package services

import (
	"context"

	"libretto/internal/core"
)

// Store is the persistence port the engine drives. The SQLite repository
// is the durable implementation; the memory store backs tests.
type Store interface {
	// ListAll returns every record ordered by id descending.
	ListAll(ctx context.Context) ([]core.Record, error)
	// Insert persists a new row and returns the generated id.
	Insert(ctx context.Context, rec core.Record) (int64, error)
	// Update overwrites all mutable fields of the row matching id.
	// Missing ids are a no-op.
	Update(ctx context.Context, id int64, rec core.Record) error
	// Delete removes the row matching id. Missing ids are a no-op.
	Delete(ctx context.Context, id int64) error
}
