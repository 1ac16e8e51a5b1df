// internal/domain/record/source.go

package record

import (
	"context"
)

// Source provides the full, unfiltered dataset
type Source interface {
	// FindAll returns every record of the collection in insertion order
	FindAll(ctx context.Context) ([]Record, error)
}

// Store is a writable records collection
type Store interface {
	Source

	// InsertMany appends records to the collection and returns how many were written
	InsertMany(ctx context.Context, records []Record) (int, error)

	// Migrate creates the collection if it does not exist
	Migrate(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
