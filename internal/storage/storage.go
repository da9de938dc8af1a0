// Package storage defines the contract between the HTTP layer and the
// database.
//
// Handlers depend only on Repository, so tests can hand them a fake and
// the binaries can choose MySQL, PostgreSQL or SQLite at start-up without
// any handler change.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) when no row matches the given id.
// Check it with errors.Is.
var ErrNotFound = errors.New("record not found")

// Repository is the CRUD contract for one resource. T is the stored
// record, In the validated input carrying the mutable fields.
//
// Every method runs exactly one SQL statement.
type Repository[T any, In any] interface {
	// List returns every row in storage order. Never nil.
	List(ctx context.Context) ([]T, error)

	// Get returns the row with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (T, error)

	// Create inserts a row and returns it with the generated id.
	Create(ctx context.Context, in In) (T, error)

	// Update replaces all mutable fields of the row with the given id.
	// It does not create missing rows: zero rows affected is ErrNotFound.
	// The returned record is built from in, not re-read from storage.
	Update(ctx context.Context, id int64, in In) (T, error)

	// Delete removes the row with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
