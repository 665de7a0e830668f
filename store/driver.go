package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a vector store backend should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// EnsureCollection creates the note collection for the given embedding
	// dimension if it does not exist yet. It checks existence first and is a
	// no-op when the collection is already present; repeated calls never
	// error.
	EnsureCollection(ctx context.Context, dimension int) error

	// CountNotes returns the number of stored notes.
	CountNotes(ctx context.Context) (int64, error)

	// UpsertNote inserts or replaces the note at note.ID.
	UpsertNote(ctx context.Context, note *Note) error

	// ListNotes returns up to limit notes in store order, without scores.
	ListNotes(ctx context.Context, limit int) ([]*Note, error)

	// SearchNotes returns up to limit notes ranked descending by cosine
	// similarity to the query vector, each annotated with its score.
	SearchNotes(ctx context.Context, vector []float32, limit int) ([]*NoteWithScore, error)
}
