package store

import (
	"context"

	apperr "github.com/voxnote/voxnote/internal/errors"
	"github.com/voxnote/voxnote/internal/profile"
)

// Store provides access to the note vector store. Driver failures surface as
// STORE-coded errors; nothing is retried here, the interaction that hit the
// failure reports it to the user.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	if err := s.driver.EnsureCollection(ctx, dimension); err != nil {
		return apperr.Store("failed to ensure collection", err)
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context) (int64, error) {
	count, err := s.driver.CountNotes(ctx)
	if err != nil {
		return 0, apperr.Store("failed to count notes", err)
	}
	return count, nil
}

// NextID returns the ID the next committed note should receive, defined as
// count+1. This read-then-write scheme is not race-free: two concurrent
// commits can observe the same count and overwrite each other. The
// application serializes all commits through one interactive session, which
// is the documented constraint for using this store.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	count, err := s.CountNotes(ctx)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

func (s *Store) UpsertNote(ctx context.Context, note *Note) error {
	if err := s.driver.UpsertNote(ctx, note); err != nil {
		return apperr.Store("failed to upsert note", err)
	}
	return nil
}

func (s *Store) ListNotes(ctx context.Context, limit int) ([]*Note, error) {
	notes, err := s.driver.ListNotes(ctx, limit)
	if err != nil {
		return nil, apperr.Store("failed to list notes", err)
	}
	return notes, nil
}

func (s *Store) SearchNotes(ctx context.Context, vector []float32, limit int) ([]*NoteWithScore, error) {
	results, err := s.driver.SearchNotes(ctx, vector, limit)
	if err != nil {
		return nil, apperr.Store("failed to search notes", err)
	}
	return results, nil
}
