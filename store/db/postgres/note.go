package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/voxnote/voxnote/store"
)

// EnsureCollection creates the note table for the given embedding dimension
// if it does not exist. Existence is checked first so repeated calls are
// no-ops.
func (d *DB) EnsureCollection(ctx context.Context, dimension int) error {
	var exists bool
	err := d.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_catalog = current_database() AND table_name = 'note' AND table_type = 'BASE TABLE')",
	).Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "failed to check if note table exists")
	}
	if exists {
		return nil
	}

	if _, err := d.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return errors.Wrap(err, "failed to enable pgvector extension")
	}

	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS note (
			id BIGINT PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_ts BIGINT NOT NULL
		)
	`, dimension)
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to create note table")
	}

	return nil
}

func (d *DB) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM note").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count notes")
	}
	return count, nil
}

// UpsertNote inserts or replaces the note at note.ID.
func (d *DB) UpsertNote(ctx context.Context, note *store.Note) error {
	stmt := `
		INSERT INTO note (id, content, embedding, created_ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			created_ts = EXCLUDED.created_ts
	`

	vector := pgvector.NewVector(note.Vector)
	if _, err := d.db.ExecContext(ctx, stmt, note.ID, note.Text, vector, note.CreatedTs); err != nil {
		return errors.Wrap(err, "failed to upsert note")
	}
	return nil
}

// ListNotes returns up to limit notes, newest first, without scores.
func (d *DB) ListNotes(ctx context.Context, limit int) ([]*store.Note, error) {
	query := `
		SELECT id, content, embedding, created_ts
		FROM note
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	list := []*store.Note{}
	for rows.Next() {
		var note store.Note
		var vector pgvector.Vector
		if err := rows.Scan(&note.ID, &note.Text, &vector, &note.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan note")
		}
		note.Vector = vector.Slice()
		list = append(list, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// SearchNotes performs vector similarity search using pgvector.
// The <=> operator computes cosine distance (1 - cosine_similarity), so
// ordering by distance ASC yields the most similar notes first.
func (d *DB) SearchNotes(ctx context.Context, vector []float32, limit int) ([]*store.NoteWithScore, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT
			id, content, embedding, created_ts,
			1 - (embedding <=> $1) AS score
		FROM note
		ORDER BY embedding <=> $2
		LIMIT $3
	`

	queryVector := pgvector.NewVector(vector)
	rows, err := d.db.QueryContext(ctx, query, queryVector, queryVector, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to vector search")
	}
	defer rows.Close()

	results := []*store.NoteWithScore{}
	for rows.Next() {
		var note store.Note
		var noteVector pgvector.Vector
		var score float64
		if err := rows.Scan(&note.ID, &note.Text, &noteVector, &note.CreatedTs, &score); err != nil {
			return nil, errors.Wrap(err, "failed to scan search result")
		}
		note.Vector = noteVector.Slice()
		results = append(results, &store.NoteWithScore{
			Note:  &note,
			Score: float32(score),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
