package sqlite

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/voxnote/voxnote/store"
)

// EnsureCollection creates the note table if it does not exist. The embedding
// dimension is not enforced by SQLite; vectors are stored as JSON text.
func (d *DB) EnsureCollection(ctx context.Context, _ int) error {
	var exists bool
	err := d.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'note')",
	).Scan(&exists)
	if err != nil {
		return errors.Wrap(err, "failed to check if note table exists")
	}
	if exists {
		return nil
	}

	stmt := `
		CREATE TABLE IF NOT EXISTS note (
			id INTEGER PRIMARY KEY,
			content TEXT NOT NULL,
			embedding TEXT NOT NULL,
			created_ts INTEGER NOT NULL
		)
	`
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

func (d *DB) UpsertNote(ctx context.Context, note *store.Note) error {
	embedding, err := json.Marshal(note.Vector)
	if err != nil {
		return errors.Wrap(err, "failed to marshal embedding")
	}

	stmt := `
		INSERT INTO note (id, content, embedding, created_ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			created_ts = EXCLUDED.created_ts
	`
	if _, err := d.db.ExecContext(ctx, stmt, note.ID, note.Text, string(embedding), note.CreatedTs); err != nil {
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
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// SearchNotes loads all notes and ranks them by cosine similarity in process.
// SQLite has no vector index, so this is a full scan.
func (d *DB) SearchNotes(ctx context.Context, vector []float32, limit int) ([]*store.NoteWithScore, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.QueryContext(ctx, "SELECT id, content, embedding, created_ts FROM note")
	if err != nil {
		return nil, errors.Wrap(err, "failed to query notes")
	}
	defer rows.Close()

	results := []*store.NoteWithScore{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, &store.NoteWithScore{
			Note:  note,
			Score: store.CosineSimilarity(vector, note.Vector),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scanNote(rows interface {
	Scan(dest ...any) error
}) (*store.Note, error) {
	var note store.Note
	var embedding string
	if err := rows.Scan(&note.ID, &note.Text, &embedding, &note.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to scan note")
	}
	if err := json.Unmarshal([]byte(embedding), &note.Vector); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal embedding")
	}
	return &note, nil
}
