package store

// Note is a persisted voice note. Notes are immutable once stored: there is
// no update or delete path.
type Note struct {
	// ID is assigned as count+1 at commit time and never reused.
	ID int64
	// Text is the final (possibly user-edited) transcription. Never empty.
	Text string
	// Vector is the embedding of exactly Text, computed in the same commit
	// that persisted it.
	Vector []float32
	// CreatedTs is the commit timestamp in unix seconds.
	CreatedTs int64
}

// NoteWithScore is a similarity search result.
type NoteWithScore struct {
	Note *Note
	// Score is the cosine similarity to the query vector; higher is more
	// similar.
	Score float32
}
