package note

import (
	"context"
	"strings"

	"github.com/voxnote/voxnote/store"
)

// resultLimit caps both listing and similarity search at the first page.
const resultLimit = 10

// Result is a note prepared for display. Score is nil in listing mode and the
// cosine similarity in search mode.
type Result struct {
	ID    int64
	Text  string
	Score *float32
}

// SearchController resolves a free-text query (or none) to a result list:
// a recency listing when the query is empty, a similarity ranking otherwise.
type SearchController struct {
	embedder Embedder
	store    *store.Store
}

// NewSearchController creates a search controller.
func NewSearchController(embedder Embedder, s *store.Store) *SearchController {
	return &SearchController{
		embedder: embedder,
		store:    s,
	}
}

// Query returns up to 10 results. An empty query lists notes in store order
// without scores; a non-empty query embeds it and returns notes ranked
// descending by similarity. An empty store yields an empty list, not an
// error.
func (c *SearchController) Query(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		notes, err := c.store.ListNotes(ctx, resultLimit)
		if err != nil {
			return nil, err
		}

		results := []Result{}
		for _, note := range notes {
			results = append(results, Result{
				ID:   note.ID,
				Text: note.Text,
			})
		}
		return results, nil
	}

	vector, err := c.embedder.Embedding(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := c.store.SearchNotes(ctx, vector, resultLimit)
	if err != nil {
		return nil, err
	}

	results := []Result{}
	for _, s := range scored {
		score := s.Score
		results = append(results, Result{
			ID:    s.Note.ID,
			Text:  s.Note.Text,
			Score: &score,
		})
	}
	return results, nil
}
