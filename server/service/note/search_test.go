package note

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxnote/voxnote/internal/profile"
	"github.com/voxnote/voxnote/store"
)

func newSearchFixture(t *testing.T) (*SearchController, *mockEmbedder, *store.Store) {
	t.Helper()
	embedder := &mockEmbedder{}
	s := store.New(store.NewMockDriver(), &profile.Profile{})
	return NewSearchController(embedder, s), embedder, s
}

func seedNotes(t *testing.T, s *store.Store, notes map[int64]string) {
	t.Helper()
	ctx := context.Background()
	for id, text := range notes {
		require.NoError(t, s.UpsertNote(ctx, &store.Note{
			ID:     id,
			Text:   text,
			Vector: textVector(text),
		}))
	}
}

func TestQueryRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	c, _, s := newSearchFixture(t)
	seedNotes(t, s, map[int64]string{
		1: "buy milk",
		2: "call mom",
	})

	// The query embeds to the same vector as "buy milk", so it must rank
	// first with the higher score.
	results, err := c.Query(ctx, "buy milk")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "buy milk", results[0].Text)
	assert.Equal(t, "call mom", results[1].Text)
	require.NotNil(t, results[0].Score)
	require.NotNil(t, results[1].Score)
	assert.Greater(t, *results[0].Score, *results[1].Score)
}

func TestQueryEmptyListsWithoutScores(t *testing.T) {
	ctx := context.Background()
	c, embedder, s := newSearchFixture(t)
	seedNotes(t, s, map[int64]string{
		1: "buy milk",
		2: "call mom",
	})

	results, err := c.Query(ctx, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Score)
	}
	// Listing mode never embeds.
	assert.Equal(t, 0, embedder.callCount)
}

func TestQueryWhitespaceIsListingMode(t *testing.T) {
	ctx := context.Background()
	c, embedder, s := newSearchFixture(t)
	seedNotes(t, s, map[int64]string{1: "buy milk"})

	results, err := c.Query(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 0, embedder.callCount)
}

func TestQueryCapsAtTenResults(t *testing.T) {
	ctx := context.Background()
	c, _, s := newSearchFixture(t)

	notes := map[int64]string{}
	for i := int64(1); i <= 15; i++ {
		notes[i] = "note"
	}
	seedNotes(t, s, notes)

	listed, err := c.Query(ctx, "")
	require.NoError(t, err)
	assert.Len(t, listed, 10)

	searched, err := c.Query(ctx, "note")
	require.NoError(t, err)
	assert.Len(t, searched, 10)
}

func TestQueryEmptyStoreReturnsEmptyList(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newSearchFixture(t)

	listed, err := c.Query(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, listed)

	searched, err := c.Query(ctx, "anything")
	require.NoError(t, err)
	assert.Empty(t, searched)
}

func TestQueryEmbeddingErrorPropagates(t *testing.T) {
	ctx := context.Background()
	c, embedder, s := newSearchFixture(t)
	seedNotes(t, s, map[int64]string{1: "buy milk"})
	embedder.embedFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	_, err := c.Query(ctx, "milk")
	assert.Error(t, err)
}
