package store

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"sync"
)

// MockDriver is an in-memory Driver implementation for testing.
type MockDriver struct {
	mu        sync.RWMutex
	dimension int
	notes     map[int64]*Note
	order     []int64
}

// NewMockDriver creates an empty in-memory driver.
func NewMockDriver() *MockDriver {
	return &MockDriver{
		notes: make(map[int64]*Note),
	}
}

func (m *MockDriver) GetDB() *sql.DB {
	return nil
}

func (m *MockDriver) Close() error {
	return nil
}

func (m *MockDriver) EnsureCollection(_ context.Context, dimension int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dimension == 0 {
		m.dimension = dimension
	}
	return nil
}

func (m *MockDriver) CountNotes(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.notes)), nil
}

func (m *MockDriver) UpsertNote(_ context.Context, note *Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		m.order = append(m.order, note.ID)
	}
	copied := *note
	copied.Vector = append([]float32(nil), note.Vector...)
	m.notes[note.ID] = &copied
	return nil
}

func (m *MockDriver) ListNotes(_ context.Context, limit int) ([]*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*Note{}
	// Insertion order, newest first.
	for i := len(m.order) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.notes[m.order[i]])
	}
	return result, nil
}

func (m *MockDriver) SearchNotes(_ context.Context, vector []float32, limit int) ([]*NoteWithScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := []*NoteWithScore{}
	for _, id := range m.order {
		note := m.notes[id]
		results = append(results, &NoteWithScore{
			Note:  note,
			Score: CosineSimilarity(vector, note.Vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CosineSimilarity computes cosine similarity between two vectors.
// Returns 0 for mismatched dimensions or zero vectors.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
