package note

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxnote/voxnote/internal/profile"
	"github.com/voxnote/voxnote/store"
)

// mockTranscriber is a mock speech-to-text gateway for testing.
type mockTranscriber struct {
	transcribeFunc func(ctx context.Context, audio []byte) (string, error)
	callCount      int
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	m.callCount++
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio)
	}
	return fmt.Sprintf("transcript of %d bytes", len(audio)), nil
}

// mockEmbedder is a mock embedding gateway producing a deterministic vector
// per input text.
type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
	callCount int
}

func (m *mockEmbedder) Embedding(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text)
	}
	return textVector(text), nil
}

// textVector derives a small deterministic vector from text so tests can
// verify that stored vectors match the committed text exactly.
func textVector(text string) []float32 {
	v := make([]float32, 4)
	for i, r := range text {
		v[i%4] += float32(r) / 1000
	}
	return v
}

func newTestController(t *testing.T) (*CaptureController, *mockTranscriber, *mockEmbedder, *store.Store) {
	t.Helper()
	transcriber := &mockTranscriber{}
	embedder := &mockEmbedder{}
	s := store.New(store.NewMockDriver(), &profile.Profile{})
	return NewCaptureController(transcriber, embedder, s), transcriber, embedder, s
}

func TestNewAudioSameBytesIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _, _, _ := newTestController(t)

	audio := []byte("some audio bytes")
	sess := c.NewAudio(CaptureSession{}, audio)

	sess, err := c.Transcribe(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, sess.TranscribedText)

	// Re-delivering the same bytes must not touch the transcription.
	again := c.NewAudio(sess, audio)
	assert.Equal(t, sess.TranscribedText, again.TranscribedText)
	assert.Equal(t, sess.EditedText, again.EditedText)
	assert.Equal(t, sess.AudioFingerprint, again.AudioFingerprint)
}

func TestNewAudioChangeResetsTranscript(t *testing.T) {
	ctx := context.Background()
	c, _, _, _ := newTestController(t)

	sess := c.NewAudio(CaptureSession{}, []byte("first recording"))
	sess, err := c.Transcribe(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, sess.TranscribedText)

	sess = c.NewAudio(sess, []byte("second recording"))
	assert.Empty(t, sess.TranscribedText)
	assert.Empty(t, sess.EditedText)
	assert.Equal(t, []byte("second recording"), sess.AudioBytes)
}

func TestTranscribeRequiresAudio(t *testing.T) {
	ctx := context.Background()
	c, transcriber, _, _ := newTestController(t)

	_, err := c.Transcribe(ctx, CaptureSession{})
	assert.Error(t, err)
	assert.Equal(t, 0, transcriber.callCount)
}

func TestTranscribeOverwritesManualEdit(t *testing.T) {
	ctx := context.Background()
	c, transcriber, _, _ := newTestController(t)
	transcriber.transcribeFunc = func(_ context.Context, _ []byte) (string, error) {
		return "buy milk", nil
	}

	sess := c.NewAudio(CaptureSession{}, []byte("audio"))
	sess, err := c.Transcribe(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", sess.EditedText)

	sess = c.SetText(sess, "buy milk and bread")

	// Re-transcribing wins over the manual edit; the gateway is the sole
	// source of truth for the transcription.
	sess, err = c.Transcribe(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", sess.TranscribedText)
	assert.Equal(t, "buy milk", sess.EditedText)
	assert.Equal(t, 2, transcriber.callCount)
}

func TestTranscribeErrorPropagates(t *testing.T) {
	ctx := context.Background()
	c, transcriber, _, _ := newTestController(t)
	transcriber.transcribeFunc = func(_ context.Context, _ []byte) (string, error) {
		return "", errors.New("provider down")
	}

	sess := c.NewAudio(CaptureSession{}, []byte("audio"))
	updated, err := c.Transcribe(ctx, sess)
	assert.Error(t, err)
	assert.Empty(t, updated.TranscribedText)
}

func TestCommitEmptyTextIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _, embedder, s := newTestController(t)

	sess, note, err := c.Commit(ctx, CaptureSession{})
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.Empty(t, sess.EditedText)
	assert.Equal(t, 0, embedder.callCount)

	count, err := s.CountNotes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCommitStoresConsistentNote(t *testing.T) {
	ctx := context.Background()
	c, _, _, s := newTestController(t)

	sess := c.SetText(CaptureSession{}, "buy milk")
	sess, note, err := c.Commit(ctx, sess)
	require.NoError(t, err)
	require.NotNil(t, note)

	assert.Equal(t, "buy milk", note.Text)
	assert.Equal(t, textVector("buy milk"), note.Vector)

	// The session is retained after commit for review/re-edit.
	assert.Equal(t, "buy milk", sess.EditedText)

	stored, err := s.ListNotes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "buy milk", stored[0].Text)
	assert.Equal(t, textVector("buy milk"), stored[0].Vector)
}

func TestCommitAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	c, _, _, s := newTestController(t)

	// Seed the store with five existing notes.
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.UpsertNote(ctx, &store.Note{
			ID:     i,
			Text:   fmt.Sprintf("note %d", i),
			Vector: textVector(fmt.Sprintf("note %d", i)),
		}))
	}

	sess := c.SetText(CaptureSession{}, "sixth note")
	_, first, err := c.Commit(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(6), first.ID)

	sess = c.SetText(sess, "seventh note")
	_, second, err := c.Commit(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), second.ID)
}

func TestCommitEmbeddingErrorLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	c, _, embedder, s := newTestController(t)
	embedder.embedFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	sess := c.SetText(CaptureSession{}, "buy milk")
	_, note, err := c.Commit(ctx, sess)
	assert.Error(t, err)
	assert.Nil(t, note)

	count, err := s.CountNotes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFingerprintStability(t *testing.T) {
	a := Fingerprint([]byte("same bytes"))
	b := Fingerprint([]byte("same bytes"))
	other := Fingerprint([]byte("different bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
}
