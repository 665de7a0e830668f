// Package note implements the note capture state machine and semantic search
// over the vector store.
package note

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"time"

	apperr "github.com/voxnote/voxnote/internal/errors"
	"github.com/voxnote/voxnote/store"
)

// Transcriber converts an audio buffer to text via the remote service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Embedder produces a fixed-dimension vector for a text string.
type Embedder interface {
	Embedding(ctx context.Context, text string) ([]float32, error)
}

// CaptureSession is the transient state of one recording/editing interaction.
// It is a value passed into and returned from controller operations so the
// state machine is testable without any interactive runtime.
type CaptureSession struct {
	// AudioBytes is the most recent recording, or empty.
	AudioBytes []byte
	// AudioFingerprint is the md5 of AudioBytes, used to detect whether a
	// new recording replaced the previous one.
	AudioFingerprint string
	// TranscribedText is the transcription of the current AudioBytes, or
	// empty if not yet transcribed.
	TranscribedText string
	// EditedText is the text that will be committed; initialized from
	// TranscribedText but may be overridden.
	EditedText string
}

// HasAudio reports whether the session holds a recording.
func (s CaptureSession) HasAudio() bool {
	return len(s.AudioBytes) > 0
}

// CanCommit reports whether the session holds committable text.
func (s CaptureSession) CanCommit() bool {
	return s.EditedText != ""
}

// CaptureController coordinates the capture state machine: new audio,
// transcription, editing, and commit to the vector store.
type CaptureController struct {
	transcriber Transcriber
	embedder    Embedder
	store       *store.Store
}

// NewCaptureController creates a capture controller.
func NewCaptureController(transcriber Transcriber, embedder Embedder, s *store.Store) *CaptureController {
	return &CaptureController{
		transcriber: transcriber,
		embedder:    embedder,
		store:       s,
	}
}

// NewAudio delivers a fresh recording to the session. If the fingerprint is
// unchanged the session is returned as-is; a changed fingerprint replaces the
// audio and clears both text fields, so a stale transcription is never
// attached to new audio.
func (c *CaptureController) NewAudio(sess CaptureSession, audio []byte) CaptureSession {
	fp := Fingerprint(audio)
	if fp == sess.AudioFingerprint {
		return sess
	}
	return CaptureSession{
		AudioBytes:       audio,
		AudioFingerprint: fp,
	}
}

// Transcribe sends the session audio to the transcription gateway and stores
// the result in both TranscribedText and EditedText. Calling it again
// re-transcribes and overwrites both fields; manual edits made before a
// re-transcription are lost.
func (c *CaptureController) Transcribe(ctx context.Context, sess CaptureSession) (CaptureSession, error) {
	if !sess.HasAudio() {
		return sess, apperr.InvalidArgument("no audio to transcribe")
	}

	text, err := c.transcriber.Transcribe(ctx, sess.AudioBytes)
	if err != nil {
		return sess, err
	}

	sess.TranscribedText = text
	sess.EditedText = text
	return sess, nil
}

// SetText overrides the text that will be committed.
func (c *CaptureController) SetText(sess CaptureSession, text string) CaptureSession {
	sess.EditedText = text
	return sess
}

// Commit embeds the edited text and writes it to the store as a new note.
// With empty text it is a no-op returning a nil note. The session is retained
// after a successful commit so the note can be reviewed or re-edited; it is
// not auto-cleared.
func (c *CaptureController) Commit(ctx context.Context, sess CaptureSession) (CaptureSession, *store.Note, error) {
	if !sess.CanCommit() {
		return sess, nil, nil
	}

	vector, err := c.embedder.Embedding(ctx, sess.EditedText)
	if err != nil {
		return sess, nil, err
	}

	id, err := c.store.NextID(ctx)
	if err != nil {
		return sess, nil, err
	}

	note := &store.Note{
		ID:        id,
		Text:      sess.EditedText,
		Vector:    vector,
		CreatedTs: time.Now().Unix(),
	}
	if err := c.store.UpsertNote(ctx, note); err != nil {
		return sess, nil, err
	}

	slog.Debug("note committed", "id", note.ID, "text_len", len(note.Text))
	return sess, note, nil
}

// Fingerprint computes the content hash used to detect whether a new audio
// buffer differs from the previously held one.
func Fingerprint(audio []byte) string {
	sum := md5.Sum(audio)
	return hex.EncodeToString(sum[:])
}
