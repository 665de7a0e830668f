package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxnote/voxnote/internal/profile"
	"github.com/voxnote/voxnote/server/service/note"
	"github.com/voxnote/voxnote/store"
)

type fakeTranscriber struct{ text string }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte) (string, error) {
	return f.text, nil
}

type fakeEmbedder struct{}

func (f *fakeEmbedder) Embedding(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := &profile.Profile{Mode: "dev", OpenAIAPIKey: "sk-test"}
	s := store.New(store.NewMockDriver(), p)
	m := New(Deps{Profile: p, Store: s})
	m.capture = note.NewCaptureController(&fakeTranscriber{text: "hello"}, &fakeEmbedder{}, s)
	m.search = note.NewSearchController(&fakeEmbedder{}, s)
	return m
}

func TestNewModelWithKeySkipsPrompt(t *testing.T) {
	m := newTestModel(t)
	if m.screen != ScreenMain {
		t.Error("model with configured key should start on the main screen")
	}
	if m.tab != TabAdd {
		t.Error("model should start on the add tab")
	}
}

func TestNewModelWithoutKeyPrompts(t *testing.T) {
	p := &profile.Profile{Mode: "dev"}
	m := New(Deps{Profile: p, Store: store.New(store.NewMockDriver(), p)})
	if m.screen != ScreenKeyPrompt {
		t.Error("model without key should start on the key prompt")
	}
}

func TestTypingEditsNoteText(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	model := updated.(Model)

	if model.session.EditedText != "hi" {
		t.Errorf("EditedText = %q, want %q", model.session.EditedText, "hi")
	}
}

func TestTabSwitches(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	model := updated.(Model)
	if model.tab != TabSearch {
		t.Error("tab key should switch to search tab")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.tab != TabAdd {
		t.Error("tab key should switch back to add tab")
	}
}

func TestRecordingDoneDeliversAudio(t *testing.T) {
	m := newTestModel(t)
	m.recording = true

	updated, _ := m.Update(RecordingDoneMsg{Audio: []byte("wav bytes")})
	model := updated.(Model)

	if model.recording {
		t.Error("recording should stop")
	}
	if !model.session.HasAudio() {
		t.Error("session should hold the delivered audio")
	}
}

func TestRecordingDoneSameAudioKeepsTranscript(t *testing.T) {
	m := newTestModel(t)
	m.session = m.capture.NewAudio(m.session, []byte("take one"))
	m.session.TranscribedText = "hello"
	m.session.EditedText = "hello"

	updated, _ := m.Update(RecordingDoneMsg{Audio: []byte("take one")})
	model := updated.(Model)
	if model.session.EditedText != "hello" {
		t.Error("same audio bytes should not reset the transcript")
	}

	updated, _ = model.Update(RecordingDoneMsg{Audio: []byte("take two")})
	model = updated.(Model)
	if model.session.EditedText != "" {
		t.Error("new audio should reset the transcript")
	}
}

func TestErrorMessagesSurface(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(TranscribeDoneMsg{Session: m.session, Err: fmt.Errorf("provider down")})
	model := updated.(Model)

	if model.errorMessage != "provider down" {
		t.Errorf("errorMessage = %q", model.errorMessage)
	}
}

func TestSearchResultsDisplayed(t *testing.T) {
	m := newTestModel(t)
	m.tab = TabSearch

	score := float32(0.91)
	updated, _ := m.Update(SearchDoneMsg{Results: []note.Result{
		{ID: 1, Text: "buy milk", Score: &score},
	}})
	model := updated.(Model)

	if len(model.results) != 1 {
		t.Fatalf("results = %d, want 1", len(model.results))
	}
	if !model.listed {
		t.Error("model should mark results as listed")
	}
}

func TestKeyPromptAcceptsKey(t *testing.T) {
	p := &profile.Profile{Mode: "dev"}
	m := New(Deps{Profile: p, Store: store.New(store.NewMockDriver(), p)})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sk-abc")})
	model := updated.(Model)
	if model.keyInput != "sk-abc" {
		t.Errorf("keyInput = %q", model.keyInput)
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a key should produce a provider init command")
	}
	msg := cmd()
	ready, ok := msg.(ProviderReadyMsg)
	if !ok {
		t.Fatalf("msg = %T, want ProviderReadyMsg", msg)
	}
	if ready.Err != nil {
		t.Errorf("provider init failed: %v", ready.Err)
	}
}

func TestKeyPromptEmptyEnterIsNoop(t *testing.T) {
	p := &profile.Profile{Mode: "dev"}
	m := New(Deps{Profile: p, Store: store.New(store.NewMockDriver(), p)})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter with no key should do nothing")
	}
}
