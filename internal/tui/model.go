// Package tui implements the interactive terminal UI: an Add tab driving the
// capture state machine and a Search tab for listing and semantic search.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxnote/voxnote/internal/audio"
	"github.com/voxnote/voxnote/internal/observability"
	"github.com/voxnote/voxnote/internal/profile"
	"github.com/voxnote/voxnote/server/ai"
	"github.com/voxnote/voxnote/server/service/note"
	"github.com/voxnote/voxnote/store"
)

// Screen selects the top-level view.
type Screen int

const (
	// ScreenKeyPrompt blocks everything until the provider credential is
	// supplied.
	ScreenKeyPrompt Screen = iota
	ScreenMain
)

// Tab selects the active pane of the main screen.
type Tab int

const (
	TabAdd Tab = iota
	TabSearch
)

// Deps are the wired collaborators handed to the TUI at startup.
type Deps struct {
	Profile  *profile.Profile
	Store    *store.Store
	Recorder audio.Recorder
	Logger   *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	deps Deps

	screen Screen
	tab    Tab

	// Key prompt state
	keyInput string

	// Controllers, nil until the provider credential is known
	capture *note.CaptureController
	search  *note.SearchController

	// Capture state
	session   note.CaptureSession
	recording bool

	// Search state
	query   string
	results []note.Result
	listed  bool

	busy         string
	errorMessage string
	statusText   string

	width  int
	height int
}

// New creates the root model. When the profile already carries the provider
// key the key prompt is skipped.
func New(deps Deps) Model {
	screen := ScreenKeyPrompt
	if deps.Profile.HasProviderKey() {
		screen = ScreenMain
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return Model{
		deps:       deps,
		screen:     screen,
		statusText: "Ready.",
	}
}

// Init constructs the controllers immediately when the key is configured.
func (m Model) Init() tea.Cmd {
	if m.deps.Profile.HasProviderKey() {
		return initProviderCmd(m.deps, m.deps.Profile.OpenAIAPIKey)
	}
	return nil
}

// initProviderCmd builds the AI provider and both controllers from an API key.
func initProviderCmd(deps Deps, apiKey string) tea.Cmd {
	return func() tea.Msg {
		provider, err := ai.NewProvider(&ai.Config{
			BaseURL:         deps.Profile.OpenAIBaseURL,
			APIKey:          apiKey,
			TranscribeModel: deps.Profile.TranscribeModel,
			EmbeddingModel:  deps.Profile.EmbeddingModel,
			EmbeddingDim:    deps.Profile.EmbeddingDim,
		})
		if err != nil {
			return ProviderReadyMsg{Err: err}
		}
		return ProviderReadyMsg{
			Capture: note.NewCaptureController(provider, provider, deps.Store),
			Search:  note.NewSearchController(provider, deps.Store),
		}
	}
}

func startRecordingCmd(rec audio.Recorder) tea.Cmd {
	return func() tea.Msg {
		return RecordingStartedMsg{Err: rec.Start()}
	}
}

func stopRecordingCmd(rec audio.Recorder) tea.Cmd {
	return func() tea.Msg {
		data, err := rec.Stop()
		return RecordingDoneMsg{Audio: data, Err: err}
	}
}

func transcribeCmd(c *note.CaptureController, sess note.CaptureSession, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		in := observability.NewInteraction(logger, "transcribe")
		updated, err := c.Transcribe(context.Background(), sess)
		if err != nil {
			in.Error("transcription failed", err)
			return TranscribeDoneMsg{Session: sess, Err: err}
		}
		in.Info("audio transcribed", slog.Int64(observability.LogFieldDuration, in.DurationMs()))
		return TranscribeDoneMsg{Session: updated}
	}
}

func commitCmd(c *note.CaptureController, sess note.CaptureSession, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		in := observability.NewInteraction(logger, "commit")
		updated, committed, err := c.Commit(context.Background(), sess)
		if err != nil {
			in.Error("commit failed", err)
			return CommitDoneMsg{Session: sess, Err: err}
		}
		if committed != nil {
			in.Info("note saved",
				slog.Int64("note_id", committed.ID),
				slog.Int64(observability.LogFieldDuration, in.DurationMs()))
		}
		return CommitDoneMsg{Session: updated, Note: committed}
	}
}

func searchCmd(c *note.SearchController, query string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		in := observability.NewInteraction(logger, "search")
		results, err := c.Query(context.Background(), query)
		if err != nil {
			in.Error("search failed", err)
			return SearchDoneMsg{Err: err}
		}
		in.Info("search done",
			slog.Int("results", len(results)),
			slog.Int64(observability.LogFieldDuration, in.DurationMs()))
		return SearchDoneMsg{Results: results}
	}
}
