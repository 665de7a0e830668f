package tui

import (
	"github.com/voxnote/voxnote/server/service/note"
	"github.com/voxnote/voxnote/store"
)

// ProviderReadyMsg reports the outcome of constructing the AI provider from
// the entered or configured API key.
type ProviderReadyMsg struct {
	Capture *note.CaptureController
	Search  *note.SearchController
	Err     error
}

// RecordingStartedMsg reports the outcome of starting the recorder.
type RecordingStartedMsg struct {
	Err error
}

// RecordingDoneMsg carries the encoded audio of a finished recording.
type RecordingDoneMsg struct {
	Audio []byte
	Err   error
}

// TranscribeDoneMsg carries the session updated with the transcription.
type TranscribeDoneMsg struct {
	Session note.CaptureSession
	Err     error
}

// CommitDoneMsg carries the committed note, or nil on a no-op commit.
type CommitDoneMsg struct {
	Session note.CaptureSession
	Note    *store.Note
	Err     error
}

// SearchDoneMsg carries the result list of a listing or similarity search.
type SearchDoneMsg struct {
	Results []note.Result
	Err     error
}
