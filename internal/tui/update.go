package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ProviderReadyMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.screen = ScreenKeyPrompt
			return m, nil
		}
		m.capture = msg.Capture
		m.search = msg.Search
		m.screen = ScreenMain
		m.errorMessage = ""
		m.statusText = "Ready."
		return m, nil

	case RecordingStartedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.recording = false
			return m, nil
		}
		m.recording = true
		m.errorMessage = ""
		m.statusText = "Recording..."
		return m, nil

	case RecordingDoneMsg:
		m.recording = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.session = m.capture.NewAudio(m.session, msg.Audio)
		m.errorMessage = ""
		m.statusText = fmt.Sprintf("Captured %d bytes of audio.", len(msg.Audio))
		return m, nil

	case TranscribeDoneMsg:
		m.busy = ""
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.session = msg.Session
		m.errorMessage = ""
		m.statusText = "Transcribed. Edit the text, then ctrl+s to save."
		return m, nil

	case CommitDoneMsg:
		m.busy = ""
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.session = msg.Session
		m.errorMessage = ""
		if msg.Note != nil {
			m.statusText = fmt.Sprintf("Note #%d saved.", msg.Note.ID)
		} else {
			m.statusText = "Nothing to save."
		}
		return m, nil

	case SearchDoneMsg:
		m.busy = ""
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.results = msg.Results
		m.listed = true
		m.errorMessage = ""
		m.statusText = fmt.Sprintf("%d result(s).", len(msg.Results))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.screen == ScreenKeyPrompt {
		return m.handleKeyPromptKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m Model) handleKeyPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		key := strings.TrimSpace(m.keyInput)
		if key == "" {
			return m, nil
		}
		m.errorMessage = ""
		return m, initProviderCmd(m.deps, key)
	case tea.KeyBackspace:
		if len(m.keyInput) > 0 {
			runes := []rune(m.keyInput)
			m.keyInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.keyInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Controllers are still initializing on the very first frames.
	if m.capture == nil || m.search == nil {
		return m, nil
	}
	if m.busy != "" {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		if m.tab == TabAdd {
			m.tab = TabSearch
		} else {
			m.tab = TabAdd
		}
		m.errorMessage = ""
		return m, nil
	case tea.KeyEsc:
		return m, tea.Quit
	}

	if m.tab == TabAdd {
		return m.handleAddKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlR:
		if m.recording {
			m.statusText = "Stopping recording..."
			return m, stopRecordingCmd(m.deps.Recorder)
		}
		return m, startRecordingCmd(m.deps.Recorder)

	case tea.KeyCtrlT:
		if !m.session.HasAudio() {
			m.errorMessage = "record audio first (ctrl+r)"
			return m, nil
		}
		m.busy = "Transcribing..."
		return m, transcribeCmd(m.capture, m.session, m.deps.Logger)

	case tea.KeyCtrlS:
		if !m.session.CanCommit() {
			m.errorMessage = "nothing to save: transcribe or type a note first"
			return m, nil
		}
		m.busy = "Saving..."
		return m, commitCmd(m.capture, m.session, m.deps.Logger)

	case tea.KeyBackspace:
		if len(m.session.EditedText) > 0 {
			runes := []rune(m.session.EditedText)
			m.session = m.capture.SetText(m.session, string(runes[:len(runes)-1]))
		}
		return m, nil

	case tea.KeyEnter:
		m.session = m.capture.SetText(m.session, m.session.EditedText+"\n")
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.session = m.capture.SetText(m.session, m.session.EditedText+string(msg.Runes))
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.busy = "Searching..."
		return m, searchCmd(m.search, m.query, m.deps.Logger)

	case tea.KeyBackspace:
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
		return m, nil
	}
	return m, nil
}
