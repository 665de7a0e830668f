package tui

import (
	"fmt"
	"strings"

	"github.com/voxnote/voxnote/internal/ui"
)

// View renders the active screen.
func (m Model) View() string {
	if m.screen == ScreenKeyPrompt {
		return m.viewKeyPrompt()
	}
	return m.viewMain()
}

func (m Model) viewKeyPrompt() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("voxnote") + "\n\n")
	b.WriteString(ui.PromptStyle.Render("Enter your provider API key to continue:") + "\n\n")
	b.WriteString("  " + maskKey(m.keyInput) + "█\n\n")
	if m.errorMessage != "" {
		b.WriteString(ui.ErrorStyle.Render("✗ "+m.errorMessage) + "\n\n")
	}
	b.WriteString(ui.HelpStyle.Render("enter: submit · ctrl+c: quit"))
	return b.String()
}

func maskKey(key string) string {
	if len(key) <= 6 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-6) + key[len(key)-3:]
}

func (m Model) viewMain() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("voxnote"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.tab == TabAdd {
		b.WriteString(m.viewAddTab())
	} else {
		b.WriteString(m.viewSearchTab())
	}

	b.WriteString("\n")
	if m.errorMessage != "" {
		b.WriteString(ui.ErrorStyle.Render("✗ "+m.errorMessage) + "\n")
	}
	if m.busy != "" {
		b.WriteString(ui.StatusStyle.Render(m.busy) + "\n")
	} else {
		b.WriteString(ui.StatusStyle.Render(m.statusText) + "\n")
	}
	b.WriteString(ui.HelpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTabs() string {
	add, search := ui.TabStyle, ui.TabActiveStyle
	if m.tab == TabAdd {
		add, search = ui.TabActiveStyle, ui.TabStyle
	}
	return add.Render("Add note") + search.Render("Search notes")
}

func (m Model) viewAddTab() string {
	var b strings.Builder

	if m.recording {
		b.WriteString(ui.RecordingDotStyle.Render("● recording") + "\n\n")
	} else if m.session.HasAudio() {
		b.WriteString(ui.IdleDotStyle.Render("○ idle") +
			ui.StatusStyle.Render(fmt.Sprintf("  audio: %d bytes", len(m.session.AudioBytes))) + "\n\n")
	} else {
		b.WriteString(ui.IdleDotStyle.Render("○ idle") + "\n\n")
	}

	if m.session.EditedText != "" {
		b.WriteString(ui.TranscriptStyle.Render(m.session.EditedText))
		b.WriteString("█\n")
	} else if m.session.HasAudio() {
		b.WriteString(ui.StatusStyle.Render("(press ctrl+t to transcribe)") + "\n")
	} else {
		b.WriteString(ui.StatusStyle.Render("(record with ctrl+r, or just type a note)") + "\n")
	}

	return b.String()
}

func (m Model) viewSearchTab() string {
	var b strings.Builder

	b.WriteString(ui.PromptStyle.Render("Query: ") + m.query + "█\n\n")

	if !m.listed {
		b.WriteString(ui.StatusStyle.Render("(press enter to search; empty query lists recent notes)") + "\n")
		return b.String()
	}

	if len(m.results) == 0 {
		b.WriteString(ui.StatusStyle.Render("no notes found") + "\n")
		return b.String()
	}

	for _, r := range m.results {
		line := r.Text
		if r.Score != nil {
			line += "\n" + ui.ScoreStyle.Render(fmt.Sprintf("score: %.4f", *r.Score))
		}
		b.WriteString(ui.ResultBoxStyle.Render(line) + "\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.tab == TabAdd {
		return "ctrl+r: record/stop · ctrl+t: transcribe · ctrl+s: save · tab: switch · esc: quit"
	}
	return "enter: search · tab: switch · esc: quit"
}
