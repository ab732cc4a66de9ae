package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type commitState struct {
	input textinput.Model
}

func newCommitState() commitState {
	input := textinput.New()
	input.Placeholder = "Commit message..."
	input.CharLimit = 500
	input.Width = 60

	return commitState{input: input}
}

func (m *App) openCommit() {
	m.prevMode = m.mode
	m.mode = ModeCommit
	m.commit.input.SetValue("")
	m.commit.input.Focus()
}

func (m App) updateCommit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = m.prevMode
		m.commit.input.Blur()
		return m, nil

	case "enter":
		message := strings.TrimSpace(m.commit.input.Value())
		if message == "" {
			return m, nil
		}
		m.mode = m.prevMode
		m.commit.input.Blur()
		return m, m.gitAction("committed", func() error {
			return m.repo.Commit(message)
		})
	}

	var cmd tea.Cmd
	m.commit.input, cmd = m.commit.input.Update(msg)
	return m, cmd
}

func (m App) viewCommit() string {
	var content strings.Builder
	content.WriteString(m.styles.Title.Render("Commit Changes") + "\n\n")

	if m.status.status != nil && len(m.status.status.StagedFiles) > 0 {
		content.WriteString(m.styles.Header.Render("Files to be committed:") + "\n")
		for _, file := range m.status.status.StagedFiles {
			content.WriteString(m.styles.Unselected.Render(fmt.Sprintf("  %s [%s]", file.Path, file.Status)) + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(m.styles.Header.Render("Commit message:") + "\n")
	content.WriteString(m.commit.input.View())

	return content.String()
}
