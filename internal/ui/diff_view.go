package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type diffState struct {
	title    string
	viewport viewport.Model
}

func newDiffState() diffState {
	return diffState{viewport: viewport.New(0, 0)}
}

// openDiff switches into the diff screen, remembering where to return.
// Content arrives with git's own ANSI coloring and is passed through as
// is; the terminal does the highlighting work.
func (m *App) openDiff(title, content string) {
	if m.mode != ModeDiff {
		m.prevMode = m.mode
	}
	m.mode = ModeDiff
	m.diff.title = title

	if m.width > 0 && m.height > 0 {
		m.diff.viewport.Width = m.width - 4
		m.diff.viewport.Height = m.height - 6
	}
	m.diff.viewport.SetContent(content)
	m.diff.viewport.GotoTop()
}

func (m App) updateDiff(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.mode = m.prevMode
		return m, nil

	case "j", "down":
		m.diff.viewport.ScrollDown(1)

	case "k", "up":
		m.diff.viewport.ScrollUp(1)

	case "ctrl+d", "pgdn":
		m.diff.viewport.HalfPageDown()

	case "ctrl+u", "pgup":
		m.diff.viewport.HalfPageUp()

	case "g":
		m.diff.viewport.GotoTop()

	case "G":
		m.diff.viewport.GotoBottom()
	}

	return m, nil
}

func (m App) viewDiff() string {
	title := m.styles.Title.Render("Diff: " + m.diff.title)
	return title + "\n" + m.diff.viewport.View()
}
