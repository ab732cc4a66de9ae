package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/asian-mario/git-hydra/internal/git"
)

type logState struct {
	commits []git.Commit
	list    listState
}

func newLogState() logState {
	return logState{}
}

func (m App) updateLog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.switchMode(msg.String()); ok {
		return next, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.log.list.moveDown(len(m.log.commits))

	case "k", "up":
		m.log.list.moveUp(len(m.log.commits))

	case "g":
		m.log.list.first()

	case "G":
		m.log.list.last(len(m.log.commits))

	case "y":
		if m.log.list.selected < len(m.log.commits) {
			commit := m.log.commits[m.log.list.selected]
			if err := clipboard.WriteAll(commit.ID); err != nil {
				m.setError(err)
			} else {
				m.setNote("copied " + commit.ShortID())
			}
		}

	case "r":
		m.detectAndRoute()
		return m, m.refreshCurrent()
	}

	return m, nil
}

func (m App) viewLog() string {
	var content strings.Builder
	content.WriteString(m.styles.Title.Render(fmt.Sprintf("History (%d)", len(m.log.commits))) + "\n")

	if len(m.log.commits) == 0 {
		content.WriteString(m.styles.Unselected.Render("  (no commits)"))
		return content.String()
	}

	start, end := m.log.list.window(len(m.log.commits))
	for i := start; i < end; i++ {
		commit := m.log.commits[i]

		prefix := "  "
		style := m.styles.Unselected
		if i == m.log.list.selected {
			prefix = "> "
			style = m.styles.Selected
		}

		mergeMark := " "
		if len(commit.Parents) > 1 {
			mergeMark = "M"
		}

		line := fmt.Sprintf("%s%s %s %-50.50s %s, %s",
			prefix,
			commit.ShortID(),
			mergeMark,
			commit.Summary,
			commit.Author,
			humanize.Time(commit.When),
		)
		content.WriteString(style.Render(line) + "\n")
	}

	return content.String()
}
