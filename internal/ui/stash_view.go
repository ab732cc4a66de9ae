package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asian-mario/git-hydra/internal/git"
)

type stashState struct {
	stashes []git.Stash
	list    listState

	naming bool
	input  textinput.Model
}

func newStashState() stashState {
	input := textinput.New()
	input.Placeholder = "Stash message..."
	input.CharLimit = 200
	input.Width = 50

	return stashState{input: input}
}

func (s *stashState) selectedStash() (git.Stash, bool) {
	if s.list.selected >= len(s.stashes) {
		return git.Stash{}, false
	}
	return s.stashes[s.list.selected], true
}

func (m App) updateStash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.stash.naming {
		return m.updateStashNaming(msg)
	}

	if next, cmd, ok := m.switchMode(msg.String()); ok {
		return next, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.stash.list.moveDown(len(m.stash.stashes))

	case "k", "up":
		m.stash.list.moveUp(len(m.stash.stashes))

	case "g":
		m.stash.list.first()

	case "G":
		m.stash.list.last(len(m.stash.stashes))

	case "enter":
		if stash, ok := m.stash.selectedStash(); ok {
			return m, m.gitAction(fmt.Sprintf("applied stash@{%d}", stash.Index), func() error {
				return m.repo.ApplyStash(stash.Index)
			})
		}

	case "p":
		if len(m.stash.stashes) > 0 {
			return m, m.gitAction("popped latest stash", m.repo.StashPop)
		}

	case "d":
		if stash, ok := m.stash.selectedStash(); ok {
			return m, m.gitAction(fmt.Sprintf("dropped stash@{%d}", stash.Index), func() error {
				return m.repo.DeleteStash(stash.Index)
			})
		}

	case "s":
		m.stash.naming = true
		m.stash.input.SetValue("")
		return m, m.stash.input.Focus()

	case "r":
		m.detectAndRoute()
		return m, m.refreshCurrent()
	}

	return m, nil
}

func (m App) updateStashNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stash.naming = false
		m.stash.input.Blur()
		return m, nil

	case "enter":
		message := strings.TrimSpace(m.stash.input.Value())
		m.stash.naming = false
		m.stash.input.Blur()
		if message == "" {
			message = "WIP"
		}
		return m, m.gitAction("stashed working tree", func() error {
			return m.repo.Stash(message)
		})
	}

	var cmd tea.Cmd
	m.stash.input, cmd = m.stash.input.Update(msg)
	return m, cmd
}

func (m App) viewStash() string {
	var content strings.Builder
	content.WriteString(m.styles.Title.Render(fmt.Sprintf("Stashes (%d)", len(m.stash.stashes))) + "\n")

	if m.stash.naming {
		content.WriteString(m.stash.input.View() + "\n")
	}

	if len(m.stash.stashes) == 0 {
		content.WriteString(m.styles.Unselected.Render("  (no stashes)"))
		return content.String()
	}

	start, end := m.stash.list.window(len(m.stash.stashes))
	for i := start; i < end; i++ {
		stash := m.stash.stashes[i]

		prefix := "  "
		style := m.styles.Unselected
		if i == m.stash.list.selected {
			prefix = "> "
			style = m.styles.Selected
		}

		line := fmt.Sprintf("%sstash@{%d} %s", prefix, stash.Index, stash.Message)
		if stash.Branch != "" {
			line += fmt.Sprintf(" [%s]", stash.Branch)
		}
		if stash.Date != "" {
			line += fmt.Sprintf(" (%s)", stash.Date)
		}
		content.WriteString(style.Render(line) + "\n")
	}

	return content.String()
}
