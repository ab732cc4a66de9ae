package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/asian-mario/git-hydra/internal/git"
)

type statusPanel int

const (
	unstagedPanel statusPanel = iota
	stagedPanel
)

type statusState struct {
	status *git.RepoStatus
	panel  statusPanel
	list   listState
}

func newStatusState() statusState {
	return statusState{}
}

// workFiles is the unstaged panel's content: modified plus untracked.
func (s *statusState) workFiles() []git.FileStatus {
	if s.status == nil {
		return nil
	}
	files := make([]git.FileStatus, 0, len(s.status.UnstagedFiles)+len(s.status.UntrackedFiles))
	files = append(files, s.status.UnstagedFiles...)
	files = append(files, s.status.UntrackedFiles...)
	return files
}

func (s *statusState) panelFiles() []git.FileStatus {
	if s.status == nil {
		return nil
	}
	if s.panel == stagedPanel {
		return s.status.StagedFiles
	}
	return s.workFiles()
}

func (s *statusState) currentCount() int {
	return len(s.panelFiles())
}

func (s *statusState) selectedFile() (git.FileStatus, bool) {
	files := s.panelFiles()
	if s.list.selected >= len(files) {
		return git.FileStatus{}, false
	}
	return files[s.list.selected], true
}

func (m App) updateStatus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.switchMode(msg.String()); ok {
		return next, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "tab", "h", "l", "left", "right":
		if m.status.panel == unstagedPanel {
			m.status.panel = stagedPanel
		} else {
			m.status.panel = unstagedPanel
		}
		m.status.list.first()

	case "j", "down":
		m.status.list.moveDown(m.status.currentCount())

	case "k", "up":
		m.status.list.moveUp(m.status.currentCount())

	case "g":
		m.status.list.first()

	case "G":
		m.status.list.last(m.status.currentCount())

	case " ":
		if file, ok := m.status.selectedFile(); ok {
			if m.status.panel == unstagedPanel {
				return m, m.gitAction("staged "+file.Path, func() error {
					return m.repo.StageFile(file.Path)
				})
			}
			return m, m.gitAction("unstaged "+file.Path, func() error {
				return m.repo.UnstageFile(file.Path)
			})
		}

	case "s":
		if file, ok := m.status.selectedFile(); ok && m.status.panel == unstagedPanel {
			return m, m.gitAction("staged "+file.Path, func() error {
				return m.repo.StageFile(file.Path)
			})
		}

	case "u":
		if file, ok := m.status.selectedFile(); ok && m.status.panel == stagedPanel {
			return m, m.gitAction("unstaged "+file.Path, func() error {
				return m.repo.UnstageFile(file.Path)
			})
		}

	case "a":
		return m, m.gitAction("staged all changes", m.repo.StageAllFiles)

	case "d":
		if file, ok := m.status.selectedFile(); ok && m.status.panel == unstagedPanel {
			return m, m.gitAction("discarded "+file.Path, func() error {
				return m.repo.DiscardChanges(file.Path, file.Status)
			})
		}

	case "enter":
		if file, ok := m.status.selectedFile(); ok {
			staged := m.status.panel == stagedPanel
			return m, func() tea.Msg {
				diff, err := m.repo.GetFileDiff(file.Path, staged)
				return diffLoadedMsg{title: file.Path, content: diff, err: err}
			}
		}

	case "c":
		if m.status.status != nil && len(m.status.status.StagedFiles) > 0 {
			m.openCommit()
			return m, nil
		}
		m.setNote("nothing staged to commit")

	case "S":
		branch := ""
		if m.status.status != nil {
			branch = m.status.status.CurrentBranch
		}
		return m, m.gitAction("stashed working tree", func() error {
			return m.repo.Stash("WIP on " + branch)
		})

	case "p":
		return m, m.gitAction("pushed", m.repo.Push)

	case "P":
		return m, m.gitAction("pulled", m.repo.Pull)

	case "f":
		return m, m.gitAction("fetched origin", m.repo.Fetch)

	case "r":
		m.detectAndRoute()
		return m, m.refreshCurrent()
	}

	return m, nil
}

func (m App) viewStatus() string {
	if m.status.status == nil {
		return "Loading repository status..."
	}

	var sections []string
	if banner := m.mergeBanner(); banner != "" {
		sections = append(sections, banner)
	}

	unstaged := m.renderFilePanel("Unstaged", m.status.workFiles(), unstagedPanel)
	staged := m.renderFilePanel("Staged", m.status.status.StagedFiles, stagedPanel)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, unstaged, " ", staged))

	return strings.Join(sections, "\n")
}

// mergeBanner is shown when the repository is mid-merge but nothing is
// left to review, i.e. every conflict got staged. A plain commit then
// concludes the merge.
func (m App) mergeBanner() string {
	if m.status.status == nil || !m.status.status.MergeInProgress || m.session.Active() {
		return ""
	}

	text := "Merge in progress."
	if paths := m.status.status.UnmergedPaths; len(paths) > 0 {
		text += " Still conflicted: " + xstrings.EnglishJoin(paths, true) + "."
	} else {
		text += " All conflicts staged; press c to create the merge commit."
	}
	return m.styles.Banner.Render(text)
}

func (m App) renderFilePanel(title string, files []git.FileStatus, panel statusPanel) string {
	active := m.status.panel == panel

	if len(files) > 0 {
		title = fmt.Sprintf("%s (%d)", title, len(files))
	}

	var content strings.Builder
	content.WriteString(m.styles.Title.Render(title) + "\n")

	if len(files) == 0 {
		content.WriteString(m.styles.Unselected.Render("  (none)"))
	} else {
		start, end := m.status.list.window(len(files))
		if !active {
			start, end = 0, len(files)
			if end > m.status.list.visibleLines && m.status.list.visibleLines > 0 {
				end = m.status.list.visibleLines
			}
		}
		for i := start; i < end; i++ {
			file := files[i]
			prefix := "  "
			style := m.styles.Unselected
			if active && i == m.status.list.selected {
				prefix = "> "
				style = m.styles.Selected
			}
			content.WriteString(style.Render(fmt.Sprintf("%s%s [%s]", prefix, file.Path, file.Status)) + "\n")
		}
	}

	panelStyle := m.styles.Panel
	if active {
		panelStyle = m.styles.ActivePanel
	}

	panelWidth := (m.width - 3) / 2
	if panelWidth < 20 {
		panelWidth = 20
	}
	return panelStyle.Width(panelWidth).Render(content.String())
}
