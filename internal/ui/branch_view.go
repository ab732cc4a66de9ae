package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asian-mario/git-hydra/internal/git"
)

type branchState struct {
	branches      []git.Branch
	includeRemote bool
	list          listState

	searching bool
	search    textinput.Model
	query     string
	filtered  []int

	naming    bool
	nameInput textinput.Model
}

func newBranchState() branchState {
	search := textinput.New()
	search.Placeholder = "Search branches..."
	search.CharLimit = 100
	search.Width = 40

	name := textinput.New()
	name.Placeholder = "New branch name..."
	name.CharLimit = 100
	name.Width = 40

	return branchState{
		search:    search,
		nameInput: name,
	}
}

// visible returns the indices of the branches the list shows: everything,
// or only the fuzzy matches while a filter is set.
func (b *branchState) visible() []int {
	if b.query == "" {
		indices := make([]int, len(b.branches))
		for i := range b.branches {
			indices[i] = i
		}
		return indices
	}
	return b.filtered
}

func (b *branchState) refilter() {
	if b.query == "" {
		b.filtered = nil
		return
	}

	query := strings.ToLower(b.query)
	b.filtered = []int{}
	for i, branch := range b.branches {
		if fuzzyMatch(strings.ToLower(branch.Name), query) {
			b.filtered = append(b.filtered, i)
		}
	}
}

func (b *branchState) selectedBranch() (git.Branch, bool) {
	visible := b.visible()
	if b.list.selected >= len(visible) {
		return git.Branch{}, false
	}
	return b.branches[visible[b.list.selected]], true
}

func (m App) updateBranches(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.branches.searching {
		return m.updateBranchSearch(msg)
	}
	if m.branches.naming {
		return m.updateBranchNaming(msg)
	}

	if next, cmd, ok := m.switchMode(msg.String()); ok {
		return next, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.branches.list.moveDown(len(m.branches.visible()))

	case "k", "up":
		m.branches.list.moveUp(len(m.branches.visible()))

	case "g":
		m.branches.list.first()

	case "G":
		m.branches.list.last(len(m.branches.visible()))

	case "/":
		m.branches.searching = true
		m.branches.search.SetValue("")
		m.branches.query = ""
		m.branches.refilter()
		return m, m.branches.search.Focus()

	case "esc":
		if m.branches.query != "" {
			m.branches.query = ""
			m.branches.refilter()
			m.branches.list.first()
		}

	case "enter":
		if branch, ok := m.branches.selectedBranch(); ok {
			return m, m.checkoutBranch(branch)
		}

	case "m":
		if branch, ok := m.branches.selectedBranch(); ok {
			if branch.IsCurrent {
				m.setNote("already on " + branch.Name)
				return m, nil
			}
			return m, m.mergeBranch(branch.Name)
		}

	case "n":
		m.branches.naming = true
		m.branches.nameInput.SetValue("")
		return m, m.branches.nameInput.Focus()

	case "d":
		if branch, ok := m.branches.selectedBranch(); ok {
			if branch.IsCurrent || branch.IsRemote {
				m.setNote("can only delete non-current local branches")
				return m, nil
			}
			return m, m.gitAction("deleted "+branch.Name, func() error {
				return m.repo.DeleteBranch(branch.Name)
			})
		}

	case "R":
		m.branches.includeRemote = !m.branches.includeRemote
		m.branches.list.first()
		return m, m.loadBranches

	case "r":
		m.detectAndRoute()
		return m, m.refreshCurrent()
	}

	return m, nil
}

func (m App) updateBranchSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.branches.searching = false
		m.branches.search.Blur()
		m.branches.query = ""
		m.branches.refilter()
		m.branches.list.first()
		return m, nil

	case "enter":
		m.branches.searching = false
		m.branches.search.Blur()
		m.branches.list.first()
		return m, nil
	}

	var cmd tea.Cmd
	m.branches.search, cmd = m.branches.search.Update(msg)
	if m.branches.search.Value() != m.branches.query {
		m.branches.query = m.branches.search.Value()
		m.branches.refilter()
		m.branches.list.first()
	}
	return m, cmd
}

func (m App) updateBranchNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.branches.naming = false
		m.branches.nameInput.Blur()
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.branches.nameInput.Value())
		m.branches.naming = false
		m.branches.nameInput.Blur()
		if name == "" {
			return m, nil
		}
		return m, m.gitAction("created "+name, func() error {
			return m.repo.CreateBranch(name)
		})
	}

	var cmd tea.Cmd
	m.branches.nameInput, cmd = m.branches.nameInput.Update(msg)
	return m, cmd
}

// checkoutBranch stashes a dirty working tree first, the same way the
// command line habit goes: stash, switch, keep working.
func (m App) checkoutBranch(branch git.Branch) tea.Cmd {
	return m.gitAction("switched to "+branch.Name, func() error {
		clean, err := m.repo.IsClean()
		if err != nil {
			return err
		}
		if !clean {
			if err := m.repo.Stash("auto-stash before switching to " + branch.Name); err != nil {
				return err
			}
		}
		return m.repo.SwitchBranch(branch.Name)
	})
}

// mergeBranch merges the selected branch into the current one. A conflict
// is not an error here: the refresh that follows detects it and the app
// lands in merge review.
func (m App) mergeBranch(name string) tea.Cmd {
	return func() tea.Msg {
		conflicted, err := m.repo.Merge(name)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if conflicted {
			return actionDoneMsg{note: "merge of " + name + " hit conflicts"}
		}
		return actionDoneMsg{note: "merged " + name}
	}
}

func (m App) viewBranches() string {
	var content strings.Builder

	title := "Branches"
	if m.branches.includeRemote {
		title += " (local + remote)"
	}
	content.WriteString(m.styles.Title.Render(title) + "\n")

	if m.branches.searching || m.branches.query != "" {
		content.WriteString(m.branches.search.View() + "\n")
	}

	visible := m.branches.visible()
	if len(visible) == 0 {
		content.WriteString(m.styles.Unselected.Render("  (no branches)"))
		return content.String()
	}

	start, end := m.branches.list.window(len(visible))
	for i := start; i < end; i++ {
		branch := m.branches.branches[visible[i]]

		prefix := "  "
		style := m.styles.Unselected
		if i == m.branches.list.selected {
			prefix = "> "
			style = m.styles.Selected
		}

		kind := "L"
		if branch.IsRemote {
			kind = "R"
		}
		if branch.IsCurrent {
			kind = "*"
		}

		line := fmt.Sprintf("%s%s [%s]", prefix, branch.Name, kind)
		if branch.Tracking != "" {
			line += " -> " + branch.Tracking
		}
		content.WriteString(style.Render(line) + "\n")
	}

	return content.String()
}
