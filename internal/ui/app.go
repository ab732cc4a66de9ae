package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/asian-mario/git-hydra/internal/config"
	"github.com/asian-mario/git-hydra/internal/git"
	"github.com/asian-mario/git-hydra/internal/merge"
)

// Mode names the screen the app is on. Exactly one mode is active at a
// time; every key goes through one dispatch switch in handleKey and every
// frame through one in View, so a mode can never leak its keys or chrome
// into another.
type Mode int

const (
	ModeStatus Mode = iota
	ModeLog
	ModeBranches
	ModeStash
	ModeDiff
	ModeCommit
	ModeMergeReview
	ModeMergeEdit
)

type refreshMsg struct{}

type statusLoadedMsg struct {
	status *git.RepoStatus
	err    error
}

type commitsLoadedMsg struct {
	commits []git.Commit
	err     error
}

type branchesLoadedMsg struct {
	branches []git.Branch
	err      error
}

type stashesLoadedMsg struct {
	stashes []git.Stash
	err     error
}

type diffLoadedMsg struct {
	title   string
	content string
	err     error
}

// actionDoneMsg reports a fire-and-forget git operation. Receiving one
// always re-runs conflict detection before the current mode refreshes.
type actionDoneMsg struct {
	note string
	err  error
}

type App struct {
	repo    *git.GitRepo
	session *merge.Session
	cfg     config.Config
	styles  Styles

	mode     Mode
	prevMode Mode

	width  int
	height int

	message string
	isError bool

	quitting bool

	status   statusState
	log      logState
	branches branchState
	stash    stashState
	diff     diffState
	commit   commitState
	merge    mergeState
}

func NewApp(repo *git.GitRepo, cfg config.Config) App {
	styles := newStyles(cfg.Theme)

	return App{
		repo:     repo,
		session:  merge.NewSession(repo),
		cfg:      cfg,
		styles:   styles,
		status:   newStatusState(),
		log:      newLogState(),
		branches: newBranchState(),
		stash:    newStashState(),
		diff:     newDiffState(),
		commit:   newCommitState(),
		merge:    newMergeState(),
	}
}

func (m App) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case refreshMsg:
		m.detectAndRoute()
		return m, m.refreshCurrent()

	case statusLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.status.status = msg.status
		m.status.list.clamp(m.status.currentCount())
		return m, nil

	case commitsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.log.commits = msg.commits
		m.log.list.clamp(len(msg.commits))
		return m, nil

	case branchesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.branches.branches = msg.branches
		m.branches.refilter()
		m.branches.list.clamp(len(m.branches.visible()))
		return m, nil

	case stashesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.stash.stashes = msg.stashes
		m.stash.list.clamp(len(msg.stashes))
		return m, nil

	case diffLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.openDiff(msg.title, msg.content)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else if msg.note != "" {
			m.setNote(msg.note)
		}
		m.detectAndRoute()
		return m, m.refreshCurrent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToFocused(msg)
}

// handleKey is the single key dispatch point. ctrl+c is the only key every
// mode shares; everything else belongs to the active mode's handler.
func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case ModeStatus:
		return m.updateStatus(msg)
	case ModeLog:
		return m.updateLog(msg)
	case ModeBranches:
		return m.updateBranches(msg)
	case ModeStash:
		return m.updateStash(msg)
	case ModeDiff:
		return m.updateDiff(msg)
	case ModeCommit:
		return m.updateCommit(msg)
	case ModeMergeReview:
		return m.updateMergeReview(msg)
	case ModeMergeEdit:
		return m.updateMergeEdit(msg)
	}
	return m, nil
}

func (m App) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case ModeStatus:
		body = m.viewStatus()
	case ModeLog:
		body = m.viewLog()
	case ModeBranches:
		body = m.viewBranches()
	case ModeStash:
		body = m.viewStash()
	case ModeDiff:
		body = m.viewDiff()
	case ModeCommit:
		body = m.viewCommit()
	case ModeMergeReview:
		body = m.viewMergeReview()
	case ModeMergeEdit:
		body = m.viewMergeEdit()
	}

	sections := []string{m.viewHeader(), body, m.viewFooter()}
	return strings.Join(sections, "\n")
}

func (m App) viewHeader() string {
	name := m.styles.Title.Render("git-hydra")

	info := ""
	if m.status.status != nil {
		info = fmt.Sprintf("Branch: %s", m.status.status.CurrentBranch)
		if m.status.status.Ahead > 0 || m.status.status.Behind > 0 {
			info += fmt.Sprintf(" (↑%d ↓%d)", m.status.status.Ahead, m.status.status.Behind)
		}
		if last := m.status.status.LastCommit; last != nil {
			info += fmt.Sprintf("  Last: %s %s", last.ShortID(), last.Summary)
		}
	}

	left := name
	right := m.styles.Header.Render(info)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

func (m App) viewFooter() string {
	help := m.styles.Help.Render(m.helpLine())
	if m.message == "" {
		return help
	}

	style := m.styles.Message
	if m.isError {
		style = m.styles.Error
	}
	return help + "\n" + style.Render(m.message)
}

func (m App) helpLine() string {
	switch m.mode {
	case ModeStatus:
		return "1-4: views | tab: panel | j/k: move | space/s/u: stage/unstage | a: all | d: discard | enter: diff | c: commit | S: stash | p: push | P: pull | f: fetch | r: refresh | q: quit"
	case ModeLog:
		return "1-4: views | j/k: move | y: copy id | r: refresh | q: quit"
	case ModeBranches:
		if m.branches.searching {
			return "enter: keep filter | esc: clear | type to search"
		}
		if m.branches.naming {
			return "enter: create branch | esc: cancel"
		}
		return "1-4: views | j/k: move | enter: checkout | m: merge into current | n: new | d: delete | R: remotes | /: search | r: refresh | q: quit"
	case ModeStash:
		if m.stash.naming {
			return "enter: stash | esc: cancel"
		}
		return "1-4: views | j/k: move | enter: apply | p: pop | d: drop | s: new stash | r: refresh | q: quit"
	case ModeDiff:
		return "j/k: scroll | ctrl+d/u: half page | g/G: top/bottom | esc: back"
	case ModeCommit:
		return "enter: commit | esc: cancel"
	case ModeMergeReview:
		if m.merge.completing {
			return "enter: create merge commit | esc: back"
		}
		if m.merge.aborting {
			return "confirm to abort the merge"
		}
		return "j/k: hunk | tab/n: next file | o/t/b: take ours/theirs/both | e: edit | a: apply to files | C: complete | A: abort | r: re-detect"
	case ModeMergeEdit:
		return "ctrl+s: save resolution | esc: discard"
	}
	return ""
}

// detectAndRoute runs conflict detection and routes the mode accordingly:
// conflicts force merge review, and a vanished merge releases it. It runs
// before every mode-specific refresh, never after.
func (m *App) detectAndRoute() {
	conflict, err := m.session.Detect()
	if err != nil {
		m.setError(err)
		return
	}

	if conflict != nil {
		if m.mode != ModeMergeReview && m.mode != ModeMergeEdit {
			m.enterMergeReview()
		}
		return
	}

	if m.mode == ModeMergeReview || m.mode == ModeMergeEdit {
		m.mode = ModeStatus
		m.setNote("no conflicted files left; finish with a commit from the status view")
	}
}

// refreshCurrent returns the async load command for the active mode.
func (m App) refreshCurrent() tea.Cmd {
	switch m.mode {
	case ModeStatus, ModeCommit:
		return m.loadStatus
	case ModeLog:
		return m.loadCommits
	case ModeBranches:
		return m.loadBranches
	case ModeStash:
		return m.loadStashes
	case ModeMergeReview, ModeMergeEdit:
		// The status header still wants branch info while reviewing.
		return m.loadStatus
	}
	return nil
}

// switchMode handles the shared 1-4 view keys. Merge review refuses them;
// it is not a browsing mode.
func (m App) switchMode(key string) (App, tea.Cmd, bool) {
	var target Mode
	switch key {
	case "1":
		target = ModeStatus
	case "2":
		target = ModeLog
	case "3":
		target = ModeBranches
	case "4":
		target = ModeStash
	default:
		return m, nil, false
	}

	m.mode = target
	m.message = ""
	m.detectAndRoute()
	return m, m.refreshCurrent(), true
}

func (m *App) setNote(note string) {
	m.message = note
	m.isError = false
}

func (m *App) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *App) resize() {
	listHeight := m.height - 8
	m.status.list.visibleLines = listHeight
	m.log.list.visibleLines = listHeight
	m.branches.list.visibleLines = listHeight - 2
	m.stash.list.visibleLines = listHeight

	m.diff.viewport.Width = m.width - 4
	m.diff.viewport.Height = m.height - 6

	m.merge.editor.SetWidth(m.width - 6)
	m.merge.editor.SetHeight(m.height - 10)
}

// forwardToFocused hands non-key messages (cursor blinks, form ticks) to
// whichever component currently owns the keyboard.
func (m App) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.mode {
	case ModeCommit:
		m.commit.input, cmd = m.commit.input.Update(msg)
	case ModeBranches:
		if m.branches.searching {
			m.branches.search, cmd = m.branches.search.Update(msg)
		} else if m.branches.naming {
			m.branches.nameInput, cmd = m.branches.nameInput.Update(msg)
		}
	case ModeStash:
		if m.stash.naming {
			m.stash.input, cmd = m.stash.input.Update(msg)
		}
	case ModeMergeEdit:
		m.merge.editor, cmd = m.merge.editor.Update(msg)
	case ModeMergeReview:
		if m.merge.completing {
			m.merge.completeInput, cmd = m.merge.completeInput.Update(msg)
		} else if m.merge.aborting && m.merge.abortForm != nil {
			form, formCmd := m.merge.abortForm.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.merge.abortForm = f
			}
			cmd = formCmd
		}
	}

	return m, cmd
}

// gitAction wraps a repository call as a command; its completion message
// triggers detection plus a refresh of whatever mode is active by then.
func (m App) gitAction(note string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{note: note, err: fn()}
	}
}

func (m App) loadStatus() tea.Msg {
	status, err := m.repo.GetRepositoryStatus()
	return statusLoadedMsg{status: status, err: err}
}

func (m App) loadCommits() tea.Msg {
	commits, err := m.repo.GetCommits(m.cfg.LogCount)
	return commitsLoadedMsg{commits: commits, err: err}
}

func (m App) loadBranches() tea.Msg {
	branches, err := m.repo.GetBranches(m.branches.includeRemote)
	return branchesLoadedMsg{branches: branches, err: err}
}

func (m App) loadStashes() tea.Msg {
	stashes, err := m.repo.GetStashes()
	return stashesLoadedMsg{stashes: stashes, err: err}
}

// Start runs the full-screen app until the user quits.
func Start(repo *git.GitRepo, cfg config.Config) error {
	p := tea.NewProgram(NewApp(repo, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
