package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/asian-mario/git-hydra/internal/merge"
)

type mergeState struct {
	editor        textarea.Model
	completeInput textinput.Model
	completing    bool
	aborting      bool
	abortForm     *huh.Form
	lastReport    *merge.ApplyReport
}

func newMergeState() mergeState {
	editor := textarea.New()
	editor.CharLimit = 0
	editor.ShowLineNumbers = false

	completeInput := textinput.New()
	completeInput.CharLimit = 500
	completeInput.Width = 60

	return mergeState{
		editor:        editor,
		completeInput: completeInput,
	}
}

func (m *App) enterMergeReview() {
	m.mode = ModeMergeReview
	m.merge.completing = false
	m.merge.aborting = false
	m.merge.abortForm = nil
	m.merge.lastReport = nil

	conflict := m.session.Conflict()
	m.setNote(fmt.Sprintf("merge conflicts: %d hunks across %d files", conflict.TotalHunks(), len(conflict.Files)))
}

func (m App) updateMergeReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.merge.completing {
		return m.updateMergeCompleting(msg)
	}
	if m.merge.aborting {
		return m.updateMergeAborting(msg)
	}

	switch msg.String() {
	case "q", "esc", "1", "2", "3", "4":
		m.setNote("a merge is under review; leave with C (complete) or A (abort)")

	case "j", "down":
		m.session.NextHunk()

	case "k", "up":
		m.session.PrevHunk()

	case "tab", "n":
		m.session.NextFile()

	case "o":
		m.resolveCurrent(merge.Resolution{Choice: merge.ChooseOurs})

	case "t":
		m.resolveCurrent(merge.Resolution{Choice: merge.ChooseTheirs})

	case "b":
		m.resolveCurrent(merge.Resolution{Choice: merge.ChooseBoth})

	case "e":
		return m.openMergeEditor()

	case "a":
		report, err := m.session.Apply()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.merge.lastReport = report
		if report.OK() {
			m.setNote("resolutions written to the working tree")
		} else {
			m.setError(fmt.Errorf("apply finished with %d failed files", len(report.Failed())))
		}

	case "C":
		if !m.session.CanComplete() {
			m.setNote(fmt.Sprintf("%d hunks still unresolved", m.session.Unresolved()))
			return m, nil
		}
		m.merge.completing = true
		m.merge.completeInput.SetValue(m.defaultMergeMessage())
		return m, m.merge.completeInput.Focus()

	case "A":
		m.merge.aborting = true
		m.merge.abortForm = newAbortForm()
		return m, m.merge.abortForm.Init()

	case "r":
		m.detectAndRoute()
		return m, m.refreshCurrent()
	}

	return m, nil
}

func (m *App) resolveCurrent(r merge.Resolution) {
	if m.session.CurrentHunk() == nil {
		return
	}
	cursor := m.session.Cursor()
	m.session.SetResolution(cursor.File, cursor.Hunk, r)
	m.setNote(fmt.Sprintf("%d of %d hunks resolved", m.resolvedCount(), m.session.Conflict().TotalHunks()))
}

func (m App) resolvedCount() int {
	return m.session.Conflict().TotalHunks() - m.session.Unresolved()
}

func (m App) defaultMergeMessage() string {
	conflict := m.session.Conflict()

	branch := ""
	if m.status.status != nil {
		branch = m.status.status.CurrentBranch
	}
	if branch == "" {
		branch, _ = m.repo.GetCurrentBranch()
	}

	their := conflict.TheirCommit
	if len(their) > 8 {
		their = their[:8]
	}
	return fmt.Sprintf("Merge commit %s into %s", their, branch)
}

func (m App) updateMergeCompleting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.merge.completing = false
		m.merge.completeInput.Blur()
		return m, nil

	case "enter":
		message := strings.TrimSpace(m.merge.completeInput.Value())
		if message == "" {
			return m, nil
		}

		commit, err := m.session.Complete(message)
		if err != nil {
			m.merge.completing = false
			m.merge.completeInput.Blur()
			m.setError(err)
			return m, nil
		}

		m.merge.completing = false
		m.merge.completeInput.Blur()
		m.mode = ModeStatus
		if len(commit) > 8 {
			commit = commit[:8]
		}
		m.setNote("merge completed as " + commit)
		return m, m.refreshCurrent()
	}

	var cmd tea.Cmd
	m.merge.completeInput, cmd = m.merge.completeInput.Update(msg)
	return m, cmd
}

func newAbortForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("abort").
				Title("Abort this merge?").
				Description("The working tree and index reset to the branch tip; every resolution is lost.").
				Affirmative("Abort").
				Negative("Keep going"),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)
}

func (m App) updateMergeAborting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := m.merge.abortForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.merge.abortForm = f
	}

	switch m.merge.abortForm.State {
	case huh.StateCompleted:
		confirmed := m.merge.abortForm.GetBool("abort")
		m.merge.aborting = false
		m.merge.abortForm = nil

		if !confirmed {
			return m, cmd
		}

		if err := m.session.Abort(); err != nil {
			m.setError(err)
			return m, cmd
		}
		m.mode = ModeStatus
		m.setNote("merge aborted")
		return m, m.refreshCurrent()

	case huh.StateAborted:
		m.merge.aborting = false
		m.merge.abortForm = nil
	}

	return m, cmd
}

func (m App) openMergeEditor() (tea.Model, tea.Cmd) {
	hunk := m.session.CurrentHunk()
	if hunk == nil {
		return m, nil
	}

	cursor := m.session.Cursor()
	text := hunk.OurContent + "\n" + hunk.TheirContent
	if r, ok := m.session.ResolutionFor(cursor.File, cursor.Hunk); ok && r.Choice == merge.ManualEdit {
		text = r.Text
	}

	m.merge.editor.SetValue(text)
	m.mode = ModeMergeEdit
	return m, m.merge.editor.Focus()
}

func (m App) updateMergeEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.merge.editor.Blur()
		m.mode = ModeMergeReview
		return m, nil

	case "ctrl+s":
		cursor := m.session.Cursor()
		m.session.SetResolution(cursor.File, cursor.Hunk, merge.Resolution{
			Choice: merge.ManualEdit,
			Text:   m.merge.editor.Value(),
		})
		m.merge.editor.Blur()
		m.mode = ModeMergeReview
		m.setNote(fmt.Sprintf("%d of %d hunks resolved", m.resolvedCount(), m.session.Conflict().TotalHunks()))
		return m, nil
	}

	var cmd tea.Cmd
	m.merge.editor, cmd = m.merge.editor.Update(msg)
	return m, cmd
}

func (m App) viewMergeReview() string {
	conflict := m.session.Conflict()
	if conflict == nil {
		return "No merge under review."
	}

	if m.merge.aborting && m.merge.abortForm != nil {
		return m.merge.abortForm.View()
	}

	var sections []string

	our := conflict.OurCommit
	their := conflict.TheirCommit
	if len(our) > 8 {
		our = our[:8]
	}
	if len(their) > 8 {
		their = their[:8]
	}
	sections = append(sections, m.styles.Title.Render(fmt.Sprintf("Merge Review: %s <- %s", our, their)))

	sections = append(sections, m.renderConflictFiles(conflict))

	if m.merge.completing {
		sections = append(sections, m.styles.Header.Render("Merge commit message:"))
		sections = append(sections, m.merge.completeInput.View())
		return strings.Join(sections, "\n")
	}

	sections = append(sections, m.renderCurrentHunk())

	if m.merge.lastReport != nil {
		sections = append(sections, m.renderApplyReport(m.merge.lastReport))
	}

	progress := fmt.Sprintf("%d of %d hunks resolved", m.resolvedCount(), conflict.TotalHunks())
	style := m.styles.Unresolved
	if m.session.CanComplete() {
		style = m.styles.Resolved
		progress += "; ready to complete"
	}
	sections = append(sections, style.Render(progress))

	return strings.Join(sections, "\n")
}

func (m App) renderConflictFiles(conflict *merge.MergeConflict) string {
	cursor := m.session.Cursor()

	var lines []string
	for fi, file := range conflict.Files {
		resolved := 0
		for hi := range file.Hunks {
			if _, ok := m.session.ResolutionFor(fi, hi); ok {
				resolved++
			}
		}

		prefix := "  "
		style := m.styles.Unselected
		if fi == cursor.File {
			prefix = "> "
			style = m.styles.Selected
		}

		mark := m.styles.Unresolved.Render("…")
		if resolved == len(file.Hunks) {
			mark = m.styles.Resolved.Render("✓")
		}

		lines = append(lines, fmt.Sprintf("%s%s %s (%d/%d)", prefix, mark, style.Render(file.Path), resolved, len(file.Hunks)))
	}

	return strings.Join(lines, "\n")
}

func (m App) renderCurrentHunk() string {
	file := m.session.CurrentFile()
	hunk := m.session.CurrentHunk()
	if file == nil || hunk == nil {
		return ""
	}

	cursor := m.session.Cursor()

	var sections []string
	sections = append(sections, m.styles.Header.Render(
		fmt.Sprintf("Hunk %d/%d in %s (lines %d-%d)",
			cursor.Hunk+1, len(file.Hunks), file.Path, hunk.StartLine+1, hunk.EndLine+1)))

	paneLines := m.hunkPaneLines()
	sections = append(sections, m.styles.OursLabel.Render("ours")+"\n"+m.renderHunkPane(hunk.OurContent, paneLines))
	if hunk.HasBase {
		sections = append(sections, m.styles.BaseLabel.Render("base")+"\n"+m.renderHunkPane(hunk.BaseContent, paneLines))
	}
	sections = append(sections, m.styles.TheirsLabel.Render("theirs")+"\n"+m.renderHunkPane(hunk.TheirContent, paneLines))

	status := "unresolved"
	style := m.styles.Unresolved
	if r, ok := m.session.ResolutionFor(cursor.File, cursor.Hunk); ok {
		status = "resolved: " + resolutionName(r)
		style = m.styles.Resolved
	}
	sections = append(sections, style.Render(status))

	return strings.Join(sections, "\n")
}

// hunkPaneLines caps the vertical space one content pane may take.
func (m App) hunkPaneLines() int {
	lines := (m.height - 16) / 3
	if lines < 3 {
		lines = 3
	}
	return lines
}

func (m App) renderHunkPane(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > maxLines {
		rest := len(lines) - maxLines
		lines = append(lines[:maxLines], fmt.Sprintf("… (%d more lines)", rest))
	}

	width := m.width - 6
	if width < 20 {
		width = 20
	}
	return m.styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (m App) renderApplyReport(report *merge.ApplyReport) string {
	var parts []string
	for _, file := range report.Files {
		switch {
		case file.Err != nil:
			parts = append(parts, m.styles.Error.Render(fmt.Sprintf("%s: %v", file.Path, file.Err)))
		case file.Staged:
			parts = append(parts, m.styles.Resolved.Render(fmt.Sprintf("%s: staged", file.Path)))
		default:
			parts = append(parts, m.styles.Unresolved.Render(fmt.Sprintf("%s: %d hunks left", file.Path, file.Remaining)))
		}
	}
	return strings.Join(parts, "\n")
}

func resolutionName(r merge.Resolution) string {
	switch r.Choice {
	case merge.ChooseTheirs:
		return "theirs"
	case merge.ChooseBoth:
		return "both"
	case merge.ManualEdit:
		return "manual edit"
	default:
		return "ours"
	}
}

func (m App) viewMergeEdit() string {
	file := m.session.CurrentFile()
	cursor := m.session.Cursor()

	title := "Edit resolution"
	if file != nil {
		title = fmt.Sprintf("Edit resolution: %s, hunk %d", file.Path, cursor.Hunk+1)
	}

	return m.styles.Title.Render(title) + "\n" + m.merge.editor.View()
}
