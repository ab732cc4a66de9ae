package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asian-mario/git-hydra/internal/config"
	"github.com/asian-mario/git-hydra/internal/git"
	"github.com/asian-mario/git-hydra/internal/merge"
)

const (
	oursCommit   = "1111111111111111111111111111111111111111"
	theirsCommit = "2222222222222222222222222222222222222222"
	treeID       = "4444444444444444444444444444444444444444"
	mergeCommit  = "3333333333333333333333333333333333333333"
)

type stubCall struct {
	prefix string
	stdout string
	stderr string
	err    error
}

// fakeRunner matches git invocations by argument prefix. Stubs are
// consumed in insertion order; unstubbed calls succeed with empty output.
type fakeRunner struct {
	stubs []stubCall
	calls []string
}

func (f *fakeRunner) stub(prefix, stdout string, err error) {
	f.stubs = append(f.stubs, stubCall{prefix: prefix, stdout: stdout, err: err})
}

func (f *fakeRunner) Run(dir string, args ...string) (string, string, error) {
	call := strings.Join(args, " ")
	f.calls = append(f.calls, call)

	for i, s := range f.stubs {
		if strings.HasPrefix(call, s.prefix) {
			f.stubs = append(f.stubs[:i], f.stubs[i+1:]...)
			return s.stdout, s.stderr, s.err
		}
	}
	return "", "", nil
}

func newTestApp(t *testing.T) (App, *fakeRunner, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	fake := &fakeRunner{}
	prev := git.DefaultRunner()
	git.SetDefaultRunner(fake)
	t.Cleanup(func() {
		git.SetDefaultRunner(prev)
	})

	app := NewApp(git.New(dir), config.Default())
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App), fake, dir
}

func writeFile(t *testing.T, dir, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, path), []byte(content), 0o644))
}

func conflictText(ours, theirs string) string {
	return "<<<<<<< HEAD\n" + ours + "\n=======\n" + theirs + "\n>>>>>>> feature\n"
}

func press(t *testing.T, app App, key string) (App, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	model, cmd := app.Update(msg)
	return model.(App), cmd
}

func refresh(t *testing.T, app App) App {
	t.Helper()
	model, _ := app.Update(refreshMsg{})
	return model.(App)
}

// mergeFixture puts the app mid-merge with one conflicted file of one hunk.
func mergeFixture(t *testing.T) (App, *fakeRunner, string) {
	t.Helper()

	app, fake, dir := newTestApp(t)
	writeFile(t, dir, ".git/MERGE_HEAD", theirsCommit+"\n")
	writeFile(t, dir, "main.go", "header\n"+conflictText("ours line", "theirs line")+"footer\n")

	fake.stub("diff --name-only --diff-filter=U", "main.go\n", nil)
	fake.stub("rev-parse HEAD", oursCommit+"\n", nil)

	app = refresh(t, app)
	require.Equal(t, ModeMergeReview, app.mode)
	return app, fake, dir
}

func TestRefreshRoutesConflictsToMergeReview(t *testing.T) {
	app, _, _ := mergeFixture(t)

	assert.True(t, app.session.Active())
	assert.Contains(t, app.message, "merge conflicts")
}

func TestMergeReviewRefusesModeKeys(t *testing.T) {
	app, _, _ := mergeFixture(t)

	for _, key := range []string{"q", "esc", "1", "3"} {
		next, cmd := press(t, app, key)
		assert.Equal(t, ModeMergeReview, next.mode, "key %q must not leave merge review", key)
		assert.Nil(t, cmd, "key %q must not schedule anything", key)
		assert.Contains(t, next.message, "merge is under review")
	}
}

func TestStatusModeQuits(t *testing.T) {
	app, _, _ := newTestApp(t)
	require.Equal(t, ModeStatus, app.mode)

	next, cmd := press(t, app, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.quitting)
}

func TestResolutionKeysRecordWithoutMovingCursor(t *testing.T) {
	app, fake, dir := newTestApp(t)
	writeFile(t, dir, ".git/MERGE_HEAD", theirsCommit+"\n")
	writeFile(t, dir, "main.go", conflictText("a", "b")+"between\n"+conflictText("c", "d"))

	fake.stub("diff --name-only --diff-filter=U", "main.go\n", nil)
	fake.stub("rev-parse HEAD", oursCommit+"\n", nil)
	app = refresh(t, app)
	require.Equal(t, ModeMergeReview, app.mode)

	app, _ = press(t, app, "o")
	r, ok := app.session.ResolutionFor(0, 0)
	require.True(t, ok)
	assert.Equal(t, merge.ChooseOurs, r.Choice)
	assert.Equal(t, merge.Cursor{}, app.session.Cursor())

	// Re-resolving overwrites in place.
	app, _ = press(t, app, "t")
	r, _ = app.session.ResolutionFor(0, 0)
	assert.Equal(t, merge.ChooseTheirs, r.Choice)
	assert.Equal(t, merge.Cursor{}, app.session.Cursor())
	assert.False(t, app.session.CanComplete())

	app, _ = press(t, app, "j")
	app, _ = press(t, app, "b")
	r, ok = app.session.ResolutionFor(0, 1)
	require.True(t, ok)
	assert.Equal(t, merge.ChooseBoth, r.Choice)
	assert.True(t, app.session.CanComplete())
}

func TestHunkNavigationCrossesFiles(t *testing.T) {
	app, fake, dir := newTestApp(t)
	writeFile(t, dir, ".git/MERGE_HEAD", theirsCommit+"\n")
	writeFile(t, dir, "alpha.go", conflictText("a", "b"))
	writeFile(t, dir, "beta.go", conflictText("c", "d"))

	fake.stub("diff --name-only --diff-filter=U", "alpha.go\nbeta.go\n", nil)
	fake.stub("rev-parse HEAD", oursCommit+"\n", nil)
	app = refresh(t, app)
	require.Equal(t, ModeMergeReview, app.mode)

	app, _ = press(t, app, "j")
	assert.Equal(t, merge.Cursor{File: 1, Hunk: 0}, app.session.Cursor())

	app, _ = press(t, app, "k")
	assert.Equal(t, merge.Cursor{File: 0, Hunk: 0}, app.session.Cursor())

	app, _ = press(t, app, "tab")
	assert.Equal(t, merge.Cursor{File: 1, Hunk: 0}, app.session.Cursor())

	app, _ = press(t, app, "k")
	app, _ = press(t, app, "n")
	assert.Equal(t, merge.Cursor{File: 1, Hunk: 0}, app.session.Cursor())
}

func TestManualEditRoundTrip(t *testing.T) {
	app, _, _ := mergeFixture(t)

	app, _ = press(t, app, "e")
	require.Equal(t, ModeMergeEdit, app.mode)
	assert.Equal(t, "ours line\ntheirs line", app.merge.editor.Value())

	app, _ = press(t, app, "ctrl+s")
	assert.Equal(t, ModeMergeReview, app.mode)

	r, ok := app.session.ResolutionFor(0, 0)
	require.True(t, ok)
	assert.Equal(t, merge.ManualEdit, r.Choice)
	assert.Equal(t, "ours line\ntheirs line", r.Text)

	// Reopening prefills from the recorded text, not the hunk sides.
	app, _ = press(t, app, "e")
	assert.Equal(t, "ours line\ntheirs line", app.merge.editor.Value())
}

func TestEditorEscapeDiscards(t *testing.T) {
	app, _, _ := mergeFixture(t)

	app, _ = press(t, app, "e")
	require.Equal(t, ModeMergeEdit, app.mode)

	app, _ = press(t, app, "esc")
	assert.Equal(t, ModeMergeReview, app.mode)
	_, ok := app.session.ResolutionFor(0, 0)
	assert.False(t, ok)
}

func TestApplyRewritesWorkingTree(t *testing.T) {
	app, fake, dir := mergeFixture(t)

	app, _ = press(t, app, "o")
	app, _ = press(t, app, "a")

	content, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "header\nours line\nfooter\n", string(content))

	assert.Contains(t, fake.calls, "add -- main.go")
	require.NotNil(t, app.merge.lastReport)
	assert.True(t, app.merge.lastReport.Files[0].Staged)
	assert.Equal(t, ModeMergeReview, app.mode)
}

func TestCompleteRefusedWhileUnresolved(t *testing.T) {
	app, _, _ := mergeFixture(t)

	app, _ = press(t, app, "C")
	assert.False(t, app.merge.completing)
	assert.Contains(t, app.message, "unresolved")
}

func TestCompleteFlowCreatesMergeCommit(t *testing.T) {
	app, fake, dir := mergeFixture(t)

	app, _ = press(t, app, "o")

	fake.stub("rev-parse --abbrev-ref HEAD", "main\n", nil)
	app, _ = press(t, app, "C")
	require.True(t, app.merge.completing)
	assert.Equal(t, "Merge commit 22222222 into main", app.merge.completeInput.Value())

	fake.stub("rev-parse HEAD", oursCommit+"\n", nil)
	fake.stub("write-tree", treeID+"\n", nil)
	fake.stub("commit-tree", mergeCommit+"\n", nil)

	app, cmd := press(t, app, "enter")
	assert.Equal(t, ModeStatus, app.mode)
	assert.Contains(t, app.message, "merge completed as 33333333")
	assert.False(t, app.session.Active())
	assert.NotNil(t, cmd)

	assert.Contains(t, fake.calls, "update-ref HEAD "+mergeCommit)
	_, err := os.Stat(filepath.Join(dir, ".git", "MERGE_HEAD"))
	assert.True(t, os.IsNotExist(err))
}

func TestAbortArmsConfirmation(t *testing.T) {
	app, _, _ := mergeFixture(t)

	app, cmd := press(t, app, "A")
	assert.True(t, app.merge.aborting)
	assert.NotNil(t, app.merge.abortForm)
	assert.NotNil(t, cmd)
	assert.Contains(t, app.helpLine(), "abort")
}

func TestVanishedMergeReleasesReview(t *testing.T) {
	app, _, dir := mergeFixture(t)

	require.NoError(t, os.Remove(filepath.Join(dir, ".git", "MERGE_HEAD")))
	app = refresh(t, app)

	assert.Equal(t, ModeStatus, app.mode)
	assert.False(t, app.session.Active())
	assert.Contains(t, app.message, "no conflicted files left")
}

func TestSwitchModeLoadsData(t *testing.T) {
	app, _, _ := newTestApp(t)

	app, cmd := press(t, app, "2")
	assert.Equal(t, ModeLog, app.mode)
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	app = model.(App)
	assert.Empty(t, app.log.commits)
	assert.False(t, app.isError)
}

func TestStatusLoadedPopulatesHeader(t *testing.T) {
	app, _, _ := newTestApp(t)

	model, _ := app.Update(statusLoadedMsg{status: &git.RepoStatus{
		CurrentBranch: "main",
		UnstagedFiles: []git.FileStatus{{Path: "main.go", Status: "M", WorkTree: true}},
	}})
	app = model.(App)

	view := app.View()
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "Unstaged (1)")
}

func TestSpaceTogglesStagingByPanel(t *testing.T) {
	app, fake, _ := newTestApp(t)

	model, _ := app.Update(statusLoadedMsg{status: &git.RepoStatus{
		CurrentBranch: "main",
		UnstagedFiles: []git.FileStatus{{Path: "main.go", Status: "M", WorkTree: true}},
		StagedFiles:   []git.FileStatus{{Path: "util.go", Status: "A", Staged: true}},
	}})
	app = model.(App)

	app, cmd := press(t, app, "space")
	require.NotNil(t, cmd)
	cmd()
	assert.Contains(t, fake.calls, "add -- main.go")

	app, _ = press(t, app, "tab")
	_, cmd = press(t, app, "space")
	require.NotNil(t, cmd)
	cmd()
	assert.Contains(t, fake.calls, "restore --staged -- util.go")
}

func TestMergeBannerAfterEverythingStaged(t *testing.T) {
	app, _, _ := newTestApp(t)

	model, _ := app.Update(statusLoadedMsg{status: &git.RepoStatus{
		CurrentBranch:   "main",
		MergeInProgress: true,
	}})
	app = model.(App)

	assert.Contains(t, app.View(), "All conflicts staged")
}

func TestMergeReviewViewShowsProgress(t *testing.T) {
	app, _, _ := mergeFixture(t)

	view := app.View()
	assert.Contains(t, view, "main.go")
	assert.Contains(t, view, "0 of 1 hunks resolved")

	app, _ = press(t, app, "o")
	assert.Contains(t, app.View(), "ready to complete")
}
