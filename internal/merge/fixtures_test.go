package merge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asian-mario/git-hydra/internal/git"
)

const (
	oursCommit   = "1111111111111111111111111111111111111111"
	theirsCommit = "2222222222222222222222222222222222222222"
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

func newFakeRunner() *fakeRunner {
	return &fakeRunner{}
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

func useRunner(t *testing.T, runner git.Runner) {
	t.Helper()
	prev := git.DefaultRunner()
	git.SetDefaultRunner(runner)
	t.Cleanup(func() {
		git.SetDefaultRunner(prev)
	})
}

// conflictBlock renders one marker block the way git writes them.
func conflictBlock(ours, theirs string) string {
	return "<<<<<<< HEAD\n" + ours + "\n=======\n" + theirs + "\n>>>>>>> feature\n"
}

// initMergeRepo lays out a working tree mid-merge: a real .git directory
// holding a MERGE_HEAD sentinel, ready for conflicted files.
func initMergeRepo(t *testing.T) (string, *fakeRunner, *Session) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeMergeHead(t, dir, theirsCommit)

	fake := newFakeRunner()
	useRunner(t, fake)

	return dir, fake, NewSession(git.New(dir))
}

func writeMergeHead(t *testing.T, dir, commit string) {
	t.Helper()
	path := filepath.Join(dir, ".git", "MERGE_HEAD")
	require.NoError(t, os.WriteFile(path, []byte(commit+"\n"), 0o644))
}

func writeWorkFile(t *testing.T, dir, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, path), []byte(content), 0o644))
}

func readWorkFile(t *testing.T, dir, path string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	return string(content)
}

// mustDetect stubs the calls Detect makes and requires it to find a
// conflict.
func mustDetect(t *testing.T, fake *fakeRunner, session *Session, unmerged ...string) *MergeConflict {
	t.Helper()

	fake.stub("diff --name-only --diff-filter=U", strings.Join(unmerged, "\n")+"\n", nil)
	fake.stub("rev-parse HEAD", oursCommit+"\n", nil)

	conflict, err := session.Detect()
	require.NoError(t, err)
	require.NotNil(t, conflict)
	return conflict
}

// resolveAll records a KeepOurs resolution for every hunk in the snapshot.
func resolveAll(session *Session) {
	conflict := session.Conflict()
	for fi, file := range conflict.Files {
		for hi := range file.Hunks {
			session.SetResolution(fi, hi, Resolution{Choice: ChooseOurs})
		}
	}
}
