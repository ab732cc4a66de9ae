package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initBareLayout(t *testing.T) (*GitRepo, string) {
	t.Helper()
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.Mkdir(gitDir, 0o755))
	return New(dir), gitDir
}

func TestGitDir_Directory(t *testing.T) {
	repo, gitDir := initBareLayout(t)

	got, err := repo.GitDir()
	require.NoError(t, err)
	assert.Equal(t, gitDir, got)
}

func TestGitDir_WorktreeRedirect(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "repo", ".git", "worktrees", "wt")
	require.NoError(t, os.MkdirAll(real, 0o755))

	workDir := filepath.Join(root, "wt")
	require.NoError(t, os.Mkdir(workDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".git"), []byte("gitdir: "+real+"\n"), 0o644))

	repo := New(workDir)
	got, err := repo.GitDir()
	require.NoError(t, err)
	assert.Equal(t, real, got)
}

func TestGitDir_RelativeRedirect(t *testing.T) {
	root := t.TempDir()
	real := filepath.Join(root, "meta")
	require.NoError(t, os.MkdirAll(real, 0o755))

	workDir := filepath.Join(root, "wt")
	require.NoError(t, os.Mkdir(workDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".git"), []byte("gitdir: ../meta\n"), 0o644))

	repo := New(workDir)
	got, err := repo.GitDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "..", "meta"), got)
}

func TestGitDir_NotARepo(t *testing.T) {
	repo := New(t.TempDir())
	_, err := repo.GitDir()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestIsMergeInProgress(t *testing.T) {
	repo, gitDir := initBareLayout(t)

	merging, err := repo.IsMergeInProgress()
	require.NoError(t, err)
	assert.False(t, merging)

	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "MERGE_HEAD"), []byte("abc\n"), 0o644))

	merging, err = repo.IsMergeInProgress()
	require.NoError(t, err)
	assert.True(t, merging)
}

func TestReadMergeHead_Trims(t *testing.T) {
	repo, gitDir := initBareLayout(t)
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "MERGE_HEAD"), []byte("  f00dcafe\n\n"), 0o644))

	id, err := repo.ReadMergeHead()
	require.NoError(t, err)
	assert.Equal(t, "f00dcafe", id)
}

func TestReadMergeHead_Missing(t *testing.T) {
	repo, _ := initBareLayout(t)

	_, err := repo.ReadMergeHead()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestClearMergeState_RemovesAll(t *testing.T) {
	repo, gitDir := initBareLayout(t)
	for _, name := range mergeStateFiles {
		require.NoError(t, os.WriteFile(filepath.Join(gitDir, name), []byte("x"), 0o644))
	}

	require.NoError(t, repo.ClearMergeState())
	for _, name := range mergeStateFiles {
		_, err := os.Stat(filepath.Join(gitDir, name))
		assert.True(t, os.IsNotExist(err), name)
	}

	// Second run finds nothing to remove and succeeds.
	require.NoError(t, repo.ClearMergeState())
}

func TestUnmergedFiles(t *testing.T) {
	runner := newFakeRunner()
	runner.stub("diff --name-only --diff-filter=U", "a.go\nsub/b.go\n", nil)
	useRunner(t, runner)

	repo := New(t.TempDir())
	files, err := repo.UnmergedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "sub/b.go"}, files)
}

func TestCommitTree_BuildsParentArgs(t *testing.T) {
	runner := newFakeRunner()
	runner.stub("commit-tree", "new-commit-id\n", nil)
	useRunner(t, runner)

	repo := New(t.TempDir())
	id, err := repo.CommitTree("tree-id", "merge it", "parent-a", "parent-b")
	require.NoError(t, err)
	assert.Equal(t, "new-commit-id", id)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "commit-tree tree-id -p parent-a -p parent-b -m merge it", runner.calls[0])
}
