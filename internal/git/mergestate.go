package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Transient files git leaves under the git directory while a merge is in
// progress. MERGE_HEAD doubles as the in-progress sentinel.
var mergeStateFiles = []string{"MERGE_HEAD", "MERGE_MSG", "MERGE_MODE", "AUTO_MERGE"}

// GitDir resolves the repository's metadata directory. Worktrees and
// submodules keep a .git *file* pointing elsewhere; follow it.
func (repo *GitRepo) GitDir() (string, error) {
	dotGit := filepath.Join(repo.WorkDir, ".git")

	info, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("not a git repository: %v", err)
	}
	if info.IsDir() {
		return dotGit, nil
	}

	content, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}

	first := strings.TrimSpace(strings.SplitN(string(content), "\n", 2)[0])
	if !strings.HasPrefix(first, "gitdir:") {
		return "", fmt.Errorf(".git file in %s has no gitdir redirect", repo.WorkDir)
	}

	dir := strings.TrimSpace(strings.TrimPrefix(first, "gitdir:"))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repo.WorkDir, dir)
	}
	return dir, nil
}

func (repo *GitRepo) IsMergeInProgress() (bool, error) {
	gitDir, err := repo.GitDir()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadMergeHead returns the trimmed content of MERGE_HEAD: the id of the
// foreign commit being merged. os.IsNotExist distinguishes "no merge in
// progress" from a read failure.
func (repo *GitRepo) ReadMergeHead() (string, error) {
	gitDir, err := repo.GitDir()
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(filepath.Join(gitDir, "MERGE_HEAD"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

// ClearMergeState deletes MERGE_HEAD and the auxiliary merge files.
// Already-missing files are fine.
func (repo *GitRepo) ClearMergeState() error {
	gitDir, err := repo.GitDir()
	if err != nil {
		return err
	}

	for _, name := range mergeStateFiles {
		if err := os.Remove(filepath.Join(gitDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %v", name, err)
		}
	}
	return nil
}

// UnmergedFiles lists paths the index currently flags as conflicted.
func (repo *GitRepo) UnmergedFiles() ([]string, error) {
	stdout, stderr, err := repo.run("diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, formatCommandError("list unmerged files", err, stderr)
	}

	var files []string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// WriteTree writes the current index as a tree object and returns its id.
func (repo *GitRepo) WriteTree() (string, error) {
	stdout, stderr, err := repo.run("write-tree")
	if err != nil {
		return "", formatCommandError("write tree", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

// CommitTree creates a commit object for tree with the given parents and
// returns the new commit id. Nothing is moved to point at it.
func (repo *GitRepo) CommitTree(tree, message string, parents ...string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, parent := range parents {
		args = append(args, "-p", parent)
	}
	args = append(args, "-m", message)

	stdout, stderr, err := repo.run(args...)
	if err != nil {
		return "", formatCommandError("create commit", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

// UpdateHead advances HEAD (and the branch it points at) to commit.
func (repo *GitRepo) UpdateHead(commit string) error {
	_, stderr, err := repo.run("update-ref", "HEAD", commit)
	return formatCommandError("update HEAD", err, stderr)
}

func (repo *GitRepo) ResetHard(ref string) error {
	_, stderr, err := repo.run("reset", "--hard", ref)
	return formatCommandError("reset --hard", err, stderr)
}
