package git

import (
	"fmt"
	"strings"
)

type GitRepo struct {
	WorkDir string
}

func New(workDir string) *GitRepo {
	return &GitRepo{WorkDir: workDir}
}

func (repo *GitRepo) run(args ...string) (string, string, error) {
	return defaultRunner.Run(repo.WorkDir, args...)
}

func formatCommandError(operation string, err error, stderr string) error {
	if err == nil {
		return nil
	}
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return fmt.Errorf("%s failed: %v", operation, err)
	}
	return fmt.Errorf("%s failed: %v: %s", operation, err, msg)
}

func (repo *GitRepo) GetCurrentBranch() (string, error) {
	stdout, stderr, err := repo.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", formatCommandError("get current branch", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

// HeadCommit returns the full id of the current branch tip.
func (repo *GitRepo) HeadCommit() (string, error) {
	stdout, stderr, err := repo.run("rev-parse", "HEAD")
	if err != nil {
		return "", formatCommandError("resolve HEAD", err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

func (repo *GitRepo) Commit(message string) error {
	_, stderr, err := repo.run("commit", "-m", message)
	return formatCommandError("commit", err, stderr)
}

func (repo *GitRepo) Fetch() error {
	_, stderr, err := repo.run("fetch", "origin")
	return formatCommandError("fetch", err, stderr)
}

func (repo *GitRepo) Push() error {
	currentBranch, err := repo.GetCurrentBranch()
	if err != nil {
		return err
	}

	_, stderr, err := repo.run("push", "origin", currentBranch)
	return formatCommandError("push", err, stderr)
}

// Pull fetches origin and fast-forwards the current branch. A pull that
// would need a real merge commit fails without touching the working tree;
// the caller is expected to start an explicit merge instead.
func (repo *GitRepo) Pull() error {
	currentBranch, err := repo.GetCurrentBranch()
	if err != nil {
		return err
	}

	if err := repo.Fetch(); err != nil {
		return err
	}

	_, stderr, err := repo.run("merge", "--ff-only", "origin/"+currentBranch)
	if err != nil {
		if strings.Contains(stderr, "fast-forward") {
			return fmt.Errorf("manual merge required: %q has diverged from origin, merge it from the branches view", currentBranch)
		}
		return formatCommandError("pull", err, stderr)
	}
	return nil
}

func (repo *GitRepo) IsClean() (bool, error) {
	stdout, stderr, err := repo.run("status", "--porcelain")
	if err != nil {
		return false, formatCommandError("get status", err, stderr)
	}
	return len(stdout) == 0, nil
}
