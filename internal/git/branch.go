package git

import (
	"bufio"
	"strings"
)

type Branch struct {
	Name      string
	IsCurrent bool
	IsRemote  bool
	Tracking  string
}

// GetBranches lists local branches first, then remote ones, with the
// checked-out branch marked current.
func (repo *GitRepo) GetBranches(includeRemote bool) ([]Branch, error) {
	args := []string{"branch", "--format=%(refname:short)\t%(HEAD)\t%(upstream:short)"}
	if includeRemote {
		args = []string{"branch", "-a", "--format=%(refname:short)\t%(HEAD)\t%(upstream:short)"}
	}

	stdout, stderr, err := repo.run(args...)
	if err != nil {
		return nil, formatCommandError("get branches", err, stderr)
	}

	var branches []Branch
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, "\t", 3)
		name := strings.TrimSpace(parts[0])
		if name == "" || strings.HasSuffix(name, "/HEAD") {
			continue
		}

		branch := Branch{Name: name}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) == "*" {
			branch.IsCurrent = true
		}
		if len(parts) > 2 {
			branch.Tracking = strings.TrimSpace(parts[2])
		}
		if strings.Contains(name, "/") && strings.HasPrefix(name, "origin/") {
			branch.IsRemote = true
		}

		branches = append(branches, branch)
	}

	return branches, nil
}

func (repo *GitRepo) CreateBranch(branchName string) error {
	_, stderr, err := repo.run("checkout", "-b", branchName)
	return formatCommandError("create branch", err, stderr)
}

func (repo *GitRepo) SwitchBranch(branchName string) error {
	_, stderr, err := repo.run("checkout", branchName)
	return formatCommandError("switch branch", err, stderr)
}

func (repo *GitRepo) DeleteBranch(branchName string) error {
	_, stderr, err := repo.run("branch", "-d", branchName)
	return formatCommandError("delete branch", err, stderr)
}

// Merge merges branchName into the current branch. A merge that stops on
// conflicts is not an error here: it reports conflicted=true and leaves
// the repository in the in-progress merge state for the conflict pipeline
// to pick up on the next refresh.
func (repo *GitRepo) Merge(branchName string) (conflicted bool, err error) {
	stdout, stderr, err := repo.run("merge", branchName)
	if err != nil {
		if strings.Contains(stdout, "CONFLICT") || strings.Contains(stderr, "CONFLICT") ||
			strings.Contains(stdout, "Automatic merge failed") {
			return true, nil
		}
		return false, formatCommandError("merge", err, stderr)
	}
	return false, nil
}
