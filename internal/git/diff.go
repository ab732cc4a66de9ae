package git

import "strings"

// GetFileDiff shows the unified diff for one file: index vs working tree
// for unstaged entries, HEAD vs index for staged ones. Color codes are kept
// so the viewport can render git's own highlighting.
func (repo *GitRepo) GetFileDiff(filePath string, staged bool) (string, error) {
	var args []string
	if staged {
		args = []string{"diff", "--staged", "--color=always", "--", filePath}
	} else {
		args = []string{"diff", "--color=always", "--", filePath}
	}

	stdout, _, err := repo.run(args...)
	if err == nil && len(stdout) > 0 {
		return stdout, nil
	}

	// Deleted files need an explicit HEAD comparison.
	stdout, _, err = repo.run("diff", "HEAD", "--color=always", "--", filePath)
	if err == nil && len(stdout) > 0 {
		return stdout, nil
	}

	stdout, _, err = repo.run("status", "--porcelain", "--", filePath)
	if err == nil {
		status := strings.TrimSpace(stdout)
		if strings.HasPrefix(status, "D ") {
			return "File was deleted:\n--- " + filePath + "\n+++ /dev/null", nil
		}
		if strings.HasPrefix(status, "??") {
			return "New untracked file:\n--- /dev/null\n+++ " + filePath, nil
		}
	}

	return "No differences to show for this file.", nil
}
