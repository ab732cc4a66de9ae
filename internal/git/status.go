package git

import (
	"bufio"
	"strconv"
	"strings"
)

type FileStatus struct {
	Path     string
	Status   string // M(odified), A(dded), D(eleted), R(enamed), ?(untracked)
	Staged   bool
	WorkTree bool
}

// FileStatuses buckets the porcelain output. Unmerged paths are kept
// separate: they belong to the conflict pipeline, not the stage/unstage
// panels.
type FileStatuses struct {
	Staged    []FileStatus
	Unstaged  []FileStatus
	Untracked []FileStatus
	Unmerged  []string
}

type RepoStatus struct {
	CurrentBranch   string
	Ahead           int
	Behind          int
	StagedFiles     []FileStatus
	UnstagedFiles   []FileStatus
	UntrackedFiles  []FileStatus
	UnmergedPaths   []string
	MergeInProgress bool
	Stashes         []Stash
	LastCommit      *Commit
}

func (repo *GitRepo) GetFileStatuses() (*FileStatuses, error) {
	stdout, stderr, err := repo.run("status", "--porcelain=v1")
	if err != nil {
		return nil, formatCommandError("get status", err, stderr)
	}
	return parsePorcelain(stdout), nil
}

func parsePorcelain(output string) *FileStatuses {
	statuses := &FileStatuses{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 4 {
			continue
		}

		stageStatus := string(line[0])
		workTreeStatus := string(line[1])
		filePath := strings.TrimSpace(line[3:])

		// Renames are reported as "old -> new"; the new name is the one
		// that exists on disk.
		if idx := strings.Index(filePath, " -> "); idx >= 0 {
			filePath = filePath[idx+4:]
		}

		// Git quotes filenames with special characters - remove the quotes
		if strings.HasPrefix(filePath, "\"") && strings.HasSuffix(filePath, "\"") {
			filePath = filePath[1 : len(filePath)-1]
		}

		if isUnmergedCode(stageStatus + workTreeStatus) {
			statuses.Unmerged = append(statuses.Unmerged, filePath)
			continue
		}

		if stageStatus == "?" {
			statuses.Untracked = append(statuses.Untracked, FileStatus{
				Path:     filePath,
				Status:   "?",
				WorkTree: true,
			})
			continue
		}

		if stageStatus != " " {
			statuses.Staged = append(statuses.Staged, FileStatus{
				Path:   filePath,
				Status: stageStatus,
				Staged: true,
			})
		}

		if workTreeStatus != " " {
			statuses.Unstaged = append(statuses.Unstaged, FileStatus{
				Path:     filePath,
				Status:   workTreeStatus,
				WorkTree: true,
			})
		}
	}

	return statuses
}

func isUnmergedCode(xy string) bool {
	switch xy {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return true
	}
	return false
}

// AheadBehind reports how far branch is ahead of and behind its origin
// counterpart. A branch with no upstream counts as (0, 0).
func (repo *GitRepo) AheadBehind(branch string) (int, int, error) {
	upstream := "origin/" + branch
	if _, _, err := repo.run("rev-parse", "--verify", "--quiet", upstream); err != nil {
		return 0, 0, nil
	}

	stdout, stderr, err := repo.run("rev-list", "--left-right", "--count", branch+"..."+upstream)
	if err != nil {
		return 0, 0, formatCommandError("count ahead/behind", err, stderr)
	}

	fields := strings.Fields(strings.TrimSpace(stdout))
	if len(fields) != 2 {
		return 0, 0, nil
	}
	ahead, _ := strconv.Atoi(fields[0])
	behind, _ := strconv.Atoi(fields[1])
	return ahead, behind, nil
}

// GetRepositoryStatus assembles the full snapshot the status view renders.
// Every refresh builds a new one; nothing is patched in place.
func (repo *GitRepo) GetRepositoryStatus() (*RepoStatus, error) {
	branch, err := repo.GetCurrentBranch()
	if err != nil {
		return nil, err
	}

	ahead, behind, err := repo.AheadBehind(branch)
	if err != nil {
		return nil, err
	}

	files, err := repo.GetFileStatuses()
	if err != nil {
		return nil, err
	}

	stashes, err := repo.GetStashes()
	if err != nil {
		return nil, err
	}

	merging, err := repo.IsMergeInProgress()
	if err != nil {
		merging = false
	}

	status := &RepoStatus{
		CurrentBranch:   branch,
		Ahead:           ahead,
		Behind:          behind,
		StagedFiles:     files.Staged,
		UnstagedFiles:   files.Unstaged,
		UntrackedFiles:  files.Untracked,
		UnmergedPaths:   files.Unmerged,
		MergeInProgress: merging,
		Stashes:         stashes,
	}

	if commits, err := repo.GetCommits(1); err == nil && len(commits) > 0 {
		status.LastCommit = &commits[0]
	}

	return status, nil
}

func (repo *GitRepo) GetModifiedFiles() ([]string, error) {
	stdout, stderr, err := repo.run("status", "--porcelain")
	if err != nil {
		return nil, formatCommandError("get status", err, stderr)
	}

	var files []string
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 3 {
			files = append(files, strings.TrimSpace(line[2:]))
		}
	}
	return files, nil
}

func (repo *GitRepo) AddFiles(files []string) error {
	if len(files) == 0 {
		return nil
	}

	args := append([]string{"add", "--"}, files...)
	_, stderr, err := repo.run(args...)
	return formatCommandError("add files", err, stderr)
}

func (repo *GitRepo) StageFile(path string) error {
	return repo.AddFiles([]string{path})
}

func (repo *GitRepo) StageAllFiles() error {
	_, stderr, err := repo.run("add", "-A")
	return formatCommandError("stage all", err, stderr)
}

func (repo *GitRepo) UnstageFile(path string) error {
	_, stderr, err := repo.run("restore", "--staged", "--", path)
	return formatCommandError("unstage file", err, stderr)
}

// DiscardChanges throws away local modifications to path. Untracked files
// are removed outright.
func (repo *GitRepo) DiscardChanges(path, status string) error {
	if status == "?" {
		_, stderr, err := repo.run("clean", "-f", "--", path)
		return formatCommandError("remove untracked file", err, stderr)
	}
	_, stderr, err := repo.run("restore", "--", path)
	return formatCommandError("discard changes", err, stderr)
}
