package git

import (
	"strconv"
	"strings"
)

type Stash struct {
	Index   int
	Message string
	Branch  string
	Date    string
}

func (repo *GitRepo) Stash(message string) error {
	_, stderr, err := repo.run("stash", "push", "-m", message)
	return formatCommandError("stash changes", err, stderr)
}

func (repo *GitRepo) StashPop() error {
	_, stderr, err := repo.run("stash", "pop")
	return formatCommandError("pop stash", err, stderr)
}

func (repo *GitRepo) ApplyStash(index int) error {
	_, stderr, err := repo.run("stash", "apply", "stash@{"+strconv.Itoa(index)+"}")
	return formatCommandError("apply stash", err, stderr)
}

func (repo *GitRepo) DeleteStash(index int) error {
	_, stderr, err := repo.run("stash", "drop", "stash@{"+strconv.Itoa(index)+"}")
	return formatCommandError("drop stash", err, stderr)
}

func (repo *GitRepo) GetStashes() ([]Stash, error) {
	stdout, stderr, err := repo.run("stash", "list", "--pretty=format:%gd"+logFieldSep+"%gs"+logFieldSep+"%cr")
	if err != nil {
		return nil, formatCommandError("list stashes", err, stderr)
	}

	var stashes []Stash
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, logFieldSep)
		if len(parts) != 3 {
			continue
		}

		stashes = append(stashes, Stash{
			Index:   parseStashIndex(parts[0]),
			Message: parts[1],
			Branch:  parseStashBranch(parts[1]),
			Date:    parts[2],
		})
	}

	return stashes, nil
}

// parseStashIndex pulls N out of "stash@{N}".
func parseStashIndex(ref string) int {
	open := strings.Index(ref, "{")
	close := strings.Index(ref, "}")
	if open < 0 || close <= open {
		return 0
	}
	n, _ := strconv.Atoi(ref[open+1 : close])
	return n
}

// parseStashBranch pulls the branch out of reflog subjects shaped like
// "WIP on main: abc123 msg" or "On main: msg".
func parseStashBranch(subject string) string {
	rest := subject
	if strings.HasPrefix(rest, "WIP on ") {
		rest = strings.TrimPrefix(rest, "WIP on ")
	} else if strings.HasPrefix(rest, "On ") {
		rest = strings.TrimPrefix(rest, "On ")
	} else {
		return ""
	}

	if idx := strings.Index(rest, ":"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
