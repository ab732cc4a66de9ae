package git

import (
	"strconv"
	"strings"
	"time"
)

type Commit struct {
	ID      string
	Summary string
	Author  string
	When    time.Time
	Parents []string
}

func (c Commit) ShortID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// Field/record separators keep the parse safe against any printable
// characters in commit subjects.
const (
	logFieldSep  = "\x1f"
	logRecordSep = "\x1e"
)

func (repo *GitRepo) GetCommits(count int) ([]Commit, error) {
	format := "%H" + logFieldSep + "%an" + logFieldSep + "%at" + logFieldSep + "%P" + logFieldSep + "%s" + logRecordSep
	stdout, stderr, err := repo.run("log", "-n", strconv.Itoa(count), "--pretty=format:"+format)
	if err != nil {
		return nil, formatCommandError("read log", err, stderr)
	}

	var commits []Commit
	for _, record := range strings.Split(stdout, logRecordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.Split(record, logFieldSep)
		if len(fields) != 5 {
			continue
		}

		unix, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			continue
		}

		commits = append(commits, Commit{
			ID:      fields[0],
			Author:  fields[1],
			When:    time.Unix(unix, 0),
			Parents: strings.Fields(fields[3]),
			Summary: fields[4],
		})
	}

	return commits, nil
}
