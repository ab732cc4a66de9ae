package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileResult reports what happened to one file during Apply.
type FileResult struct {
	Path      string
	Resolved  int // hunks replaced by their recorded resolution
	Remaining int // hunks left in place, markers and all
	Staged    bool
	Err       error
}

// ApplyReport collects per-file outcomes of one apply pass. Writes are
// independent: a file failing does not roll back the ones already
// rewritten.
type ApplyReport struct {
	Files []FileResult
}

// Failed returns the results that carry an error.
func (r *ApplyReport) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// OK reports whether every file was written and staged cleanly.
func (r *ApplyReport) OK() bool {
	return len(r.Failed()) == 0
}

type plannedWrite struct {
	path      string
	text      string
	resolved  int
	remaining int
	mode      os.FileMode
}

// Apply rewrites every conflicted file per the recorded resolutions and
// re-stages the ones that come out clean. It runs in two phases: first
// every file is read and its replacement computed, so a read failure
// aborts before a single write; then all writes and staging happen,
// collecting per-file results. Hunks without a resolution are emitted
// verbatim, markers included, and keep their file out of the index so a
// later pass still sees it as conflicted.
func (s *Session) Apply() (*ApplyReport, error) {
	if s.conflict == nil {
		return nil, fmt.Errorf("%w: no conflict snapshot to apply", ErrState)
	}
	for _, entry := range s.resolutions {
		if entry.generation != s.conflict.Generation {
			return nil, fmt.Errorf("%w: resolution recorded against a stale snapshot", ErrState)
		}
	}

	plans := make([]plannedWrite, 0, len(s.conflict.Files))
	for _, file := range s.conflict.Files {
		full := filepath.Join(s.repo.WorkDir, file.Path)

		mode := os.FileMode(0o644)
		if info, err := os.Stat(full); err == nil {
			mode = info.Mode()
		}

		content, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrIO, file.Path, err)
		}

		text, resolved, remaining := s.resolveFileText(string(content), file)
		plans = append(plans, plannedWrite{
			path:      file.Path,
			text:      text,
			resolved:  resolved,
			remaining: remaining,
			mode:      mode,
		})
	}

	report := &ApplyReport{}
	for _, plan := range plans {
		result := FileResult{Path: plan.path, Resolved: plan.resolved, Remaining: plan.remaining}

		full := filepath.Join(s.repo.WorkDir, plan.path)
		if err := os.WriteFile(full, []byte(plan.text), plan.mode); err != nil {
			result.Err = fmt.Errorf("%w: write %s: %v", ErrIO, plan.path, err)
			report.Files = append(report.Files, result)
			continue
		}

		// Staging a file that still carries markers would drop it from
		// the unmerged set and hide it from the next detection pass, so
		// only fully resolved files are re-staged.
		if plan.remaining == 0 {
			if err := s.repo.StageFile(plan.path); err != nil {
				result.Err = fmt.Errorf("%w: %v", ErrBackend, err)
			} else {
				result.Staged = true
			}
		}

		report.Files = append(report.Files, result)
	}

	return report, nil
}

// resolveFileText re-scans content, replacing each marker block that has a
// resolution and passing everything else through untouched. Blocks are
// matched to the snapshot's hunks by encounter order, the same order the
// parser assigned them.
func (s *Session) resolveFileText(content string, file ConflictedFile) (string, int, int) {
	lines := strings.Split(content, "\n")

	var out []string
	resolved, remaining := 0, 0
	counter := -1

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, markerStart) {
			out = append(out, line)
			continue
		}

		counter++
		if counter < len(file.Hunks) {
			if r, ok := s.resolutionAt(file, counter); ok {
				end := i
				for end < len(lines) && !strings.HasPrefix(lines[end], markerEnd) {
					end++
				}
				if end < len(lines) {
					out = append(out, strings.Split(file.Hunks[counter].Resolved(r), "\n")...)
					resolved++
					i = end
					continue
				}
			}
		}

		remaining++
		out = append(out, line)
	}

	return strings.Join(out, "\n"), resolved, remaining
}
