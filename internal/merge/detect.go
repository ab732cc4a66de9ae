package merge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Detect decides whether a merge is in progress and, if so, builds a fresh
// snapshot of every conflicted file. Absence of the MERGE_HEAD sentinel
// short-circuits to (nil, nil) without running anything else. A successful
// pass always replaces the session's snapshot, including replacing it with
// nothing; a failed pass leaves prior state untouched.
func (s *Session) Detect() (*MergeConflict, error) {
	theirCommit, err := s.repo.ReadMergeHead()
	if err != nil {
		if os.IsNotExist(err) {
			s.replace(nil)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: merge sentinel unreadable: %v", ErrNotFound, err)
	}
	if !isCommitID(theirCommit) {
		return nil, fmt.Errorf("%w: merge sentinel %q is not a commit id", ErrNotFound, theirCommit)
	}

	paths, err := s.repo.UnmergedFiles()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	var files []ConflictedFile
	for _, path := range paths {
		content, err := os.ReadFile(filepath.Join(s.repo.WorkDir, path))
		if err != nil {
			if os.IsNotExist(err) {
				// Delete conflicts have no working-tree file and no
				// marker blocks to review.
				continue
			}
			return nil, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
		}

		hunks := ParseConflicts(string(content))
		if len(hunks) == 0 {
			continue
		}
		files = append(files, ConflictedFile{Path: path, Hunks: hunks})
	}

	if len(files) == 0 {
		s.replace(nil)
		return nil, nil
	}

	ourCommit, err := s.repo.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	s.generation++
	conflict := &MergeConflict{
		Files:       files,
		OurCommit:   ourCommit,
		TheirCommit: theirCommit,
		Generation:  s.generation,
	}
	s.replace(conflict)
	return conflict, nil
}

// isCommitID reports whether s is a full hex object id, SHA-1 or SHA-256
// sized.
func isCommitID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
