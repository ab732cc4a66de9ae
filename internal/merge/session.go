package merge

import (
	"github.com/asian-mario/git-hydra/internal/git"
)

// resolutionEntry stamps an assignment with the snapshot generation it was
// made against, so an entry that outlives its snapshot is rejected instead
// of silently resolving the wrong hunk.
type resolutionEntry struct {
	resolution Resolution
	generation uint64
}

// Session owns one repository's conflict state: the current snapshot, the
// per-hunk resolution assignments, and the review cursor. Every pipeline
// operation (Detect, Apply, Complete, Abort) hangs off it; nothing lives
// in package globals, so a session is fully drivable from tests.
type Session struct {
	repo        *git.GitRepo
	conflict    *MergeConflict
	resolutions map[hunkKey]resolutionEntry
	generation  uint64
	cursor      Cursor
}

func NewSession(repo *git.GitRepo) *Session {
	return &Session{
		repo:        repo,
		resolutions: make(map[hunkKey]resolutionEntry),
	}
}

// Conflict returns the current snapshot, nil when no merge is under review.
func (s *Session) Conflict() *MergeConflict {
	return s.conflict
}

// Active reports whether a merge is under review.
func (s *Session) Active() bool {
	return s.conflict != nil
}

// replace installs a new snapshot (or none) and drops every resolution and
// the cursor with it: assignments keyed against the old snapshot must not
// survive into the new one.
func (s *Session) replace(conflict *MergeConflict) {
	s.conflict = conflict
	s.resolutions = make(map[hunkKey]resolutionEntry)
	s.cursor = Cursor{}
}

// Clear drops all conflict state, returning the session to "no merge".
func (s *Session) Clear() {
	s.replace(nil)
}

// SetResolution records the resolution for the hunk addressed by indices
// into the current snapshot. Re-resolving overwrites. The cursor never
// moves; stepping to the next hunk is the caller's call.
func (s *Session) SetResolution(fileIdx, hunkIdx int, r Resolution) {
	file := s.conflict.Files[fileIdx]
	key := keyFor(file.Path, hunkIdx, file.Hunks[hunkIdx])
	s.resolutions[key] = resolutionEntry{resolution: r, generation: s.conflict.Generation}
}

// ResolutionFor reports the recorded resolution for a hunk, if any.
func (s *Session) ResolutionFor(fileIdx, hunkIdx int) (Resolution, bool) {
	if s.conflict == nil {
		return Resolution{}, false
	}
	return s.resolutionAt(s.conflict.Files[fileIdx], hunkIdx)
}

func (s *Session) resolutionAt(file ConflictedFile, ordinal int) (Resolution, bool) {
	entry, ok := s.resolutions[keyFor(file.Path, ordinal, file.Hunks[ordinal])]
	if !ok || entry.generation != s.conflict.Generation {
		return Resolution{}, false
	}
	return entry.resolution, true
}

// CanComplete is true once every hunk of every file has a resolution.
func (s *Session) CanComplete() bool {
	if s.conflict == nil {
		return false
	}
	return s.Unresolved() == 0
}

// Unresolved counts hunks that still need a decision.
func (s *Session) Unresolved() int {
	if s.conflict == nil {
		return 0
	}
	count := 0
	for _, file := range s.conflict.Files {
		for hi := range file.Hunks {
			if _, ok := s.resolutionAt(file, hi); !ok {
				count++
			}
		}
	}
	return count
}

// unresolvedPaths lists the files that still carry undecided hunks.
func (s *Session) unresolvedPaths() []string {
	var paths []string
	for _, file := range s.conflict.Files {
		for hi := range file.Hunks {
			if _, ok := s.resolutionAt(file, hi); !ok {
				paths = append(paths, file.Path)
				break
			}
		}
	}
	return paths
}
