package merge

import (
	"fmt"

	xstrings "github.com/charmbracelet/x/exp/strings"
)

// Complete finishes the merge: the staged tree becomes a commit with two
// parents, the current branch tip first and the merged-in commit second,
// HEAD moves to it, and the transient merge files are removed. The
// precondition is total coverage, every hunk resolved, and checking it
// has no side effects. Failures on the git side leave the merge state in
// place so the operation can be retried.
func (s *Session) Complete(message string) (string, error) {
	if s.conflict == nil {
		return "", fmt.Errorf("%w: no merge in progress", ErrState)
	}
	if !s.CanComplete() {
		return "", fmt.Errorf("%w in %s", ErrPrecondition, xstrings.EnglishJoin(s.unresolvedPaths(), true))
	}

	// The sentinel is re-read rather than trusted from the snapshot: if
	// another process finished or aborted the merge underneath us, the
	// commit must not be built from stale parents.
	theirCommit, err := s.repo.ReadMergeHead()
	if err != nil {
		return "", fmt.Errorf("%w: merge sentinel unreadable: %v", ErrState, err)
	}
	if theirCommit != s.conflict.TheirCommit {
		return "", fmt.Errorf("%w: merge head moved from %s to %s", ErrState, s.conflict.TheirCommit, theirCommit)
	}

	ourCommit, err := s.repo.HeadCommit()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	tree, err := s.repo.WriteTree()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	commit, err := s.repo.CommitTree(tree, message, ourCommit, theirCommit)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if err := s.repo.UpdateHead(commit); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if err := s.repo.ClearMergeState(); err != nil {
		return "", fmt.Errorf("%w: merge commit %s created but state cleanup failed: %v", ErrState, commit, err)
	}

	s.Clear()
	return commit, nil
}

// Abort rolls the working tree and index back to the branch tip, throwing
// away everything the merge touched, then removes the transient merge
// files. A failed reset leaves all state in place for a retry.
func (s *Session) Abort() error {
	if s.conflict == nil {
		return fmt.Errorf("%w: no merge in progress", ErrState)
	}

	if err := s.repo.ResetHard("HEAD"); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	if err := s.repo.ClearMergeState(); err != nil {
		return fmt.Errorf("%w: working tree reset but state cleanup failed: %v", ErrState, err)
	}

	s.Clear()
	return nil
}
