package merge

import "errors"

// Failure taxonomy for the conflict pipeline. Operations wrap these with
// context via fmt.Errorf and %w; callers branch with errors.Is. Nothing
// here is fatal; every failure leaves the session retryable.
var (
	// ErrNotFound covers a missing or malformed merge sentinel and
	// conflicted files that cannot be read.
	ErrNotFound = errors.New("not found")

	// ErrParseIncomplete marks a truncated conflict block. The parser
	// drops such blocks silently rather than raising this; it exists for
	// callers that re-scan content themselves.
	ErrParseIncomplete = errors.New("conflict block incomplete")

	// ErrIO covers working-tree read/write failures during apply.
	ErrIO = errors.New("file access failed")

	// ErrState covers stale resolution assignments and merge state that
	// shifted between detection and finalization.
	ErrState = errors.New("merge state changed")

	// ErrBackend wraps failures of the underlying git operations.
	ErrBackend = errors.New("git operation failed")

	// ErrPrecondition is returned by Complete while hunks remain
	// unresolved.
	ErrPrecondition = errors.New("unresolved conflicts remain")
)
