package merge

import (
	"github.com/mitchellh/hashstructure/v2"
)

// ResolutionChoice selects which side of a conflict hunk survives.
type ResolutionChoice int

const (
	ChooseOurs ResolutionChoice = iota
	ChooseTheirs
	ChooseBoth
	ManualEdit
)

// Resolution pairs a choice with its replacement text. Text is only
// consulted for ManualEdit and is used verbatim.
type Resolution struct {
	Choice ResolutionChoice
	Text   string
}

// ConflictHunk is one marker block found in a conflicted file. StartLine
// and EndLine are the 0-based line indices of the start and end markers,
// so EndLine > StartLine always holds. Content fields carry no marker
// lines. Hunks are built once by the parser and never mutated; resolving
// happens in the session, keyed off the hunk, not in it.
type ConflictHunk struct {
	StartLine    int
	EndLine      int
	OurContent   string
	TheirContent string
	BaseContent  string
	HasBase      bool
}

// Resolved returns the text that replaces the hunk's marker block.
func (h ConflictHunk) Resolved(r Resolution) string {
	switch r.Choice {
	case ChooseTheirs:
		return h.TheirContent
	case ChooseBoth:
		return h.OurContent + "\n" + h.TheirContent
	case ManualEdit:
		return r.Text
	default:
		return h.OurContent
	}
}

// ConflictedFile is one working-tree file with at least one hunk. Files
// whose conflicts carry no marker blocks (delete/delete, binary) never
// appear here.
type ConflictedFile struct {
	Path  string
	Hunks []ConflictHunk
}

// MergeConflict is a snapshot of the repository's conflict state at one
// detection pass. Snapshots are replaced wholesale, never mutated, and
// Generation distinguishes one snapshot from the next.
type MergeConflict struct {
	Files       []ConflictedFile
	OurCommit   string
	TheirCommit string
	Generation  uint64
}

// TotalHunks counts hunks across all files.
func (mc *MergeConflict) TotalHunks() int {
	total := 0
	for _, f := range mc.Files {
		total += len(f.Hunks)
	}
	return total
}

// hunkKey identifies a hunk independently of slice positions: the file
// path, the hunk's ordinal within that file, and a digest of its
// contents. A key minted against one snapshot cannot silently address a
// different hunk in another.
type hunkKey struct {
	Path    string
	Ordinal int
	Digest  uint64
}

func keyFor(path string, ordinal int, h ConflictHunk) hunkKey {
	digest, _ := hashstructure.Hash(struct {
		Ours    string
		Theirs  string
		Base    string
		HasBase bool
	}{h.OurContent, h.TheirContent, h.BaseContent, h.HasBase}, hashstructure.FormatV2, nil)

	return hunkKey{Path: path, Ordinal: ordinal, Digest: digest}
}
