package merge

import "strings"

// Conflict marker literals as git writes them. A marker only counts when
// it begins its own line; whatever follows it (branch names, commit ids)
// is ignored. Indented lookalikes are ordinary content.
const (
	markerStart     = "<<<<<<<"
	markerBase      = "|||||||"
	markerSeparator = "======="
	markerEnd       = ">>>>>>>"
)

// ParseConflicts scans text in a single pass and returns every well-formed
// marker block, in file order. Malformed input never errors: a block cut
// off by end of input is dropped, and a start marker inside an open block
// abandons that block and begins a fresh one at the current line.
func ParseConflicts(text string) []ConflictHunk {
	lines := strings.Split(text, "\n")

	const (
		outside = iota
		inOurs
		inBase
		inTheirs
	)

	var (
		hunks   []ConflictHunk
		state   = outside
		start   int
		ours    []string
		base    []string
		theirs  []string
		hasBase bool
	)

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, markerStart):
			state = inOurs
			start = i
			ours, base, theirs = nil, nil, nil
			hasBase = false
		case state == inOurs && strings.HasPrefix(line, markerBase):
			state = inBase
			hasBase = true
		case (state == inOurs || state == inBase) && strings.HasPrefix(line, markerSeparator):
			state = inTheirs
		case state == inTheirs && strings.HasPrefix(line, markerEnd):
			hunks = append(hunks, ConflictHunk{
				StartLine:    start,
				EndLine:      i,
				OurContent:   strings.Join(ours, "\n"),
				TheirContent: strings.Join(theirs, "\n"),
				BaseContent:  strings.Join(base, "\n"),
				HasBase:      hasBase,
			})
			state = outside
		case state == inOurs:
			ours = append(ours, line)
		case state == inBase:
			base = append(base, line)
		case state == inTheirs:
			theirs = append(theirs, line)
		}
	}

	return hunks
}
