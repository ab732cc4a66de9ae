package merge

// Cursor addresses one hunk in the snapshot under review.
type Cursor struct {
	File int
	Hunk int
}

func (s *Session) Cursor() Cursor {
	return s.cursor
}

// CurrentFile returns the file under the cursor, nil when no merge is
// under review.
func (s *Session) CurrentFile() *ConflictedFile {
	if s.conflict == nil || s.cursor.File >= len(s.conflict.Files) {
		return nil
	}
	return &s.conflict.Files[s.cursor.File]
}

// CurrentHunk returns the hunk under the cursor, nil when no merge is
// under review.
func (s *Session) CurrentHunk() *ConflictHunk {
	file := s.CurrentFile()
	if file == nil || s.cursor.Hunk >= len(file.Hunks) {
		return nil
	}
	return &file.Hunks[s.cursor.Hunk]
}

// NextHunk advances the cursor, crossing into the next file's first hunk
// when the current file runs out. At the very last hunk it stays put.
func (s *Session) NextHunk() {
	if s.conflict == nil {
		return
	}
	if s.cursor.Hunk < len(s.conflict.Files[s.cursor.File].Hunks)-1 {
		s.cursor.Hunk++
		return
	}
	if s.cursor.File < len(s.conflict.Files)-1 {
		s.cursor.File++
		s.cursor.Hunk = 0
	}
}

// PrevHunk is the mirror of NextHunk: crossing a file boundary lands on
// the previous file's last hunk, and at the very first hunk it stays put.
func (s *Session) PrevHunk() {
	if s.conflict == nil {
		return
	}
	if s.cursor.Hunk > 0 {
		s.cursor.Hunk--
		return
	}
	if s.cursor.File > 0 {
		s.cursor.File--
		s.cursor.Hunk = len(s.conflict.Files[s.cursor.File].Hunks) - 1
	}
}

// NextFile jumps to the first hunk of the next file, if there is one.
func (s *Session) NextFile() {
	if s.conflict == nil {
		return
	}
	if s.cursor.File < len(s.conflict.Files)-1 {
		s.cursor.File++
		s.cursor.Hunk = 0
	}
}
