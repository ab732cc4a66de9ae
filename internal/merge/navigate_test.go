package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navFixture(t *testing.T) *Session {
	t.Helper()

	dir, fake, session := initMergeRepo(t)
	writeWorkFile(t, dir, "main.go", conflictBlock("a1", "b1")+conflictBlock("a2", "b2"))
	writeWorkFile(t, dir, "util.go", conflictBlock("a3", "b3"))
	mustDetect(t, fake, session, "main.go", "util.go")
	return session
}

func TestNextHunk_WalksAcrossFiles(t *testing.T) {
	session := navFixture(t)

	assert.Equal(t, Cursor{File: 0, Hunk: 0}, session.Cursor())

	session.NextHunk()
	assert.Equal(t, Cursor{File: 0, Hunk: 1}, session.Cursor())

	session.NextHunk()
	assert.Equal(t, Cursor{File: 1, Hunk: 0}, session.Cursor())

	// Already on the last hunk; stays put.
	session.NextHunk()
	assert.Equal(t, Cursor{File: 1, Hunk: 0}, session.Cursor())
}

func TestPrevHunk_WalksBackAcrossFiles(t *testing.T) {
	session := navFixture(t)
	session.NextHunk()
	session.NextHunk()

	session.PrevHunk()
	assert.Equal(t, Cursor{File: 0, Hunk: 1}, session.Cursor())

	session.PrevHunk()
	assert.Equal(t, Cursor{File: 0, Hunk: 0}, session.Cursor())

	// Already on the first hunk; stays put.
	session.PrevHunk()
	assert.Equal(t, Cursor{File: 0, Hunk: 0}, session.Cursor())
}

func TestNextFile_JumpsToFirstHunk(t *testing.T) {
	session := navFixture(t)

	session.NextFile()
	assert.Equal(t, Cursor{File: 1, Hunk: 0}, session.Cursor())

	session.NextFile()
	assert.Equal(t, Cursor{File: 1, Hunk: 0}, session.Cursor())
}

func TestCurrentFileAndHunk(t *testing.T) {
	session := navFixture(t)

	file := session.CurrentFile()
	require.NotNil(t, file)
	assert.Equal(t, "main.go", file.Path)

	session.NextHunk()
	hunk := session.CurrentHunk()
	require.NotNil(t, hunk)
	assert.Equal(t, "a2", hunk.OurContent)
}

func TestNavigation_InactiveSessionIsInert(t *testing.T) {
	session := NewSession(nil)

	session.NextHunk()
	session.PrevHunk()
	session.NextFile()

	assert.Equal(t, Cursor{}, session.Cursor())
	assert.Nil(t, session.CurrentFile())
	assert.Nil(t, session.CurrentHunk())
}
