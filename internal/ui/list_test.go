package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListMoveWrapsAround(t *testing.T) {
	l := listState{selected: 2}

	l.moveDown(3)
	assert.Equal(t, 0, l.selected)

	l.moveUp(3)
	assert.Equal(t, 2, l.selected)
}

func TestListMoveOnEmptyIsInert(t *testing.T) {
	l := listState{}

	l.moveDown(0)
	l.moveUp(0)
	l.last(0)

	assert.Equal(t, 0, l.selected)
	assert.Equal(t, 0, l.scrollOffset)
}

func TestListScrollFollowsCursor(t *testing.T) {
	l := listState{visibleLines: 3}

	for i := 0; i < 5; i++ {
		l.moveDown(10)
	}

	assert.Equal(t, 5, l.selected)
	start, end := l.window(10)
	assert.Equal(t, 3, l.scrollOffset)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)
}

func TestListClampAfterShrink(t *testing.T) {
	l := listState{selected: 7, scrollOffset: 5, visibleLines: 3}

	l.clamp(4)

	assert.Equal(t, 3, l.selected)
	assert.LessOrEqual(t, l.scrollOffset, 3)
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		text  string
		query string
		want  bool
	}{
		{"main.go", "", true},
		{"main.go", "mg", true},
		{"main.go", "main.go", true},
		{"main.go", "gm", false},
		{"main.go", "z", false},
		{"feature/login", "ftl", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzyMatch(tt.text, tt.query), "%s / %s", tt.text, tt.query)
	}
}
