package ui

// listState is the shared cursor-plus-scroll bookkeeping every list view
// needs. It only tracks positions; the items stay with the view.
type listState struct {
	selected     int
	scrollOffset int
	visibleLines int
}

func (l *listState) moveDown(count int) {
	if count > 0 {
		l.selected = (l.selected + 1) % count
		l.adjustScrolling(count)
	}
}

func (l *listState) moveUp(count int) {
	if count > 0 {
		l.selected = (l.selected - 1 + count) % count
		l.adjustScrolling(count)
	}
}

func (l *listState) first() {
	l.selected = 0
	l.scrollOffset = 0
}

func (l *listState) last(count int) {
	if count > 0 {
		l.selected = count - 1
		l.adjustScrolling(count)
	}
}

// clamp pulls the cursor back into range after the item count changed.
func (l *listState) clamp(count int) {
	if l.selected >= count {
		l.selected = count - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.adjustScrolling(count)
}

func (l *listState) adjustScrolling(count int) {
	if l.visibleLines <= 0 {
		return
	}

	if l.selected >= l.scrollOffset+l.visibleLines {
		l.scrollOffset = l.selected - l.visibleLines + 1
	}
	if l.selected < l.scrollOffset {
		l.scrollOffset = l.selected
	}

	maxOffset := count - l.visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.scrollOffset > maxOffset {
		l.scrollOffset = maxOffset
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// window returns the visible slice bounds for count items.
func (l *listState) window(count int) (int, int) {
	if l.visibleLines <= 0 {
		return 0, count
	}
	end := l.scrollOffset + l.visibleLines
	if end > count {
		end = count
	}
	return l.scrollOffset, end
}

// fuzzyMatch reports whether every character of query appears in text in
// order. Both sides are expected lowercased by the caller.
func fuzzyMatch(text, query string) bool {
	if query == "" {
		return true
	}

	textIdx := 0
	for _, queryChar := range query {
		found := false
		for textIdx < len(text) {
			if rune(text[textIdx]) == queryChar {
				found = true
				textIdx++
				break
			}
			textIdx++
		}
		if !found {
			return false
		}
	}
	return true
}
