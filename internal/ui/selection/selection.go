// Package selection implements keyboard line-range selection over a
// scrollable panel body.
package selection

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// Selection is an anchor and a cursor over the lines of a viewport. The
// selected range is every line between them, inclusive.
type Selection struct {
	active bool
	anchor int
	cursor int
}

// Active reports whether a selection is in progress.
func (s *Selection) Active() bool { return s.active }

// Reset clears the selection.
func (s *Selection) Reset() { *s = Selection{} }

// Enter starts a selection anchored at the first visible line. Does nothing
// when there are no lines.
func (s *Selection) Enter(lineCount int, vp *viewport.Model) {
	if lineCount == 0 {
		return
	}
	start := vp.YOffset
	if start >= lineCount {
		start = lineCount - 1
	}
	if start < 0 {
		start = 0
	}
	*s = Selection{active: true, anchor: start, cursor: start}
}

// Move shifts the cursor by delta lines, clamped to [0, lineCount), and
// scrolls vp so the cursor stays visible.
func (s *Selection) Move(delta, lineCount int, vp *viewport.Model) {
	s.moveTo(s.cursor+delta, lineCount, vp)
}

// ToStart moves the cursor to the first line.
func (s *Selection) ToStart(vp *viewport.Model) {
	s.cursor = 0
	vp.GotoTop()
}

// ToEnd moves the cursor to the last line.
func (s *Selection) ToEnd(lineCount int, vp *viewport.Model) {
	if lineCount == 0 {
		return
	}
	s.cursor = lineCount - 1
	vp.GotoBottom()
}

func (s *Selection) moveTo(line, lineCount int, vp *viewport.Model) {
	if lineCount == 0 {
		return
	}
	if line < 0 {
		line = 0
	}
	if line > lineCount-1 {
		line = lineCount - 1
	}
	s.cursor = line
	switch {
	case s.cursor < vp.YOffset:
		vp.SetYOffset(s.cursor)
	case s.cursor >= vp.YOffset+vp.Height:
		vp.SetYOffset(s.cursor - vp.Height + 1)
	}
}

// Range returns normalized (start <= end) line indices of the selection.
func (s *Selection) Range() (start, end int) {
	start, end = s.anchor, s.cursor
	if start > end {
		start, end = end, start
	}
	return
}

// Contains reports whether line i is selected.
func (s *Selection) Contains(i int) bool {
	if !s.active {
		return false
	}
	start, end := s.Range()
	return i >= start && i <= end
}

// Yank returns the selected lines joined by newlines.
func (s *Selection) Yank(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	start, end := s.Range()
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start:end+1], "\n")
}
