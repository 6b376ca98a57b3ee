package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate truncates s to maxWidth, appending "…" if truncated.
// ANSI-aware: escape codes are not counted toward visual width and
// will not be broken by the truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// WrapText wraps s to fit within width columns, returning one string per line.
// Existing newlines are respected. Words wider than width are truncated with …
func WrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	if s == "" {
		return []string{""}
	}
	var result []string
	for _, para := range strings.Split(s, "\n") {
		result = append(result, wrapParagraph(para, width)...)
	}
	return result
}

// WrapIndent wraps s to width and prefixes every line after the first with
// indent, so continuation lines sit under the first line's text. At most
// maxLines lines are returned (0 means no limit); a cut last line ends in "…".
func WrapIndent(s string, width int, indent string, maxLines int) []string {
	iw := ansi.StringWidth(indent)
	lines := WrapText(s, width-iw)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		lines[maxLines-1] = Truncate(last+" …", width-iw)
	}
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return lines
}

func wrapParagraph(s string, width int) []string {
	if ansi.StringWidth(s) <= width {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	currentW := 0
	for _, word := range words {
		ww := ansi.StringWidth(word)
		if ww > width {
			word = ansi.Truncate(word, width, "…")
			ww = width
		}
		switch {
		case current == "":
			current, currentW = word, ww
		case currentW+1+ww <= width:
			current += " " + word
			currentW += 1 + ww
		default:
			lines = append(lines, current)
			current, currentW = word, ww
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// PadRight pads s with spaces to exactly width. If s is wider, returns s unchanged.
// ANSI-aware: escape codes are not counted toward visual width.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
