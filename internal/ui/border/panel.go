package border

import (
	"strings"
)

// Panel describes one bordered box of the dashboard.
type Panel struct {
	Title    string
	Badge    Badge
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
}

// RenderPanel assembles a complete bordered panel:
//
//	top border (with title)
//	content lines (with side borders)
//	bottom border (with keybinds if focused)
//
// Content is padded/cropped to exactly fill height-2 rows x width-2 cols.
func RenderPanel(title string, content string, keybinds []Keybind,
	width, height int, focused bool) string {
	return Panel{
		Title:    title,
		Keybinds: keybinds,
		Width:    width,
		Height:   height,
		Focused:  focused,
	}.Render(content)
}

// Render draws content inside the panel's border.
func (p Panel) Render(content string) string {
	if p.Height < 2 || p.Width < 2 {
		return ""
	}

	lines := FitLines(content, p.Height-2)
	innerWidth := p.Width - 2
	for i, l := range lines {
		if l == "" {
			lines[i] = strings.Repeat(" ", innerWidth)
		}
	}

	top := RenderBorderTopBadge(p.Title, p.Badge, p.Width, p.Focused)
	middle := RenderBorderSides(strings.Join(lines, "\n"), p.Width, p.Focused)
	bottom := RenderBorderBottom(p.Keybinds, p.Width, p.Focused)

	return top + "\n" + middle + "\n" + bottom
}

// FitLines splits content into exactly n lines, cropping the tail or
// padding with empty lines.
func FitLines(content string, n int) []string {
	if n <= 0 {
		return nil
	}
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
