package border

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
)

// Keybind represents a single keybind hint: [e]dit, [⏎] run, etc.
type Keybind struct {
	Key   string // e.g. "e"
	Label string // e.g. "dit"
}

// RenderKeybind renders a single keybind: [e]dit with Key in KeybindKey color (bold), label in KeybindLabel.
func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// KeybindWidth returns the display width of a rendered keybind (without ANSI).
func KeybindWidth(kb Keybind) int {
	return 2 + lipgloss.Width(kb.Key) + lipgloss.Width(kb.Label)
}
