package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  44,
		height: 22,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(text6(key)) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString(kv("j/k", "Scroll up/down") + "\n")
	b.WriteString(kv("G/gg", "Jump to bottom/top") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions") + "\n")
	b.WriteString(kv("⏎", "Run ingest / scout") + "\n")
	b.WriteString(kv("e", "Edit paths / theme") + "\n")
	b.WriteString(kv("i", "Run vault ingest") + "\n")
	b.WriteString(kv("o", "Run trend scout") + "\n")
	b.WriteString(kv("t", "Load raw trends") + "\n")
	b.WriteString(kv("s", "Refresh server status") + "\n")
	b.WriteString(kv("c", "Clear activity feed") + "\n")
	b.WriteString(kv("y", "Yank focused panel") + "\n")
	b.WriteString(kv("v", "Select lines, y to yank") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}

// text6 left-aligns a key label in a six-column cell.
func text6(s string) string {
	if w := lipgloss.Width(s); w < 6 {
		return s + strings.Repeat(" ", 6-w)
	}
	return s
}
