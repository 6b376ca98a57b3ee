package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

const (
	scoreColWidth     = 5
	rationaleMaxLines = 2
)

// ScoutPanel shows the scout inputs and one card per trend.
type ScoutPanel struct {
	width       int
	height      int
	focused     bool
	state       *dashboard.State
	theme       string
	constraints string
	body        scroller
}

func NewScoutPanel(state *dashboard.State) ScoutPanel {
	p := ScoutPanel{state: state, body: newScroller(gTapIDScout, false)}
	p.Refresh()
	return p
}

func (p *ScoutPanel) SetInputs(theme, constraints string) {
	p.theme = theme
	p.constraints = constraints
}

func (p ScoutPanel) Inputs() (theme, constraints string) { return p.theme, p.constraints }

func (p *ScoutPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.body.setSize(w-2, h-3)
	p.Refresh()
}

func (p *ScoutPanel) SetFocused(f bool) { p.focused = f }

// Selecting reports whether a line selection is in progress.
func (p ScoutPanel) Selecting() bool { return p.body.selecting() }

func (p *ScoutPanel) SetScrollSpeed(n int) {
	if n > 0 {
		p.body.speed = n
	}
}

// Refresh re-renders the trend cards from state.
func (p *ScoutPanel) Refresh() {
	s := p.state
	switch {
	case s.ScoutError != "":
		p.body.setContent(lipgloss.NewStyle().Foreground(styles.StatusError).Render("❌ " + s.ScoutError))
		return
	case len(s.Trends) == 0:
		p.body.setContent(styles.TextDimStyle.Render("No trends yet. Press ⏎ to scout or t for raw signals"))
		return
	}

	var cards []string
	for _, t := range s.Trends {
		cards = append(cards, p.renderCard(t))
	}
	p.body.setContent(strings.Join(cards, "\n"))
}

func (p ScoutPanel) renderCard(t api.Trend) string {
	width := p.width - 2
	score := t.Score.Display(api.ScoreUnknown)
	scoreStyle := lipgloss.NewStyle().Foreground(styles.ScoreColor(t.Score.Class())).Bold(true)
	scoreCell := scoreStyle.Render(text.PadRight(text.Truncate(score, scoreColWidth-1), scoreColWidth))

	indent := strings.Repeat(" ", scoreColWidth)
	topic := styles.TitleStyle.Render(text.Truncate(t.Topic, width-scoreColWidth))

	var b strings.Builder
	b.WriteString(scoreCell + topic)
	if t.Rationale != "" {
		for _, l := range text.WrapIndent(t.Rationale, width-scoreColWidth, "", rationaleMaxLines) {
			b.WriteString("\n" + indent + styles.TextSecondaryStyle.Render(l))
		}
	}
	return b.String()
}

func (p ScoutPanel) Update(msg tea.Msg) (ScoutPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		p.body.tap.HandleExpiry(msg)
	case tea.KeyMsg:
		_, cmd := p.body.handleKey(msg)
		return p, cmd
	case tea.MouseMsg:
		p.body.handleMouse(msg)
	}
	return p, nil
}

// Yank returns the trend cards as plain text, one trend per line.
func (p ScoutPanel) Yank() string {
	var lines []string
	for _, t := range p.state.Trends {
		line := fmt.Sprintf("%s (score: %s)", t.Topic, t.Score.Display(api.ScoreNA))
		if t.Rationale != "" {
			line += ": " + t.Rationale
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p ScoutPanel) View() string {
	st := p.state.Scout
	theme := p.theme
	if theme == "" {
		theme = "none"
	}
	constraints := p.constraints
	if strings.TrimSpace(constraints) == "" {
		constraints = "none"
	}
	inputs := " " + styles.TextSecondaryStyle.Render("theme ") + styles.TextPrimaryStyle.Render(theme) +
		styles.TextDimStyle.Render("  │  ") +
		styles.TextSecondaryStyle.Render("constraints ") + styles.TextPrimaryStyle.Render(constraints)

	panel := border.Panel{
		Title:   "Trend Scout",
		Badge:   border.Badge{Text: st.Badge.Label, Color: styles.PhaseColor(st.Badge.Phase)},
		Width:   p.width,
		Height:  p.height,
		Focused: p.focused,
	}
	switch {
	case p.body.selecting():
		panel.Keybinds = selectKeybinds
	default:
		if !st.Running {
			panel.Keybinds = append(panel.Keybinds, border.Keybind{Key: "⏎", Label: " scout"})
		}
		panel.Keybinds = append(panel.Keybinds,
			border.Keybind{Key: "e", Label: "dit"},
			border.Keybind{Key: "t", Label: " raw"},
			border.Keybind{Key: "y", Label: "ank"},
		)
	}
	return panel.Render(inputs + "\n" + p.body.view())
}
