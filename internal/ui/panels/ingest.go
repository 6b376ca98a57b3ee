package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

// IngestPanel shows the ingest paths, the badge and the streamed log.
type IngestPanel struct {
	width   int
	height  int
	focused bool
	state   *dashboard.State
	vault   string
	chroma  string
	body    scroller
}

func NewIngestPanel(state *dashboard.State) IngestPanel {
	p := IngestPanel{state: state, body: newScroller(gTapIDIngest, false)}
	p.Refresh()
	return p
}

func (p *IngestPanel) SetPaths(vault, chroma string) {
	p.vault = vault
	p.chroma = chroma
}

func (p IngestPanel) Paths() (vault, chroma string) { return p.vault, p.chroma }

func (p *IngestPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
	// border (2) + paths line (1)
	p.body.setSize(w-2, h-3)
	p.Refresh()
}

func (p *IngestPanel) SetFocused(f bool) { p.focused = f }

// Selecting reports whether a line selection is in progress.
func (p IngestPanel) Selecting() bool { return p.body.selecting() }

func (p *IngestPanel) SetScrollSpeed(n int) {
	if n > 0 {
		p.body.speed = n
	}
}

// Refresh re-renders the log from state.
func (p *IngestPanel) Refresh() {
	lines := p.state.IngestLog
	if len(lines) == 0 {
		p.body.setContent(styles.TextDimStyle.Render("Press ⏎ to index the vault into Chroma"))
		return
	}
	width := p.width - 2
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		st := lipgloss.NewStyle().Foreground(styles.LevelColor(l.Level))
		for j, w := range text.WrapIndent(l.Message, width, "  ", 0) {
			if j > 0 {
				b.WriteString("\n")
			}
			b.WriteString(st.Render(w))
		}
	}
	p.body.setContent(b.String())
}

func (p IngestPanel) Update(msg tea.Msg) (IngestPanel, tea.Cmd) {
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

// Yank returns the ingest log as plain text.
func (p IngestPanel) Yank() string {
	var lines []string
	for _, l := range p.state.IngestLog {
		lines = append(lines, l.Message)
	}
	return strings.Join(lines, "\n")
}

func (p IngestPanel) View() string {
	st := p.state.Ingest
	paths := " " + styles.TextSecondaryStyle.Render("vault ") + styles.TextPrimaryStyle.Render(p.vault) +
		styles.TextDimStyle.Render("  →  ") +
		styles.TextSecondaryStyle.Render("chroma ") + styles.TextPrimaryStyle.Render(p.chroma)

	panel := border.Panel{
		Title:   "Vault Ingest",
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
			panel.Keybinds = append(panel.Keybinds, border.Keybind{Key: "⏎", Label: " run"})
		}
		panel.Keybinds = append(panel.Keybinds,
			border.Keybind{Key: "e", Label: "dit"},
			border.Keybind{Key: "v", Label: " select"},
			border.Keybind{Key: "y", Label: "ank"},
		)
	}
	return panel.Render(paths + "\n" + p.body.view())
}
