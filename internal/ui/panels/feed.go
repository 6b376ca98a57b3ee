package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

const (
	feedPlaceholder = "No activity yet…"
	sourceColWidth  = 7
)

// FeedPanel lists activity newest first.
type FeedPanel struct {
	width          int
	height         int
	focused        bool
	state          *dashboard.State
	showTimestamps bool
	body           scroller
}

func NewFeedPanel(state *dashboard.State) FeedPanel {
	p := FeedPanel{state: state, showTimestamps: true, body: newScroller(gTapIDFeed, true)}
	p.Refresh()
	return p
}

func (p *FeedPanel) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.body.setSize(w-2, h-2)
	p.Refresh()
}

func (p *FeedPanel) SetFocused(f bool) { p.focused = f }

// Selecting reports whether a line selection is in progress.
func (p FeedPanel) Selecting() bool { return p.body.selecting() }

func (p *FeedPanel) SetShowTimestamps(show bool) {
	p.showTimestamps = show
	p.Refresh()
}

func (p *FeedPanel) SetScrollSpeed(n int) {
	if n > 0 {
		p.body.speed = n
	}
}

// Refresh re-renders the feed from state.
func (p *FeedPanel) Refresh() {
	entries := p.state.Feed.Newest()
	if len(entries) == 0 {
		p.body.setContent(styles.TextDimStyle.Render(feedPlaceholder))
		return
	}
	width := p.width - 2
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		prefix := ""
		if p.showTimestamps {
			prefix = styles.TextDimStyle.Render(text.Clock(e.Time)) + " "
		}
		prefix += styles.SourceStyle.Render(text.PadRight(e.Source, sourceColWidth))
		msgWidth := width - lipgloss.Width(prefix)
		msg := lipgloss.NewStyle().Foreground(styles.LevelColor(e.Level)).Render(text.Truncate(e.Message, msgWidth))
		lines = append(lines, prefix+msg)
	}
	p.body.setContent(strings.Join(lines, "\n"))
}

func (p FeedPanel) Update(msg tea.Msg) (FeedPanel, tea.Cmd) {
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

// Yank returns the feed as plain text, newest first.
func (p FeedPanel) Yank() string {
	var lines []string
	for _, e := range p.state.Feed.Newest() {
		lines = append(lines, text.Clock(e.Time)+" "+e.Source+" "+e.Message)
	}
	return strings.Join(lines, "\n")
}

func (p FeedPanel) View() string {
	title := "Activity"
	if n := p.state.Feed.Len(); n > 0 {
		title += fmt.Sprintf(" (%d)", n)
	}
	kbs := []border.Keybind{
		{Key: "c", Label: "lear"},
		{Key: "j/k", Label: " scroll"},
		{Key: "v", Label: " select"},
		{Key: "y", Label: "ank"},
	}
	if p.body.selecting() {
		kbs = selectKeybinds
	}
	return border.RenderPanel(title, p.body.view(), kbs, p.width, p.height, p.focused)
}
