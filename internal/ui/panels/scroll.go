package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/justinpbarnett/labtop/internal/ui/selection"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
)

const defaultScrollSpeed = 3

// scroller is the scrollable body shared by the ingest log, the trend grid
// and the activity feed. follow keeps the view pinned to the end that new
// content arrives at. While a selection is active the body is frozen and
// new content waits in pending.
type scroller struct {
	vp         viewport.Model
	tap        DoubleTap
	sel        selection.Selection
	speed      int
	follow     bool
	fromTop    bool // new content is prepended (feed) rather than appended
	content    string
	lines      []string
	pending    string
	hasPending bool
}

func newScroller(id int, fromTop bool) scroller {
	return scroller{
		vp:      viewport.New(0, 0),
		tap:     NewDoubleTap(id),
		speed:   defaultScrollSpeed,
		follow:  true,
		fromTop: fromTop,
	}
}

func (s *scroller) setSize(w, h int) {
	if h < 0 {
		h = 0
	}
	s.vp.Width = w
	s.vp.Height = h
	s.render()
	if s.follow && !s.sel.Active() {
		s.pin()
	}
}

func (s *scroller) setContent(content string) {
	if s.sel.Active() {
		s.pending, s.hasPending = content, true
		return
	}
	s.content = content
	s.lines = strings.Split(content, "\n")
	s.render()
	if s.follow {
		s.pin()
	}
}

func (s *scroller) render() {
	if !s.sel.Active() {
		s.vp.SetContent(s.content)
		return
	}
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		if s.sel.Contains(i) {
			plain := ansi.Strip(l)
			if pad := s.vp.Width - ansi.StringWidth(plain); pad > 0 {
				plain += strings.Repeat(" ", pad)
			}
			out[i] = styles.SelectionStyle.Render(plain)
		} else {
			out[i] = l
		}
	}
	s.vp.SetContent(strings.Join(out, "\n"))
}

func (s *scroller) pin() {
	if s.fromTop {
		s.vp.GotoTop()
	} else {
		s.vp.GotoBottom()
	}
}

func (s *scroller) atFollowEdge() bool {
	if s.fromTop {
		return s.vp.AtTop()
	}
	return s.vp.AtBottom()
}

func (s *scroller) scrollBy(n int) {
	offset := s.vp.YOffset + n
	if offset < 0 {
		offset = 0
	}
	s.vp.SetYOffset(offset)
}

// selecting reports whether a line selection is in progress.
func (s *scroller) selecting() bool { return s.sel.Active() }

// plainLines returns the body without styling, one entry per rendered line.
func (s *scroller) plainLines() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = strings.TrimRight(ansi.Strip(l), " ")
	}
	return out
}

func (s *scroller) endSelection() {
	s.sel.Reset()
	if s.hasPending {
		content := s.pending
		s.pending, s.hasPending = "", false
		s.setContent(content)
	} else {
		s.render()
	}
	s.follow = s.atFollowEdge()
}

// handleKey applies vim-style scrolling, and "v" line selection. Returns
// handled=false for keys it does not own.
func (s *scroller) handleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	if s.sel.Active() {
		return true, s.handleSelectKey(msg)
	}

	step := s.speed
	if step <= 0 {
		step = 1
	}
	switch msg.String() {
	case "j", "down":
		s.scrollBy(step)
	case "k", "up":
		s.scrollBy(-step)
	case "ctrl+d":
		s.scrollBy(s.vp.Height / 2)
	case "ctrl+u":
		s.scrollBy(-s.vp.Height / 2)
	case "G", "end":
		s.vp.GotoBottom()
	case "home":
		s.vp.GotoTop()
	case "g":
		fired, c := s.tap.Check()
		if !fired {
			return true, c
		}
		s.vp.GotoTop()
	case "v":
		s.sel.Enter(len(s.lines), &s.vp)
		s.render()
		s.follow = false
		return true, nil
	default:
		return false, nil
	}
	s.follow = s.atFollowEdge()
	return true, nil
}

// handleSelectKey moves the selection cursor. Every key is consumed while
// selecting.
func (s *scroller) handleSelectKey(msg tea.KeyMsg) tea.Cmd {
	n := len(s.lines)
	switch msg.String() {
	case "esc", "v":
		s.endSelection()
		return nil
	case "y":
		text := s.sel.Yank(s.plainLines())
		s.endSelection()
		return func() tea.Msg { return YankMsg{Text: text} }
	case "j", "down":
		s.sel.Move(1, n, &s.vp)
	case "k", "up":
		s.sel.Move(-1, n, &s.vp)
	case "ctrl+d":
		s.sel.Move(s.vp.Height/2, n, &s.vp)
	case "ctrl+u":
		s.sel.Move(-s.vp.Height/2, n, &s.vp)
	case "G", "end":
		s.sel.ToEnd(n, &s.vp)
	case "home":
		s.sel.ToStart(&s.vp)
	case "g":
		fired, c := s.tap.Check()
		if !fired {
			return c
		}
		s.sel.ToStart(&s.vp)
	default:
		return nil
	}
	offset := s.vp.YOffset
	s.render()
	s.vp.SetYOffset(offset)
	return nil
}

func (s *scroller) handleMouse(msg tea.MouseMsg) {
	if s.sel.Active() {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		s.scrollBy(-s.speed)
	case tea.MouseButtonWheelDown:
		s.scrollBy(s.speed)
	default:
		return
	}
	s.follow = s.atFollowEdge()
}

func (s scroller) view() string {
	return s.vp.View()
}
