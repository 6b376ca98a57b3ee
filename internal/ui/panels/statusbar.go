package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	state      *dashboard.State
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(state *dashboard.State) StatusBar {
	return StatusBar{state: state}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "labtop " + Version
	if s.state.AnyRunning() {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		appName = spinner + " " + appName
	}
	version := styles.TextSecondaryStyle.Render(appName)

	left := " " + version +
		sep + s.actionSummary("ingest", s.state.Ingest) +
		sep + s.actionSummary("scout", s.state.Scout) +
		sep + styles.TextSecondaryStyle.Render(text.Plural(len(s.state.Trends), "trend"))

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s StatusBar) actionSummary(name string, a dashboard.ActionState) string {
	label := a.Badge.Label
	if a.Running && !a.StartedAt.IsZero() {
		label += " " + text.FormatElapsed(time.Since(a.StartedAt))
	}
	return styles.TextSecondaryStyle.Render(name+": ") +
		lipgloss.NewStyle().Foreground(styles.PhaseColor(a.Badge.Phase)).Render(label)
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
