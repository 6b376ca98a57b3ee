package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
)

// Semantic colors as AdaptiveColor{Light, Dark}.
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SourceAccent = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"}

	SelectedOption = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}

	SelectionBg = lipgloss.AdaptiveColor{Light: "#c8d8f0", Dark: "#283457"}
)

// PhaseColor returns the badge color for an action phase.
func PhaseColor(p dashboard.Phase) lipgloss.AdaptiveColor {
	switch p {
	case dashboard.PhaseRunning:
		return StatusRunning
	case dashboard.PhaseSuccess:
		return StatusSuccess
	case dashboard.PhaseError:
		return StatusError
	default:
		return StatusPending
	}
}

// AvailabilityColor returns the color of the backend health dot.
func AvailabilityColor(a dashboard.Availability) lipgloss.AdaptiveColor {
	switch a {
	case dashboard.AvailabilityOK:
		return StatusSuccess
	case dashboard.AvailabilityWarn:
		return StatusWarning
	case dashboard.AvailabilityError:
		return StatusError
	default:
		return StatusPending
	}
}

// ScoreColor colors a trend score by its bucket.
func ScoreColor(c api.ScoreClass) lipgloss.AdaptiveColor {
	switch c {
	case api.ScoreHigh:
		return StatusSuccess
	case api.ScoreMedium:
		return StatusWarning
	case api.ScoreLow:
		return StatusError
	default:
		return TextSecondary
	}
}

// LevelColor colors log and feed lines by the event type they came from.
func LevelColor(level string) lipgloss.AdaptiveColor {
	switch level {
	case "success":
		return StatusSuccess
	case "error":
		return StatusError
	case "warning":
		return StatusWarning
	default:
		return TextPrimary
	}
}
