package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)

	SelectedOptionStyle = lipgloss.NewStyle().Foreground(SelectedOption).Bold(true)

	SelectionStyle = lipgloss.NewStyle().Background(SelectionBg)

	SourceStyle = lipgloss.NewStyle().Foreground(SourceAccent).Bold(true)

	// Pills in the header: "vault: ./my_vault"
	PillStyle = lipgloss.NewStyle().Foreground(TextSecondary)
)

// BadgeStyle renders an action badge in its phase color.
func BadgeStyle(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
