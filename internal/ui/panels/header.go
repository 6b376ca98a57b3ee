package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

// Header shows backend availability and the paths the server reports.
type Header struct {
	width  int
	height int
	state  *dashboard.State
	server string
}

func NewHeader(state *dashboard.State, server string) Header {
	return Header{state: state, server: server}
}

func (h *Header) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h Header) View() string {
	s := h.state
	dot := lipgloss.NewStyle().Foreground(styles.AvailabilityColor(s.Availability)).Render("●")
	sep := styles.TextDimStyle.Render("  ")

	line1 := " " + dot + " " + styles.TextPrimaryStyle.Render(s.StatusLabel) + sep +
		styles.TextSecondaryStyle.Render(h.server) + sep +
		styles.TextDimStyle.Render("checked "+text.RelativeTime(s.StatusChecked))

	var pills []string
	if srv := s.Server; srv != nil {
		if srv.APIKeyPresent {
			pills = append(pills, lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render("🔑 Key OK"))
		} else {
			pills = append(pills, lipgloss.NewStyle().Foreground(styles.StatusWarning).Render("⚠ No Key"))
		}
		pills = append(pills, styles.PillStyle.Render("vault: "+srv.VaultPath))
		pills = append(pills, styles.PillStyle.Render("chroma: "+srv.ChromaPath))
		if srv.ModelsConfig != "" {
			pills = append(pills, styles.PillStyle.Render("models: "+srv.ModelsConfig))
		}
		if srv.ServicesReady {
			pills = append(pills, lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render("services ready"))
		}
	} else {
		pills = append(pills, styles.TextDimStyle.Render("no status yet, press s to retry"))
	}
	line2 := " " + strings.Join(pills, styles.TextDimStyle.Render("  │  "))

	return border.RenderPanel("labtop", line1+"\n"+line2, nil, h.width, h.height, false)
}
