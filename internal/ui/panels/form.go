package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/labtop/internal/ui/border"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
)

// FormKind selects which action a form edits.
type FormKind int

const (
	FormIngest FormKind = iota
	FormScout
)

type formField struct {
	label       string
	placeholder string
}

var formFields = map[FormKind][]formField{
	FormIngest: {
		{label: "Vault path", placeholder: "./my_vault"},
		{label: "Chroma path", placeholder: "./chroma_db"},
	},
	FormScout: {
		{label: "Theme", placeholder: "e.g. retro computing"},
		{label: "Constraints", placeholder: "comma-separated, e.g. under 60s, no voiceover"},
	},
}

// FormModal edits the inputs of one action: the vault and chroma paths for
// an ingest, or the theme and constraints for a scout.
type FormModal struct {
	kind   FormKind
	inputs []textinput.Model
	labels []string
	focus  int
	width  int
	height int
}

// NewFormModal creates a form pre-filled with values (in field order).
func NewFormModal(kind FormKind, values []string, screenW int) *FormModal {
	fields := formFields[kind]
	m := &FormModal{kind: kind}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = 512
		ti.Prompt = ""
		if i < len(values) {
			ti.SetValue(values[i])
		}
		m.inputs = append(m.inputs, ti)
		m.labels = append(m.labels, f.label)
	}
	m.SetSize(screenW)
	m.inputs[0].Focus()
	return m
}

func (m *FormModal) SetSize(screenW int) {
	m.width = screenW * 70 / 100
	if m.width < 44 {
		m.width = 44
	}
	if m.width > 90 {
		m.width = 90
	}
	// 2 borders + label/input pair per field + blank line between fields
	m.height = 2 + len(m.inputs)*3 - 1
	for i := range m.inputs {
		m.inputs[i].Width = m.width - 4
	}
}

func (m *FormModal) Kind() FormKind { return m.kind }

// Values returns the trimmed input values in field order.
func (m *FormModal) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (m *FormModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModal) Update(msg tea.Msg) (*FormModal, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+c":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case "enter", "ctrl+s":
			submitted := FormSubmittedMsg{Kind: m.kind, Values: m.Values(), Run: km.String() == "enter"}
			return nil, func() tea.Msg { return submitted }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModal) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *FormModal) View() string {
	var b strings.Builder
	for i, in := range m.inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := styles.TextSecondaryStyle.Render(m.labels[i])
		if i == m.focus {
			label = styles.SelectedOptionStyle.Render(m.labels[i])
		}
		b.WriteString(" " + label + "\n")
		b.WriteString(" " + in.View())
	}

	title := "Ingest Settings"
	run := " ingest"
	if m.kind == FormScout {
		title, run = "Scout Settings", " scout"
	}
	kbs := []border.Keybind{
		{Key: "⏎", Label: run},
		{Key: "^S", Label: " save"},
		{Key: "Tab", Label: " next"},
		{Key: "Esc", Label: " cancel"},
	}
	return border.RenderPanel(title, b.String(), kbs, m.width, m.height, true)
}
