package panels

import "github.com/justinpbarnett/labtop/internal/ui/border"

// selectKeybinds replace a panel's keybinds while lines are being selected.
var selectKeybinds = []border.Keybind{
	{Key: "j/k", Label: " extend"},
	{Key: "y", Label: "ank lines"},
	{Key: "Esc", Label: " cancel"},
}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// YankMsg asks the app to copy Text to the clipboard.
type YankMsg struct {
	Text string
}

// FormSubmittedMsg carries the values of a submitted action form. When Run
// is set the action starts right away.
type FormSubmittedMsg struct {
	Kind   FormKind
	Values []string
	Run    bool
}
