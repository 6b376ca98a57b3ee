package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Run       key.Binding
	Ingest    key.Binding
	Scout     key.Binding
	Edit      key.Binding
	Status    key.Binding
	RawTrends key.Binding
	ClearFeed key.Binding
	Yank      key.Binding
	Select    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "down"),
		),
		Top: key.NewBinding(
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("Tab", "next panel"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-Tab", "previous panel"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "run focused action"),
		),
		Ingest: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "vault ingest"),
		),
		Scout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "trend scout"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit inputs"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "refresh status"),
		),
		RawTrends: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "raw trends"),
		),
		ClearFeed: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear feed"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
		Select: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select lines"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
