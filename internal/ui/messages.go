package ui

import (
	"github.com/justinpbarnett/labtop/internal/action"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/panels"
)

// Aliases for message types defined in panels.

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// UpdateMsg carries one controller update to the model.
type UpdateMsg struct {
	Update dashboard.Update
}

// StatusCheckedMsg is sent when a status check finishes.
type StatusCheckedMsg struct {
	Status *api.Status
	Err    error
	Manual bool
}

// ActionDoneMsg is sent when an ingest or scout stream ends.
type ActionDoneMsg struct {
	Action  dashboard.Action
	Outcome action.Outcome
	Err     error
}

// RawTrendsMsg is sent when the raw trend list has been loaded.
type RawTrendsMsg struct {
	Count int
	Err   error
}

type tickMsg struct{}

type pollMsg struct{}
