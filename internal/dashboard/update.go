package dashboard

import (
	"time"

	"github.com/justinpbarnett/labtop/internal/api"
)

// Update is one state transition emitted by a controller.
type Update interface {
	apply(*State)
}

// StatusLoaded records a successful status check.
type StatusLoaded struct {
	Status *api.Status
	At     time.Time
}

func (u StatusLoaded) apply(s *State) {
	s.Server = u.Status
	s.StatusChecked = u.At
	if u.Status != nil && u.Status.APIKeyPresent {
		s.Availability = AvailabilityOK
		s.StatusLabel = "Services available"
	} else {
		s.Availability = AvailabilityWarn
		s.StatusLabel = "No API key, mock mode"
	}
}

// StatusFailed records a status check that could not reach the server.
type StatusFailed struct {
	Err string
	At  time.Time
}

func (u StatusFailed) apply(s *State) {
	s.Availability = AvailabilityError
	s.StatusLabel = "Cannot reach server"
	s.StatusChecked = u.At
}

// ActionStarted resets an action's visible state and marks it running.
type ActionStarted struct {
	Action Action
	At     time.Time
}

func (u ActionStarted) apply(s *State) {
	a := s.Action(u.Action)
	a.Running = true
	a.StartedAt = u.At
	a.Badge = Badge{Phase: PhaseRunning, Label: LabelRunning}
	switch u.Action {
	case ActionIngest:
		s.IngestLog = nil
	case ActionScout:
		s.Trends = nil
		s.ScoutError = ""
	}
}

// ActionFinished clears an action's in-flight flag. The badge is left as
// the controller last set it.
type ActionFinished struct {
	Action Action
}

func (u ActionFinished) apply(s *State) {
	s.Action(u.Action).Running = false
}

// BadgeChanged sets an action's badge.
type BadgeChanged struct {
	Action Action
	Badge  Badge
}

func (u BadgeChanged) apply(s *State) {
	s.Action(u.Action).Badge = u.Badge
}

// IngestLogAppended adds a line to the ingest log.
type IngestLogAppended struct {
	Line LogLine
}

func (u IngestLogAppended) apply(s *State) {
	s.IngestLog = append(s.IngestLog, u.Line)
}

// FeedAppended adds an entry to the activity feed.
type FeedAppended struct {
	Entry FeedEntry
}

func (u FeedAppended) apply(s *State) {
	s.Feed.Append(u.Entry)
}

// FeedCleared empties the activity feed.
type FeedCleared struct{}

func (FeedCleared) apply(s *State) {
	s.Feed.Reset()
}

// TrendAdded appends a result card to the trend grid.
type TrendAdded struct {
	Trend api.Trend
}

func (u TrendAdded) apply(s *State) {
	s.Trends = append(s.Trends, u.Trend)
}

// ScoutFailed replaces the trend grid with an error line.
type ScoutFailed struct {
	Message string
}

func (u ScoutFailed) apply(s *State) {
	s.Trends = nil
	s.ScoutError = u.Message
}

// TrendsReplaced swaps the whole trend grid, as when raw trends are loaded.
type TrendsReplaced struct {
	Trends []api.Trend
}

func (u TrendsReplaced) apply(s *State) {
	s.Trends = append([]api.Trend(nil), u.Trends...)
	s.ScoutError = ""
}
