package dashboard

import (
	"time"

	"github.com/justinpbarnett/labtop/internal/api"
)

// Phase is the lifecycle of one triggered action as shown on its badge.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Badge labels used by the controllers.
const (
	LabelIdle    = "Idle"
	LabelRunning = "Running…"
	LabelSuccess = "Success"
	LabelDone    = "Done"
	LabelError   = "Error"
)

type Badge struct {
	Phase Phase
	Label string
}

// Availability is the backend health indicator.
type Availability string

const (
	AvailabilityUnknown Availability = "unknown"
	AvailabilityOK      Availability = "ok"
	AvailabilityWarn    Availability = "warn"
	AvailabilityError   Availability = "error"
)

// Action identifies one of the long-running backend jobs.
type Action string

const (
	ActionIngest Action = "ingest"
	ActionScout  Action = "scout"
)

// LogLine is one line of the ingest log. Level carries the event type the
// line arrived with (log, warning, success, error).
type LogLine struct {
	Message string
	Level   string
}

// ActionState is the badge and in-flight flag of one action.
type ActionState struct {
	Badge     Badge
	Running   bool
	StartedAt time.Time
}

// State is everything the dashboard renders. Controllers never mutate it
// directly; they emit Updates which are applied in order with Apply.
type State struct {
	Availability  Availability
	StatusLabel   string
	Server        *api.Status
	StatusChecked time.Time

	Ingest    ActionState
	IngestLog []LogLine

	Scout      ActionState
	Trends     []api.Trend
	ScoutError string

	Feed *Feed
}

func NewState(feedCapacity int) *State {
	return &State{
		Availability: AvailabilityUnknown,
		StatusLabel:  "Checking server…",
		Ingest:       ActionState{Badge: Badge{Phase: PhaseIdle, Label: LabelIdle}},
		Scout:        ActionState{Badge: Badge{Phase: PhaseIdle, Label: LabelIdle}},
		Feed:         NewFeed(feedCapacity),
	}
}

// Apply folds one update into the state.
func (s *State) Apply(u Update) {
	if u == nil {
		return
	}
	u.apply(s)
}

// Action returns the state of the given action.
func (s *State) Action(a Action) *ActionState {
	if a == ActionScout {
		return &s.Scout
	}
	return &s.Ingest
}

// AnyRunning reports whether an ingest or scout is in flight.
func (s *State) AnyRunning() bool {
	return s.Ingest.Running || s.Scout.Running
}
