package panels

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapIngest creates a tea.Model adapter around an IngestPanel for teatest use.
func wrapIngest(p *IngestPanel) tea.Model {
	return panelAdapter{
		view: func() string { return p.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			np, cmd := p.Update(msg)
			*p = np
			return cmd
		},
	}
}

// wrapScout creates a tea.Model adapter around a ScoutPanel for teatest use.
func wrapScout(p *ScoutPanel) tea.Model {
	return panelAdapter{
		view: func() string { return p.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			np, cmd := p.Update(msg)
			*p = np
			return cmd
		},
	}
}

// wrapFeed creates a tea.Model adapter around a FeedPanel for teatest use.
func wrapFeed(p *FeedPanel) tea.Model {
	return panelAdapter{
		view: func() string { return p.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			np, cmd := p.Update(msg)
			*p = np
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// wrapForm creates a tea.Model adapter around a FormModal. A submitted or
// closed form keeps rendering its last view.
func wrapForm(m *FormModal) tea.Model {
	cur := m
	return panelAdapter{
		view: func() string { return cur.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := cur.Update(msg)
			if next != nil {
				cur = next
			}
			return cmd
		},
	}
}

// testState returns a dashboard state with a finished ingest, two trend
// cards and a few feed entries.
func testState() *dashboard.State {
	s := dashboard.NewState(dashboard.DefaultFeedCapacity)
	at := time.Date(2026, 3, 1, 14, 5, 9, 0, time.UTC)
	s.Apply(dashboard.StatusLoaded{
		Status: &api.Status{APIKeyPresent: true, VaultPath: "/data/vault", ChromaPath: "/data/chroma"},
		At:     at,
	})
	s.Apply(dashboard.ActionStarted{Action: dashboard.ActionIngest, At: at})
	s.Apply(dashboard.IngestLogAppended{Line: dashboard.LogLine{Message: "Indexed 12 notes", Level: "log"}})
	s.Apply(dashboard.IngestLogAppended{Line: dashboard.LogLine{Message: "Ingest complete", Level: "success"}})
	s.Apply(dashboard.BadgeChanged{Action: dashboard.ActionIngest, Badge: dashboard.Badge{Phase: dashboard.PhaseSuccess, Label: dashboard.LabelSuccess}})
	s.Apply(dashboard.ActionFinished{Action: dashboard.ActionIngest})

	s.Apply(dashboard.TrendAdded{Trend: mustTrend(`{"topic":"Synthwave covers","score":91,"rationale":"Strong growth in short-form"}`)})
	s.Apply(dashboard.TrendAdded{Trend: mustTrend(`{"topic":"Lo-fi study","score":55}`)})

	s.Apply(dashboard.FeedAppended{Entry: dashboard.FeedEntry{Time: at, Source: dashboard.SourceSystem, Message: "Status loaded, API key: present", Level: "info"}})
	s.Apply(dashboard.FeedAppended{Entry: dashboard.FeedEntry{Time: at.Add(time.Second), Source: dashboard.SourceIngest, Message: "Started vault ingest", Level: "info"}})
	s.Apply(dashboard.FeedAppended{Entry: dashboard.FeedEntry{Time: at.Add(2 * time.Second), Source: dashboard.SourceScout, Message: "Trend: Synthwave covers (score: 91)", Level: "trend"}})
	return s
}

func mustTrend(raw string) api.Trend {
	t, err := api.DecodeTrend(json.RawMessage(raw))
	if err != nil {
		panic(err)
	}
	return t
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
