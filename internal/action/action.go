// Package action holds the controllers behind the dashboard's status check,
// vault ingest and trend scout. Controllers talk to the backend and report
// progress only through dashboard updates; they never touch rendering.
package action

import (
	"context"
	"io"
	"time"

	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/stream"
)

// Backend is the subset of the backend API the controllers need.
// *api.Client satisfies it.
type Backend interface {
	Status(ctx context.Context) (*api.Status, error)
	Ingest(ctx context.Context, req api.IngestRequest) (io.ReadCloser, error)
	Scout(ctx context.Context, req api.ScoutRequest) (io.ReadCloser, error)
	RawTrends(ctx context.Context) ([]api.Trend, error)
}

// Emit receives updates in the order they happen.
type Emit func(dashboard.Update)

// Outcome describes how a streamed action ended.
type Outcome struct {
	Badge  dashboard.Badge
	Trends int
	Stream stream.Result
}

// now is swapped in tests.
var now = time.Now

func feed(emit Emit, source, msg, level string) {
	emit(dashboard.FeedAppended{Entry: dashboard.FeedEntry{
		Time:    now(),
		Source:  source,
		Message: msg,
		Level:   level,
	}})
}

func setBadge(emit Emit, a dashboard.Action, phase dashboard.Phase, label string) dashboard.Badge {
	b := dashboard.Badge{Phase: phase, Label: label}
	emit(dashboard.BadgeChanged{Action: a, Badge: b})
	return b
}
