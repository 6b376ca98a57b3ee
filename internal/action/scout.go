package action

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/stream"
)

// RawSignalRationale labels cards built from unscored raw trends.
const RawSignalRationale = "Raw signal (no LLM scoring)"

// ParseConstraints splits a comma-separated constraint list, trimming each
// entry and dropping empty ones. The result is never nil.
func ParseConstraints(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RunScout triggers a trend scout and renders each trend as it arrives.
// The final badge reports the number of trends, or "Done" when none came
// back.
func RunScout(ctx context.Context, b Backend, req api.ScoutRequest, emit Emit) (Outcome, error) {
	if req.Constraints == nil {
		req.Constraints = []string{}
	}

	emit(dashboard.ActionStarted{Action: dashboard.ActionScout, At: now()})
	defer emit(dashboard.ActionFinished{Action: dashboard.ActionScout})

	theme := req.Theme
	if theme == "" {
		theme = "none"
	}
	feed(emit, dashboard.SourceScout, fmt.Sprintf("Started scout, theme: %q", theme), "log")

	var out Outcome

	fail := func(err error) (Outcome, error) {
		slog.Error("scout failed", "theme", req.Theme, "error", err)
		out.Badge = setBadge(emit, dashboard.ActionScout, dashboard.PhaseError, dashboard.LabelError)
		feed(emit, dashboard.SourceScout, "Error: "+err.Error(), "error")
		emit(dashboard.ScoutFailed{Message: err.Error()})
		return out, err
	}

	body, err := b.Scout(ctx, req)
	if err != nil {
		return fail(err)
	}
	defer body.Close()

	handlers := stream.Handlers{
		ByType: map[string]stream.HandlerFunc{
			"trend": func(f stream.Frame) {
				t, err := api.DecodeTrend(f.Data)
				if err != nil {
					slog.Debug("trend payload not an object", "data", string(f.Data))
					t = api.Trend{Topic: api.DefaultTopic}
				}
				emit(dashboard.TrendAdded{Trend: t})
				out.Trends++
				feed(emit, dashboard.SourceScout,
					fmt.Sprintf("Trend: %s (score: %s)", t.Topic, t.Score.Display(api.ScoreNA)), "log")
			},
		},
		Fallback: func(f stream.Frame) {
			feed(emit, dashboard.SourceScout, f.Message(), f.EventType)
			if f.EventType == "error" {
				setBadge(emit, dashboard.ActionScout, dashboard.PhaseError, dashboard.LabelError)
			}
		},
	}

	res, err := stream.Dispatch(ctx, body, handlers)
	out.Stream = res
	if err != nil {
		return fail(err)
	}

	label := dashboard.LabelDone
	if out.Trends > 0 {
		label = fmt.Sprintf("%d Trends", out.Trends)
	}
	out.Badge = setBadge(emit, dashboard.ActionScout, dashboard.PhaseSuccess, label)
	slog.Info("scout finished", "trends", out.Trends, "frames", res.Frames, "dropped", res.Dropped)
	return out, nil
}

// FetchRawTrends loads the unscored trend signals and shows them in the
// trend grid.
func FetchRawTrends(ctx context.Context, b Backend, emit Emit) ([]api.Trend, error) {
	trends, err := b.RawTrends(ctx)
	if err != nil {
		slog.Warn("raw trends failed", "error", err)
		feed(emit, dashboard.SourceScout, "Error loading raw trends: "+err.Error(), "error")
		return nil, err
	}

	trends = withRawRationale(trends)
	emit(dashboard.TrendsReplaced{Trends: trends})
	feed(emit, dashboard.SourceScout, fmt.Sprintf("Loaded %d raw trends", len(trends)), "log")
	return trends, nil
}

func withRawRationale(trends []api.Trend) []api.Trend {
	out := make([]api.Trend, len(trends))
	for i, t := range trends {
		if t.Rationale == "" {
			t.Rationale = RawSignalRationale
		}
		out[i] = t
	}
	return out
}
