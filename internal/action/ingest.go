package action

import (
	"context"
	"log/slog"

	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/stream"
)

// RunIngest triggers a vault ingest and streams its progress into the
// ingest log and the activity feed. A stream that ends without an explicit
// success or error event settles to "Done".
func RunIngest(ctx context.Context, b Backend, req api.IngestRequest, emit Emit) (Outcome, error) {
	emit(dashboard.ActionStarted{Action: dashboard.ActionIngest, At: now()})
	defer emit(dashboard.ActionFinished{Action: dashboard.ActionIngest})
	feed(emit, dashboard.SourceIngest, "Started vault ingest", "log")

	out := Outcome{Badge: dashboard.Badge{Phase: dashboard.PhaseRunning, Label: dashboard.LabelRunning}}

	fail := func(err error) (Outcome, error) {
		slog.Error("ingest failed", "vault", req.VaultPath, "chroma", req.ChromaPath, "error", err)
		emit(dashboard.IngestLogAppended{Line: dashboard.LogLine{Message: "❌ " + err.Error(), Level: "error"}})
		out.Badge = setBadge(emit, dashboard.ActionIngest, dashboard.PhaseError, dashboard.LabelError)
		feed(emit, dashboard.SourceIngest, "Error: "+err.Error(), "error")
		return out, err
	}

	body, err := b.Ingest(ctx, req)
	if err != nil {
		return fail(err)
	}
	defer body.Close()

	handlers := stream.Handlers{
		Fallback: func(f stream.Frame) {
			msg := f.Message()
			emit(dashboard.IngestLogAppended{Line: dashboard.LogLine{Message: msg, Level: f.EventType}})
			feed(emit, dashboard.SourceIngest, msg, f.EventType)
			switch f.EventType {
			case "success":
				out.Badge = setBadge(emit, dashboard.ActionIngest, dashboard.PhaseSuccess, dashboard.LabelSuccess)
			case "error":
				out.Badge = setBadge(emit, dashboard.ActionIngest, dashboard.PhaseError, dashboard.LabelError)
			}
		},
	}

	res, err := stream.Dispatch(ctx, body, handlers)
	out.Stream = res
	if err != nil {
		return fail(err)
	}

	if out.Badge.Phase == dashboard.PhaseRunning {
		out.Badge = setBadge(emit, dashboard.ActionIngest, dashboard.PhaseSuccess, dashboard.LabelDone)
	}
	slog.Info("ingest finished", "frames", res.Frames, "dropped", res.Dropped, "badge", out.Badge.Label)
	return out, nil
}
