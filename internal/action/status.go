package action

import (
	"context"
	"log/slog"

	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/dashboard"
)

// CheckStatus fetches the backend status and reports availability. The
// returned status lets callers pre-fill the ingest paths.
func CheckStatus(ctx context.Context, b Backend, emit Emit) (*api.Status, error) {
	st, err := b.Status(ctx)
	if err != nil {
		slog.Warn("status check failed", "error", err)
		emit(dashboard.StatusFailed{Err: err.Error(), At: now()})
		feed(emit, dashboard.SourceSystem, "Error loading status: "+err.Error(), "error")
		return nil, err
	}

	emit(dashboard.StatusLoaded{Status: st, At: now()})
	key := "missing"
	if st.APIKeyPresent {
		key = "present"
	}
	feed(emit, dashboard.SourceSystem, "Status loaded, API key: "+key, "log")
	return st, nil
}
