package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/justinpbarnett/labtop/internal/action"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/config"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/text"
)

// printer applies updates to a private state and echoes each feed entry
// to w as it happens.
type printer struct {
	w     io.Writer
	state *dashboard.State
}

func newPrinter(w io.Writer, feedLimit int) *printer {
	return &printer{w: w, state: dashboard.NewState(feedLimit)}
}

func (p *printer) emit(u dashboard.Update) {
	p.state.Apply(u)
	if f, ok := u.(dashboard.FeedAppended); ok {
		e := f.Entry
		fmt.Fprintf(p.w, "%s %s %s\n", text.Clock(e.Time), text.PadRight(e.Source, 7), e.Message)
	}
}

// runHeadless runs one controller without the dashboard. The exit code is
// non-zero when the backend could not be reached or the action ended in an
// error.
func runHeadless(cmd string, cfg *config.Config, b action.Backend, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := newPrinter(stdout, cfg.UI.FeedLimit)
	switch cmd {
	case "status":
		st, err := action.CheckStatus(ctx, b, p.emit)
		if err != nil {
			return 1
		}
		printStatus(stdout, cfg.Server.URL, st)
		return 0

	case "ingest":
		out, err := action.RunIngest(ctx, b, api.IngestRequest{
			VaultPath:  cfg.Paths.Vault,
			ChromaPath: cfg.Paths.Chroma,
		}, p.emit)
		return finish(stderr, "ingest", out, err)

	case "scout":
		out, err := action.RunScout(ctx, b, api.ScoutRequest{
			Theme:       cfg.Scout.Theme,
			Constraints: cfg.Scout.Constraints,
		}, p.emit)
		if code := finish(stderr, "scout", out, err); code != 0 {
			return code
		}
		printTrends(stdout, p.state.Trends)
		return 0

	case "trends":
		trends, err := action.FetchRawTrends(ctx, b, p.emit)
		if err != nil {
			return 1
		}
		printTrends(stdout, trends)
		return 0
	}

	fmt.Fprintf(stderr, "error: unknown command %q\n", cmd)
	return 2
}

func finish(stderr io.Writer, name string, out action.Outcome, err error) int {
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", name, err)
		return 1
	}
	if out.Badge.Phase == dashboard.PhaseError {
		fmt.Fprintf(stderr, "%s reported an error\n", name)
		return 1
	}
	return 0
}

func printStatus(w io.Writer, server string, st *api.Status) {
	key := "missing (mock mode)"
	if st.APIKeyPresent {
		key = "present"
	}
	fmt.Fprintf(w, "server:  %s\n", server)
	fmt.Fprintf(w, "api key: %s\n", key)
	fmt.Fprintf(w, "vault:   %s\n", st.VaultPath)
	fmt.Fprintf(w, "chroma:  %s\n", st.ChromaPath)
	if st.ModelsConfig != "" {
		fmt.Fprintf(w, "models:  %s\n", st.ModelsConfig)
	}
}

func printTrends(w io.Writer, trends []api.Trend) {
	if len(trends) == 0 {
		fmt.Fprintln(w, "no trends")
		return
	}
	fmt.Fprintln(w)
	for _, t := range trends {
		fmt.Fprintf(w, "%s %s\n", text.PadRight(t.Score.Display(api.ScoreUnknown), 5), t.Topic)
		if t.Rationale != "" {
			for _, l := range text.WrapIndent(t.Rationale, 74, "", 0) {
				fmt.Fprintf(w, "      %s\n", l)
			}
		}
	}
}
