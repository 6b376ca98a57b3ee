package ui

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/config"
)

const waitDuration = 3 * time.Second

const (
	ingestBody = "data: {\"message\":\"Scanning vault\"}\n\n" +
		"event: success\ndata: {\"message\":\"Ingested 3 notes\"}\n\n" +
		"event: done\ndata: {}\n\n"
	scoutBody = "event: trend\ndata: {\"topic\":\"Synthwave covers\",\"score\":88,\"rationale\":\"Rising fast\"}\n\n" +
		"event: trend\ndata: {\"trend\":{\"topic\":\"Desk tours\",\"relevance\":61}}\n\n" +
		"event: done\ndata: {}\n\n"
)

// labServer fakes the Creative Lab backend.
func labServer(tb testing.TB) *httptest.Server {
	tb.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"api_key_present":true,"vault_path":"/srv/vault","chroma_path":"/srv/chroma"}`)
	})
	mux.HandleFunc("/api/vault/ingest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, ingestBody)
	})
	mux.HandleFunc("/api/scout", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, scoutBody)
	})
	mux.HandleFunc("/api/trends/raw", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"trends":[{"topic":"raw one","score":40},{"topic":"raw two"}]}`)
	})
	srv := httptest.NewServer(mux)
	tb.Cleanup(srv.Close)
	return srv
}

// appAdapter wraps the App (value receiver model) into a model that
// suppresses Init() side effects (update listener, status check, poll)
// so the teatest program doesn't block forever on channel reads. Pending
// controller updates are applied before and after every message instead.
type appAdapter struct {
	app App
}

func newTestAppAdapter(tb testing.TB) *appAdapter {
	tb.Helper()
	cfg := config.DefaultConfig()
	a := NewApp(&cfg, api.NewClient(labServer(tb).URL))
	tb.Cleanup(a.Shutdown)
	return &appAdapter{app: a}
}

func (a *appAdapter) Init() tea.Cmd {
	return nil
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.app = drainUpdates(a.app)
	m, cmd := a.app.Update(msg)
	a.app = drainUpdates(m.(App))
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

// drainUpdates applies every update waiting on the app's channel.
func drainUpdates(a App) App {
	for {
		select {
		case u := <-a.updates:
			m, _ := a.Update(UpdateMsg{Update: u})
			a = m.(App)
		default:
			return a
		}
	}
}

// waitForContains waits until the output contains the given substring.
// waitForContains blocks until every substr has appeared in the output.
// WaitFor consumes what it reads, so strings drawn in the same frame must be
// checked in one call.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substrs ...string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool {
			for _, s := range substrs {
				if !bytes.Contains(bts, []byte(s)) {
					return false
				}
			}
			return true
		},
		teatest.WithDuration(waitDuration),
	)
}
