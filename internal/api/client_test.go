package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/justinpbarnett/labtop/internal/config"
)

func TestStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"api_key_present":true,"vault_path":"./my_vault","chroma_path":"./chroma_db","models_config":"config/models.yaml","services_ready":false}`))
	}))
	defer srv.Close()

	st, err := NewClient(srv.URL + "/").Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if !st.APIKeyPresent {
		t.Error("expected api key present")
	}
	if st.VaultPath != "./my_vault" || st.ChromaPath != "./chroma_db" {
		t.Errorf("unexpected paths: %+v", st)
	}
	if st.ModelsConfig != "config/models.yaml" {
		t.Errorf("expected models config, got %q", st.ModelsConfig)
	}
}

func TestStatusServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Status(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != 500 {
		t.Errorf("expected 500, got %d", se.StatusCode)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("expected error to mention HTTP 500, got %q", err.Error())
	}
}

func TestStatusMalformedJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Status(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if !strings.Contains(err.Error(), "parsing response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStatusUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewClient(url).Status(context.Background()); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestStatusTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL)
	c.statusTimeout = 50 * time.Millisecond
	_, err := c.Status(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestIngestPostsPathsAndStreams(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vault/ingest" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		var req IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if req.VaultPath != "/v" || req.ChromaPath != "/c" {
			t.Errorf("unexpected request body %+v", req)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: done\ndata: {}\n\n"))
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL).Ingest(context.Background(), IngestRequest{VaultPath: "/v", ChromaPath: "/c"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "event: done\ndata: {}\n\n" {
		t.Errorf("unexpected body %q", data)
	}
}

func TestScoutSendsEmptyConstraintsArray(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(raw), `"constraints":[]`) {
			t.Errorf("expected empty constraints array, got %s", raw)
		}
		if !strings.Contains(string(raw), `"theme":"retro"`) {
			t.Errorf("expected theme, got %s", raw)
		}
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL).Scout(context.Background(), ScoutRequest{Theme: "retro"})
	if err != nil {
		t.Fatalf("Scout() error: %v", err)
	}
	body.Close()
}

func TestScoutNonSuccessStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Scout(context.Background(), ScoutRequest{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusBadGateway || se.Path != "/api/scout" {
		t.Errorf("unexpected status error %+v", se)
	}
	if err.Error() != "HTTP 502" {
		t.Errorf("expected %q, got %q", "HTTP 502", err.Error())
	}
}

func TestRawTrends(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trends/raw" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"trends":[{"topic":"AI in everyday tools","engagement":92},{"topic":"Retro tech nostalgia","engagement":58}]}`))
	}))
	defer srv.Close()

	trends, err := NewClient(srv.URL).RawTrends(context.Background())
	if err != nil {
		t.Fatalf("RawTrends() error: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(trends))
	}
	if trends[0].Score.Display(ScoreUnknown) != "92" || trends[0].Score.Class() != ScoreHigh {
		t.Errorf("unexpected first trend %+v", trends[0])
	}
	if trends[1].Score.Class() != ScoreLow {
		t.Errorf("expected low class, got %q", trends[1].Score.Class())
	}
}

func TestNewClientFromConfig(t *testing.T) {
	t.Parallel()
	c := NewClientFromConfig(&config.ServerConfig{URL: "http://lab:8000/", StatusTimeout: 2})
	if c.BaseURL() != "http://lab:8000" {
		t.Errorf("expected trimmed base url, got %q", c.BaseURL())
	}
	if c.statusTimeout != 2*time.Second {
		t.Errorf("expected 2s status timeout, got %v", c.statusTimeout)
	}
}
