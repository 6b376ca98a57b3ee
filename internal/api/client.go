package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/justinpbarnett/labtop/internal/config"
)

const (
	pathStatus    = "/api/status"
	pathIngest    = "/api/vault/ingest"
	pathScout     = "/api/scout"
	pathRawTrends = "/api/trends/raw"

	defaultStatusTimeout = 5 * time.Second
	errorBodyLimit       = 200
)

// Status is the backend's environment/config health report.
type Status struct {
	APIKeyPresent bool   `json:"api_key_present"`
	VaultPath     string `json:"vault_path"`
	ChromaPath    string `json:"chroma_path"`
	ModelsConfig  string `json:"models_config,omitempty"`
	ServicesReady bool   `json:"services_ready,omitempty"`
}

// IngestRequest asks the backend to index a vault into a Chroma directory.
type IngestRequest struct {
	VaultPath  string `json:"vault_path"`
	ChromaPath string `json:"chroma_path"`
}

// ScoutRequest asks the backend to scout trends for a theme.
type ScoutRequest struct {
	Theme       string   `json:"theme"`
	Constraints []string `json:"constraints"`
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the Creative Lab backend.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	statusTimeout time.Duration
}

// NewClient returns a client for baseURL. The underlying HTTP client has no
// overall timeout because ingest and scout responses stream for as long as
// the job runs; only the status call is bounded.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    cleanhttp.DefaultPooledClient(),
		statusTimeout: defaultStatusTimeout,
	}
}

// NewClientFromConfig returns a client for cfg.URL with the configured
// status timeout.
func NewClientFromConfig(cfg *config.ServerConfig) *Client {
	c := NewClient(cfg.URL)
	if cfg.StatusTimeout > 0 {
		c.statusTimeout = time.Duration(cfg.StatusTimeout) * time.Second
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Status fetches GET /api/status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	var st Status
	if err := c.getJSON(ctx, pathStatus, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// RawTrends fetches the unscored trend signals from GET /api/trends/raw.
func (c *Client) RawTrends(ctx context.Context) ([]Trend, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	var body struct {
		Trends []json.RawMessage `json:"trends"`
	}
	if err := c.getJSON(ctx, pathRawTrends, &body); err != nil {
		return nil, err
	}

	trends := make([]Trend, 0, len(body.Trends))
	for _, raw := range body.Trends {
		t, err := DecodeTrend(raw)
		if err != nil {
			return nil, fmt.Errorf("api: parsing trend: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, nil
}

// Ingest starts a vault ingest and returns the event stream body. The
// caller must close it.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) (io.ReadCloser, error) {
	return c.postStream(ctx, pathIngest, req)
}

// Scout starts a trend scout and returns the event stream body. The caller
// must close it.
func (c *Client) Scout(ctx context.Context, req ScoutRequest) (io.ReadCloser, error) {
	if req.Constraints == nil {
		req.Constraints = []string{}
	}
	return c.postStream(ctx, pathScout, req)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), errorBodyLimit),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing response: %w", err)
	}
	return nil
}

func (c *Client) postStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit*4))
		return nil, &StatusError{
			Method:     http.MethodPost,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), errorBodyLimit),
		}
	}
	return resp.Body, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
