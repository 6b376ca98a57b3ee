package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate re-checks a config after callers have modified it, such as
// applying command-line overrides.
func (c *Config) Validate() error { return validate(c) }

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. Every check runs and errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	// Server URL must be an absolute http(s) URL
	u, err := url.Parse(cfg.Server.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Sprintf("server.url %q is not a valid URL: %v", cfg.Server.URL, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Sprintf("server.url %q must use http or https", cfg.Server.URL))
	case u.Host == "":
		errs = append(errs, fmt.Sprintf("server.url %q has no host", cfg.Server.URL))
	}

	// Log level must be a known value
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be \"debug\", \"info\", \"warn\", or \"error\"", cfg.Log.Level))
	}

	// Positive value checks
	if cfg.Server.StatusTimeout <= 0 {
		errs = append(errs, "server.status_timeout must be positive")
	}
	if cfg.UI.FeedLimit <= 0 {
		errs = append(errs, "ui.feed_limit must be positive")
	}
	if cfg.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}
	if cfg.UI.PollInterval < 0 {
		errs = append(errs, "ui.poll_interval must not be negative")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
