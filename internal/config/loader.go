package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory for file discovery.
// Load calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	return load(path)
}

// LoadFile loads config from an explicit path, skipping discovery.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return load(path)
}

func load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "labtop.yaml"),
		filepath.Join(dir, "labtop.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "labtop", "config.yaml"),
			filepath.Join(home, ".config", "labtop", "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalar fields override when non-zero,
// slices replace entirely when non-nil, pointer-to-bool fields when non-nil.
func merge(base *Config, override *Config) {
	// Server
	if override.Server.URL != "" {
		base.Server.URL = override.Server.URL
	}
	if override.Server.StatusTimeout != 0 {
		base.Server.StatusTimeout = override.Server.StatusTimeout
	}

	// Paths
	if override.Paths.Vault != "" {
		base.Paths.Vault = override.Paths.Vault
	}
	if override.Paths.Chroma != "" {
		base.Paths.Chroma = override.Paths.Chroma
	}

	// Scout
	if override.Scout.Theme != "" {
		base.Scout.Theme = override.Scout.Theme
	}
	if override.Scout.Constraints != nil {
		base.Scout.Constraints = override.Scout.Constraints
	}

	// UI
	if override.UI.FeedLimit != 0 {
		base.UI.FeedLimit = override.UI.FeedLimit
	}
	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
	if override.UI.PollInterval != 0 {
		base.UI.PollInterval = override.UI.PollInterval
	}
	if override.UI.ShowTimestamps != nil {
		base.UI.ShowTimestamps = override.UI.ShowTimestamps
	}

	// Log
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}

	// Update
	if override.Update.Repo != "" {
		base.Update.Repo = override.Update.Repo
	}
}

// applyEnvOverrides applies environment variables on top of the config.
// VAULT_PATH and CHROMA_PATH are the names the backend itself reads.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LABTOP_SERVER"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("VAULT_PATH"); v != "" {
		cfg.Paths.Vault = v
	}
	if v := os.Getenv("CHROMA_PATH"); v != "" {
		cfg.Paths.Chroma = v
	}
	if v := os.Getenv("LABTOP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LABTOP_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LABTOP_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.PollInterval = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: LABTOP_POLL_INTERVAL=%q is not a valid integer, ignoring\n", v)
		}
	}
}

// DefaultLogPath returns $XDG_STATE_HOME/labtop/labtop.log, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "labtop", "labtop.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "labtop.log")
	}
	return filepath.Join(home, ".local", "state", "labtop", "labtop.log")
}
