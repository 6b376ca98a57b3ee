package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/justinpbarnett/labtop/internal/config"
)

// setupLogging points the default slog logger at the log file so nothing is
// written over the dashboard. The returned func closes the file. When the
// file cannot be opened, logging is discarded instead.
func setupLogging(cfg *config.Config) (func(), error) {
	f, err := openLogFile(cfg)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger.With("pid", os.Getpid()))
	slog.Info("labtop starting", "server", cfg.Server.URL)

	return func() { f.Close() }, nil
}

func openLogFile(cfg *config.Config) (*os.File, error) {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
