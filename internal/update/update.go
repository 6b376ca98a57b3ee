// Package update checks GitHub Releases for newer labtop builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
)

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

// ErrDevBuild is returned by Apply for builds without a release version.
var ErrDevBuild = errors.New("cannot update a development build, install from a release first")

// Release holds information about an available update.
type Release struct {
	Version      string
	URL          string
	ReleaseNotes string
}

// Notice is the one-line message shown when rel is newer than current.
func (r *Release) Notice(current string) string {
	return fmt.Sprintf("labtop v%s is available (running %s), run `labtop update` to install",
		strings.TrimPrefix(r.Version, "v"), current)
}

// CheckForUpdate queries GitHub Releases for a newer version.
// Returns nil if the current version is already the latest or if it is a
// development build.
func CheckForUpdate(ctx context.Context, currentVersion, repo string) (*Release, error) {
	if isDevBuild(currentVersion) {
		return nil, nil
	}
	if _, err := parseSemver(currentVersion); err != nil {
		slog.Debug("skipping update check", "version", currentVersion, "error", err)
		return nil, nil
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found || !IsNewer(currentVersion, latest.Version()) {
		return nil, nil
	}

	slog.Info("update available", "current", currentVersion, "latest", latest.Version())
	return &Release{
		Version:      latest.Version(),
		URL:          latest.URL,
		ReleaseNotes: latest.ReleaseNotes,
	}, nil
}

// Apply downloads the latest release binary and replaces the current executable.
func Apply(ctx context.Context, currentVersion, repo string) (*Release, error) {
	if isDevBuild(currentVersion) {
		return nil, ErrDevBuild
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(currentVersion, "v"), selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}

	slog.Info("updated binary", "from", currentVersion, "to", rel.Version())
	return &Release{
		Version:      rel.Version(),
		URL:          rel.URL,
		ReleaseNotes: rel.ReleaseNotes,
	}, nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

func isDevBuild(v string) bool {
	return v == "" || v == "dev"
}

// IsNewer reports whether latest is a strictly greater release than
// current. Unparseable versions are never newer.
func IsNewer(current, latest string) bool {
	if _, err := parseSemver(latest); err != nil {
		return false
	}
	return CompareVersions(current, latest) < 0
}

// CompareVersions compares two semver strings.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// Unparseable versions are treated as less than any valid version.
func CompareVersions(current, latest string) int {
	cv, errC := parseSemver(current)
	lv, errL := parseSemver(latest)

	if errC != nil && errL != nil {
		return 0
	}
	if errC != nil {
		return -1
	}
	if errL != nil {
		return 1
	}

	return cv.Compare(lv)
}

// parseSemver strips a leading "v" and handles git-describe suffixes
// like "0.1.0-3-gabcdef" by parsing only the base version.
func parseSemver(s string) (*semver.Version, error) {
	s = strings.TrimPrefix(s, "v")
	return semver.NewVersion(s)
}
