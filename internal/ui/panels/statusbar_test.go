package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/justinpbarnett/labtop/internal/dashboard"
)

func TestStatusBarActionBadges(t *testing.T) {
	sb := NewStatusBar(testState())
	sb.SetSize(120)

	view := sb.View()
	if !strings.Contains(view, "ingest: Success") {
		t.Errorf("expected ingest badge in status bar, got %q", view)
	}
	if !strings.Contains(view, "scout: Idle") {
		t.Errorf("expected idle scout badge in status bar, got %q", view)
	}
	if !strings.Contains(view, "2 trends") {
		t.Errorf("expected trend count in status bar, got %q", view)
	}
}

func TestStatusBarRunningShowsElapsed(t *testing.T) {
	s := dashboard.NewState(10)
	s.Apply(dashboard.ActionStarted{Action: dashboard.ActionScout, At: time.Now().Add(-3 * time.Second)})
	sb := NewStatusBar(s)
	sb.SetSize(120)

	view := sb.View()
	if !strings.Contains(view, "scout: Running…") {
		t.Errorf("expected running scout badge, got %q", view)
	}
	if !strings.Contains(view, statusSpinnerFrames[0]) {
		t.Error("expected spinner while an action is running")
	}
	sb.Tick()
	if !strings.Contains(sb.View(), statusSpinnerFrames[1]) {
		t.Error("expected spinner to advance on Tick")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb := NewStatusBar(dashboard.NewState(10))
	sb.SetSize(80)

	view := sb.View()
	if !strings.Contains(view, "?:help") {
		t.Error("expected '?:help' hint in status bar")
	}
}

func TestStatusBarVersion(t *testing.T) {
	sb := NewStatusBar(dashboard.NewState(10))
	sb.SetSize(80)

	view := sb.View()
	if !strings.Contains(view, "labtop") {
		t.Error("expected 'labtop' in status bar")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb := NewStatusBar(dashboard.NewState(10))
	sb.SetSize(120)
	sb.SetFlashWithLevel("Copied feed", FlashSuccess)

	view := sb.View()
	if !strings.Contains(view, "✓ Copied feed") {
		t.Errorf("expected success flash, got %q", view)
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "Copied feed") {
		t.Error("expected flash to be cleared")
	}
}

func TestStatusBarFlashExpires(t *testing.T) {
	sb := NewStatusBar(dashboard.NewState(10))
	sb.SetSize(120)
	sb.SetFlash("stale")
	sb.flashUntil = time.Now().Add(-time.Second)

	if strings.Contains(sb.View(), "stale") {
		t.Error("expected expired flash to be hidden")
	}
}
