package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/config"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/panels"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	a := NewApp(&cfg, api.NewClient(labServer(t).URL))
	t.Cleanup(a.Shutdown)
	return a
}

func sendKey(a App, key string) App {
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return m.(App)
}

func sendSpecialKey(a App, t tea.KeyType) App {
	m, _ := a.Update(tea.KeyMsg{Type: t})
	return m.(App)
}

func sendWindowSize(a App, w, h int) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(App)
}

// runCmd executes cmd and feeds every message it produces within the
// timeout back into the app, then applies any pending controller updates.
// Long timers (flash expiry, poll) are left unfired.
func runCmd(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	msgs := make(chan tea.Msg, 16)
	var spawn func(tea.Cmd)
	spawn = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() { msgs <- c() }()
	}
	spawn(cmd)

	deadline := time.After(time.Second)
	for {
		select {
		case msg := <-msgs:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, c := range batch {
					spawn(c)
				}
				continue
			}
			switch msg.(type) {
			case tickMsg, ClearFlashMsg, UpdateMsg, nil:
				continue
			}
			m, _ := a.Update(msg)
			a = drainUpdates(m.(App))
		case <-deadline:
			return drainUpdates(a)
		}
	}
}

func TestAppInitialState(t *testing.T) {
	a := newTestApp(t)
	if a.ready {
		t.Error("expected ready to be false initially")
	}
	if a.focusedPanel != panelIngest {
		t.Errorf("expected focus on ingest, got %d", a.focusedPanel)
	}
	if a.helpOverlay != nil || a.form != nil {
		t.Error("expected no modal initially")
	}
	if vault, chroma := a.ingest.Paths(); vault != "./my_vault" || chroma != "./chroma_db" {
		t.Errorf("expected configured paths, got %q %q", vault, chroma)
	}
}

func TestAppWindowResize(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)

	if !a.ready {
		t.Error("expected ready to be true after WindowSizeMsg")
	}
	if a.width != 120 || a.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", a.width, a.height)
	}
}

func TestAppTooSmall(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 60, 20)
	if !strings.Contains(a.View(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestAppFocusCycle(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)

	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelScout {
		t.Errorf("expected scout focus after tab, got %d", a.focusedPanel)
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelFeed {
		t.Errorf("expected feed focus after second tab, got %d", a.focusedPanel)
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelIngest {
		t.Errorf("expected wrap to ingest, got %d", a.focusedPanel)
	}
	a = sendSpecialKey(a, tea.KeyShiftTab)
	if a.focusedPanel != panelFeed {
		t.Errorf("expected shift+tab to wrap to feed, got %d", a.focusedPanel)
	}
}

func TestAppHelpToggle(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)

	a = sendKey(a, "?")
	if a.helpOverlay == nil {
		t.Fatal("expected helpOverlay after ?")
	}
	if !strings.Contains(a.View(), "Keybinds") {
		t.Error("expected help in view")
	}

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	a = m.(App)
	if cmd == nil {
		t.Fatal("expected close command")
	}
	m, _ = a.Update(cmd())
	a = m.(App)
	if a.helpOverlay != nil {
		t.Error("expected helpOverlay closed")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if a.ctx.Err() == nil {
		t.Error("expected app context cancelled on quit")
	}
}

func TestAppStatusPrefillsPaths(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)
	a = runCmd(t, a, a.checkStatus(false))

	if a.state.Availability != dashboard.AvailabilityOK {
		t.Errorf("expected availability ok, got %s", a.state.Availability)
	}
	if vault, chroma := a.ingest.Paths(); vault != "/srv/vault" || chroma != "/srv/chroma" {
		t.Errorf("expected server paths, got %q %q", vault, chroma)
	}
	if !strings.Contains(a.View(), "Services available") {
		t.Error("expected header to show availability")
	}
}

func TestAppStatusKeepsEditedPaths(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)
	m, _ := a.Update(panels.FormSubmittedMsg{Kind: panels.FormIngest, Values: []string{"/mine", "/db"}})
	a = m.(App)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	a = runCmd(t, m.(App), cmd)
	if vault, _ := a.ingest.Paths(); vault != "/mine" {
		t.Errorf("expected edited path kept, got %q", vault)
	}
}

func TestAppIngestFlow(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)
	if !a.state.Ingest.Running {
		t.Fatal("expected ingest marked running immediately")
	}

	// A second trigger while running is rejected.
	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	a = m.(App)
	if !strings.Contains(a.statusBar.View(), "already running") {
		t.Error("expected already-running flash")
	}

	a = runCmd(t, a, cmd)
	if a.state.Ingest.Running {
		t.Error("expected ingest finished")
	}
	if a.state.Ingest.Badge.Label != dashboard.LabelSuccess {
		t.Errorf("expected Success badge, got %+v", a.state.Ingest.Badge)
	}
	view := a.View()
	for _, want := range []string{"Scanning vault", "Ingested 3 notes", "Started vault ingest"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestAppScoutFlow(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 140, 40)
	a = sendSpecialKey(a, tea.KeyTab)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = runCmd(t, m.(App), cmd)

	if len(a.state.Trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(a.state.Trends))
	}
	if a.state.Scout.Badge.Label != "2 Trends" {
		t.Errorf("expected '2 Trends' badge, got %q", a.state.Scout.Badge.Label)
	}
	view := a.View()
	for _, want := range []string{"Synthwave covers", "Desk tours", "Trend: Desk tours (score: 61)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestAppRawTrends(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 140, 40)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	a = runCmd(t, m.(App), cmd)

	if len(a.state.Trends) != 2 {
		t.Fatalf("expected 2 raw trends, got %d", len(a.state.Trends))
	}
	if a.state.Trends[0].Rationale == "" {
		t.Error("expected raw rationale filled in")
	}
	if !strings.Contains(a.statusBar.View(), "Loaded 2 raw trends") {
		t.Error("expected raw trends flash")
	}
}

func TestAppEditScoutForm(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)
	a = sendSpecialKey(a, tea.KeyTab)

	a = sendKey(a, "e")
	if a.form == nil || a.form.Kind() != panels.FormScout {
		t.Fatal("expected scout form open")
	}
	a = sendKey(a, "retro")
	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	a = m.(App)
	m, _ = a.Update(cmd())
	a = m.(App)

	if a.form != nil {
		t.Error("expected form closed after save")
	}
	if theme, _ := a.scout.Inputs(); theme != "retro" {
		t.Errorf("expected theme saved, got %q", theme)
	}
	if a.state.Scout.Running {
		t.Error("expected save without starting a scout")
	}
}

func TestAppEditOnFeedIsNoop(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)
	a = sendSpecialKey(a, tea.KeyShiftTab)
	a = sendKey(a, "e")
	if a.form != nil {
		t.Error("expected no form for the feed panel")
	}
}

func TestAppClearFeed(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)
	a.state.Apply(dashboard.FeedAppended{Entry: dashboard.FeedEntry{Source: dashboard.SourceSystem, Message: "hello"}})

	a = sendKey(a, "c")
	if a.state.Feed.Len() != 0 {
		t.Error("expected feed cleared")
	}
	if !strings.Contains(a.View(), "No activity yet…") {
		t.Error("expected feed placeholder after clear")
	}
}

func TestAppYankEmpty(t *testing.T) {
	a := newTestApp(t)
	a = sendWindowSize(a, 120, 40)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	a = m.(App)
	m, _ = a.Update(cmd())
	a = m.(App)
	if !strings.Contains(a.statusBar.View(), "Nothing to yank") {
		t.Error("expected nothing-to-yank flash")
	}
}

func TestAppTickStopsWhenIdle(t *testing.T) {
	a := newTestApp(t)
	a.ticking = true
	m, cmd := a.Update(tickMsg{})
	a = m.(App)
	if cmd != nil || a.ticking {
		t.Error("expected ticker to stop with nothing running")
	}
}

func TestAppPollDisabledByDefault(t *testing.T) {
	a := newTestApp(t)
	if a.schedulePoll() != nil {
		t.Error("expected no poll with poll_interval 0")
	}
	a.config.UI.PollInterval = 10
	if a.schedulePoll() == nil {
		t.Error("expected poll command with poll_interval set")
	}
}
