package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/labtop/internal/action"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/config"
	"github.com/justinpbarnett/labtop/internal/dashboard"
	"github.com/justinpbarnett/labtop/internal/ui/clipboard"
	"github.com/justinpbarnett/labtop/internal/ui/layout"
	"github.com/justinpbarnett/labtop/internal/ui/panels"
	"github.com/justinpbarnett/labtop/internal/ui/styles"
)

const (
	panelIngest = 0
	panelScout  = 1
	panelFeed   = 2
	numPanels   = 3
)

const (
	updateBuffer = 256
	tickInterval = 100 * time.Millisecond
)

type App struct {
	config  *config.Config
	backend action.Backend
	state   *dashboard.State
	updates chan dashboard.Update
	ctx     context.Context
	cancel  context.CancelFunc

	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	header       panels.Header
	ingest       panels.IngestPanel
	scout        panels.ScoutPanel
	feed         panels.FeedPanel
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	form         *panels.FormModal
	keys         KeyMap
	ready        bool
	ticking      bool
	pathsEdited  bool
}

func NewApp(cfg *config.Config, backend action.Backend) App {
	state := dashboard.NewState(cfg.UI.FeedLimit)
	ctx, cancel := context.WithCancel(context.Background())

	ingest := panels.NewIngestPanel(state)
	ingest.SetPaths(cfg.Paths.Vault, cfg.Paths.Chroma)
	ingest.SetScrollSpeed(cfg.UI.LogScrollSpeed)
	ingest.SetFocused(true)

	scout := panels.NewScoutPanel(state)
	scout.SetInputs(cfg.Scout.Theme, strings.Join(cfg.Scout.Constraints, ", "))
	scout.SetScrollSpeed(cfg.UI.LogScrollSpeed)

	feed := panels.NewFeedPanel(state)
	feed.SetScrollSpeed(cfg.UI.LogScrollSpeed)
	if cfg.UI.ShowTimestamps != nil {
		feed.SetShowTimestamps(*cfg.UI.ShowTimestamps)
	}

	return App{
		config:    cfg,
		backend:   backend,
		state:     state,
		updates:   make(chan dashboard.Update, updateBuffer),
		ctx:       ctx,
		cancel:    cancel,
		header:    panels.NewHeader(state, cfg.Server.URL),
		ingest:    ingest,
		scout:     scout,
		feed:      feed,
		statusBar: panels.NewStatusBar(state),
		keys:      DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		listenForChanges(a.updates),
		a.checkStatus(false),
		a.schedulePoll(),
	)
}

// State exposes the dashboard state for tests and the headless runner.
func (a App) State() *dashboard.State {
	return a.state
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		if a.form != nil {
			a.form.SetSize(msg.Width)
		}
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		a.form = nil
		return a, nil

	case UpdateMsg:
		a.state.Apply(msg.Update)
		a.refreshPanels()
		return a, listenForChanges(a.updates)

	case StatusCheckedMsg:
		if msg.Err != nil {
			if msg.Manual {
				return a.withFlash("Cannot reach server", panels.FlashError)
			}
			return a, nil
		}
		if msg.Status != nil && !a.pathsEdited {
			vault, chroma := a.ingest.Paths()
			if msg.Status.VaultPath != "" {
				vault = msg.Status.VaultPath
			}
			if msg.Status.ChromaPath != "" {
				chroma = msg.Status.ChromaPath
			}
			a.ingest.SetPaths(vault, chroma)
		}
		if msg.Manual {
			return a.withFlash("Status refreshed", panels.FlashInfo)
		}
		return a, nil

	case ActionDoneMsg:
		return a.actionDone(msg)

	case RawTrendsMsg:
		if msg.Err != nil {
			return a.withFlash("Raw trends failed: "+msg.Err.Error(), panels.FlashError)
		}
		return a.withFlash(fmt.Sprintf("Loaded %d raw trends", msg.Count), panels.FlashSuccess)

	case panels.FormSubmittedMsg:
		a.form = nil
		cmd := a.applyForm(msg)
		return a, cmd

	case panels.YankMsg:
		if msg.Text == "" {
			return a.withFlash("Nothing to yank", panels.FlashWarning)
		}
		if err := clipboard.Write(msg.Text); err != nil {
			return a.withFlash("Clipboard error: "+err.Error(), panels.FlashError)
		}
		return a.withFlash("Copied to clipboard", panels.FlashSuccess)

	case tickMsg:
		a.statusBar.Tick()
		if !a.state.AnyRunning() {
			a.ticking = false
			return a, nil
		}
		return a, tickCmd()

	case pollMsg:
		return a, tea.Batch(a.checkStatus(false), a.schedulePoll())

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case panels.GTimerExpiredMsg:
		return a.routeToFocused(msg)

	case tea.MouseMsg:
		return a.routeToFocused(msg)

	case tea.KeyMsg:
		if a.form != nil {
			var cmd tea.Cmd
			a.form, cmd = a.form.Update(msg)
			return a, cmd
		}
		if a.helpOverlay != nil {
			var cmd tea.Cmd
			*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
			return a, cmd
		}
		return a.handleKey(msg)
	}

	// Anything else (cursor blink) belongs to the open form.
	if a.form != nil {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.focusedSelecting() && msg.String() != "ctrl+c" {
		return a.routeToFocused(msg)
	}
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.cancel()
		return a, tea.Quit
	case key.Matches(msg, a.keys.FocusNext):
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.FocusPrev):
		a.focusedPanel = (a.focusedPanel - 1 + numPanels) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	case key.Matches(msg, a.keys.Status):
		return a, a.checkStatus(true)
	case key.Matches(msg, a.keys.Run):
		switch a.focusedPanel {
		case panelIngest:
			return a.startIngest()
		case panelScout:
			return a.startScout()
		}
		return a, nil
	case key.Matches(msg, a.keys.Ingest):
		return a.startIngest()
	case key.Matches(msg, a.keys.Scout):
		return a.startScout()
	case key.Matches(msg, a.keys.Edit):
		return a.openForm()
	case key.Matches(msg, a.keys.RawTrends):
		return a.loadRawTrends()
	case key.Matches(msg, a.keys.ClearFeed):
		a.state.Apply(dashboard.FeedCleared{})
		a.feed.Refresh()
		return a, nil
	case key.Matches(msg, a.keys.Yank):
		text := a.yankFocused()
		return a, func() tea.Msg { return panels.YankMsg{Text: text} }
	}
	return a.routeToFocused(msg)
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	// Assemble layout: header, action row (ingest | scout), feed, status bar
	actionRow := lipgloss.JoinHorizontal(lipgloss.Top, a.ingest.View(), a.scout.View())
	fullLayout := lipgloss.JoinVertical(lipgloss.Left,
		a.header.View(), actionRow, a.feed.View(), a.statusBar.View())

	var modalView string
	switch {
	case a.form != nil:
		modalView = a.form.View()
	case a.helpOverlay != nil:
		modalView = a.helpOverlay.View()
	}
	if modalView != "" {
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modalView,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

// Shutdown aborts in-flight streams.
func (a App) Shutdown() {
	a.cancel()
}

func (a App) startIngest() (tea.Model, tea.Cmd) {
	if a.state.Ingest.Running {
		return a.withFlash("Ingest already running", panels.FlashWarning)
	}
	vault, chroma := a.ingest.Paths()
	req := api.IngestRequest{VaultPath: vault, ChromaPath: chroma}
	slog.Info("starting ingest", "vault", vault, "chroma", chroma)

	// Mark running now so a second trigger before the controller's first
	// update is rejected.
	a.state.Apply(dashboard.ActionStarted{Action: dashboard.ActionIngest, At: time.Now()})
	a.refreshPanels()

	ctx, b, emit := a.ctx, a.backend, a.emitter()
	run := func() tea.Msg {
		out, err := action.RunIngest(ctx, b, req, emit)
		return ActionDoneMsg{Action: dashboard.ActionIngest, Outcome: out, Err: err}
	}
	return a.withTicker(run)
}

func (a App) startScout() (tea.Model, tea.Cmd) {
	if a.state.Scout.Running {
		return a.withFlash("Scout already running", panels.FlashWarning)
	}
	theme, constraints := a.scout.Inputs()
	req := api.ScoutRequest{Theme: theme, Constraints: action.ParseConstraints(constraints)}
	slog.Info("starting scout", "theme", theme, "constraints", len(req.Constraints))

	a.state.Apply(dashboard.ActionStarted{Action: dashboard.ActionScout, At: time.Now()})
	a.refreshPanels()

	ctx, b, emit := a.ctx, a.backend, a.emitter()
	run := func() tea.Msg {
		out, err := action.RunScout(ctx, b, req, emit)
		return ActionDoneMsg{Action: dashboard.ActionScout, Outcome: out, Err: err}
	}
	return a.withTicker(run)
}

func (a App) loadRawTrends() (tea.Model, tea.Cmd) {
	if a.state.Scout.Running {
		return a.withFlash("Scout is running", panels.FlashWarning)
	}
	ctx, b, emit := a.ctx, a.backend, a.emitter()
	return a, func() tea.Msg {
		trends, err := action.FetchRawTrends(ctx, b, emit)
		return RawTrendsMsg{Count: len(trends), Err: err}
	}
}

func (a App) withTicker(run tea.Cmd) (tea.Model, tea.Cmd) {
	if a.ticking {
		return a, run
	}
	a.ticking = true
	return a, tea.Batch(run, tickCmd())
}

func (a App) actionDone(msg ActionDoneMsg) (tea.Model, tea.Cmd) {
	name := "Ingest"
	if msg.Action == dashboard.ActionScout {
		name = "Scout"
	}
	if msg.Err != nil {
		slog.Warn("action failed", "action", msg.Action, "error", msg.Err)
		return a.withFlash(name+" failed: "+msg.Err.Error(), panels.FlashError)
	}
	slog.Info("action finished", "action", msg.Action,
		"badge", msg.Outcome.Badge.Label,
		"frames", msg.Outcome.Stream.Frames,
		"dropped", msg.Outcome.Stream.Dropped)
	level := panels.FlashSuccess
	if msg.Outcome.Badge.Phase == dashboard.PhaseError {
		level = panels.FlashError
	}
	return a.withFlash(name+": "+msg.Outcome.Badge.Label, level)
}

func (a *App) openForm() (tea.Model, tea.Cmd) {
	var m *panels.FormModal
	switch a.focusedPanel {
	case panelIngest:
		vault, chroma := a.ingest.Paths()
		m = panels.NewFormModal(panels.FormIngest, []string{vault, chroma}, a.width)
	case panelScout:
		theme, constraints := a.scout.Inputs()
		m = panels.NewFormModal(panels.FormScout, []string{theme, constraints}, a.width)
	default:
		return *a, nil
	}
	a.form = m
	return *a, m.Init()
}

func (a *App) applyForm(msg panels.FormSubmittedMsg) tea.Cmd {
	switch msg.Kind {
	case panels.FormIngest:
		a.ingest.SetPaths(msg.Values[0], msg.Values[1])
		a.pathsEdited = true
		if msg.Run {
			m, cmd := a.startIngest()
			*a = m.(App)
			return cmd
		}
	case panels.FormScout:
		a.scout.SetInputs(msg.Values[0], msg.Values[1])
		if msg.Run {
			m, cmd := a.startScout()
			*a = m.(App)
			return cmd
		}
	}
	return nil
}

func (a App) yankFocused() string {
	switch a.focusedPanel {
	case panelIngest:
		return a.ingest.Yank()
	case panelScout:
		return a.scout.Yank()
	default:
		return a.feed.Yank()
	}
}

func (a App) focusedSelecting() bool {
	switch a.focusedPanel {
	case panelIngest:
		return a.ingest.Selecting()
	case panelScout:
		return a.scout.Selecting()
	default:
		return a.feed.Selecting()
	}
}

func (a App) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focusedPanel {
	case panelIngest:
		a.ingest, cmd = a.ingest.Update(msg)
	case panelScout:
		a.scout, cmd = a.scout.Update(msg)
	case panelFeed:
		a.feed, cmd = a.feed.Update(msg)
	}
	return a, cmd
}

func (a App) checkStatus(manual bool) tea.Cmd {
	ctx, b, emit := a.ctx, a.backend, a.emitter()
	return func() tea.Msg {
		st, err := action.CheckStatus(ctx, b, emit)
		return StatusCheckedMsg{Status: st, Err: err, Manual: manual}
	}
}

func (a App) schedulePoll() tea.Cmd {
	if a.config.UI.PollInterval <= 0 {
		return nil
	}
	return tea.Tick(time.Duration(a.config.UI.PollInterval)*time.Second, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// emitter returns an Emit that forwards updates to the listener. Sends give
// up once the app is shutting down.
func (a App) emitter() action.Emit {
	ch, done := a.updates, a.ctx.Done()
	return func(u dashboard.Update) {
		select {
		case ch <- u:
		case <-done:
		}
	}
}

func (a App) withFlash(msg string, level panels.FlashLevel) (tea.Model, tea.Cmd) {
	a.statusBar.SetFlashWithLevel(msg, level)
	return a, tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

func (a *App) refreshPanels() {
	a.ingest.Refresh()
	a.scout.Refresh()
	a.feed.Refresh()
}

func (a *App) propagateSizes() {
	l := a.layout
	a.header.SetSize(l.HeaderWidth, l.HeaderHeight)
	a.ingest.SetSize(l.IngestWidth, l.IngestHeight)
	a.scout.SetSize(l.ScoutWidth, l.ScoutHeight)
	a.feed.SetSize(l.FeedWidth, l.FeedHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.ingest.SetFocused(a.focusedPanel == panelIngest)
	a.scout.SetFocused(a.focusedPanel == panelScout)
	a.feed.SetFocused(a.focusedPanel == panelFeed)
}

func listenForChanges(ch <-chan dashboard.Update) tea.Cmd {
	return func() tea.Msg {
		return UpdateMsg{Update: <-ch}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
