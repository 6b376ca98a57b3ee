package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/labtop/internal/action"
	"github.com/justinpbarnett/labtop/internal/api"
	"github.com/justinpbarnett/labtop/internal/config"
	"github.com/justinpbarnett/labtop/internal/ui"
	"github.com/spf13/pflag"
)

const usageHeader = `labtop: terminal dashboard for the Creative Lab backend

Usage:
  labtop [flags]              open the dashboard
  labtop status [flags]       print backend status
  labtop ingest [flags]       index the vault into Chroma
  labtop scout [flags]        scout trends for a theme
  labtop trends [flags]       list raw trend signals
  labtop version              print version and check for updates
  labtop update               install the latest release

Flags:
`

// options are the command-line overrides layered on top of the config file.
type options struct {
	configPath  string
	server      string
	vault       string
	chroma      string
	theme       string
	constraints string
	logLevel    string
	logFile     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cmd := "tui"
	if fs.NArg() > 0 {
		cmd = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		return 2
	}

	switch cmd {
	case "tui", "status", "ingest", "scout", "trends", "version", "update":
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", cmd)
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if cmd == "version" {
		runVersion(stdout, cfg.Update.Repo)
		return 0
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
	} else {
		defer closeLog()
	}

	if cmd == "update" {
		return runUpdate(stdout, stderr, cfg.Update.Repo)
	}

	client := api.NewClientFromConfig(&cfg.Server)
	if cmd == "tui" {
		return runTUI(cfg, client, stderr)
	}
	return runHeadless(cmd, cfg, client, stdout, stderr)
}

func newFlagSet(stderr io.Writer) (*pflag.FlagSet, *options) {
	opts := &options{}
	fs := pflag.NewFlagSet("labtop", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "config file (default: discovered labtop.yaml/labtop.toml)")
	fs.StringVarP(&opts.server, "server", "s", "", "backend base URL")
	fs.StringVar(&opts.vault, "vault", "", "vault path to ingest")
	fs.StringVar(&opts.chroma, "chroma", "", "Chroma database path")
	fs.StringVar(&opts.theme, "theme", "", "scout theme")
	fs.StringVar(&opts.constraints, "constraints", "", "comma-separated scout constraints")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "log file path")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}
	return fs, opts
}

// loadConfig reads the config file and applies any flags that were set.
func loadConfig(fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if fs.Changed("server") {
		cfg.Server.URL = opts.server
	}
	if fs.Changed("vault") {
		cfg.Paths.Vault = opts.vault
	}
	if fs.Changed("chroma") {
		cfg.Paths.Chroma = opts.chroma
	}
	if fs.Changed("theme") {
		cfg.Scout.Theme = opts.theme
	}
	if fs.Changed("constraints") {
		cfg.Scout.Constraints = action.ParseConstraints(opts.constraints)
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if fs.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cfg *config.Config, client *api.Client, stderr io.Writer) int {
	app := ui.NewApp(cfg, client)
	defer app.Shutdown()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
