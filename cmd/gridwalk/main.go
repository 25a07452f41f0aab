// ABOUTME: CLI entry point for gridwalk with terminal crash recovery
// ABOUTME: Parses flags, loads settings and key bindings, runs the raw-mode session

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/gridwalk/internal/config"
	"github.com/mauromedda/gridwalk/internal/grid"
	"github.com/mauromedda/gridwalk/internal/keybindings"
	gwlog "github.com/mauromedda/gridwalk/internal/log"
	"github.com/mauromedda/gridwalk/internal/mode/interactive"
	"github.com/mauromedda/gridwalk/internal/render"
	"github.com/mauromedda/gridwalk/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if args.version {
		fmt.Printf("gridwalk %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadAll(cwd, args.configPath, buildCLIOverrides(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sessionLog, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	keys := keybindings.New(config.GlobalKeybindingsFile(), config.LocalKeybindingsFile(cwd))
	if args.keys {
		return printKeys(os.Stdout, keys.FormatAll())
	}

	dims, err := cfg.Dimensions()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	gwlog.Debug("grid %dx%d, log level %s", dims.Cols, dims.Rows, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSession(ctx, terminal.NewProcessTerminal(), os.Stdin, sessionLog, dims, cfg, keys)
}

// runSession owns raw mode for the lifetime of the loop. Logs go to
// sessionLog while the frame is on screen.
func runSession(ctx context.Context, term terminal.Terminal, in io.Reader, sessionLog io.Writer, dims grid.Dimensions, cfg *config.Settings, keys *keybindings.Manager) error {
	defer terminal.RestoreOnPanic(term)

	loop := interactive.New(interactive.Deps{
		Terminal: term,
		Input:    in,
		Renderer: render.New(term, render.NewStyles(os.Stdout), cfg.Placeholder),
		Grid:     grid.New(dims),
		Keys:     keys,
	})

	err := terminal.WithRawMode(term, func() error {
		prev := gwlog.SetOutput(sessionLog)
		defer gwlog.SetOutput(prev)
		return loop.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	return nil
}

// setupLogging applies the configured level and returns the writer logs
// should use during the raw session: the log file when one is set, nothing
// otherwise. The returned func closes the file.
func setupLogging(cfg *config.Settings) (io.Writer, func(), error) {
	level, err := gwlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	gwlog.SetLevel(level)

	if cfg.LogFile == "" {
		return io.Discard, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := gwlog.SetOutput(f)
	return f, func() {
		gwlog.SetOutput(prev)
		_ = f.Close()
	}, nil
}
