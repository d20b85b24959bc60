package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"toroca/internal/app"
	icore "toroca/internal/core"
	"toroca/internal/ctxlog"
	_ "toroca/internal/sims/automaton"
	"toroca/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "caterm:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The screen owns stderr while it runs, so logs only show up when
	// -log-file is given.
	out, closeLog, err := app.LogOutput(cfg.LogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	if err := cfg.Resolve(ctx, flag.CommandLine); err != nil {
		return err
	}

	sim, err := icore.New(string(cfg.RuleName()), cfg.SimOptions())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	logger.Info("Starting terminal viewer.", "rule", sim.Name(), "family", cfg.Family,
		"pattern", cfg.Pattern, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "seed", cfg.Seed)

	ctrl := app.NewController(sim, cfg.TPS, cfg.Seed, logger)
	return term.New(screen, ctrl).Run(ctx)
}
