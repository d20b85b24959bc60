//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"toroca/internal/app"
	icore "toroca/internal/core"
	"toroca/internal/ctxlog"
	_ "toroca/internal/sims/automaton"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ca:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	out, closeLog, err := app.LogOutput(cfg.LogFile, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, out)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := cfg.Resolve(ctx, flag.CommandLine); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sim, err := icore.New(string(cfg.RuleName()), cfg.SimOptions())
	if err != nil {
		return fmt.Errorf("building automaton: %w", err)
	}

	ctrl := app.NewController(sim, cfg.TPS, cfg.Seed, logger)
	game := app.New(ctrl, cfg.Scale)
	size := sim.Size()

	// Frames run at 60 per second; the controller paces generations.
	ebiten.SetWindowTitle("toroca: " + sim.Name())
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	logger.Info("Starting GUI viewer.", "rule", sim.Name(), "family", cfg.Family, "pattern", cfg.Pattern)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("Viewer stopped.", "error", err)
		return err
	}
	return nil
}
