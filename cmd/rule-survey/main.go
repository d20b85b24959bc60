package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"toroca/internal/app"
	"toroca/internal/ctxlog"
	"toroca/internal/survey"
	"toroca/pkg/rules"
)

func main() {
	opts := survey.DefaultOptions()
	families := flag.String("families", joinFamilies(opts.Families), "comma separated rule families")
	ruleNames := flag.String("rules", joinNames(opts.Rules), "comma separated rules")
	patterns := flag.String("patterns", strings.Join(opts.Patterns, ","), "comma separated starting patterns")
	flag.IntVar(&opts.Width, "w", opts.Width, "grid width in cells")
	flag.IntVar(&opts.Height, "h", opts.Height, "grid height in cells")
	flag.IntVar(&opts.Generations, "steps", opts.Generations, "generations to simulate per run")
	flag.IntVar(&opts.Workers, "workers", opts.Workers, "number of worker goroutines")
	flag.IntVar(&opts.Seeds, "seeds", opts.Seeds, "seeds per combination")
	flag.Int64Var(&opts.BaseSeed, "seed", opts.BaseSeed, "seed the per-run seeds are derived from")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	logger := app.NewLogger(*logLevel, *logFormat, os.Stderr)

	var err error
	if opts.Families, err = parseFamilies(*families); err != nil {
		logger.Error("Invalid -families.", "error", err)
		os.Exit(2)
	}
	if opts.Rules, err = parseNames(*ruleNames); err != nil {
		logger.Error("Invalid -rules.", "error", err)
		os.Exit(2)
	}
	opts.Patterns = splitList(*patterns)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	start := time.Now()
	results, err := survey.Run(ctx, opts)
	if err != nil {
		logger.Error("Survey failed.", "error", err)
		os.Exit(1)
	}
	if err := survey.WriteReport(os.Stdout, results); err != nil {
		logger.Error("Writing report failed.", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\n%d runs in %s\n", len(results), time.Since(start).Round(time.Millisecond))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFamilies(s string) ([]rules.Family, error) {
	var out []rules.Family
	for _, part := range splitList(s) {
		f, err := rules.ParseFamily(part)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func parseNames(s string) ([]rules.Name, error) {
	var out []rules.Name
	for _, part := range splitList(s) {
		n, err := rules.ParseName(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func joinFamilies(fs []rules.Family) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func joinNames(ns []rules.Name) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = string(n)
	}
	return strings.Join(parts, ",")
}
