// Package survey runs many automata headlessly and classifies how each
// trajectory ends: frozen, cycling or still changing when the budget runs out.
package survey

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"toroca/internal/ctxlog"
	"toroca/internal/seed"
	"toroca/pkg/core"
	"toroca/pkg/rules"
)

// Outcome is the long-run behaviour observed for one run.
type Outcome int

const (
	Unsettled Outcome = iota
	FixedPoint
	Cycle
)

func (o Outcome) String() string {
	switch o {
	case FixedPoint:
		return "fixed"
	case Cycle:
		return "cycle"
	default:
		return "unsettled"
	}
}

// Job is one run to classify.
type Job struct {
	Family  rules.Family
	Rule    rules.Name
	Pattern string
	Seed    int64
}

// Trajectory describes how a grid evolved under Classify.
type Trajectory struct {
	Outcome Outcome
	// Period is 1 for fixed points, the cycle length for cycles, 0 otherwise.
	Period int
	// SettledAt is the first generation of the repeating segment.
	SettledAt   int
	Generations int
}

// Result pairs a job with its trajectory and the final board statistics.
type Result struct {
	Job
	Trajectory
	Population int
	Distinct   int
}

// Options controls a survey.
type Options struct {
	Width, Height int
	Generations   int
	Workers       int

	Families []rules.Family
	Rules    []rules.Name
	Patterns []string

	// Seeds is the number of seeds per combination, derived from BaseSeed.
	Seeds    int
	BaseSeed int64
}

// DefaultOptions surveys every family, rule and pattern on a small board.
func DefaultOptions() Options {
	return Options{
		Width:       32,
		Height:      32,
		Generations: 256,
		Workers:     runtime.NumCPU(),
		Families:    rules.Families(),
		Rules:       rules.Names(),
		Patterns:    seed.Names(),
		Seeds:       2,
		BaseSeed:    42,
	}
}

// Validate checks dimensions and that every named rule, family and pattern
// exists.
func (o Options) Validate() error {
	var errs []error
	if o.Width < 1 || o.Height < 1 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", core.ErrInvalidDimension, o.Width, o.Height))
	}
	if o.Generations < 1 {
		errs = append(errs, fmt.Errorf("generations must be positive, got %d", o.Generations))
	}
	if o.Seeds < 1 {
		errs = append(errs, fmt.Errorf("seeds must be positive, got %d", o.Seeds))
	}
	for _, f := range o.Families {
		for _, r := range o.Rules {
			if _, err := rules.Lookup(f, r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, p := range o.Patterns {
		if _, err := seed.Lookup(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Jobs expands the options into the ordered job list. Each seed slot draws
// from its own split generator so adding slots never changes earlier seeds.
func (o Options) Jobs() []Job {
	master := core.NewRNG(o.BaseSeed)
	seeds := make([]int64, o.Seeds)
	for i := range seeds {
		seeds[i] = master.Split().Source().Int64()
	}

	jobs := make([]Job, 0, len(o.Families)*len(o.Rules)*len(o.Patterns)*len(seeds))
	for _, f := range o.Families {
		for _, r := range o.Rules {
			for _, p := range o.Patterns {
				for _, s := range seeds {
					jobs = append(jobs, Job{Family: f, Rule: r, Pattern: p, Seed: s})
				}
			}
		}
	}
	return jobs
}

// Classify evolves g up to generations times and stops at the first repeated
// board. The grid is left at the last generation computed.
func Classify(g *core.Grid, generations int) Trajectory {
	buf := g.Snapshot(nil)
	seen := map[string]int{string(buf): 0}
	for gen := 1; gen <= generations; gen++ {
		g.Evolve()
		buf = g.Snapshot(buf[:0])
		key := string(buf)
		if first, ok := seen[key]; ok {
			t := Trajectory{Period: gen - first, SettledAt: first, Generations: gen}
			if t.Period == 1 {
				t.Outcome = FixedPoint
			} else {
				t.Outcome = Cycle
			}
			return t
		}
		seen[key] = gen
	}
	return Trajectory{Outcome: Unsettled, Generations: generations}
}

// RunJob builds, seeds and classifies a single job.
func RunJob(job Job, width, height, generations int) (Result, error) {
	rule, err := rules.Lookup(job.Family, job.Rule)
	if err != nil {
		return Result{}, err
	}
	g, err := core.NewGrid(width, height, rule)
	if err != nil {
		return Result{}, err
	}
	if err := seed.Apply(job.Pattern, g, job.Seed); err != nil {
		return Result{}, err
	}

	res := Result{Job: job, Trajectory: Classify(g, generations)}
	res.Population = g.Population()
	for _, n := range g.Histogram() {
		if n > 0 {
			res.Distinct++
		}
	}
	return res, nil
}

// Run classifies every job from opts on a pool of workers. Results come back
// in job order regardless of the worker count. Cancelling ctx stops the pool
// between jobs; a generation in progress always completes.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	jobs := opts.Jobs()
	logger.Info("Starting survey.", "jobs", len(jobs), "workers", workers,
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "generations", opts.Generations)

	type indexed struct {
		i   int
		res Result
		err error
	}
	work := make(chan int)
	results := make(chan indexed)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				res, err := RunJob(jobs[i], opts.Width, opts.Height, opts.Generations)
				results <- indexed{i: i, res: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(work)
		for i := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case work <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make([]Result, len(jobs))
	var errs []error
	done := 0
	for r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		out[r.i] = r.res
		done++
		logger.Debug("Job classified.", "family", r.res.Family, "rule", r.res.Rule,
			"pattern", r.res.Pattern, "seed", r.res.Seed, "outcome", r.res.Outcome, "period", r.res.Period)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil && done < len(jobs) {
		logger.Warn("Survey cancelled.", "completed", done, "jobs", len(jobs))
		return nil, err
	}
	logger.Info("Survey finished.", "jobs", done)
	return out, nil
}
