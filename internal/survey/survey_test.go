package survey

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toroca/internal/seed"
	"toroca/pkg/core"
	"toroca/pkg/rules"
)

func grid(t *testing.T, w, h int, family rules.Family, name rules.Name, pattern string) *core.Grid {
	t.Helper()
	rule, err := rules.Lookup(family, name)
	require.NoError(t, err)
	g, err := core.NewGrid(w, h, rule)
	require.NoError(t, err)
	require.NoError(t, seed.Apply(pattern, g, 1))
	return g
}

func TestClassifyFixedPoint(t *testing.T) {
	g := grid(t, 6, 6, rules.Classic, rules.Cyclic, "empty")
	got := Classify(g, 10)
	assert.Equal(t, Trajectory{Outcome: FixedPoint, Period: 1, SettledAt: 0, Generations: 1}, got)
}

func TestClassifyBlinkerCycle(t *testing.T) {
	g := grid(t, 5, 5, rules.Classic, rules.GameOfLife, "blinker")
	got := Classify(g, 10)
	assert.Equal(t, Cycle, got.Outcome)
	assert.Equal(t, 2, got.Period)
	assert.Equal(t, 0, got.SettledAt)
	assert.Equal(t, 2, got.Generations)
}

func TestClassifyGliderNeedsFullLap(t *testing.T) {
	// A glider returns home after crossing a 10x10 torus: 10 shifts of 4
	// generations each.
	short := grid(t, 10, 10, rules.Classic, rules.GameOfLife, "glider")
	assert.Equal(t, Trajectory{Outcome: Unsettled, Generations: 20}, Classify(short, 20))

	full := grid(t, 10, 10, rules.Classic, rules.GameOfLife, "glider")
	got := Classify(full, 40)
	assert.Equal(t, Cycle, got.Outcome)
	assert.Equal(t, 40, got.Period)
}

func TestClassifyTransientThenFixed(t *testing.T) {
	// A lone live cell dies in one generation, then the empty board holds.
	g := grid(t, 5, 5, rules.Classic, rules.GameOfLife, "empty")
	g.Set(2, 2, core.NewCellState(1))
	got := Classify(g, 10)
	assert.Equal(t, Trajectory{Outcome: FixedPoint, Period: 1, SettledAt: 1, Generations: 2}, got)
}

func TestRunJobStats(t *testing.T) {
	res, err := RunJob(Job{Family: rules.Classic, Rule: rules.GameOfLife, Pattern: "blinker", Seed: 3}, 5, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, Cycle, res.Outcome)
	assert.Equal(t, 3, res.Population)
	assert.Equal(t, 2, res.Distinct)

	_, err = RunJob(Job{Family: rules.Classic, Rule: "brain", Pattern: "empty"}, 5, 5, 8)
	assert.ErrorIs(t, err, rules.ErrUnknownRule)
}

func TestJobsExpansion(t *testing.T) {
	opts := DefaultOptions()
	opts.Seeds = 3
	jobs := opts.Jobs()
	assert.Len(t, jobs, len(opts.Families)*len(opts.Rules)*len(opts.Patterns)*3)
	assert.Equal(t, opts.Jobs(), jobs, "job list must be reproducible")

	more := opts
	more.Seeds = 4
	assert.Equal(t, jobs[0].Seed, more.Jobs()[0].Seed, "adding seed slots keeps earlier seeds")
	assert.NotEqual(t, jobs[0].Seed, jobs[1].Seed)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	bad := DefaultOptions()
	bad.Width = 0
	bad.Rules = []rules.Name{"brain"}
	bad.Patterns = []string{"checkerboard"}
	err := bad.Validate()
	assert.ErrorIs(t, err, core.ErrInvalidDimension)
	assert.ErrorIs(t, err, rules.ErrUnknownRule)
	assert.ErrorIs(t, err, seed.ErrUnknownPattern)
}

func smallOptions(workers int) Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 12, 12
	opts.Generations = 64
	opts.Patterns = []string{"random", "blinker", "glider"}
	opts.Workers = workers
	return opts
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	one, err := Run(context.Background(), smallOptions(1))
	require.NoError(t, err)
	many, err := Run(context.Background(), smallOptions(4))
	require.NoError(t, err)
	if diff := cmp.Diff(one, many); diff != "" {
		t.Fatalf("results differ between worker counts (-1 +4):\n%s", diff)
	}
	require.Len(t, one, len(smallOptions(1).Jobs()))
	assert.Equal(t, rules.Classic, one[0].Family)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallOptions(2))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	opts := smallOptions(1)
	opts.Generations = 0
	_, err := Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestSummarizeAndReport(t *testing.T) {
	results := []Result{
		{Job: Job{Family: rules.Classic, Rule: rules.GameOfLife, Pattern: "blinker"}, Trajectory: Trajectory{Outcome: Cycle, Period: 2}},
		{Job: Job{Family: rules.Classic, Rule: rules.GameOfLife, Pattern: "glider"}, Trajectory: Trajectory{Outcome: Cycle, Period: 40}},
		{Job: Job{Family: rules.Classic, Rule: rules.Cyclic, Pattern: "empty"}, Trajectory: Trajectory{Outcome: FixedPoint, Period: 1}},
		{Job: Job{Family: rules.Classic, Rule: rules.GameOfLife, Pattern: "random"}, Trajectory: Trajectory{Outcome: Unsettled}},
	}
	want := []Tally{
		{Family: rules.Classic, Rule: rules.GameOfLife, Cycles: 2, Unsettled: 1, MaxPeriod: 40},
		{Family: rules.Classic, Rule: rules.Cyclic, Fixed: 1},
	}
	assert.Equal(t, want, Summarize(results))

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, results))
	out := buf.String()
	assert.Contains(t, out, "OUTCOME")
	assert.Contains(t, out, "unsettled")
	assert.Contains(t, out, "MAX PERIOD")
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "fixed", FixedPoint.String())
	assert.Equal(t, "cycle", Cycle.String())
	assert.Equal(t, "unsettled", Unsettled.String())
}
