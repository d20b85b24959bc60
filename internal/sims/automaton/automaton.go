// Package automaton adapts a toroidal core.Grid to the viewer-facing Sim
// contract: it owns the rule selection, the seeding pattern and the
// generation counter.
package automaton

import (
	"fmt"

	icore "toroca/internal/core"
	"toroca/internal/seed"
	"toroca/pkg/core"
	"toroca/pkg/rules"
)

// Automaton runs one grid under a named rule.
type Automaton struct {
	cfg        Config
	grid       *core.Grid
	pattern    seed.Pattern
	generation int
	seed       int64
	cells      []uint8
}

// New validates cfg and builds an automaton seeded with cfg.Seed.
func New(cfg Config) (*Automaton, error) {
	rule, err := rules.Lookup(cfg.Family, cfg.Rule)
	if err != nil {
		return nil, err
	}
	pattern, err := seed.Lookup(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	grid, err := core.NewGrid(cfg.Width, cfg.Height, rule)
	if err != nil {
		return nil, err
	}
	a := &Automaton{cfg: cfg, grid: grid, pattern: pattern}
	a.Reset(cfg.Seed)
	return a, nil
}

// Name returns the rule name, which doubles as the sim identifier.
func (a *Automaton) Name() string { return string(a.cfg.Rule) }

// Size returns the grid dimensions.
func (a *Automaton) Size() icore.Size {
	w, h := a.grid.Dimensions()
	return icore.Size{W: w, H: h}
}

// Reset reseeds the grid with the configured pattern and restarts the
// generation count.
func (a *Automaton) Reset(seed int64) {
	a.seed = seed
	a.generation = 0
	a.pattern(a.grid, core.NewRNG(seed))
	a.refresh()
}

// Step advances the grid by one generation.
func (a *Automaton) Step() {
	a.grid.Evolve()
	a.generation++
	a.refresh()
}

// Cells exposes the current state values in row-major order. The slice is
// reused between steps.
func (a *Automaton) Cells() []uint8 { return a.cells }

func (a *Automaton) refresh() { a.cells = a.grid.Snapshot(a.cells) }

// Grid exposes the underlying grid.
func (a *Automaton) Grid() *core.Grid { return a.grid }

// Generation returns the number of steps since the last reset.
func (a *Automaton) Generation() int { return a.generation }

// Seed returns the seed used by the last reset.
func (a *Automaton) Seed() int64 { return a.seed }

// Config returns the active configuration.
func (a *Automaton) Config() Config { return a.cfg }

// Family returns the active rule family.
func (a *Automaton) Family() rules.Family { return a.cfg.Family }

// SetRule rebinds the grid to another rule of the active family. The cells
// are left as they are.
func (a *Automaton) SetRule(name rules.Name) error {
	return a.bind(a.cfg.Family, name)
}

// SetFamily switches every rule name to the given family and rebinds the
// active rule.
func (a *Automaton) SetFamily(f rules.Family) error {
	return a.bind(f, a.cfg.Rule)
}

func (a *Automaton) bind(f rules.Family, name rules.Name) error {
	rule, err := rules.Lookup(f, name)
	if err != nil {
		return err
	}
	if err := a.grid.SetRule(rule); err != nil {
		return fmt.Errorf("bind %s/%s: %w", f, name, err)
	}
	a.cfg.Family = f
	a.cfg.Rule = name
	return nil
}

// Parameters reports the run state for overlays and status lines.
func (a *Automaton) Parameters() icore.ParameterSnapshot {
	w, h := a.grid.Dimensions()
	return icore.ParameterSnapshot{Groups: []icore.ParameterGroup{
		{
			Name: "Rule",
			Params: []icore.Parameter{
				icore.StringParam("rule", "Rule", string(a.cfg.Rule)),
				icore.StringParam("family", "Family", string(a.cfg.Family)),
			},
		},
		{
			Name: "Run",
			Params: []icore.Parameter{
				icore.IntParam("gen", "Generation", a.generation),
				icore.IntParam("pop", "Population", a.grid.Population()),
				icore.StringParam("size", "Size", fmt.Sprintf("%dx%d", w, h)),
				icore.StringParam("pattern", "Pattern", a.cfg.Pattern),
				icore.Int64Param("seed", "Seed", a.seed),
			},
		},
	}}
}

func init() {
	for _, name := range rules.Names() {
		icore.Register(string(name), func(m map[string]string) (icore.Sim, error) {
			c := FromMap(m)
			c.Rule = name
			return New(c)
		})
	}
}
