package app

import (
	"context"
	"log/slog"
	"time"

	icore "toroca/internal/core"
	"toroca/internal/ctxlog"
	"toroca/pkg/rules"
)

// Action is a viewer command, independent of the input device.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePause
	ActionResume
	ActionStepOnce
	ActionReset
	ActionReseed
	ActionSelectRule
	ActionNextFamily
	ActionFaster
	ActionSlower
	ActionToggleOverlay
)

// RuleSelector is implemented by sims whose rule can be switched at runtime.
type RuleSelector interface {
	SetRule(rules.Name) error
	SetFamily(rules.Family) error
	Family() rules.Family
}

const maxTPS = 240

// Controller applies viewer actions to a sim and decides when it steps.
// Both the terminal and the GUI viewer drive one.
type Controller struct {
	sim    icore.Sim
	pace   *icore.FixedStep
	logger *slog.Logger

	seed        int64
	paused      bool
	tickOnce    bool
	showOverlay bool

	newSeed func() int64
}

// NewController wraps sim, stepping it at tps generations per second.
// A nil logger discards everything.
func NewController(sim icore.Sim, tps int, seed int64, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = ctxlog.FromContext(context.Background())
	}
	return &Controller{
		sim:         sim,
		pace:        icore.NewFixedStep(tps),
		logger:      logger,
		seed:        seed,
		showOverlay: true,
		newSeed:     func() int64 { return time.Now().UnixNano() },
	}
}

// Sim returns the controlled simulation.
func (c *Controller) Sim() icore.Sim { return c.sim }

// Paused reports whether automatic stepping is suspended.
func (c *Controller) Paused() bool { return c.paused }

// ShowOverlay reports whether the viewer should draw its status overlay.
func (c *Controller) ShowOverlay() bool { return c.showOverlay }

// TPS returns the current generation rate.
func (c *Controller) TPS() int { return c.pace.TPS() }

// Seed returns the seed used by the last reset.
func (c *Controller) Seed() int64 { return c.seed }

// Apply executes a. rule is only read by ActionSelectRule. It returns true
// when the viewer should exit.
func (c *Controller) Apply(a Action, rule rules.Name) bool {
	switch a {
	case ActionQuit:
		return true
	case ActionTogglePause:
		c.paused = !c.paused
	case ActionResume:
		c.paused = false
	case ActionStepOnce:
		c.tickOnce = true
	case ActionReset:
		c.reset(c.seed)
	case ActionReseed:
		c.reset(c.newSeed())
	case ActionSelectRule:
		c.selectRule(rule)
	case ActionNextFamily:
		c.nextFamily()
	case ActionFaster:
		c.setTPS(c.pace.TPS() * 2)
	case ActionSlower:
		c.setTPS(c.pace.TPS() / 2)
	case ActionToggleOverlay:
		c.showOverlay = !c.showOverlay
	}
	return false
}

// Tick advances the sim when it is due, or once after ActionStepOnce. It
// reports whether a generation was computed.
func (c *Controller) Tick() bool {
	due := c.pace.ShouldStep()
	if c.tickOnce || (!c.paused && due) {
		c.sim.Step()
		c.tickOnce = false
		return true
	}
	return false
}

func (c *Controller) reset(seed int64) {
	c.seed = seed
	c.sim.Reset(seed)
	c.tickOnce = false
	c.logger.Info("Grid reset.", "seed", seed)
}

func (c *Controller) selectRule(name rules.Name) {
	sel, ok := c.sim.(RuleSelector)
	if !ok {
		c.logger.Warn("Sim does not support rule switching.", "sim", c.sim.Name())
		return
	}
	if err := sel.SetRule(name); err != nil {
		c.logger.Error("Rule switch failed.", "rule", name, "error", err)
		return
	}
	c.logger.Info("Rule selected.", "rule", name, "family", sel.Family())
}

func (c *Controller) nextFamily() {
	sel, ok := c.sim.(RuleSelector)
	if !ok {
		return
	}
	next := sel.Family().Next()
	if err := sel.SetFamily(next); err != nil {
		c.logger.Error("Family switch failed.", "family", next, "error", err)
		return
	}
	c.logger.Info("Rule family selected.", "family", next)
}

func (c *Controller) setTPS(tps int) {
	if tps < 1 {
		tps = 1
	}
	if tps > maxTPS {
		tps = maxTPS
	}
	c.pace.SetTPS(tps)
	c.logger.Debug("Generation rate changed.", "tps", tps)
}

// RuleForDigit maps the menu digits 1-4 to rule names.
func RuleForDigit(d int) (rules.Name, bool) {
	names := rules.Names()
	if d < 1 || d > len(names) {
		return "", false
	}
	return names[d-1], true
}
