package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"toroca/internal/config"
	"toroca/internal/seed"
	"toroca/pkg/rules"
)

// Config represents the command-line parameters for the viewers.
type Config struct {
	Sim     string
	Family  string
	Pattern string
	Width   int
	Height  int

	Scale int
	TPS   int
	Seed  int64

	Preset string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       string(rules.Cyclic),
		Family:    string(rules.Classic),
		Pattern:   "spiral",
		Width:     60,
		Height:    30,
		Scale:     8,
		TPS:       10,
		Seed:      42,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "rule to run: life, cyclic, majority or xor")
	fs.StringVar(&c.Family, "family", c.Family, "rule family: classic or reactive")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "starting pattern")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for pattern randomness")
	fs.StringVar(&c.Preset, "config", c.Preset, "HCL preset file; explicit flags override it")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file instead of stderr")
}

// Resolve loads the preset named by -config, if any, and copies its values
// into every field whose flag was not given explicitly on fs.
func (c *Config) Resolve(ctx context.Context, fs *flag.FlagSet) error {
	if c.Preset == "" {
		return c.Validate()
	}
	file, err := config.Load(ctx, c.Preset)
	if err != nil {
		return err
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	c.ApplyPreset(file, set)
	return c.Validate()
}

// ApplyPreset copies preset values into c, skipping flags named in set.
func (c *Config) ApplyPreset(file *config.File, set map[string]bool) {
	opts := file.SimOptions()
	if v, ok := opts["rule"]; ok && !set["sim"] {
		c.Sim = v
	}
	if v, ok := opts["family"]; ok && !set["family"] {
		c.Family = v
	}
	if v, ok := opts["pattern"]; ok && !set["pattern"] {
		c.Pattern = v
	}
	if v, ok := opts["w"]; ok && !set["w"] {
		c.Width, _ = strconv.Atoi(v)
	}
	if v, ok := opts["h"]; ok && !set["h"] {
		c.Height, _ = strconv.Atoi(v)
	}
	if v, ok := opts["seed"]; ok && !set["seed"] {
		c.Seed, _ = strconv.ParseInt(v, 10, 64)
	}
	if d := file.Display; d != nil {
		if d.TPS != nil && !set["tps"] {
			c.TPS = *d.TPS
		}
		if d.Scale != nil && !set["scale"] {
			c.Scale = *d.Scale
		}
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := rules.ParseName(c.Sim); err != nil {
		errs = append(errs, err)
	}
	if _, err := rules.ParseFamily(c.Family); err != nil {
		errs = append(errs, err)
	}
	if _, err := seed.Lookup(c.Pattern); err != nil {
		errs = append(errs, err)
	}
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Width, c.Height))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	if c.TPS < 1 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log-level %q", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log-format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// SimOptions returns the automaton settings in the form sim factories take.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"rule":    c.Sim,
		"family":  c.Family,
		"pattern": c.Pattern,
		"seed":    strconv.FormatInt(c.Seed, 10),
	}
}

// RuleName returns the canonical rule name for -sim. Call after Validate.
func (c *Config) RuleName() rules.Name {
	name, err := rules.ParseName(c.Sim)
	if err != nil {
		return rules.Name(c.Sim)
	}
	return name
}
