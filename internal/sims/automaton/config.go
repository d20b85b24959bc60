package automaton

import (
	"strconv"

	"toroca/internal/seed"
	"toroca/pkg/rules"
)

// Config controls the automaton dimensions, rule and starting pattern.
type Config struct {
	Width  int
	Height int

	Rule    rules.Name
	Family  rules.Family
	Pattern string

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:   60,
		Height:  30,
		Rule:    rules.Cyclic,
		Family:  rules.Classic,
		Pattern: "spiral",
		Seed:    42,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := rules.ParseName(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["family"]; ok {
		if parsed, err := rules.ParseFamily(v); err == nil {
			c.Family = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if _, err := seed.Lookup(v); err == nil {
			c.Pattern = v
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// Map is the inverse of FromMap.
func (c Config) Map() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"rule":    string(c.Rule),
		"family":  string(c.Family),
		"pattern": c.Pattern,
		"seed":    strconv.FormatInt(c.Seed, 10),
	}
}
