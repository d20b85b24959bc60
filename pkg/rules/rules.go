// Package rules provides the named transition rules an automaton grid can be
// bound to. The set is closed: four rule names, each available in two
// families. A run picks one family and keeps it, so the same name never mixes
// semantics within a run.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"toroca/pkg/core"
)

var (
	// ErrUnknownRule is returned for a rule name outside the closed set.
	ErrUnknownRule = errors.New("rules: unknown rule")
	// ErrUnknownFamily is returned for an unrecognised rule family.
	ErrUnknownFamily = errors.New("rules: unknown family")
)

// Name identifies one of the rules.
type Name string

// Rule names accepted by Lookup.
const (
	GameOfLife Name = "life"
	Cyclic     Name = "cyclic"
	Majority   Name = "majority"
	XOR        Name = "xor"
)

// Family selects which semantics the rule names resolve to.
type Family string

const (
	// Classic holds the histogram/XOR rules and standard Life.
	Classic Family = "classic"
	// Reactive holds the thresholded rules that produce spirals, waves and
	// spots on seeded grids.
	Reactive Family = "reactive"
)

var names = []Name{GameOfLife, Cyclic, Majority, XOR}

var families = map[Family]map[Name]core.Rule{
	Classic: {
		GameOfLife: Life,
		Cyclic:     CyclicAdvance,
		Majority:   Plurality,
		XOR:        ParityXOR,
	},
	Reactive: {
		GameOfLife: LifeInclusive,
		Cyclic:     CyclicHistogram,
		Majority:   WeightedMajority,
		XOR:        ReactionXOR,
	},
}

// Names lists the rule names in menu order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// Families lists the rule families, default first.
func Families() []Family { return []Family{Classic, Reactive} }

// Lookup resolves a rule name within a family.
func Lookup(f Family, n Name) (core.Rule, error) {
	set, ok := families[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, f)
	}
	rule, ok := set[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, n)
	}
	return rule, nil
}

// ParseName accepts a rule name case-insensitively. "game_of_life" and
// "gol" are accepted as aliases for life.
func ParseName(s string) (Name, error) {
	switch n := Name(strings.ToLower(strings.TrimSpace(s))); n {
	case GameOfLife, "game_of_life", "gol":
		return GameOfLife, nil
	case Cyclic, Majority, XOR:
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// ParseFamily accepts a family name case-insensitively.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := families[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
	return f, nil
}

// Next returns the family after f, wrapping around.
func (f Family) Next() Family {
	all := Families()
	for i, v := range all {
		if v == f {
			return all[(i+1)%len(all)]
		}
	}
	return Classic
}

func histogram(n core.Neighborhood) [core.States]int {
	var counts [core.States]int
	for _, c := range n {
		counts[c.Value()]++
	}
	return counts
}
