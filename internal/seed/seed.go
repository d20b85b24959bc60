// Package seed fills a grid with a named starting pattern.
package seed

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aquilax/go-perlin"

	"toroca/pkg/core"
)

// ErrUnknownPattern is returned by Lookup for names not in the registry.
var ErrUnknownPattern = errors.New("seed: unknown pattern")

// Pattern writes a starting configuration into g. Patterns that need
// randomness draw from rng only.
type Pattern func(g *core.Grid, rng *core.RNG)

var patterns = map[string]Pattern{
	"empty":   Empty,
	"random":  Random,
	"binary":  Binary,
	"spiral":  Spiral,
	"perlin":  Perlin,
	"blinker": Blinker,
	"glider":  Glider,
}

// Names returns the registered pattern names in sorted order.
func Names() []string {
	out := make([]string, 0, len(patterns))
	for name := range patterns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the named pattern.
func Lookup(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return p, nil
}

// Apply seeds g with the named pattern using a generator built from seed.
func Apply(name string, g *core.Grid, seed int64) error {
	p, err := Lookup(name)
	if err != nil {
		return err
	}
	p(g, core.NewRNG(seed))
	return nil
}

// Empty clears the grid.
func Empty(g *core.Grid, _ *core.RNG) { g.Clear() }

// Random draws every cell uniformly over all states.
func Random(g *core.Grid, rng *core.RNG) { g.Randomize(rng) }

// Binary sets every cell to 0 or 1 with equal odds.
func Binary(g *core.Grid, rng *core.RNG) {
	w, h := g.Dimensions()
	on, off := core.NewCellState(1), core.NewCellState(0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Bool() {
				g.Set(x, y, on)
			} else {
				g.Set(x, y, off)
			}
		}
	}
}

// Spiral assigns each cell a phase from its distance and angle to the grid
// center, which winds the states into arms around the middle.
func Spiral(g *core.Grid, _ *core.RNG) {
	w, h := g.Dimensions()
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, core.NewCellState(spiralPhase(float64(x)-cx, float64(y)-cy)))
		}
	}
}

func spiralPhase(dx, dy float64) int {
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)
	return int((dist + angle*3) * 1.5)
}

const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
	perlinScale  = 0.08
)

// Perlin maps smooth 2D noise onto the state range.
func Perlin(g *core.Grid, rng *core.RNG) {
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, rng.Source().Int64())
	w, h := g.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := p.Noise2D(float64(x)*perlinScale, float64(y)*perlinScale)
			g.Set(x, y, core.NewCellState(noiseState(n)))
		}
	}
}

func noiseState(n float64) int {
	v := int((n + 1) / 2 * core.States)
	if v < 0 {
		return 0
	}
	if v >= core.States {
		return core.States - 1
	}
	return v
}

// Blinker clears the grid and places a horizontal row of three live cells
// at the center.
func Blinker(g *core.Grid, _ *core.RNG) {
	g.Clear()
	w, h := g.Dimensions()
	place(g, w/2, h/2, [][2]int{{-1, 0}, {0, 0}, {1, 0}})
}

// Glider clears the grid and places a south-east bound glider at the center.
func Glider(g *core.Grid, _ *core.RNG) {
	g.Clear()
	w, h := g.Dimensions()
	place(g, w/2, h/2, [][2]int{{0, -1}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}})
}

func place(g *core.Grid, cx, cy int, offsets [][2]int) {
	on := core.NewCellState(1)
	for _, o := range offsets {
		x, y := g.Wrap(cx+o[0], cy+o[1])
		g.Set(x, y, on)
	}
}
