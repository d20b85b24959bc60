package core

import (
	"fmt"
	"slices"
	"sync"
)

// Center is the index of the cell itself within a Neighborhood.
const Center = 4

// Neighborhood is the 3x3 window around a cell in row-major order: offsets
// (dx,dy) with dy in -1..1 as the outer loop and dx in -1..1 as the inner.
type Neighborhood [9]CellState

// Center returns the cell the neighborhood was taken around.
func (n Neighborhood) Center() CellState { return n[Center] }

// Rule maps a neighborhood to the next state of its center cell. Rules must
// be pure.
type Rule func(Neighborhood) CellState

// Grid is a fixed-size toroidal grid of cell states evolving under a rule.
// It is safe for concurrent readers; Evolve swaps generations under a write
// lock so readers see either the previous or the next generation in full.
type Grid struct {
	mu   sync.RWMutex
	w, h int
	cur  []CellState
	nxt  []CellState
	rule Rule
}

// NewGrid allocates a w*h grid with every cell in state 0.
func NewGrid(w, h int, rule Rule) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	if rule == nil {
		return nil, ErrNilRule
	}
	return &Grid{
		w:    w,
		h:    h,
		cur:  make([]CellState, w*h),
		nxt:  make([]CellState, w*h),
		rule: rule,
	}, nil
}

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (int, int) { return g.w, g.h }

// Contains reports whether (x, y) addresses a cell of the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.w + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

func (g *Grid) check(x, y int) {
	if !g.Contains(x, y) {
		panic(&BoundsError{X: x, Y: y, W: g.w, H: g.h})
	}
}

// At returns the state at (x, y). It panics with a *BoundsError when the
// coordinates are outside the grid.
func (g *Grid) At(x, y int) CellState {
	g.check(x, y)
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cur[g.Index(x, y)]
}

// Set overwrites the state at (x, y). It panics with a *BoundsError when the
// coordinates are outside the grid.
func (g *Grid) Set(x, y int, s CellState) {
	g.check(x, y)
	g.mu.Lock()
	g.cur[g.Index(x, y)] = s
	g.mu.Unlock()
}

// Neighborhood returns the wrapped 3x3 window centered on (x, y). It panics
// with a *BoundsError when the coordinates are outside the grid.
func (g *Grid) Neighborhood(x, y int) Neighborhood {
	g.check(x, y)
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.neighborhood(x, y)
}

func (g *Grid) neighborhood(x, y int) Neighborhood {
	var n Neighborhood
	i := 0
	for dy := -1; dy <= 1; dy++ {
		ny := (y + dy + g.h) % g.h
		for dx := -1; dx <= 1; dx++ {
			nx := (x + dx + g.w) % g.w
			n[i] = g.cur[ny*g.w+nx]
			i++
		}
	}
	return n
}

// Evolve advances the grid by one generation. Every cell's next state is
// computed from the current generation into the back buffer before the
// buffers are swapped.
func (g *Grid) Evolve() {
	g.mu.Lock()
	defer g.mu.Unlock()
	w, h := g.w, g.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.nxt[y*w+x] = g.rule(g.neighborhood(x, y))
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
}

// Rule returns the rule currently bound to the grid.
func (g *Grid) Rule() Rule {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rule
}

// SetRule rebinds the grid to a different rule for subsequent generations.
func (g *Grid) SetRule(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	g.mu.Lock()
	g.rule = rule
	g.mu.Unlock()
	return nil
}

// Fill sets every cell to s.
func (g *Grid) Fill(s CellState) {
	g.mu.Lock()
	for i := range g.cur {
		g.cur[i] = s
	}
	g.mu.Unlock()
}

// Clear fills the grid with state 0.
func (g *Grid) Clear() { g.Fill(CellState{}) }

// Randomize draws every cell uniformly from r in row-major order.
func (g *Grid) Randomize(r *RNG) {
	g.mu.Lock()
	for i := range g.cur {
		g.cur[i].Randomize(r)
	}
	g.mu.Unlock()
}

// Snapshot copies the current generation into dst as raw values, growing it
// when it is too small, and returns the filled slice.
func (g *Grid) Snapshot(dst []uint8) []uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if cap(dst) < len(g.cur) {
		dst = make([]uint8, len(g.cur))
	}
	dst = dst[:len(g.cur)]
	for i, c := range g.cur {
		dst[i] = c.v
	}
	return dst
}

// Histogram counts cells per state.
func (g *Grid) Histogram() [States]int {
	var hist [States]int
	g.mu.RLock()
	for _, c := range g.cur {
		hist[c.v]++
	}
	g.mu.RUnlock()
	return hist
}

// Population returns the number of cells in a non-zero state.
func (g *Grid) Population() int {
	hist := g.Histogram()
	return g.w*g.h - hist[0]
}

// Clone returns an independent copy bound to the same rule.
func (g *Grid) Clone() *Grid {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c := &Grid{
		w:    g.w,
		h:    g.h,
		cur:  make([]CellState, len(g.cur)),
		nxt:  make([]CellState, len(g.nxt)),
		rule: g.rule,
	}
	copy(c.cur, g.cur)
	return c
}

// Equal reports whether both grids have the same dimensions and contents.
// Rules are not compared.
func (g *Grid) Equal(o *Grid) bool {
	if g == o {
		return true
	}
	if o == nil || g.w != o.w || g.h != o.h {
		return false
	}
	// Hold one lock at a time so crossed a.Equal(b) and b.Equal(a) calls
	// cannot deadlock behind pending writers.
	o.mu.RLock()
	theirs := slices.Clone(o.cur)
	o.mu.RUnlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Equal(g.cur, theirs)
}
