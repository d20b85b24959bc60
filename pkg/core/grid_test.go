package core

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keep(n Neighborhood) CellState { return n.Center() }

// fromWest copies the left neighbor, shifting the whole grid one cell east.
func fromWest(n Neighborhood) CellState { return n[3] }

func sumRule(n Neighborhood) CellState {
	total := 0
	for _, c := range n {
		total += c.Value()
	}
	return NewCellState(total)
}

func newTestGrid(t *testing.T, w, h int, rule Rule) *Grid {
	t.Helper()
	g, err := NewGrid(w, h, rule)
	require.NoError(t, err)
	return g
}

func values(g *Grid) []uint8 { return g.Snapshot(nil) }

func TestNewGridRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
		g, err := NewGrid(dims[0], dims[1], keep)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
	}
}

func TestNewGridRejectsNilRule(t *testing.T) {
	_, err := NewGrid(3, 3, nil)
	assert.ErrorIs(t, err, ErrNilRule)
}

func TestNewGridStartsZeroed(t *testing.T) {
	g := newTestGrid(t, 4, 3, keep)
	w, h := g.Dimensions()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			assert.Equal(t, CellState{}, g.At(x, y))
		}
	}
	assert.Equal(t, 0, g.Population())
}

func TestSetThenAt(t *testing.T) {
	g := newTestGrid(t, 10, 10, keep)
	g.Set(5, 5, NewCellState(7))
	assert.Equal(t, 7, g.At(5, 5).Value())
	assert.Equal(t, 5*10+5, g.Index(5, 5))
	assert.Equal(t, 1, g.Population())
}

func TestAccessOutOfBoundsPanics(t *testing.T) {
	g := newTestGrid(t, 4, 4, keep)
	cases := []struct {
		name string
		fn   func()
	}{
		{"at x", func() { g.At(4, 0) }},
		{"at y", func() { g.At(0, 4) }},
		{"at negative", func() { g.At(-1, 0) }},
		{"set", func() { g.Set(0, 9, NewCellState(1)) }},
		{"neighborhood", func() { g.Neighborhood(7, 7) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				err, ok := r.(error)
				require.True(t, ok, "panic value %T is not an error", r)
				assert.True(t, errors.Is(err, ErrIndexOutOfBounds))
				var be *BoundsError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, 4, be.W)
				assert.Equal(t, 4, be.H)
			}()
			tc.fn()
		})
	}
}

func TestBoundsErrorMessage(t *testing.T) {
	g := newTestGrid(t, 4, 2, keep)
	assert.PanicsWithError(t, "core: index out of bounds: (5,1) outside 4x2", func() { g.At(5, 1) })
}

func TestWrap(t *testing.T) {
	g := newTestGrid(t, 5, 3, keep)
	x, y := g.Wrap(-1, -1)
	assert.Equal(t, [2]int{4, 2}, [2]int{x, y})
	x, y = g.Wrap(5, 3)
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})
	x, y = g.Wrap(-11, 7)
	assert.Equal(t, [2]int{4, 1}, [2]int{x, y})
}

func TestNeighborhoodCenterInvariant(t *testing.T) {
	g := newTestGrid(t, 6, 4, keep)
	g.Randomize(NewRNG(5))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			n := g.Neighborhood(x, y)
			require.Equal(t, g.At(x, y), n[Center], "(%d,%d)", x, y)
			require.Equal(t, n[4], n.Center())
		}
	}
}

func TestNeighborhoodOrdering(t *testing.T) {
	g := newTestGrid(t, 5, 5, keep)
	// Encode each cell's position so the ordering is visible.
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.Set(x, y, NewCellState(y*5+x))
		}
	}
	n := g.Neighborhood(2, 2)
	want := Neighborhood{
		NewCellState(6), NewCellState(7), NewCellState(8),
		NewCellState(11), NewCellState(12), NewCellState(13),
		NewCellState(16), NewCellState(17), NewCellState(18),
	}
	if diff := cmp.Diff(want, n, cmp.Comparer(func(a, b CellState) bool { return a == b })); diff != "" {
		t.Fatalf("neighborhood mismatch (-want +got):\n%s", diff)
	}
}

func TestNeighborhoodWrapsToroidally(t *testing.T) {
	const w, h = 4, 3
	g := newTestGrid(t, w, h, keep)
	g.Set(w-1, h-1, NewCellState(1))
	g.Set(w-1, 0, NewCellState(2))
	g.Set(0, h-1, NewCellState(3))
	g.Set(0, 0, NewCellState(9))

	n := g.Neighborhood(0, 0)
	assert.Equal(t, NewCellState(1), n[0], "north-west wraps to bottom-right corner")
	assert.Equal(t, NewCellState(3), n[1], "north wraps to bottom row")
	assert.Equal(t, NewCellState(2), n[3], "west wraps to last column")
	assert.Equal(t, NewCellState(9), n[Center])

	others := append(append([]CellState{}, n[:Center]...), n[Center+1:]...)
	for _, want := range []CellState{g.At(w-1, h-1), g.At(w-1, 0), g.At(0, h-1)} {
		assert.Contains(t, others, want)
	}
}

func TestSingleCellGridIsItsOwnNeighborhood(t *testing.T) {
	g := newTestGrid(t, 1, 1, sumRule)
	g.Set(0, 0, NewCellState(1))
	n := g.Neighborhood(0, 0)
	for i, c := range n {
		assert.Equal(t, NewCellState(1), c, "slot %d", i)
	}
	g.Evolve()
	assert.Equal(t, 9, g.At(0, 0).Value())
}

func TestEvolveIsSynchronous(t *testing.T) {
	g := newTestGrid(t, 5, 1, fromWest)
	g.Set(0, 0, NewCellState(1))
	g.Set(1, 0, NewCellState(2))

	g.Evolve()
	// An in-place update would smear state 1 across the row.
	assert.Equal(t, []uint8{0, 1, 2, 0, 0}, values(g))

	g.Evolve()
	g.Evolve()
	g.Evolve()
	assert.Equal(t, []uint8{2, 0, 0, 0, 1}, values(g))
}

func TestEvolveIsPure(t *testing.T) {
	a := newTestGrid(t, 7, 5, sumRule)
	a.Randomize(NewRNG(11))
	b := a.Clone()
	require.True(t, a.Equal(b))

	for i := 0; i < 4; i++ {
		a.Evolve()
		b.Evolve()
		require.True(t, a.Equal(b), "generation %d diverged", i+1)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := newTestGrid(t, 3, 3, keep)
	b := a.Clone()
	b.Set(1, 1, NewCellState(4))
	assert.Equal(t, CellState{}, a.At(1, 1))
	assert.False(t, a.Equal(b))
}

func TestEqualChecksDimensions(t *testing.T) {
	a := newTestGrid(t, 3, 2, keep)
	b := newTestGrid(t, 2, 3, keep)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.True(t, a.Equal(a))
}

func TestSetRule(t *testing.T) {
	g := newTestGrid(t, 3, 1, keep)
	g.Set(0, 0, NewCellState(1))
	require.ErrorIs(t, g.SetRule(nil), ErrNilRule)
	require.NoError(t, g.SetRule(fromWest))
	g.Evolve()
	assert.Equal(t, []uint8{0, 1, 0}, values(g))
}

func TestFillHistogramPopulation(t *testing.T) {
	g := newTestGrid(t, 4, 4, keep)
	g.Fill(NewCellState(3))
	g.Set(0, 0, NewCellState(0))
	hist := g.Histogram()
	assert.Equal(t, 15, hist[3])
	assert.Equal(t, 1, hist[0])
	assert.Equal(t, 15, g.Population())

	g.Clear()
	assert.Equal(t, 0, g.Population())
}

func TestSnapshotReusesBuffer(t *testing.T) {
	g := newTestGrid(t, 2, 2, keep)
	g.Set(1, 1, NewCellState(5))
	buf := make([]uint8, 0, 16)
	out := g.Snapshot(buf)
	assert.Equal(t, []uint8{0, 0, 0, 5}, out)
	assert.Equal(t, cap(buf), cap(out))
}

func TestConcurrentReadersSeeWholeGenerations(t *testing.T) {
	inc := func(n Neighborhood) CellState { return NewCellState(n.Center().Value() + 1) }
	g := newTestGrid(t, 16, 16, inc)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			hist := g.Histogram()
			nonZero := 0
			for _, c := range hist {
				if c != 0 {
					nonZero++
				}
			}
			if nonZero != 1 {
				t.Errorf("observed a mixed generation: %v", hist)
				return
			}
		}
	}()
	for i := 0; i < 50; i++ {
		g.Evolve()
	}
	close(done)
	wg.Wait()
}

func TestCrossedEqualWithWritersDoesNotDeadlock(t *testing.T) {
	inc := func(n Neighborhood) CellState { return NewCellState(n.Center().Value() + 1) }
	a := newTestGrid(t, 8, 8, inc)
	b := newTestGrid(t, 8, 8, inc)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				fn()
			}
		}()
	}
	run(func() { a.Equal(b) })
	run(func() { b.Equal(a) })
	run(a.Evolve)
	run(b.Evolve)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("crossed Equal calls deadlocked")
	}
}
