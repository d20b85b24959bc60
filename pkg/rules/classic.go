package rules

import "toroca/pkg/core"

var (
	dead  = core.NewCellState(0)
	alive = core.NewCellState(1)
)

// Life is Conway's B3/S23 rule over the eight surrounding cells. Any
// non-zero state counts as alive; the result is always 0 or 1.
func Life(n core.Neighborhood) core.CellState {
	neighbors := 0
	for i, c := range n {
		if i != core.Center && c.Alive() {
			neighbors++
		}
	}
	if (n.Center().Alive() && neighbors == 2) || neighbors == 3 {
		return alive
	}
	return dead
}

// CyclicAdvance moves a cell to the next state when any cell in its window
// already holds it.
func CyclicAdvance(n core.Neighborhood) core.CellState {
	next := core.NewCellState(n.Center().Value() + 1)
	for _, c := range n {
		if c == next {
			return next
		}
	}
	return n.Center()
}

// Plurality returns the most common state in the window, center included.
// Ties go to the lowest state.
func Plurality(n core.Neighborhood) core.CellState {
	counts := histogram(n)
	best := 0
	for s := 1; s < core.States; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return core.NewCellState(best)
}

// ParityXOR folds all nine values with XOR.
func ParityXOR(n core.Neighborhood) core.CellState {
	v := 0
	for _, c := range n {
		v ^= c.Value()
	}
	return core.NewCellState(v)
}
