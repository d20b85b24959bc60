package rules

import "toroca/pkg/core"

// LifeInclusive counts the center cell toward its own live total: a live
// cell survives on a total of 2 or 3, a dead one is born on exactly 3.
func LifeInclusive(n core.Neighborhood) core.CellState {
	live := 0
	for _, c := range n {
		if c.Alive() {
			live++
		}
	}
	if n.Center().Alive() {
		if live == 2 || live == 3 {
			return alive
		}
		return dead
	}
	if live == 3 {
		return alive
	}
	return dead
}

// CyclicHistogram is a Belousov-Zhabotinsky style excitation rule. A cell
// advances when three or more window cells hold the next phase, retreats when
// the previous phase outnumbers its own, and jumps two phases when isolated.
func CyclicHistogram(n core.Neighborhood) core.CellState {
	counts := histogram(n)
	cur := n.Center().Value()
	next := (cur + 1) % core.States
	prev := (cur + core.States - 1) % core.States

	switch {
	case counts[next] >= 3:
		return core.NewCellState(next)
	case counts[prev] > counts[cur]:
		return core.NewCellState(prev)
	case counts[cur] <= 2:
		return core.NewCellState(cur + 2)
	}
	return n.Center()
}

const (
	evenSlotWeight = 100
	oddSlotWeight  = 70

	strongActivation   = 250
	moderateActivation = 150
)

// WeightedMajority scores the eight surrounding cells, odd window slots
// weighing 0.7 of even ones. A strong winner is adopted outright, a moderate
// one is averaged with the runner-up, and a center that already matches a
// weak winner drifts up by one.
func WeightedMajority(n core.Neighborhood) core.CellState {
	var act [core.States]int
	for i, c := range n {
		if i == core.Center {
			continue
		}
		w := evenSlotWeight
		if i%2 == 1 {
			w = oddSlotWeight
		}
		act[c.Value()] += w
	}

	top, second := 0, 0
	for s := 1; s < core.States; s++ {
		if act[s] > act[top] {
			second = top
			top = s
		} else if act[s] > act[second] {
			second = s
		}
	}

	center := n.Center()
	switch {
	case act[top] > strongActivation:
		return core.NewCellState(top)
	case act[top] > moderateActivation:
		return core.NewCellState((top + second) / 2)
	case center.Value() == top:
		return core.NewCellState(center.Value() + 1)
	}
	return center
}

// ReactionXOR mixes diffusion toward the neighbor average with an XOR
// reaction term over the eight surrounding cells.
func ReactionXOR(n core.Neighborhood) core.CellState {
	sum, x := 0, 0
	for i, c := range n {
		if i == core.Center {
			continue
		}
		sum += c.Value()
		x ^= c.Value()
	}
	avg := sum / 8
	cur := n.Center().Value()

	diff := cur - avg
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff > 4:
		return core.NewCellState((cur + avg) / 2)
	case x > 8:
		return core.NewCellState(cur + 4)
	case x < 3:
		return core.NewCellState(cur + x + 1)
	}
	return core.NewCellState(x)
}
