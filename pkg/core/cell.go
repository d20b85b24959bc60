package core

import "strconv"

// States is the number of distinct values a cell can hold.
const States = 16

// CellState is the value of a single cell, always in [0, States).
// The zero value is state 0.
type CellState struct {
	v uint8
}

// NewCellState returns the state v mod States. Negative values wrap the same
// way, so NewCellState(-1) is state 15.
func NewCellState(v int) CellState {
	return CellState{v: normalize(v)}
}

func normalize(v int) uint8 {
	m := v % States
	if m < 0 {
		m += States
	}
	return uint8(m)
}

// Value returns the state as an int in [0, 15].
func (c CellState) Value() int { return int(c.v) }

// SetValue overwrites the state with v mod States.
func (c *CellState) SetValue(v int) { c.v = normalize(v) }

// Randomize replaces the state with a uniform draw from r.
func (c *CellState) Randomize(r *RNG) { *c = r.State() }

// Alive reports whether the state is non-zero.
func (c CellState) Alive() bool { return c.v > 0 }

// Compare orders states by value. It returns -1, 0 or +1.
func (c CellState) Compare(o CellState) int {
	switch {
	case c.v < o.v:
		return -1
	case c.v > o.v:
		return 1
	}
	return 0
}

func (c CellState) String() string { return strconv.Itoa(int(c.v)) }
