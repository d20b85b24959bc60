package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a grid is requested with a width or
	// height below one.
	ErrInvalidDimension = errors.New("core: invalid grid dimension")
	// ErrIndexOutOfBounds marks coordinate access outside the grid.
	ErrIndexOutOfBounds = errors.New("core: index out of bounds")
	// ErrNilRule is returned when a grid is bound to a nil rule.
	ErrNilRule = errors.New("core: nil rule")
)

// BoundsError is the panic value raised by At, Set and Neighborhood for
// coordinates outside the grid.
type BoundsError struct {
	X, Y int
	W, H int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: (%d,%d) outside %dx%d", ErrIndexOutOfBounds, e.X, e.Y, e.W, e.H)
}

func (e *BoundsError) Unwrap() error { return ErrIndexOutOfBounds }
