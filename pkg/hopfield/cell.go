package hopfield

import (
	"math/rand/v2"
	"slices"

	"hopfield-canvas/pkg/core"
)

// Cell is a bipolar neuron state.
type Cell int8

const (
	Black Cell = -1
	White Cell = 1
)

// Flip returns the opposite state.
func (c Cell) Flip() Cell { return -c }

// Valid reports whether c is one of the two bipolar states.
func (c Cell) Valid() bool { return c == Black || c == White }

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "invalid"
	}
}

// Grid is a fixed-length vector of bipolar cells.
type Grid struct {
	cells []Cell
}

// NewGrid allocates an all-White grid of n cells.
func NewGrid(n int) *Grid {
	if n < 0 {
		n = 0
	}
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = White
	}
	return &Grid{cells: cells}
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// At returns cell i. It panics when i is out of range.
func (g *Grid) At(i int) Cell { return g.cells[i] }

// Set stores v at index i.
func (g *Grid) Set(i int, v Cell) error {
	if !v.Valid() {
		return ErrInvalidCell
	}
	g.cells[i] = v
	return nil
}

// Randomize sets every cell to Black or White with equal probability.
func (g *Grid) Randomize(r *rand.Rand) {
	core.FillBipolar(r, g.cells)
}

// Cells exposes the backing slice.
func (g *Grid) Cells() []Cell { return g.cells }

// Snapshot returns a copy of the current cells.
func (g *Grid) Snapshot() []Cell { return slices.Clone(g.cells) }

func validCells(cells []Cell) bool {
	for _, c := range cells {
		if !c.Valid() {
			return false
		}
	}
	return true
}
