package hopfield

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// TileState tracks where a tile is in its train/relax lifecycle.
type TileState uint8

const (
	Untrained TileState = iota
	Running
	Stable
)

func (s TileState) String() string {
	switch s {
	case Untrained:
		return "untrained"
	case Running:
		return "running"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// Tile is a single-pattern Hopfield network over one grid.
//
// Weights live in one flat n*n buffer indexed i*n+j. The matrix is symmetric
// with a zero diagonal, so it can be handed to gonum as a SymDense without
// copying.
type Tile struct {
	n       int
	grid    *Grid
	pattern []Cell
	weights []float64
	state   TileState
}

// NewTile returns an untrained tile of n cells, all White.
func NewTile(n int) *Tile {
	g := NewGrid(n)
	return &Tile{n: g.Len(), grid: g}
}

// Len returns the number of cells.
func (t *Tile) Len() int { return t.n }

// State reports the lifecycle state.
func (t *Tile) State() TileState { return t.state }

// Trained reports whether a pattern has been stored.
func (t *Tile) Trained() bool { return t.weights != nil }

// Train stores pattern with the Hebbian outer-product rule, replacing any
// previous association.
func (t *Tile) Train(pattern []Cell) error {
	if len(pattern) != t.n {
		return ErrPatternSize
	}
	if !validCells(pattern) {
		return ErrInvalidCell
	}
	n := t.n
	if t.weights == nil {
		t.weights = make([]float64, n*n)
	}
	for i := 0; i < n; i++ {
		pi := float64(pattern[i])
		row := t.weights[i*n : (i+1)*n]
		for j := range row {
			if i == j {
				row[j] = 0
				continue
			}
			row[j] = pi * float64(pattern[j])
		}
	}
	t.pattern = slices.Clone(pattern)
	t.state = Running
	return nil
}

// Pattern returns a copy of the stored pattern, or nil when untrained.
func (t *Tile) Pattern() []Cell { return slices.Clone(t.pattern) }

// Randomize draws a fresh state. The weights are left untouched.
func (t *Tile) Randomize(r *rand.Rand) {
	t.grid.Randomize(r)
	t.touch()
}

// Perturb flips every cell independently with probability p.
func (t *Tile) Perturb(r *rand.Rand, p float64) {
	if p <= 0 {
		return
	}
	cells := t.grid.Cells()
	for i := range cells {
		if r.Float64() < p {
			cells[i] = cells[i].Flip()
		}
	}
	t.touch()
}

// SetCells overwrites the current state.
func (t *Tile) SetCells(cells []Cell) error {
	if len(cells) != t.n {
		return ErrPatternSize
	}
	if !validCells(cells) {
		return ErrInvalidCell
	}
	copy(t.grid.Cells(), cells)
	t.touch()
	return nil
}

// Cells returns a snapshot of the current state.
func (t *Tile) Cells() []Cell { return t.grid.Snapshot() }

func (t *Tile) touch() {
	if t.state != Untrained {
		t.state = Running
	}
}

// UpdateOnce runs one asynchronous sweep over cells 0..n-1 in place, so a
// cell sees the updates already made earlier in the same sweep. A zero local
// field leaves the cell as it is. It reports whether any cell changed.
func (t *Tile) UpdateOnce() (bool, error) {
	if t.weights == nil {
		return false, ErrUntrained
	}
	n := t.n
	s := t.grid.Cells()
	changed := false
	for i := 0; i < n; i++ {
		row := t.weights[i*n : (i+1)*n]
		// diagonal is zero, so summing over all j equals summing over j != i
		h := 0.0
		for j, w := range row {
			h += w * float64(s[j])
		}
		next := s[i]
		switch {
		case h > 0:
			next = White
		case h < 0:
			next = Black
		}
		if next != s[i] {
			s[i] = next
			changed = true
		}
	}
	if changed {
		t.state = Running
	} else {
		t.state = Stable
	}
	return changed, nil
}

// IsStable reports whether the most recent sweep changed nothing.
func (t *Tile) IsStable() bool { return t.state == Stable }

// Energy returns E = -1/2 * sᵀWs for the current state. Untrained tiles have
// zero energy.
func (t *Tile) Energy() float64 {
	if t.weights == nil || t.n == 0 {
		return 0
	}
	w := mat.NewSymDense(t.n, t.weights)
	s := mat.NewVecDense(t.n, t.stateVector())
	return -0.5 * mat.Inner(s, w, s)
}

// Overlap returns (1/n) * Σ pattern[i]*state[i]. 1 means the stored pattern
// is recalled exactly, -1 means its mirror image.
func (t *Tile) Overlap() float64 {
	if t.pattern == nil || t.n == 0 {
		return 0
	}
	sum := 0
	for i, c := range t.grid.Cells() {
		sum += int(c) * int(t.pattern[i])
	}
	return float64(sum) / float64(t.n)
}

func (t *Tile) stateVector() []float64 {
	cells := t.grid.Cells()
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = float64(c)
	}
	return out
}
