package hopfield

import (
	"context"
	"fmt"
	"slices"

	"hopfield-canvas/internal/core"
	pcore "hopfield-canvas/pkg/core"
	engine "hopfield-canvas/pkg/hopfield"
)

const energyHistoryLen = 512

// World drives a tiled Hopfield canvas as a core.Sim: it owns the target
// picture, the random source and a display buffer for rendering.
type World struct {
	cfg Config

	canvas *engine.Canvas
	gen    engine.Generator
	image  engine.Image
	rng    *pcore.RNG

	display *core.ByteGrid
	target  *core.ByteGrid
	scratch []engine.Cell

	steps  int
	stable bool
	energy []float64
	err    error
}

// New returns a World with the provided dimensions using defaults otherwise.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a World reset to cfg.Seed.
func NewWithConfig(cfg Config) (*World, error) {
	canvas, err := engine.New(cfg.Width, cfg.Height, cfg.TileHeight, cfg.TileWidth)
	if err != nil {
		return nil, err
	}
	gen, err := engine.LookupGenerator(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		canvas:  canvas,
		gen:     gen,
		rng:     pcore.NewRNG(cfg.Seed),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		target:  core.NewByteGrid(cfg.Width, cfg.Height),
		scratch: make([]engine.Cell, cfg.Width*cfg.Height),
	}
	w.Reset(0)
	if w.err != nil {
		return nil, w.err
	}
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "hopfield" }

// Size reports the picture dimensions in pixels.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the display buffer: 1 for White, 0 for Black.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Target exposes the target picture in the same encoding as Cells.
func (w *World) Target() []uint8 { return w.target.Cells() }

// Canvas exposes the underlying tiled canvas.
func (w *World) Canvas() *engine.Canvas { return w.canvas }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset draws a new target picture from seed (0 selects the configured
// seed), trains every tile on it and randomizes the tile states.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Reseed(effective)
	w.image = w.gen(w.rng.Source(), w.cfg.Height, w.cfg.Width)

	// The image lives at the same address across resets, so training has to
	// be explicit here rather than left to the canvas's first Step.
	w.err = w.canvas.TrainFrom(&w.image)
	w.canvas.Randomize(w.rng.Source())

	w.steps = 0
	w.stable = false
	w.energy = w.energy[:0]
	encode(w.target.Cells(), w.image.Cells)
	w.refresh()
}

// Step sweeps every tile once. Once the whole canvas is stable further calls
// do nothing until the next Reset or Perturb.
func (w *World) Step() error {
	if w.err != nil {
		return w.err
	}
	if w.stable {
		return nil
	}
	stable, err := w.canvas.StepParallel(context.Background(), &w.image, w.cfg.Workers)
	if err != nil {
		w.err = fmt.Errorf("step %d: %w", w.steps+1, err)
		return w.err
	}
	w.steps++
	w.stable = stable
	w.refresh()
	return nil
}

// Perturb flips each cell with the configured noise probability, presenting
// the network with a corrupted cue to recall from.
func (w *World) Perturb() {
	if w.err != nil {
		return
	}
	w.canvas.Perturb(w.rng.Source(), w.cfg.Noise)
	w.stable = false
	w.refresh()
}

// Steps returns the number of sweeps since the last Reset.
func (w *World) Steps() int { return w.steps }

// Stable reports whether the most recent step left every tile unchanged.
func (w *World) Stable() bool { return w.stable }

// Energy returns the total network energy of the current state.
func (w *World) Energy() float64 { return w.canvas.Energy() }

// Overlap returns the mean tile overlap with the stored patterns.
func (w *World) Overlap() float64 { return w.canvas.Overlap() }

// EnergyHistory returns the recorded energy trace, oldest first.
func (w *World) EnergyHistory() []float64 { return slices.Clone(w.energy) }

// TileGrid reports the tile-grid dimensions and the tile size in pixels.
func (w *World) TileGrid() (cols, rows, tileW, tileH int) {
	return w.canvas.Width(), w.canvas.Height(), w.canvas.TileWidth(), w.canvas.TileHeight()
}

// TileStatus reports per tile whether its last sweep was stable.
func (w *World) TileStatus() []bool {
	status := make([]bool, w.canvas.GridsLen())
	for i := range status {
		t, _ := w.canvas.Tile(i)
		status[i] = t.IsStable()
	}
	return status
}

func (w *World) refresh() {
	w.canvas.Compose(w.scratch)
	encode(w.display.Cells(), w.scratch)
	if len(w.energy) == energyHistoryLen {
		copy(w.energy, w.energy[1:])
		w.energy = w.energy[:energyHistoryLen-1]
	}
	w.energy = append(w.energy, w.canvas.Energy())
}

func encode(dst []uint8, cells []engine.Cell) {
	for i, c := range cells {
		if c == engine.White {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}

func init() {
	core.Register("hopfield", func(cfg map[string]string) (core.Sim, error) {
		w, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
