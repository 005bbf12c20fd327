package hopfield

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// Canvas partitions a picture into a row-major grid of independent tiles.
type Canvas struct {
	cols, rows int
	tileW      int
	tileH      int
	tiles      []*Tile

	trained *Image
	stable  bool
}

// New builds a canvas of totalWidth×totalHeight pixels split into
// tileWidth×tileHeight tiles. Tiles start untrained.
func New(totalWidth, totalHeight, tileHeight, tileWidth int) (*Canvas, error) {
	if totalWidth <= 0 || tileWidth <= 0 || totalWidth%tileWidth != 0 {
		return nil, &ConfigurationError{Axis: "width", Total: totalWidth, Tile: tileWidth}
	}
	if totalHeight <= 0 || tileHeight <= 0 || totalHeight%tileHeight != 0 {
		return nil, &ConfigurationError{Axis: "height", Total: totalHeight, Tile: tileHeight}
	}
	c := &Canvas{
		cols:  totalWidth / tileWidth,
		rows:  totalHeight / tileHeight,
		tileW: tileWidth,
		tileH: tileHeight,
	}
	c.tiles = make([]*Tile, c.cols*c.rows)
	for i := range c.tiles {
		c.tiles[i] = NewTile(tileWidth * tileHeight)
	}
	return c, nil
}

// Width returns the number of tile columns.
func (c *Canvas) Width() int { return c.cols }

// Height returns the number of tile rows.
func (c *Canvas) Height() int { return c.rows }

// TileWidth returns the tile width in pixels.
func (c *Canvas) TileWidth() int { return c.tileW }

// TileHeight returns the tile height in pixels.
func (c *Canvas) TileHeight() int { return c.tileH }

// PixelWidth returns the full canvas width in pixels.
func (c *Canvas) PixelWidth() int { return c.cols * c.tileW }

// PixelHeight returns the full canvas height in pixels.
func (c *Canvas) PixelHeight() int { return c.rows * c.tileH }

// GridsLen returns the number of tiles.
func (c *Canvas) GridsLen() int { return len(c.tiles) }

// Tile returns the tile at index.
func (c *Canvas) Tile(index int) (*Tile, error) {
	if index < 0 || index >= len(c.tiles) {
		return nil, &RangeError{Index: index, Len: len(c.tiles)}
	}
	return c.tiles[index], nil
}

// TileCells returns a snapshot of the current state of tile index.
func (c *Canvas) TileCells(index int) ([]Cell, error) {
	t, err := c.Tile(index)
	if err != nil {
		return nil, err
	}
	return t.Cells(), nil
}

// SetTileCells overwrites the state of tile index.
func (c *Canvas) SetTileCells(index int, cells []Cell) error {
	t, err := c.Tile(index)
	if err != nil {
		return err
	}
	c.stable = false
	return t.SetCells(cells)
}

// TrainFrom trains every tile on its rectangle of img.
func (c *Canvas) TrainFrom(img *Image) error {
	if img == nil {
		return ErrNoPattern
	}
	if img.Width != c.PixelWidth() || img.Height != c.PixelHeight() || len(img.Cells) != img.Width*img.Height {
		return ErrImageSize
	}
	// Validate up front so a bad pixel cannot leave some tiles retrained.
	if !validCells(img.Cells) {
		return ErrInvalidCell
	}
	patch := make([]Cell, c.tileW*c.tileH)
	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			c.extract(img, r, col, patch)
			if err := c.tiles[r*c.cols+col].Train(patch); err != nil {
				return err
			}
		}
	}
	c.trained = img
	c.stable = false
	return nil
}

func (c *Canvas) extract(img *Image, row, col int, dst []Cell) {
	y0 := row * c.tileH
	x0 := col * c.tileW
	for y := 0; y < c.tileH; y++ {
		start := (y0+y)*img.Width + x0
		copy(dst[y*c.tileW:(y+1)*c.tileW], img.Cells[start:start+c.tileW])
	}
}

// Randomize draws a fresh state for every tile.
func (c *Canvas) Randomize(r *rand.Rand) {
	for _, t := range c.tiles {
		t.Randomize(r)
	}
	c.stable = false
}

// Perturb flips each cell of every tile with probability p.
func (c *Canvas) Perturb(r *rand.Rand, p float64) {
	for _, t := range c.tiles {
		t.Perturb(r, p)
	}
	c.stable = false
}

// ensureTrained trains on img unless img is the image already trained on.
// A nil img keeps the existing training.
func (c *Canvas) ensureTrained(img *Image) error {
	if img == nil {
		if c.trained == nil {
			return ErrNoPattern
		}
		return nil
	}
	if img == c.trained {
		return nil
	}
	return c.TrainFrom(img)
}

// Step trains on img if needed, then sweeps every tile once in index order.
// It reports whether every tile is stable.
func (c *Canvas) Step(img *Image) (bool, error) {
	if err := c.ensureTrained(img); err != nil {
		return false, err
	}
	all := true
	for _, t := range c.tiles {
		changed, err := t.UpdateOnce()
		if err != nil {
			return false, err
		}
		if changed {
			all = false
		}
	}
	c.stable = all
	return all, nil
}

// StepParallel is Step with tiles swept concurrently by at most workers
// goroutines. Cancellation is observed between tile sweeps only.
func (c *Canvas) StepParallel(ctx context.Context, img *Image, workers int) (bool, error) {
	if err := c.ensureTrained(img); err != nil {
		return false, err
	}
	if workers <= 1 {
		return c.Step(nil)
	}
	changed := make([]bool, len(c.tiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range c.tiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ch, err := t.UpdateOnce()
			changed[i] = ch
			return err
		})
	}
	if err := g.Wait(); err != nil {
		c.stable = false
		return false, err
	}
	all := true
	for _, ch := range changed {
		if ch {
			all = false
			break
		}
	}
	c.stable = all
	return all, nil
}

// Stable reports the result of the most recent step.
func (c *Canvas) Stable() bool { return c.stable }

// StableCount returns how many tiles report stable.
func (c *Canvas) StableCount() int {
	n := 0
	for _, t := range c.tiles {
		if t.IsStable() {
			n++
		}
	}
	return n
}

// Energy sums the tile energies.
func (c *Canvas) Energy() float64 {
	total := 0.0
	for _, t := range c.tiles {
		total += t.Energy()
	}
	return total
}

// Overlap averages the tile overlaps.
func (c *Canvas) Overlap() float64 {
	if len(c.tiles) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range c.tiles {
		total += t.Overlap()
	}
	return total / float64(len(c.tiles))
}

// Compose writes the current state of all tiles into dst as one row-major
// picture of PixelWidth×PixelHeight cells. dst must be at least that long.
func (c *Canvas) Compose(dst []Cell) {
	pw := c.PixelWidth()
	for idx, t := range c.tiles {
		x0 := (idx % c.cols) * c.tileW
		y0 := (idx / c.cols) * c.tileH
		cells := t.grid.Cells()
		for y := 0; y < c.tileH; y++ {
			start := (y0+y)*pw + x0
			copy(dst[start:start+c.tileW], cells[y*c.tileW:(y+1)*c.tileW])
		}
	}
}
