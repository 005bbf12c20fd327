//go:build ebiten

package ui

import (
	"image/color"

	"hopfield-canvas/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type tileProvider interface {
	TileGrid() (cols, rows, tileW, tileH int)
	TileStatus() []bool
}

var (
	borderColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	stableTint  = color.RGBA{R: 0x30, G: 0xa0, B: 0x50, A: 0x40}
)

// Overlay draws tile borders and tints tiles whose last sweep was stable.
type Overlay struct {
	tiles      tileProvider
	scale      int
	showGrid   bool
	showStable bool
	pixel      *ebiten.Image
}

// NewOverlay constructs an overlay for sim. Sims without a tile layout get
// an overlay that draws nothing.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{scale: scale, showGrid: true, showStable: true}
	if tp, ok := sim.(tileProvider); ok {
		o.tiles = tp
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: G for borders, B for stable tints.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showStable = !o.showStable
	}
}

// Draw renders the enabled layers on top of the cells.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.tiles == nil {
		return
	}
	cols, rows, tw, th := o.tiles.TileGrid()
	pw := float64(tw * o.scale)
	ph := float64(th * o.scale)

	if o.showStable {
		for i, stable := range o.tiles.TileStatus() {
			if !stable {
				continue
			}
			x := float64(i%cols) * pw
			y := float64(i/cols) * ph
			o.rect(screen, x, y, pw, ph, stableTint)
		}
	}
	if o.showGrid {
		totalW := float64(cols) * pw
		totalH := float64(rows) * ph
		for c := 0; c <= cols; c++ {
			o.rect(screen, float64(c)*pw, 0, 1, totalH, borderColor)
		}
		for r := 0; r <= rows; r++ {
			o.rect(screen, 0, float64(r)*ph, totalW, 1, borderColor)
		}
	}
}

func (o *Overlay) rect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(o.pixel, op)
}
