//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"hopfield-canvas/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineHeight = 14
	hudPadding    = 8
)

var (
	hudBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	hudHeading    = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	hudText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	hudMuted      = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

var hudKeys = []string{
	"space pause  n step",
	"r reset  s new seed",
	"p perturb  t target",
	"d diff  g grid  b tint",
	"q quit",
}

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim      core.Sim
	provider core.ParameterProvider
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot
	title    string
}

// NewHUD constructs a HUD for the provided simulation and panel width. A
// non-positive width disables the panel.
func NewHUD(sim core.Sim, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
	if p, ok := sim.(core.ParameterProvider); ok {
		h.provider = p
	}
	return h
}

// Update refreshes the cached parameter snapshot.
func (h *HUD) Update() {
	if h == nil || h.provider == nil {
		return
	}
	h.snapshot = h.provider.Parameters()
}

// Draw paints the panel at offsetX with status as the first line.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, status string) {
	if h == nil {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(hudBackground)

	y := hudPadding + hudLineHeight
	text.Draw(h.panel, h.title, basicfont.Face7x13, hudPadding, y, hudHeading)
	y += hudLineHeight
	text.Draw(h.panel, status, basicfont.Face7x13, hudPadding, y, hudText)
	y += hudLineHeight

	for _, group := range h.snapshot.Groups {
		y += hudLineHeight / 2
		text.Draw(h.panel, group.Name, basicfont.Face7x13, hudPadding, y, hudHeading)
		y += hudLineHeight
		if group.Summary != "" {
			text.Draw(h.panel, group.Summary, basicfont.Face7x13, hudPadding, y, hudMuted)
			y += hudLineHeight
		}
		for _, p := range group.Params {
			line := fmt.Sprintf("%-13s %s", p.Label, formatValue(p))
			text.Draw(h.panel, line, basicfont.Face7x13, hudPadding, y, hudText)
			y += hudLineHeight
		}
	}

	y = height - hudPadding - (len(hudKeys)-1)*hudLineHeight
	for _, k := range hudKeys {
		text.Draw(h.panel, k, basicfont.Face7x13, hudPadding, y, hudMuted)
		y += hudLineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func formatValue(p core.Parameter) string {
	if p.Type != core.ParamTypeFloat {
		return p.Value
	}
	var v float64
	if _, err := fmt.Sscan(p.Value, &v); err != nil {
		return p.Value
	}
	return fmt.Sprintf("%.3g", v)
}
