//go:build ebiten

package app

import (
	"fmt"
	"time"

	"hopfield-canvas/internal/core"
	"hopfield-canvas/internal/render"
	"hopfield-canvas/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type perturber interface {
	Perturb()
}

type targetProvider interface {
	Target() []uint8
}

type convergence interface {
	Steps() int
	Stable() bool
}

type viewMode int

const (
	viewState viewMode = iota
	viewTarget
	viewDiff
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep
	palette Palette

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
	view     viewMode
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, palette Palette) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		timer:    core.NewFixedStep(cfg.TPS),
		palette:  palette,
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		hudWidth: cfg.HUDWidth,
	}
	if g.hud == nil {
		g.hudWidth = 0
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation on the fixed
// step cadence.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if p, ok := g.sim.(perturber); ok {
			p.Perturb()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleView(viewTarget)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.toggleView(viewDiff)
	}

	g.overlay.Update()

	due := g.timer.Steps()
	if g.paused {
		due = 0
	}
	if g.tickOnce {
		due = 1
		g.tickOnce = false
	}
	for i := 0; i < due; i++ {
		if err := g.sim.Step(); err != nil {
			return err
		}
	}
	g.hud.Update()
	return nil
}

func (g *Game) toggleView(v viewMode) {
	if g.view == v {
		g.view = viewState
		return
	}
	g.view = v
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	p := g.palette
	target, hasTarget := g.sim.(targetProvider)
	switch {
	case g.view == viewTarget && hasTarget:
		g.painter.Blit(screen, target.Target(), p.On, p.Off, g.scale)
	case g.view == viewDiff && hasTarget:
		g.painter.BlitDiff(screen, g.sim.Cells(), target.Target(), p.On, p.Off, p.Miss, g.scale)
	default:
		g.painter.Blit(screen, g.sim.Cells(), p.On, p.Off, g.scale)
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.status())
}

func (g *Game) status() string {
	state := "running"
	if c, ok := g.sim.(convergence); ok {
		if c.Stable() {
			state = fmt.Sprintf("stable after %d", c.Steps())
		} else {
			state = fmt.Sprintf("step %d", c.Steps())
		}
	}
	if g.paused {
		state += " (paused)"
	}
	switch g.view {
	case viewTarget:
		state += " [target]"
	case viewDiff:
		state += " [diff]"
	}
	return state
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
