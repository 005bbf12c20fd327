//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"hopfield-canvas/internal/app"
	"hopfield-canvas/internal/core"
	_ "hopfield-canvas/internal/sims/hopfield"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	palette, err := cfg.Palette()
	if err != nil {
		log.Fatal(err)
	}

	sim, err := core.Build(cfg.Sim, cfg.SimConfig())
	if err != nil {
		log.Fatalf("build sim %q: %v", cfg.Sim, err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg, palette)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("hopfield-canvas — " + sim.Name())
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
