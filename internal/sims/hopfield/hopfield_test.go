package hopfield

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"testing"

	"hopfield-canvas/internal/core"
	engine "hopfield-canvas/pkg/hopfield"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 16
	cfg.Seed = 99
	return cfg
}

func TestResetDeterministic(t *testing.T) {
	world, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	initialCells := append([]uint8(nil), world.Cells()...)
	initialTarget := append([]uint8(nil), world.Target()...)

	// Mutate state to ensure Reset rebuilds from scratch.
	world.Cells()[0] ^= 1
	if err := world.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	world.Reset(0)
	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for display buffer")
	}
	if !slices.Equal(initialTarget, world.Target()) {
		t.Fatal("Reset with config seed not deterministic for target picture")
	}
	if world.Steps() != 0 {
		t.Fatalf("Steps after Reset = %d, want 0", world.Steps())
	}

	world.Reset(777)
	seedTarget := append([]uint8(nil), world.Target()...)
	seedCells := append([]uint8(nil), world.Cells()...)
	world.Reset(777)
	if !slices.Equal(seedTarget, world.Target()) || !slices.Equal(seedCells, world.Cells()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initialTarget, seedTarget) {
		t.Fatal("different seeds should produce different target pictures")
	}
}

func TestResetRetrainsOnNewPicture(t *testing.T) {
	world, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	world.Reset(5)
	tile, _ := world.Canvas().Tile(0)
	want := make([]engine.Cell, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if world.Target()[y*32+x] == 1 {
				want = append(want, engine.White)
			} else {
				want = append(want, engine.Black)
			}
		}
	}
	if !slices.Equal(tile.Pattern(), want) {
		t.Fatal("tile 0 should be trained on the freshly generated picture")
	}
}

func TestStepConvergesAndHolds(t *testing.T) {
	world, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < 64 && !world.Stable(); i++ {
		if err := world.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !world.Stable() {
		t.Fatal("world did not converge within 64 steps")
	}
	steps := world.Steps()
	if err := world.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if world.Steps() != steps {
		t.Fatal("stepping a converged world should be a no-op")
	}
	for i, ok := range world.TileStatus() {
		if !ok {
			t.Fatalf("tile %d not stable", i)
		}
	}

	history := world.EnergyHistory()
	if len(history) != steps+1 {
		t.Fatalf("energy history len = %d, want %d", len(history), steps+1)
	}
	for i := 1; i < len(history); i++ {
		if history[i] > history[i-1] {
			t.Fatalf("energy rose at step %d: %.1f -> %.1f", i, history[i-1], history[i])
		}
	}
	// every 64-cell tile ends on its pattern or the mirror
	if want := -8.0 * 64 * 63 / 2; world.Energy() != want {
		t.Fatalf("final energy = %.1f, want %.1f", world.Energy(), want)
	}
}

func TestPerturbResumesStepping(t *testing.T) {
	cfg := smallConfig()
	cfg.Noise = 0.2
	world, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < 64 && !world.Stable(); i++ {
		if err := world.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	before := append([]uint8(nil), world.Cells()...)
	world.Perturb()
	if world.Stable() {
		t.Fatal("Perturb should clear the converged flag")
	}
	if slices.Equal(before, world.Cells()) {
		t.Fatal("Perturb should change the display")
	}
	for i := 0; i < 64 && !world.Stable(); i++ {
		if err := world.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !world.Stable() {
		t.Fatal("world did not settle again after Perturb")
	}
	if math.Abs(world.Overlap()) > 1 {
		t.Fatalf("overlap out of range: %v", world.Overlap())
	}
}

func TestPerturbHoldsAfterFailedReset(t *testing.T) {
	world, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	world.err = engine.ErrNoPattern
	before := append([]uint8(nil), world.Cells()...)
	history := len(world.EnergyHistory())
	world.Perturb()
	if !slices.Equal(before, world.Cells()) {
		t.Fatal("Perturb must not touch a world holding an error")
	}
	if len(world.EnergyHistory()) != history {
		t.Fatal("Perturb must not record energy for a world holding an error")
	}
	if err := world.Step(); !errors.Is(err, engine.ErrNoPattern) {
		t.Fatalf("Step should keep reporting the held error, got %v", err)
	}
}

func TestWorkersDoNotChangeTrajectory(t *testing.T) {
	serialCfg := smallConfig()
	parallelCfg := smallConfig()
	parallelCfg.Workers = 4

	serial, err := NewWithConfig(serialCfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	parallel, err := NewWithConfig(parallelCfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := serial.Step(); err != nil {
			t.Fatalf("serial Step: %v", err)
		}
		if err := parallel.Step(); err != nil {
			t.Fatalf("parallel Step: %v", err)
		}
		if !slices.Equal(serial.Cells(), parallel.Cells()) {
			t.Fatalf("step %d: parallel stepping diverged", i)
		}
	}
}

func TestNewWithConfigRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileWidth = 7
	if _, err := NewWithConfig(cfg); !errors.Is(err, engine.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Pattern = "portrait"
	if _, err := NewWithConfig(cfg); !errors.Is(err, engine.ErrUnknownPattern) {
		t.Fatalf("expected ErrUnknownPattern, got %v", err)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":       "64",
		"h":       "bogus",
		"tile_w":  "16",
		"tile_h":  "4",
		"seed":    "-3",
		"pattern": "perlin",
		"workers": "0",
		"noise":   "1.5",
	})
	def := DefaultConfig()
	if c.Width != 64 || c.TileWidth != 16 || c.TileHeight != 4 || c.Seed != -3 || c.Pattern != "perlin" {
		t.Fatalf("parsed config = %+v", c)
	}
	if c.Height != def.Height || c.Workers != def.Workers || c.Noise != def.Noise {
		t.Fatalf("invalid values should keep defaults, got %+v", c)
	}
}

func TestRegisteredFactory(t *testing.T) {
	sim, err := core.Build("hopfield", map[string]string{"w": "16", "h": "8"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sim.Name() != "hopfield" || sim.Size() != (core.Size{W: 16, H: 8}) {
		t.Fatalf("unexpected sim %s %+v", sim.Name(), sim.Size())
	}
	if len(sim.Cells()) != 16*8 {
		t.Fatalf("Cells len = %d", len(sim.Cells()))
	}
	if _, err := core.Build("hopfield", map[string]string{"w": "16", "tile_w": "7"}); err == nil {
		t.Fatal("expected a configuration error from the factory")
	}
}

func TestParametersSnapshot(t *testing.T) {
	world, err := NewWithConfig(smallConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	snap := world.Parameters()
	if p, ok := snap.Lookup("tiles"); !ok || p.Value != "8" {
		t.Fatalf("tiles param = %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("pattern"); !ok || p.Value != "ramp" {
		t.Fatalf("pattern param = %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("stable"); !ok || p.Value != "false" {
		t.Fatalf("stable param = %+v, %v", p, ok)
	}
	white := 0
	for _, c := range world.Cells() {
		white += int(c)
	}
	if p, ok := snap.Lookup("white"); !ok || p.Value != strconv.Itoa(white) {
		t.Fatalf("white param = %+v, want %d", p, white)
	}
	for _, g := range snap.Groups {
		if g.Summary == "" {
			t.Fatalf("group %s has no summary", g.Name)
		}
		for _, p := range g.Params {
			if p.Description == "" {
				t.Fatalf("parameter %s has no description", p.Key)
			}
		}
	}
}
