package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"

	"hopfield-canvas/internal/core"
	"hopfield-canvas/internal/sims/hopfield"
	engine "hopfield-canvas/pkg/hopfield"
)

type scenario struct {
	tileW, tileH int
	pattern      string
	seed         int64
}

func (s scenario) String() string {
	return fmt.Sprintf("tile=%dx%d pattern=%s seed=%d", s.tileW, s.tileH, s.pattern, s.seed)
}

type scenarioResult struct {
	scenario  scenario
	steps     int
	converged bool
	recalled  int
	mirrored  int
	tiles     int
	energy    float64
	history   []float64
	err       error
}

func main() {
	width := flag.Int("w", 96, "canvas width in pixels")
	height := flag.Int("h", 32, "canvas height in pixels")
	tileList := flag.String("tiles", "4x4,8x8,16x16", "comma-separated tile sizes (WxH)")
	patternList := flag.String("patterns", "ramp,checker,perlin",
		"comma-separated pattern generators ("+strings.Join(engine.Generators(), ", ")+")")
	seeds := flag.Int("seeds", 8, "seeds per tile size and pattern")
	firstSeed := flag.Int64("seed", 1, "first seed")
	maxSteps := flag.Int("max-steps", 64, "step limit per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	plot := flag.Bool("plot", true, "plot the energy trace of the slowest scenario")
	params := flag.Bool("params", false, "describe the reported parameters and exit")
	flag.Parse()

	tiles, err := parseTiles(*tileList)
	if err != nil {
		log.Fatal(err)
	}
	patterns := splitList(*patternList)

	base := hopfield.DefaultConfig()
	base.Width = *width
	base.Height = *height

	if *params {
		world, err := hopfield.NewWithConfig(base)
		if err != nil {
			log.Fatal(err)
		}
		for _, line := range describeParameters(world.Parameters()) {
			fmt.Println(line)
		}
		return
	}

	var sets []scenario
	for _, t := range tiles {
		for _, p := range patterns {
			for i := 0; i < *seeds; i++ {
				sets = append(sets, scenario{tileW: t[0], tileH: t[1], pattern: p, seed: *firstSeed + int64(i)})
			}
		}
	}
	if *workers < 1 {
		*workers = 1
	}

	fmt.Printf("Sweeping %d scenarios on a %dx%d canvas (%d workers, max %d steps)\n", len(sets), *width, *height, *workers, *maxSteps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(base, sc, *maxSteps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failed := 0
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.scenario, res.err)
			failed++
			continue
		}
		if !res.converged {
			fmt.Printf("Did not converge within %d steps: %s\n", *maxSteps, res.scenario)
		}
		all = append(all, res)
	}
	if len(all) == 0 {
		log.Fatalf("all %d scenarios failed", failed)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].steps != all[j].steps {
			return all[i].steps > all[j].steps
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})
	elapsed := time.Since(start)

	fmt.Printf("\nSlowest 5 (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) steps=%d converged=%v recalled=%d/%d mirrored=%d energy=%.0f %s\n",
			i+1, res.steps, res.converged, res.recalled, res.tiles, res.mirrored, res.energy, res.scenario)
	}

	fmt.Println("\nBy tile size:")
	for _, line := range summarize(all) {
		fmt.Println(line)
	}

	if *plot && len(all[0].history) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(all[0].history,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("energy, "+all[0].scenario.String())))
	}
	if failed > 0 {
		log.Fatalf("%d scenarios failed", failed)
	}
}

func runScenario(base hopfield.Config, sc scenario, maxSteps int) scenarioResult {
	cfg := base
	cfg.TileWidth = sc.tileW
	cfg.TileHeight = sc.tileH
	cfg.Pattern = sc.pattern
	cfg.Seed = sc.seed
	cfg.Workers = 1

	res := scenarioResult{scenario: sc}
	world, err := hopfield.NewWithConfig(cfg)
	if err != nil {
		res.err = err
		return res
	}
	for world.Steps() < maxSteps && !world.Stable() {
		if err := world.Step(); err != nil {
			res.err = err
			return res
		}
	}

	canvas := world.Canvas()
	res.steps = world.Steps()
	res.converged = world.Stable()
	res.tiles = canvas.GridsLen()
	res.energy = world.Energy()
	res.history = world.EnergyHistory()
	for i := 0; i < canvas.GridsLen(); i++ {
		t, _ := canvas.Tile(i)
		switch t.Overlap() {
		case 1:
			res.recalled++
		case -1:
			res.mirrored++
		}
	}
	return res
}

func summarize(all []scenarioResult) []string {
	type agg struct {
		runs, steps, recalled, tiles int
	}
	byTile := map[string]*agg{}
	for _, res := range all {
		key := fmt.Sprintf("%dx%d", res.scenario.tileW, res.scenario.tileH)
		a, ok := byTile[key]
		if !ok {
			a = &agg{}
			byTile[key] = a
		}
		a.runs++
		a.steps += res.steps
		a.recalled += res.recalled
		a.tiles += res.tiles
	}
	keys := make([]string, 0, len(byTile))
	for k := range byTile {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		a := byTile[k]
		lines = append(lines, fmt.Sprintf("  %-7s runs=%d meanSteps=%.2f recalled=%.1f%%",
			k, a.runs, float64(a.steps)/float64(a.runs), 100*float64(a.recalled)/float64(a.tiles)))
	}
	return lines
}

func describeParameters(snap core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snap.Groups {
		lines = append(lines, fmt.Sprintf("%s: %s", g.Name, g.Summary))
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %-13s %-6s %s", p.Key, p.Type, p.Description))
		}
	}
	return lines
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTiles(s string) ([][2]int, error) {
	var tiles [][2]int
	for _, part := range splitList(s) {
		var w, h int
		if _, err := fmt.Sscanf(part, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("invalid tile size %q, want WxH", part)
		}
		tiles = append(tiles, [2]int{w, h})
	}
	if len(tiles) == 0 {
		return nil, fmt.Errorf("no tile sizes given")
	}
	return tiles, nil
}
