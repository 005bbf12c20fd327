package app

import (
	"flag"
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"hopfield-canvas/internal/core"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int

	// On and Off are hex colors for White and Black cells; Miss marks pixels
	// that differ from the target in the diff view.
	On   string
	Off  string
	Miss string

	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "hopfield",
		Scale:    8,
		TPS:      8,
		Seed:     42,
		HUDWidth: 220,
		On:       "#000000",
		Off:      "#ffffff",
		Miss:     "#e0452b",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(core.Names(), ", ")+")")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.StringVar(&c.On, "on", c.On, "color of white (+1) cells")
	fs.StringVar(&c.Off, "off", c.Off, "color of black (-1) cells")
	fs.StringVar(&c.Miss, "miss", c.Miss, "color of pixels that differ from the target in the diff view")
	fs.Var(&c.Overrides, "set", "sim parameter override in key=value form (repeatable)")
}

// Palette holds the parsed display colors.
type Palette struct {
	On, Off, Miss color.Color
}

// Palette parses the configured hex colors.
func (c *Config) Palette() (Palette, error) {
	on, err := colorful.Hex(c.On)
	if err != nil {
		return Palette{}, fmt.Errorf("on color %q: %w", c.On, err)
	}
	off, err := colorful.Hex(c.Off)
	if err != nil {
		return Palette{}, fmt.Errorf("off color %q: %w", c.Off, err)
	}
	miss, err := colorful.Hex(c.Miss)
	if err != nil {
		return Palette{}, fmt.Errorf("miss color %q: %w", c.Miss, err)
	}
	return Palette{On: on, Off: off, Miss: miss}, nil
}

// SimConfig returns the -set overrides as a sim configuration map. The
// -seed flag is forwarded as the "seed" key unless overridden explicitly.
func (c *Config) SimConfig() map[string]string {
	m := map[string]string{"seed": fmt.Sprint(c.Seed)}
	for _, kv := range c.Overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}
