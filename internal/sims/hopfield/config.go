package hopfield

import (
	"strconv"
)

// Config controls the canvas geometry and the target picture.
type Config struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int

	Seed    int64
	Pattern string

	// Workers > 1 sweeps tiles concurrently.
	Workers int
	// Noise is the per-cell flip probability applied by Perturb.
	Noise float64
}

// DefaultConfig returns the standard configuration: a 96×32 picture split
// into 8×8 tiles.
func DefaultConfig() Config {
	return Config{
		Width:      96,
		Height:     32,
		TileWidth:  8,
		TileHeight: 8,
		Seed:       42,
		Pattern:    "ramp",
		Workers:    1,
		Noise:      0.25,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["tile_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TileWidth = parsed
		}
	}
	if v, ok := cfg["tile_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TileHeight = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = v
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["noise"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Noise = parsed
		}
	}
	return c
}
