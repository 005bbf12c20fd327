package hopfield

import (
	"strconv"

	"hopfield-canvas/internal/core"
)

// Parameters reports the configuration and live run statistics.
func (w *World) Parameters() core.ParameterSnapshot {
	cols, rows, tw, th := w.TileGrid()
	groups := []core.ParameterGroup{
		{
			Name:    "Canvas",
			Summary: "picture split into independent tiles",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width, "canvas width in pixels"),
				intParam("h", "Height", w.cfg.Height, "canvas height in pixels"),
				intParam("tile_w", "Tile width", tw, "tile width in pixels; must divide w"),
				intParam("tile_h", "Tile height", th, "tile height in pixels; must divide h"),
				intParam("tiles", "Tiles", cols*rows, "number of independent networks"),
			},
		},
		{
			Name:    "Pattern",
			Summary: "target picture every tile is trained on",
			Params: []core.Parameter{
				stringParam("pattern", "Generator", w.cfg.Pattern, "target picture generator"),
				int64Param("seed", "Seed", w.cfg.Seed, "seed for the picture and start states"),
				floatParam("noise", "Cue noise", w.cfg.Noise, "flip probability applied by perturb"),
			},
		},
		{
			Name:    "Run",
			Summary: "recall progress since the last reset",
			Params: []core.Parameter{
				intParam("steps", "Steps", w.steps, "sweeps since the last reset"),
				intParam("stable_tiles", "Stable tiles", w.canvas.StableCount(), "tiles whose last sweep changed nothing"),
				boolParam("stable", "Converged", w.stable, "every tile stable"),
				intParam("white", "White pixels", w.display.Count(1), "pixels currently in the +1 state"),
				floatParam("energy", "Energy", w.Energy(), "summed network energy"),
				floatParam("overlap", "Overlap", w.Overlap(), "mean tile overlap with the stored pattern"),
				intParam("workers", "Workers", w.cfg.Workers, "goroutines sweeping tiles"),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeInt,
		Value:       strconv.Itoa(value),
		Description: desc,
	}
}

func int64Param(key, label string, value int64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeInt,
		Value:       strconv.FormatInt(value, 10),
		Description: desc,
	}
}

func floatParam(key, label string, value float64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeFloat,
		Value:       strconv.FormatFloat(value, 'f', -1, 64),
		Description: desc,
	}
}

func boolParam(key, label string, value bool, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeBool,
		Value:       strconv.FormatBool(value),
		Description: desc,
	}
}

func stringParam(key, label, value, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeString,
		Value:       value,
		Description: desc,
	}
}
