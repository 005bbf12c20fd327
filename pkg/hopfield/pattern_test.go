package hopfield

import (
	"errors"
	"slices"
	"testing"

	"hopfield-canvas/pkg/core"
)

func TestGeneratePatternShape(t *testing.T) {
	img := GeneratePattern(core.NewRNG(1).Source(), 15, 20)
	if img.Width != 20 || img.Height != 15 {
		t.Fatalf("image = %dx%d, want 20x15", img.Width, img.Height)
	}
	if len(img.Cells) != 300 {
		t.Fatalf("len = %d, want 300", len(img.Cells))
	}
	for i, c := range img.Cells {
		if !c.Valid() {
			t.Fatalf("pixel %d = %d, want ±1", i, int8(c))
		}
	}
}

func TestRampEdgesAndMiddle(t *testing.T) {
	const w, h = 16, 12
	img := GenerateRamp(core.NewRNG(2).Source(), h, w)
	for y := 0; y < h; y++ {
		if img.At(0, y) != Black || img.At(w-1, y) != Black {
			t.Fatalf("row %d: outermost columns must be black", y)
		}
		for x := w / 4; x < w/4+w/2; x++ {
			if img.At(x, y) != White {
				t.Fatalf("pixel (%d,%d) in the middle half must be white", x, y)
			}
		}
	}
}

func TestRampNarrowWidthIsWhite(t *testing.T) {
	img := GenerateRamp(core.NewRNG(3).Source(), 2, 6)
	for i, c := range img.Cells {
		if c != White {
			t.Fatalf("pixel %d = %v, want white for a degenerate ramp", i, c)
		}
	}
}

func TestGeneratorsDeterministicPerSeed(t *testing.T) {
	for _, name := range Generators() {
		gen, err := LookupGenerator(name)
		if err != nil {
			t.Fatalf("LookupGenerator(%q): %v", name, err)
		}
		a := gen(core.NewRNG(42).Source(), 16, 24)
		b := gen(core.NewRNG(42).Source(), 16, 24)
		if !slices.Equal(a.Cells, b.Cells) {
			t.Fatalf("%s: same seed produced different images", name)
		}
		if len(a.Cells) != 16*24 {
			t.Fatalf("%s: len = %d", name, len(a.Cells))
		}
		for i, c := range a.Cells {
			if !c.Valid() {
				t.Fatalf("%s: pixel %d invalid", name, i)
			}
		}
	}
}

func TestGeneratorRegistry(t *testing.T) {
	want := []string{"checker", "noise", "perlin", "ramp"}
	if got := Generators(); !slices.Equal(got, want) {
		t.Fatalf("Generators() = %v, want %v", got, want)
	}
	if _, err := LookupGenerator("logo"); !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("expected ErrUnknownPattern, got %v", err)
	}
}

func TestCheckerBlocks(t *testing.T) {
	img := GenerateChecker(nil, 4, 4)
	want := []Cell{
		White, White, Black, Black,
		White, White, Black, Black,
		Black, Black, White, White,
		Black, Black, White, White,
	}
	if !slices.Equal(img.Cells, want) {
		t.Fatalf("checker = %v", img.Cells)
	}
}

func TestGenerateEmptyDimensions(t *testing.T) {
	img := GeneratePerlin(core.NewRNG(1).Source(), 0, 10)
	if len(img.Cells) != 0 || img.Width != 0 {
		t.Fatalf("expected empty image, got %dx%d", img.Width, img.Height)
	}
}
