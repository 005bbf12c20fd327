package hopfield

import (
	"fmt"
	"math/rand/v2"
	"sort"

	perlin "github.com/aquilax/go-perlin"
)

// Image is a full-resolution bipolar picture stored row-major.
type Image struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewImage allocates an all-Black image.
func NewImage(width, height int) Image {
	if width <= 0 || height <= 0 {
		return Image{}
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Black
	}
	return Image{Width: width, Height: height, Cells: cells}
}

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) Cell { return img.Cells[y*img.Width+x] }

// Generator produces a height×width bipolar image. Any randomness is drawn
// from r.
type Generator func(r *rand.Rand, height, width int) Image

var generators = map[string]Generator{
	"ramp":    GenerateRamp,
	"checker": GenerateChecker,
	"perlin":  GeneratePerlin,
	"noise":   GenerateNoise,
}

// Generators lists the registered generator names in sorted order.
func Generators() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupGenerator returns the generator registered under name.
func LookupGenerator(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return g, nil
}

// GeneratePattern produces the default target picture.
func GeneratePattern(r *rand.Rand, height, width int) Image {
	return GenerateRamp(r, height, width)
}

// GenerateRamp draws each pixel White with a probability that depends on its
// column: rising linearly from 0 to 1 across the left quarter, 1 across the
// middle and falling back to 0 across the right quarter.
func GenerateRamp(r *rand.Rand, height, width int) Image {
	img := NewImage(width, height)
	if len(img.Cells) == 0 {
		return img
	}
	probs := rampProfile(width)
	for i := range img.Cells {
		if r.Float32() < probs[i%width] {
			img.Cells[i] = White
		}
	}
	return img
}

func rampProfile(width int) []float32 {
	probs := make([]float32, width)
	for i := range probs {
		probs[i] = 1
	}
	q := width / 4
	if q <= 1 {
		return probs
	}
	for i := 0; i < q; i++ {
		p := float32(i) / float32(q-1)
		probs[i] = p
		// the falling edge starts right after the middle half
		probs[q+width/2+i] = 1 - p
	}
	return probs
}

// GenerateChecker returns a checkerboard of 2×2 blocks. It draws nothing
// from r.
func GenerateChecker(_ *rand.Rand, height, width int) Image {
	img := NewImage(width, height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if (x/2+y/2)%2 == 0 {
				img.Cells[y*width+x] = White
			}
		}
	}
	return img
}

// GeneratePerlin thresholds 2D Perlin noise at zero. The noise seed is one
// draw from r.
func GeneratePerlin(r *rand.Rand, height, width int) Image {
	img := NewImage(width, height)
	if len(img.Cells) == 0 {
		return img
	}
	p := perlin.NewPerlin(2, 2, 3, r.Int64())
	const scale = 0.08
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if p.Noise2D(float64(x)*scale, float64(y)*scale) >= 0 {
				img.Cells[y*width+x] = White
			}
		}
	}
	return img
}

// GenerateNoise draws every pixel independently with probability 1/2.
func GenerateNoise(r *rand.Rand, height, width int) Image {
	img := NewImage(width, height)
	for i := range img.Cells {
		if r.IntN(2) == 1 {
			img.Cells[i] = White
		}
	}
	return img
}
