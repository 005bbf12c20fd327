package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillBinaryRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillBinaryRGBA(buf, []uint8{1, 0}, color.White, color.Black)
	want := []byte{255, 255, 255, 255, 0, 0, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
}

func TestFillDiffRGBAMarksMismatches(t *testing.T) {
	buf := make([]byte, 12)
	miss := color.RGBA{R: 200, A: 255}
	fillDiffRGBA(buf, []uint8{1, 0, 1}, []uint8{1, 1, 0}, color.White, color.Black, miss)
	want := []byte{
		255, 255, 255, 255,
		200, 0, 0, 255,
		200, 0, 0, 255,
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
}
