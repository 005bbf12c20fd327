package hopfield

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("hopfield: invalid canvas configuration")
	// ErrRange matches every *RangeError.
	ErrRange = errors.New("hopfield: tile index out of range")

	ErrUntrained      = errors.New("hopfield: tile has not been trained")
	ErrNoPattern      = errors.New("hopfield: no pattern has been supplied")
	ErrPatternSize    = errors.New("hopfield: pattern length does not match tile size")
	ErrImageSize      = errors.New("hopfield: image dimensions do not match canvas")
	ErrInvalidCell    = errors.New("hopfield: cell value must be -1 or +1")
	ErrUnknownPattern = errors.New("hopfield: unknown pattern generator")
)

// ConfigurationError reports canvas dimensions that cannot be tiled.
type ConfigurationError struct {
	Axis  string // "width" or "height"
	Total int
	Tile  int
}

func (e *ConfigurationError) Error() string {
	if e.Tile <= 0 || e.Total <= 0 {
		return fmt.Sprintf("canvas %s %d and tile %s %d must be positive", e.Axis, e.Total, e.Axis, e.Tile)
	}
	return fmt.Sprintf("canvas %s %d is not divisible by tile %s %d", e.Axis, e.Total, e.Axis, e.Tile)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// RangeError reports an observation call with a tile index outside [0, Len).
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("tile index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }
