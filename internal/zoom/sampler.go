package zoom

import (
	"fmt"
	"image"
	"math"
)

const (
	// BaseSampleSize is the sample half-extent at zoom level 1.
	BaseSampleSize = 40

	MinLevel = 1
	MaxLevel = 40

	// BlitMaxLevel is the highest level drawn by scaling instead of per-pixel fills.
	BlitMaxLevel = 10

	// GridMinLevel is the level above which pixel cells are outlined.
	GridMinLevel = 20
)

// Strategy names one of the three ways a frame can be drawn.
type Strategy string

const (
	StrategyBlit     Strategy = "blit"
	StrategyUnified  Strategy = "unified"
	StrategySubpixel Strategy = "subpixel"
)

// StrategyFor selects the rendering strategy for a zoom level.
func StrategyFor(level int) Strategy {
	switch {
	case level <= BlitMaxLevel:
		return StrategyBlit
	case level < MaxLevel:
		return StrategyUnified
	default:
		return StrategySubpixel
	}
}

// HalfExtent returns the sample half-extent for a zoom level.
func HalfExtent(level int) float64 {
	return float64(BaseSampleSize) / float64(max(1, level))
}

// ValidateLevel reports whether level is a value the zoom slider can produce.
func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("zoom level %d outside %d-%d", level, MinLevel, MaxLevel)
	}
	return nil
}

// SampleRect returns the region of a buffer with the given bounds that is
// read when magnifying around focus at level.
//
// The rectangle is 2*HalfExtent pixels on a side (rounded up), shrunk to the
// buffer when the buffer is smaller, and shifted so that it never leaves the
// buffer: x >= 0 and x+width <= bounds width, likewise for y.
func SampleRect(focus image.Point, level int, bounds image.Rectangle) image.Rectangle {
	if bounds.Empty() {
		return image.Rectangle{}
	}
	side := max(1, int(math.Ceil(2*HalfExtent(level))))

	w := min(side, bounds.Dx())
	h := min(side, bounds.Dy())
	x0 := clamp(focus.X-side/2, bounds.Min.X, bounds.Max.X-w)
	y0 := clamp(focus.Y-side/2, bounds.Min.Y, bounds.Max.Y-h)

	return image.Rect(x0, y0, x0+w, y0+h)
}
