// Package resolution simulates lower display resolutions by shrinking an
// image and blowing it back up with nearest-neighbour sampling, so each
// low-resolution pixel shows as a hard-edged block.
package resolution

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	dimaging "github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/screens-mcp/internal/parallel"
)

// MinDimension is the smallest downsampled width or height.
const MinDimension = 4

// ErrUnknownFactor is returned by ParseFactor for an unrecognised name.
var ErrUnknownFactor = errors.New("unknown resolution factor")

// Factor is a named scale applied to both dimensions.
type Factor struct {
	Name  string  `json:"name"`
	Scale float64 `json:"scale"`
}

var (
	High    = Factor{Name: "high", Scale: 1.0}
	Medium  = Factor{Name: "medium", Scale: 0.5}
	Low     = Factor{Name: "low", Scale: 0.25}
	VeryLow = Factor{Name: "very-low", Scale: 0.1}
)

// Factors lists every selectable factor from sharpest to coarsest.
var Factors = []Factor{High, Medium, Low, VeryLow}

// Names returns the selector values accepted by ParseFactor.
func Names() []string {
	names := make([]string, len(Factors))
	for i, f := range Factors {
		names[i] = f.Name
	}
	return names
}

// ParseFactor looks up a factor by selector value.
func ParseFactor(name string) (Factor, error) {
	for _, f := range Factors {
		if strings.EqualFold(name, f.Name) {
			return f, nil
		}
	}
	return Factor{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFactor, name, strings.Join(Names(), ", "))
}

// DownsampleSize returns the intermediate size for a w x h source.
func DownsampleSize(w, h int, f Factor) (int, int) {
	return max(MinDimension, int(math.Floor(float64(w)*f.Scale))),
		max(MinDimension, int(math.Floor(float64(h)*f.Scale)))
}

// Explore returns src as it would look at factor f, at src's full size with
// bounds starting at the origin. A scale of 1 or more returns an identical
// copy, even for sources smaller than MinDimension. The source is never
// modified.
func Explore(src image.Image, f Factor) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	sw, sh := DownsampleSize(w, h, f)

	if f.Scale >= 1 || (sw == w && sh == h) {
		out := clone.AsRGBA(src)
		out.Rect = out.Rect.Sub(out.Rect.Min)
		return out
	}

	small := dimaging.Resize(src, sw, sh, dimaging.Linear)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return out
}

// Preview is one factor's rendering.
type Preview struct {
	Factor           Factor      `json:"factor"`
	DownsampleWidth  int         `json:"downsample_width"`
	DownsampleHeight int         `json:"downsample_height"`
	Image            *image.RGBA `json:"-"`
}

// ExploreAll renders every factor concurrently on up to workers goroutines.
// Results are in the order of Factors.
func ExploreAll(src image.Image, workers int) []Preview {
	b := src.Bounds()
	out := make([]Preview, len(Factors))

	pool := parallel.Start(min(workers, len(Factors)))
	for i, f := range Factors {
		pool.Do(func() {
			sw, sh := DownsampleSize(b.Dx(), b.Dy(), f)
			out[i] = Preview{
				Factor:           f,
				DownsampleWidth:  sw,
				DownsampleHeight: sh,
				Image:            Explore(src, f),
			}
		})
	}
	pool.Wait()
	return out
}
