package imaging

import (
	"image"
	"image/color"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

// Placeholder dimensions.
const (
	ZoomPlaceholderWidth        = 300
	ZoomPlaceholderHeight       = 200
	ResolutionPlaceholderWidth  = 800
	ResolutionPlaceholderHeight = 600
)

var (
	boldOnce sync.Once
	boldFont *truetype.Font
)

// boldFace returns the Go Bold face at the given pixel size, or the basic
// bitmap face if the embedded font cannot be parsed.
func boldFace(size float64) font.Face {
	boldOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err == nil {
			boldFont = f
		}
	})
	if boldFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(boldFont, &truetype.Options{Size: size})
}

// ZoomPlaceholder draws the 300x200 sample used by the pixel zoom widget when
// no image is available: a warm diagonal gradient, three translucent
// overlapping discs and a caption, which together give the magnifier edges,
// blends and anti-aliased text to look at.
func ZoomPlaceholder() *image.RGBA {
	const w, h = ZoomPlaceholderWidth, ZoomPlaceholderHeight
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, color.RGBA{0xFF, 0x5F, 0x6D, 0xFF})
	grad.AddColorStop(1, color.RGBA{0xFF, 0xC3, 0x71, 0xFF})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	discs := []struct {
		cx  float64
		rgb [3]float64
	}{
		{w / 4.0, [3]float64{66, 133, 244}},
		{w * 3 / 4.0, [3]float64{219, 68, 55}},
		{w / 2.0, [3]float64{15, 157, 88}},
	}
	for _, d := range discs {
		dc.SetRGBA(d.rgb[0]/255, d.rgb[1]/255, d.rgb[2]/255, 0.8)
		dc.DrawCircle(d.cx, h/2.0, 50)
		dc.Fill()
	}

	dc.SetFontFace(boldFace(24))
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("Pixel Zoom Demo", w/2.0, h-30, 0.5, 0)

	return toRGBA(dc.Image())
}

// ResolutionPlaceholder draws the 800x600 source used by the resolution
// explorer: a cool gradient with a disc, a square, a triangle and a title.
func ResolutionPlaceholder() *image.RGBA {
	const w, h = ResolutionPlaceholderWidth, ResolutionPlaceholderHeight
	dc := gg.NewContext(w, h)

	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, color.RGBA{0x34, 0x98, 0xDB, 0xFF})
	grad.AddColorStop(1, color.RGBA{0x2E, 0xCC, 0x71, 0xFF})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetHexColor("#e74c3c")
	dc.DrawCircle(w/2.0, h/2.0, 100)
	dc.Fill()

	dc.SetHexColor("#f39c12")
	dc.DrawRectangle(w/4.0, h/4.0, 150, 150)
	dc.Fill()

	dc.SetHexColor("#9b59b6")
	dc.MoveTo(w*3/4.0, h/4.0)
	dc.LineTo(w*3/4.0+150, h/4.0)
	dc.LineTo(w*3/4.0+75, h/4.0+150)
	dc.ClosePath()
	dc.Fill()

	dc.SetFontFace(boldFace(48))
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored("Resolution Demo", w/2.0, 100, 0.5, 0)

	return toRGBA(dc.Image())
}

// toRGBA returns img as *image.RGBA, copying only when the concrete type
// differs.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(img)
}
