package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// FillRect fills r (clipped to dst) with a solid color.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a 1px outline just inside r.
func StrokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	HLine(dst, r.Min.X, r.Max.X, r.Min.Y, c)
	HLine(dst, r.Min.X, r.Max.X, r.Max.Y-1, c)
	VLine(dst, r.Min.X, r.Min.Y, r.Max.Y, c)
	VLine(dst, r.Max.X-1, r.Min.Y, r.Max.Y, c)
}

// HLine draws a horizontal line covering [x0, x1) at row y.
func HLine(dst *image.RGBA, x0, x1, y int, c color.Color) {
	FillRect(dst, image.Rect(x0, y, x1, y+1), c)
}

// VLine draws a vertical line covering [y0, y1) at column x.
func VLine(dst *image.RGBA, x, y0, y1 int, c color.Color) {
	FillRect(dst, image.Rect(x, y0, x+1, y1), c)
}

// DrawCrosshair draws a plus sign centred on p with arms of the given length,
// outlined in a contrasting colour so it stays visible on any background.
func DrawCrosshair(dst *image.RGBA, p image.Point, arm int, fg, outline color.Color) {
	FillRect(dst, image.Rect(p.X-arm-1, p.Y-2, p.X+arm+2, p.Y+2), outline)
	FillRect(dst, image.Rect(p.X-2, p.Y-arm-1, p.X+2, p.Y+arm+2), outline)
	HLine(dst, p.X-arm, p.X+arm+1, p.Y, fg)
	VLine(dst, p.X, p.Y-arm, p.Y+arm+1, fg)
}

// DrawGridLines draws vertical and horizontal lines every spacing pixels
// starting at the image origin, skipping the outer edge.
func DrawGridLines(dst *image.RGBA, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	b := dst.Bounds()
	for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
		VLine(dst, x, b.Min.Y, b.Max.Y, c)
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		HLine(dst, b.Min.X, b.Max.X, y, c)
	}
}
