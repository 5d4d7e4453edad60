package zoom

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/screens-mcp/internal/imaging"
)

// DefaultViewSize is the side of the zoomed view canvas.
const DefaultViewSize = 400

var (
	gridColor      = imaging.MustParseHexColor("#888888")
	separatorColor = imaging.MustParseHexColor("#333333")
	crosshairColor = imaging.MustParseHexColor("#FF0000")
	outlineColor   = imaging.MustParseHexColor("#FFFFFF")
	clearColor     = color.RGBA{}
)

// Frame is one rendered zoom view together with the parameters that
// produced it.
type Frame struct {
	Image *image.RGBA `json:"-"`

	Level      int      `json:"level"`
	Strategy   Strategy `json:"strategy"`
	HalfExtent float64  `json:"half_extent"`

	// Focus is the requested focus point in image coordinates.
	Focus Pixel `json:"focus"`

	// Sample is the clamped region of the buffer that was read.
	Sample SampleRegion `json:"sample"`

	// CellSize is the output side of one source pixel; zero for blits.
	CellSize float64 `json:"cell_size"`

	Grid bool `json:"grid"`

	// FocusColor is the colour of the buffer pixel under the focus point;
	// nil when the focus lies outside the buffer.
	FocusColor *imaging.ColorResult `json:"focus_color,omitempty"`

	// SkippedReads counts pixel reads that failed and were left blank.
	SkippedReads int `json:"skipped_reads"`
}

// Pixel is the JSON form of an image coordinate.
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PixelOf converts p.
func PixelOf(p image.Point) Pixel {
	return Pixel{X: p.X, Y: p.Y}
}

// Point converts p back to an image.Point.
func (p Pixel) Point() image.Point {
	return image.Pt(p.X, p.Y)
}

// SampleRegion is the JSON form of a sample rectangle.
type SampleRegion struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func regionOf(r image.Rectangle) SampleRegion {
	return SampleRegion{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Renderer draws zoom frames onto an output canvas of fixed size.
type Renderer struct {
	logger *slog.Logger
	view   image.Rectangle
}

// NewRenderer returns a renderer for a width x height output canvas.
// Non-positive dimensions fall back to DefaultViewSize.
func NewRenderer(logger *slog.Logger, width, height int) *Renderer {
	if width <= 0 {
		width = DefaultViewSize
	}
	if height <= 0 {
		height = DefaultViewSize
	}
	return &Renderer{
		logger: logger,
		view:   image.Rect(0, 0, width, height),
	}
}

// ViewSize returns the output canvas dimensions.
func (r *Renderer) ViewSize() image.Point {
	return r.view.Size()
}

// Render clears the output and redraws the magnified region around focus.
//
// Render never fails: an unready buffer yields a blank frame, and individual
// pixel reads that fail are logged, counted in SkippedReads, and left blank.
func (r *Renderer) Render(buf *PixelBuffer, focus image.Point, level int) *Frame {
	level = clamp(level, MinLevel, MaxLevel)
	s := HalfExtent(level)

	frame := &Frame{
		Image:      image.NewRGBA(r.view),
		Level:      level,
		Strategy:   StrategyFor(level),
		HalfExtent: s,
		Focus:      PixelOf(focus),
	}
	imaging.FillRect(frame.Image, r.view, clearColor)

	if !buf.Ready() {
		r.logger.Warn("cannot update zoomed view - image not loaded")
		return frame
	}

	sample := SampleRect(focus, level, buf.Bounds())
	frame.Sample = regionOf(sample)

	if desc, err := imaging.SampleColor(buf.Image(), focus.X, focus.Y); err == nil {
		frame.FocusColor = desc
	}

	r.logger.Debug("updating zoomed view",
		"focus_x", focus.X, "focus_y", focus.Y,
		"level", level, "strategy", frame.Strategy,
		"sample", sample)

	switch frame.Strategy {
	case StrategyBlit:
		r.blit(frame, buf, sample)
	default:
		r.cells(frame, buf, sample, s)
	}
	return frame
}

// blit scales the sample onto the whole output and marks the centre.
func (r *Renderer) blit(frame *Frame, buf *PixelBuffer, sample image.Rectangle) {
	xdraw.BiLinear.Scale(frame.Image, r.view, buf.Image(), sample, xdraw.Src, nil)

	c := image.Pt(r.view.Dx()/2, r.view.Dy()/2)
	imaging.DrawCrosshair(frame.Image, c, 10, crosshairColor, outlineColor)
}

// cells draws one square per source pixel, optionally split into subpixels.
func (r *Renderer) cells(frame *Frame, buf *PixelBuffer, sample image.Rectangle, s float64) {
	cellW := float64(r.view.Dx()) / (2 * s)
	cellH := float64(r.view.Dy()) / (2 * s)
	frame.CellSize = cellW

	subpixel := frame.Strategy == StrategySubpixel
	frame.Grid = subpixel || frame.Level > GridMinLevel

	for j := 0; j < sample.Dy(); j++ {
		for i := 0; i < sample.Dx(); i++ {
			c, err := buf.RGBAt(sample.Min.X+i, sample.Min.Y+j)
			if err != nil {
				r.logger.Error("error getting pixel data", "x", sample.Min.X+i, "y", sample.Min.Y+j, "error", err)
				frame.SkippedReads++
				continue
			}

			cell := cellRect(i, j, cellW, cellH)
			if subpixel {
				drawSubpixels(frame.Image, cell, c)
			} else {
				imaging.FillRect(frame.Image, cell, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
			if frame.Grid {
				imaging.StrokeRect(frame.Image, cell, gridColor)
			}
		}
	}
}

// cellRect places cell (i, j) at floor(i*cell) with side ceil(cell).
func cellRect(i, j int, cellW, cellH float64) image.Rectangle {
	x0 := int(math.Floor(float64(i) * cellW))
	y0 := int(math.Floor(float64(j) * cellH))
	return image.Rect(x0, y0, x0+int(math.Ceil(cellW)), y0+int(math.Ceil(cellH)))
}

// drawSubpixels splits cell into three equal vertical bands carrying only
// the red, green and blue channel of c, separated by dark lines.
func drawSubpixels(dst *image.RGBA, cell image.Rectangle, c color.RGBA) {
	bands := [3]color.RGBA{
		{R: c.R, A: 255},
		{G: c.G, A: 255},
		{B: c.B, A: 255},
	}
	w := cell.Dx()
	for k, band := range bands {
		x0 := cell.Min.X + k*w/3
		x1 := cell.Min.X + (k+1)*w/3
		imaging.FillRect(dst, image.Rect(x0, cell.Min.Y, x1, cell.Max.Y), band)
		if k > 0 {
			imaging.VLine(dst, x0, cell.Min.Y, cell.Max.Y, separatorColor)
		}
	}
}
