// Package mixer turns three RGB slider values into a swatch colour and a grid
// of single-channel cells that shows how a display pixel is composed from red,
// green and blue subpixels.
package mixer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/screens-mcp/internal/imaging"
)

const (
	// GridSide is the number of cells per grid row and column.
	GridSide = 10

	// GridCells is the total number of cells in the grid.
	GridCells = GridSide * GridSide

	// CellOpacity is the opacity applied to every grid cell when displayed.
	CellOpacity = 0.9
)

var gridColor = color.RGBA{A: 255}

// Channel is one of the three colour channels.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ChannelOf returns the channel shown by grid cell i.
func ChannelOf(i int) Channel {
	return Channel(i % 3)
}

// RGB is a slider triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Isolate returns c with every channel except ch set to zero.
func (c RGB) Isolate(ch Channel) RGB {
	switch ch {
	case Red:
		return RGB{R: c.R}
	case Green:
		return RGB{G: c.G}
	default:
		return RGB{B: c.B}
	}
}

// CSS formats c as "rgb(r,g,b)".
func (c RGB) CSS() string {
	return imaging.CSSRGB(c.R, c.G, c.B)
}

// RGBA converts c to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// FromInts validates three slider readings.
func FromInts(r, g, b int) (RGB, error) {
	for _, v := range []struct {
		name  string
		value int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if v.value < 0 || v.value > 255 {
			return RGB{}, fmt.Errorf("%s value %d outside 0-255", v.name, v.value)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Cell is one grid cell.
type Cell struct {
	Index   int     `json:"index"`
	Channel Channel `json:"channel"`
	Color   string  `json:"color"`
	Value   RGB     `json:"value"`
}

// Result is the full mixer output for one slider position.
type Result struct {
	Input   RGB                 `json:"input"`
	Swatch  string              `json:"swatch"`
	Color   imaging.ColorResult `json:"color"`
	Cells   []Cell              `json:"cells"`
	Opacity float64             `json:"opacity"`
}

// Mix computes the swatch and the subpixel grid for c.
func Mix(c RGB) Result {
	cells := make([]Cell, GridCells)
	for i := range cells {
		ch := ChannelOf(i)
		v := c.Isolate(ch)
		cells[i] = Cell{Index: i, Channel: ch, Color: v.CSS(), Value: v}
	}

	return Result{
		Input:   c,
		Swatch:  c.CSS(),
		Color:   imaging.DescribeColor(c.RGBA()),
		Cells:   cells,
		Opacity: CellOpacity,
	}
}

// Shade returns c as displayed at CellOpacity over the black grid background.
func (c RGB) Shade() RGB {
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * CellOpacity)) }
	return RGB{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

// Render draws the swatch as a strip three cells tall above the grid. Cells
// are shaded at CellOpacity and separated by one-pixel black grid lines.
func Render(res Result, cellSize int) *image.RGBA {
	if cellSize < 2 {
		cellSize = 2
	}
	width := GridSide * cellSize
	swatchHeight := 3 * cellSize
	img := image.NewRGBA(image.Rect(0, 0, width, swatchHeight+GridSide*cellSize))

	imaging.FillRect(img, img.Bounds(), gridColor)
	imaging.FillRect(img, image.Rect(0, 0, width, swatchHeight-1), res.Input.RGBA())

	grid := img.SubImage(image.Rect(0, swatchHeight, width, img.Rect.Max.Y)).(*image.RGBA)
	for _, cell := range res.Cells {
		x0 := (cell.Index % GridSide) * cellSize
		y0 := swatchHeight + (cell.Index/GridSide)*cellSize
		imaging.FillRect(grid, image.Rect(x0, y0, x0+cellSize, y0+cellSize), cell.Value.Shade().RGBA())
	}
	imaging.DrawGridLines(grid, cellSize, gridColor)
	return img
}
