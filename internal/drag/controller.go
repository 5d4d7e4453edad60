// Package drag positions the zoom area over the displayed sample image in
// response to pointer events.
//
// The controller is a two-state machine (Idle, Dragging). Pointer coordinates
// arrive in viewport space, the way a browser reports clientX/clientY; the
// zoom area is stored relative to its container; and the sampled focus point
// is reported in the image's natural pixel space.
package drag

import (
	"encoding/json"
	"image"
	"log/slog"
	"math"
)

// AreaSize is the fixed side of the zoom area overlay.
const AreaSize = 50.0

// State is the drag state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Target identifies what a press landed on.
type Target int

const (
	// TargetImage is a press on the displayed image itself.
	TargetImage Target = iota
	// TargetHandle is a press on the zoom area overlay.
	TargetHandle
)

// Point is a position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies within r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Geometry describes where the sample image is displayed.
type Geometry struct {
	// Image is the displayed image rectangle in viewport coordinates.
	Image Rect `json:"image"`

	// Container is the viewport position of the zoom area's positioning
	// parent; the area's Left/Top are relative to it.
	Container Point `json:"container"`

	// Natural is the image's intrinsic size in pixels.
	Natural image.Point `json:"natural"`
}

// MarshalJSON writes the natural size as width/height.
func (g Geometry) MarshalJSON() ([]byte, error) {
	type size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	return json.Marshal(struct {
		Image     Rect  `json:"image"`
		Container Point `json:"container"`
		Natural   size  `json:"natural"`
	}{g.Image, g.Container, size{g.Natural.X, g.Natural.Y}})
}

// NaturalGeometry displays an image at its intrinsic size at the viewport
// origin, with the container aligned to the image.
func NaturalGeometry(size image.Point) Geometry {
	return Geometry{
		Image:   Rect{Width: float64(size.X), Height: float64(size.Y)},
		Natural: size,
	}
}

// Area is the zoom area overlay, positioned relative to its container.
type Area struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
	Size float64 `json:"size"`
}

// Controller tracks the drag state and the zoom area for one zoom widget.
type Controller struct {
	logger *slog.Logger

	geom   Geometry
	area   Area
	state  State
	loaded bool

	// hoverFollows lets plain pointer movement reposition the area.
	hoverFollows bool
}

// NewController returns an idle controller with no image loaded.
func NewController(logger *slog.Logger, hoverFollows bool) *Controller {
	return &Controller{
		logger:       logger,
		area:         Area{Size: AreaSize},
		hoverFollows: hoverFollows,
	}
}

// State returns the current drag state.
func (c *Controller) State() State { return c.state }

// Area returns the current zoom area.
func (c *Controller) Area() Area { return c.area }

// Geometry returns the current display geometry.
func (c *Controller) Geometry() Geometry { return c.geom }

// Loaded reports whether pointer input is currently accepted.
func (c *Controller) Loaded() bool { return c.loaded }

// SetGeometry replaces the display geometry. The zoom area keeps its
// container-relative position.
func (c *Controller) SetGeometry(g Geometry) {
	c.geom = g
}

// SetLoaded marks the image as loaded or not. Either way any drag in
// progress ends: only a press on the current image starts one.
func (c *Controller) SetLoaded(loaded bool) {
	c.loaded = loaded
	c.state = Idle
}

// CenterOn positions the area centred on a point given relative to the
// displayed image, clamped so the area stays over the image. It is used to
// place the area when a new image finishes loading.
func (c *Controller) CenterOn(x, y float64) {
	img := c.geom.Image
	x = math.Max(0, math.Min(img.Width-c.area.Size, x-c.area.Size/2))
	y = math.Max(0, math.Min(img.Height-c.area.Size, y-c.area.Size/2))

	c.area.Left = x + img.Left - c.geom.Container.X
	c.area.Top = y + img.Top - c.geom.Container.Y
}

// Press handles a pointer press. A press on the handle starts a drag in
// place; a press on the image also moves the area to the press point. It
// reports whether the zoom view needs to be redrawn.
func (c *Controller) Press(target Target, p Point) bool {
	if !c.loaded {
		c.logger.Debug("image not loaded yet, ignoring press")
		return false
	}

	switch target {
	case TargetHandle:
		if !c.handleRect().Contains(p) {
			c.logger.Debug("press outside zoom area handle", "x", p.X, "y", p.Y)
			return false
		}
		c.state = Dragging
		return false
	case TargetImage:
		if !c.geom.Image.Contains(p) {
			c.logger.Debug("press outside image", "x", p.X, "y", p.Y)
			return false
		}
		c.state = Dragging
		c.moveTo(p)
		return true
	default:
		return false
	}
}

// Move handles pointer movement. While dragging, movement within the
// displayed image repositions the area; anything else is ignored. It reports
// whether the zoom view needs to be redrawn.
func (c *Controller) Move(p Point) bool {
	if !c.loaded || c.state != Dragging {
		return false
	}
	if !c.geom.Image.Contains(p) {
		return false
	}
	c.moveTo(p)
	return true
}

// Hover handles pointer movement without a button held. It only has an
// effect when the controller was created with hover following enabled.
func (c *Controller) Hover(p Point) bool {
	if !c.hoverFollows || !c.loaded || !c.geom.Image.Contains(p) {
		return false
	}
	c.moveTo(p)
	return true
}

// Release ends any drag. It is valid in every state.
func (c *Controller) Release() {
	c.state = Idle
}

// Focus returns the centre of the zoom area in natural image pixels.
func (c *Controller) Focus() image.Point {
	img := c.geom.Image

	// Area centre, container-relative to viewport to image-relative.
	cx := c.area.Left + c.area.Size/2 + c.geom.Container.X - img.Left
	cy := c.area.Top + c.area.Size/2 + c.geom.Container.Y - img.Top

	scaleX, scaleY := 1.0, 1.0
	if img.Width > 0 {
		scaleX = float64(c.geom.Natural.X) / img.Width
	}
	if img.Height > 0 {
		scaleY = float64(c.geom.Natural.Y) / img.Height
	}

	return image.Pt(int(math.Floor(cx*scaleX)), int(math.Floor(cy*scaleY)))
}

// moveTo centres the area on a viewport point.
func (c *Controller) moveTo(p Point) {
	img := c.geom.Image

	// Viewport to image-relative.
	ix := p.X - img.Left
	iy := p.Y - img.Top

	// Image-relative to container-relative.
	cx := ix + img.Left - c.geom.Container.X
	cy := iy + img.Top - c.geom.Container.Y

	c.area.Left = cx - c.area.Size/2
	c.area.Top = cy - c.area.Size/2
}

// handleRect is the zoom area in viewport coordinates.
func (c *Controller) handleRect() Rect {
	return Rect{
		Left:   c.area.Left + c.geom.Container.X,
		Top:    c.area.Top + c.geom.Container.Y,
		Width:  c.area.Size,
		Height: c.area.Size,
	}
}
