package drag

import (
	"encoding/json"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// offsetGeometry displays a 600x400 image at half size, 100px from the
// viewport's left and 80px from its top, inside a container at (90, 70).
func offsetGeometry() Geometry {
	return Geometry{
		Image:     Rect{Left: 100, Top: 80, Width: 300, Height: 200},
		Container: Point{X: 90, Y: 70},
		Natural:   image.Pt(600, 400),
	}
}

func loadedController(g Geometry) *Controller {
	c := NewController(quietLogger(), false)
	c.SetGeometry(g)
	c.SetLoaded(true)
	return c
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())

	text, err := Dragging.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dragging", string(text))
}

func TestPress_IgnoredUntilLoaded(t *testing.T) {
	c := NewController(quietLogger(), false)
	c.SetGeometry(offsetGeometry())
	before := c.Area()

	assert.False(t, c.Press(TargetImage, Point{X: 150, Y: 150}))
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, before, c.Area())

	assert.False(t, c.Move(Point{X: 160, Y: 160}))
	assert.Equal(t, before, c.Area())
}

func TestPressRelease_PositionsAtPressPoint(t *testing.T) {
	c := loadedController(offsetGeometry())

	require.True(t, c.Press(TargetImage, Point{X: 150, Y: 130}))
	assert.Equal(t, Dragging, c.State())

	c.Release()
	assert.Equal(t, Idle, c.State())

	// Press point minus container origin, minus half the area.
	assert.Equal(t, Area{Left: 150 - 90 - AreaSize/2, Top: 130 - 70 - AreaSize/2, Size: AreaSize}, c.Area())
}

func TestPress_OutsideImageIgnored(t *testing.T) {
	c := loadedController(offsetGeometry())

	assert.False(t, c.Press(TargetImage, Point{X: 10, Y: 10}))
	assert.Equal(t, Idle, c.State())
}

func TestPress_Handle(t *testing.T) {
	c := loadedController(offsetGeometry())
	c.CenterOn(150, 100)
	area := c.Area()

	// Centre of the handle in viewport coordinates.
	p := Point{X: area.Left + 90 + AreaSize/2, Y: area.Top + 70 + AreaSize/2}
	assert.False(t, c.Press(TargetHandle, p), "grabbing the handle does not move it")
	assert.Equal(t, Dragging, c.State())
	assert.Equal(t, area, c.Area())
}

func TestPress_HandleMissed(t *testing.T) {
	c := loadedController(offsetGeometry())
	c.CenterOn(150, 100)

	assert.False(t, c.Press(TargetHandle, Point{X: 101, Y: 81}))
	assert.Equal(t, Idle, c.State())
}

func TestMove_OnlyWhileDragging(t *testing.T) {
	c := loadedController(offsetGeometry())
	c.CenterOn(150, 100)
	before := c.Area()

	assert.False(t, c.Move(Point{X: 200, Y: 200}))
	assert.Equal(t, before, c.Area())

	require.True(t, c.Press(TargetImage, Point{X: 120, Y: 100}))
	assert.True(t, c.Move(Point{X: 200, Y: 200}))
	assert.Equal(t, 200-90-AreaSize/2, c.Area().Left)
	assert.Equal(t, 200-70-AreaSize/2, c.Area().Top)
}

func TestMove_OutsideImageIgnored(t *testing.T) {
	c := loadedController(offsetGeometry())
	require.True(t, c.Press(TargetImage, Point{X: 120, Y: 100}))
	before := c.Area()

	assert.False(t, c.Move(Point{X: 500, Y: 100}))
	assert.Equal(t, before, c.Area())
	assert.Equal(t, Dragging, c.State(), "leaving the image does not end the drag")
}

func TestRelease_AlwaysIdle(t *testing.T) {
	c := loadedController(offsetGeometry())

	c.Release()
	assert.Equal(t, Idle, c.State())

	require.True(t, c.Press(TargetImage, Point{X: 120, Y: 100}))
	c.Move(Point{X: 5000, Y: -5000})
	c.Release()
	assert.Equal(t, Idle, c.State())
}

func TestSetLoadedFalse_EndsDrag(t *testing.T) {
	c := loadedController(offsetGeometry())
	require.True(t, c.Press(TargetImage, Point{X: 120, Y: 100}))

	c.SetLoaded(false)
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Loaded())
}

func TestReload_EndsDrag(t *testing.T) {
	c := loadedController(offsetGeometry())
	require.True(t, c.Press(TargetImage, Point{X: 120, Y: 100}))

	c.SetGeometry(offsetGeometry())
	c.SetLoaded(true)
	c.CenterOn(150, 100)
	area := c.Area()

	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Move(Point{X: 110, Y: 90}), "move without a press on the new image")
	assert.Equal(t, area, c.Area())
}

func TestGeometryJSON(t *testing.T) {
	data, err := json.Marshal(offsetGeometry())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"image": {"left": 100, "top": 80, "width": 300, "height": 200},
		"container": {"x": 90, "y": 70},
		"natural": {"width": 600, "height": 400}
	}`, string(data))
}

func TestFocus_ScalesToNaturalPixels(t *testing.T) {
	c := loadedController(offsetGeometry())
	require.True(t, c.Press(TargetImage, Point{X: 175, Y: 130}))

	// Image-relative (75, 50) at half display scale.
	assert.Equal(t, image.Pt(150, 100), c.Focus())
}

func TestFocus_NaturalGeometry(t *testing.T) {
	c := loadedController(NaturalGeometry(image.Pt(300, 200)))
	c.CenterOn(150, 100)

	assert.Equal(t, Area{Left: 125, Top: 75, Size: AreaSize}, c.Area())
	assert.Equal(t, image.Pt(150, 100), c.Focus())
}

func TestCenterOn_ClampsToImage(t *testing.T) {
	c := loadedController(NaturalGeometry(image.Pt(300, 200)))

	c.CenterOn(0, 0)
	assert.Equal(t, Area{Left: 0, Top: 0, Size: AreaSize}, c.Area())

	c.CenterOn(300, 200)
	assert.Equal(t, Area{Left: 250, Top: 150, Size: AreaSize}, c.Area())
}

func TestHover(t *testing.T) {
	still := loadedController(offsetGeometry())
	before := still.Area()
	assert.False(t, still.Hover(Point{X: 200, Y: 150}))
	assert.Equal(t, before, still.Area())

	follow := NewController(quietLogger(), true)
	follow.SetGeometry(offsetGeometry())
	follow.SetLoaded(true)
	assert.True(t, follow.Hover(Point{X: 200, Y: 150}))
	assert.Equal(t, Idle, follow.State())
	assert.Equal(t, image.Pt(200, 140), follow.Focus())
}
