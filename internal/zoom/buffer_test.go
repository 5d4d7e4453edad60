package zoom

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelBuffer_NotReady(t *testing.T) {
	var nilBuf *PixelBuffer
	assert.False(t, nilBuf.Ready())

	buf := NewPixelBuffer(nil)
	assert.False(t, buf.Ready())

	_, err := buf.RGBAt(0, 0)
	assert.ErrorIs(t, err, ErrBufferNotReady)
	assert.True(t, buf.Bounds().Empty())
}

func TestPixelBuffer_RGBAt(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.Set(2, 1, color.NRGBA{10, 20, 30, 255})

	buf := NewPixelBuffer(src)
	require.True(t, buf.Ready())
	assert.Equal(t, image.Rect(0, 0, 4, 3), buf.Bounds())

	c, err := buf.RGBAt(2, 1)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, c)
}

func TestPixelBuffer_ClampsCoordinates(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})
	buf := NewPixelBuffer(src)

	c, err := buf.RGBAt(-10, -10)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c)

	c, err = buf.RGBAt(99, 99)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, c)
}

func TestPixelBuffer_RebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.SetRGBA(10, 20, color.RGBA{1, 2, 3, 255})

	buf := NewPixelBuffer(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), buf.Bounds())

	c, err := buf.RGBAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, c)
}
