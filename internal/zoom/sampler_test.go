package zoom

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalfExtent(t *testing.T) {
	assert.Equal(t, 40.0, HalfExtent(1))
	assert.Equal(t, 4.0, HalfExtent(10))
	assert.Equal(t, 2.0, HalfExtent(20))
	assert.Equal(t, 1.0, HalfExtent(40))
	assert.Equal(t, 40.0, HalfExtent(0), "levels below one behave as one")
	assert.Equal(t, 40.0, HalfExtent(-3))
}

func TestHalfExtent_Monotonic(t *testing.T) {
	prev := HalfExtent(MinLevel)
	for z := MinLevel + 1; z <= MaxLevel; z++ {
		cur := HalfExtent(z)
		assert.LessOrEqual(t, cur, prev, "level %d", z)
		prev = cur
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		level int
		want  Strategy
	}{
		{1, StrategyBlit},
		{5, StrategyBlit},
		{10, StrategyBlit},
		{11, StrategyUnified},
		{20, StrategyUnified},
		{21, StrategyUnified},
		{39, StrategyUnified},
		{40, StrategySubpixel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrategyFor(tt.level), "level %d", tt.level)
	}
}

func TestValidateLevel(t *testing.T) {
	assert.NoError(t, ValidateLevel(1))
	assert.NoError(t, ValidateLevel(40))
	assert.Error(t, ValidateLevel(0))
	assert.Error(t, ValidateLevel(41))
}

func TestSampleRect_WithinBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 300, 200)
	focuses := []image.Point{
		{0, 0}, {299, 0}, {0, 199}, {299, 199},
		{150, 100}, {-50, -50}, {1000, 1000}, {3, 197},
	}

	for level := MinLevel; level <= MaxLevel; level++ {
		for _, f := range focuses {
			r := SampleRect(f, level, bounds)
			assert.GreaterOrEqual(t, r.Min.X, 0, "level %d focus %v", level, f)
			assert.GreaterOrEqual(t, r.Min.Y, 0, "level %d focus %v", level, f)
			assert.LessOrEqual(t, r.Max.X, bounds.Dx(), "level %d focus %v", level, f)
			assert.LessOrEqual(t, r.Max.Y, bounds.Dy(), "level %d focus %v", level, f)
			assert.False(t, r.Empty(), "level %d focus %v", level, f)
		}
	}
}

func TestSampleRect_Centered(t *testing.T) {
	r := SampleRect(image.Pt(150, 100), 10, image.Rect(0, 0, 300, 200))
	assert.Equal(t, image.Rect(146, 96, 154, 104), r)
}

func TestSampleRect_SmallBuffer(t *testing.T) {
	r := SampleRect(image.Pt(2, 2), 1, image.Rect(0, 0, 5, 3))
	assert.Equal(t, image.Rect(0, 0, 5, 3), r)
}

func TestSampleRect_EmptyBuffer(t *testing.T) {
	assert.True(t, SampleRect(image.Pt(0, 0), 1, image.Rectangle{}).Empty())
}
