package picture

import (
	"bytes"
	"image"
	"math"
	"testing"

	"github.com/kettek/apng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimate(t *testing.T) {
	frames := []image.Image{
		checkerboard(4, 4),
		image.NewGray(image.Rect(0, 0, 4, 4)),
		checkerboard(2, 2),
	}

	data, err := Animate(frames, 0.5)
	require.NoError(t, err)

	a, err := apng.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, a.Frames, 3)
	for _, f := range a.Frames {
		assert.Equal(t, uint16(500), f.DelayNumerator)
		assert.Equal(t, uint16(1000), f.DelayDenominator)
	}
	assert.Equal(t, 4, a.Frames[0].Image.Bounds().Dx())
}

func TestAnimate_DecodesAsPNG(t *testing.T) {
	data, err := Animate([]image.Image{checkerboard(2, 2), checkerboard(2, 2)}, 1)
	require.NoError(t, err)

	p, err := NewPictureFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", p.Format)
	assert.Equal(t, image.Rect(0, 0, 2, 2), p.Bounds)
}

func TestAnimate_FrameDelayRange(t *testing.T) {
	frames := []image.Image{checkerboard(1, 1)}

	for _, delay := range []float64{-1, 65.536, 120, math.NaN()} {
		_, err := Animate(frames, delay)
		assert.Error(t, err, "delay %v", delay)
	}

	data, err := Animate(frames, MaxFrameDelay)
	require.NoError(t, err)
	a, err := apng.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), a.Frames[0].DelayNumerator)
}
