package kernel

import (
	"testing"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParse(t *testing.T) {
	for _, p := range All() {
		got, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := Parse("  Sharpen ")
	require.NoError(t, err)
	assert.Equal(t, Sharpen, got)

	_, err = Parse("gaussian")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), "box-blur")
}

func TestPreset_Set(t *testing.T) {
	p := Default
	require.NoError(t, p.Set("emboss"))
	assert.Equal(t, Emboss, p)

	assert.Error(t, p.Set("nope"))
	assert.Equal(t, Emboss, p)
	assert.Equal(t, "kernel", p.Type())
}

func TestPreset_Shapes(t *testing.T) {
	for _, p := range All() {
		r, c := p.Matrix().Dims()
		assert.Equal(t, 1, r%2, "%s rows", p)
		assert.Equal(t, 1, c%2, "%s cols", p)
		assert.NotEmpty(t, p.Title())
	}
	r, c := BoxBlur5x5.Matrix().Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 5, c)
}

func TestPreset_Sums(t *testing.T) {
	tests := map[Preset]float64{
		BoxBlur:    1,
		BoxBlur5x5: 1,
		EdgeDetect: 0,
		Sharpen:    1,
		Emboss:     1,
		Outline:    0,
	}
	for p, want := range tests {
		assert.InDelta(t, want, Sum(p.Matrix()), 1e-12, "%s", p)
	}
}

func TestPreset_MatrixIsACopy(t *testing.T) {
	m := Outline.Matrix()
	m.Set(1, 1, 0)
	assert.Equal(t, 8.0, Outline.Matrix().At(1, 1))
}

func TestPreset_Invalid(t *testing.T) {
	p := Preset(99)
	assert.Equal(t, "Preset(99)", p.String())
	assert.Equal(t, "Preset(99)", p.Title())
	assert.Panics(t, func() { p.Matrix() })
}

func TestBox(t *testing.T) {
	m := Box(3)
	assert.Equal(t, 1.0/9.0, m.At(0, 0))
	assert.Equal(t, 1.0/9.0, m.At(2, 1))
}

func TestFormat(t *testing.T) {
	s := Format(mat.NewDense(3, 3, []float64{0, -1, 0, -1, 5, -1, 0, -1, 0}))
	assert.Contains(t, s, "5")
	assert.Contains(t, s, "-1")
}

func TestBoxPresets_PreserveFlatRegions(t *testing.T) {
	for _, p := range []Preset{BoxBlur, BoxBlur5x5} {
		size, _ := p.Matrix().Dims()
		for v := 0; v < 256; v++ {
			img := convolve.NewPixelBuffer(size+2, size+2, 3)
			for i := range img.Pix {
				img.Pix[i] = uint8(v)
			}

			out, err := convolve.Convolve(img, p.Matrix())
			require.NoError(t, err)
			centre := (size + 2) / 2
			for c := 0; c < 3; c++ {
				if got := out.At(centre, centre, c); got != uint8(v) {
					t.Fatalf("%s: V=%d channel %d gave %d", p, v, c, got)
				}
			}
		}
	}
}
