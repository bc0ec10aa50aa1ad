package picture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStage struct {
	name  string
	calls *[]string
	err   error
}

func (s *recordingStage) Process(p *Picture) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
			}
		}
	}
	return img
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p, err := Load(filepath.Join(t.TempDir(), "imagem_exemplo.png"))
		assert.Nil(t, p)

		var missing *MissingInputError
		require.ErrorAs(t, err, &missing)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("undecodable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.png")
		require.NoError(t, (&Picture{Img: checkerboard(1, 1)}).Save(path))
		// Overwrite with garbage after proving the path is writable.
		require.NoError(t, writeFile(path, "not an image"))

		_, err := Load(path)
		var missing *MissingInputError
		require.ErrorAs(t, err, &missing)
		assert.False(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("round trip", func(t *testing.T) {
		src := checkerboard(4, 3)
		path := filepath.Join(t.TempDir(), "out.png")
		require.NoError(t, (&Picture{Img: src, Bounds: src.Bounds()}).Save(path))

		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "png", p.Format)
		assert.Equal(t, src.Bounds(), p.Bounds)
		assert.Equal(t, ToBuffer(src, ModeRGB), ToBuffer(p.Img, ModeRGB))
	})
}

func TestEncoderFor(t *testing.T) {
	for _, format := range []string{"png", ".PNG", "jpg", "jpeg", "bmp", ".tif", "tiff"} {
		enc, err := EncoderFor(format)
		require.NoError(t, err, format)

		var buf bytes.Buffer
		require.NoError(t, enc(&buf, checkerboard(2, 2)), format)
		assert.NotZero(t, buf.Len(), format)
	}

	_, err := EncoderFor(".xcf")
	assert.Error(t, err)
}

func TestPicture_WriteDecodes(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "bmp", "tiff"} {
		var buf bytes.Buffer
		require.NoError(t, (&Picture{Img: checkerboard(3, 3)}).Write(&buf, format))

		p, err := NewPictureFromReader(&buf)
		require.NoError(t, err, format)
		assert.Equal(t, format, p.Format)
		assert.Equal(t, image.Rect(0, 0, 3, 3), p.Bounds)
	}
}

func TestNewPictureFromReader_Invalid(t *testing.T) {
	_, err := NewPictureFromReader(strings.NewReader("GIF89a but not really"))
	assert.Error(t, err)
}

func TestPicture_Pipeline(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	p := &Picture{Img: checkerboard(1, 1)}

	err := p.Pipeline(
		&recordingStage{name: "a", calls: &calls},
		&recordingStage{name: "b", calls: &calls, err: boom},
		&recordingStage{name: "c", calls: &calls},
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, calls)
}
