package picture

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"golang.org/x/image/draw"
)

var ErrUnknownMode = errors.New("unknown channel mode")

// ChannelMode decides how an image is laid out as a PixelBuffer.
type ChannelMode int

const (
	// ModeAuto keeps grayscale images single channel, opaque images as RGB
	// and everything else as RGBA.
	ModeAuto ChannelMode = iota
	ModeGray
	ModeRGB
	ModeRGBA
)

var modeNames = []string{"auto", "gray", "rgb", "rgba"}

func (m ChannelMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("ChannelMode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMode(s string) (ChannelMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeAuto, nil
	}
	for i, name := range modeNames {
		if name == s {
			return ChannelMode(i), nil
		}
	}
	return ModeAuto, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m *ChannelMode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *ChannelMode) Type() string { return "mode" }

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

// Grayscale returns the luminance of img as a single channel image with the
// same bounds. Images that are already *image.Gray are returned as is.
func Grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	lum := effect.Grayscale(img)
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), lum, lum.Bounds().Min, draw.Src)
	return gray
}

func resolveMode(img image.Image, mode ChannelMode) ChannelMode {
	if mode != ModeAuto {
		return mode
	}
	switch {
	case isGray(img):
		return ModeGray
	case isOpaque(img):
		return ModeRGB
	default:
		return ModeRGBA
	}
}

// Shape is the shape ToBuffer would produce for img, without copying pixels.
func Shape(img image.Image, mode ChannelMode) []int {
	b := img.Bounds()
	switch resolveMode(img, mode) {
	case ModeGray:
		return []int{b.Dy(), b.Dx()}
	case ModeRGB:
		return []int{b.Dy(), b.Dx(), 3}
	default:
		return []int{b.Dy(), b.Dx(), 4}
	}
}

// ToBuffer lays img out as a PixelBuffer of shape (H, W) or (H, W, C).
func ToBuffer(img image.Image, mode ChannelMode) *convolve.PixelBuffer {
	mode = resolveMode(img, mode)

	b := img.Bounds()
	h, w := b.Dy(), b.Dx()

	if mode == ModeGray {
		gray := Grayscale(img)
		gb := gray.Bounds()
		buf := convolve.NewPixelBuffer(h, w)
		for y := 0; y < h; y++ {
			off := gray.PixOffset(gb.Min.X, gb.Min.Y+y)
			copy(buf.Pix[y*w:(y+1)*w], gray.Pix[off:off+w])
		}
		return buf
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	channels := 4
	if mode == ModeRGB {
		channels = 3
	}
	buf := convolve.NewPixelBuffer(h, w, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := nrgba.Pix[y*nrgba.Stride+x*4:]
			copy(buf.Pix[(y*w+x)*channels:], src[:channels])
		}
	}
	return buf
}

// FromBuffer builds an image from buf with its top-left pixel at origin.
// Single channel buffers become *image.Gray; three and four channel
// buffers become *image.NRGBA.
func FromBuffer(buf *convolve.PixelBuffer, origin image.Point) (image.Image, error) {
	if r := buf.Rank(); r != 2 && r != 3 {
		return nil, fmt.Errorf("cannot build image from shape %s", buf)
	}
	h, w, channels := buf.Height(), buf.Width(), buf.Channels()
	if len(buf.Pix) != h*w*channels {
		return nil, fmt.Errorf("buffer of shape %s holds %d samples", buf, len(buf.Pix))
	}
	rect := image.Rect(0, 0, w, h).Add(origin)

	switch channels {
	case 1:
		gray := image.NewGray(rect)
		copy(gray.Pix, buf.Pix)
		return gray, nil
	case 3, 4:
		nrgba := image.NewNRGBA(rect)
		for p := 0; p < h*w; p++ {
			dst := nrgba.Pix[p*4 : p*4+4]
			copy(dst, buf.Pix[p*channels:p*channels+channels])
			if channels == 3 {
				dst[3] = 0xff
			}
		}
		return nrgba, nil
	default:
		return nil, fmt.Errorf("cannot build image with %d channels", channels)
	}
}
