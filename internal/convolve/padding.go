package convolve

import (
	"fmt"
	"strings"
)

// Padding selects how samples outside the image are synthesised when the
// kernel window overhangs a border.
type Padding int

const (
	// PaddingZero surrounds the channel with zero-valued samples.
	PaddingZero Padding = iota
	// PaddingReplicate repeats the nearest edge sample.
	PaddingReplicate
	// PaddingReflect mirrors the image about the edge sample, excluding it.
	PaddingReflect
)

var paddingNames = map[Padding]string{
	PaddingZero:      "zero",
	PaddingReplicate: "replicate",
	PaddingReflect:   "reflect",
}

func (p Padding) String() string {
	if s, ok := paddingNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Padding(%d)", int(p))
}

// ParsePadding resolves a padding policy by name.
func ParsePadding(name string) (Padding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PaddingZero, nil
	}
	for p, s := range paddingNames {
		if s == name {
			return p, nil
		}
	}
	return PaddingZero, fmt.Errorf("%w: %q", ErrUnknownPadding, name)
}

// Set and Type let a Padding be bound directly to a command line flag.
func (p *Padding) Set(s string) error {
	v, err := ParsePadding(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Padding) Type() string { return "padding" }

// source maps coordinate x of a padded axis back onto an axis of length n.
// It returns false when the sample is synthetic zero.
func (p Padding) source(x, n int) (int, bool) {
	if x >= 0 && x < n {
		return x, true
	}
	switch p {
	case PaddingReplicate:
		if x < 0 {
			return 0, true
		}
		return n - 1, true
	case PaddingReflect:
		if n == 1 {
			return 0, true
		}
		for x < 0 || x >= n {
			if x < 0 {
				x = -x
			}
			if x >= n {
				x = 2*(n-1) - x
			}
		}
		return x, true
	default:
		return 0, false
	}
}

// pad builds the padded grid for channel c of img. The grid has
// (H+2*ph) rows and (W+2*pw) columns; the interior equals the channel.
func (p Padding) pad(img *PixelBuffer, c, ph, pw int) []float64 {
	h, w, ch := img.Height(), img.Width(), img.Channels()
	pwidth := w + 2*pw
	grid := make([]float64, (h+2*ph)*pwidth)
	if h == 0 || w == 0 {
		return grid
	}

	for y := -ph; y < h+ph; y++ {
		sy, okY := p.source(y, h)
		if !okY {
			continue
		}
		row := grid[(y+ph)*pwidth:]
		for x := -pw; x < w+pw; x++ {
			sx, okX := p.source(x, w)
			if !okX {
				continue
			}
			row[x+pw] = float64(img.Pix[(sy*w+sx)*ch+c])
		}
	}
	return grid
}
