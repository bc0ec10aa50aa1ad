package convolve

import (
	"fmt"
	"strconv"
	"strings"
)

// PixelBuffer is a grid of 8-bit samples with shape (H, W) for a single
// channel or (H, W, C) for multi-channel images. Samples are stored
// row-major with channels interleaved, so sample (i, j, c) lives at
// Pix[(i*W+j)*C+c].
type PixelBuffer struct {
	Shape []int
	Pix   []uint8
}

// NewPixelBuffer allocates a zeroed buffer with the given shape.
func NewPixelBuffer(shape ...int) *PixelBuffer {
	n := 1
	for _, d := range shape {
		if d < 0 {
			d = 0
		}
		n *= d
	}
	return &PixelBuffer{
		Shape: append([]int(nil), shape...),
		Pix:   make([]uint8, n),
	}
}

func (b *PixelBuffer) Rank() int { return len(b.Shape) }

func (b *PixelBuffer) Height() int {
	if len(b.Shape) < 1 {
		return 0
	}
	return b.Shape[0]
}

func (b *PixelBuffer) Width() int {
	if len(b.Shape) < 2 {
		return 0
	}
	return b.Shape[1]
}

// Channels is 1 for rank 2 buffers and the trailing dimension otherwise.
func (b *PixelBuffer) Channels() int {
	if len(b.Shape) == 3 {
		return b.Shape[2]
	}
	return 1
}

// At returns sample (i, j, c). It panics when the index is out of range.
func (b *PixelBuffer) At(i, j, c int) uint8 {
	return b.Pix[(i*b.Width()+j)*b.Channels()+c]
}

func (b *PixelBuffer) Set(i, j, c int, v uint8) {
	b.Pix[(i*b.Width()+j)*b.Channels()+c] = v
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{
		Shape: append([]int(nil), b.Shape...),
		Pix:   append([]uint8(nil), b.Pix...),
	}
}

// String renders the shape the way numpy prints it, e.g. (480, 640, 3).
func (b *PixelBuffer) String() string {
	return FormatShape(b.Shape)
}

func FormatShape(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(dims, ", ") + ")"
}

func (b *PixelBuffer) validate() error {
	if r := b.Rank(); r != 2 && r != 3 {
		return &UnsupportedShapeError{Shape: b.Shape, Reason: fmt.Sprintf("rank %d, expected 2 (grayscale) or 3 (multi-channel)", r)}
	}
	want := 1
	for _, d := range b.Shape {
		if d < 0 {
			return &UnsupportedShapeError{Shape: b.Shape, Reason: "negative dimension"}
		}
		want *= d
	}
	if b.Rank() == 3 && b.Shape[2] == 0 {
		return &UnsupportedShapeError{Shape: b.Shape, Reason: "no channels"}
	}
	if len(b.Pix) != want {
		return &UnsupportedShapeError{Shape: b.Shape, Reason: fmt.Sprintf("holds %d samples, shape needs %d", len(b.Pix), want)}
	}
	return nil
}
