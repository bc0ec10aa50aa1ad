package internal

import (
	"fmt"
	"io"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/kernel"
	"gonum.org/v1/gonum/mat"
)

// ShapeReport prints an image shape, e.g. "original: shape (480, 640, 3)".
func ShapeReport(w io.Writer, label string, shape []int) {
	_, _ = fmt.Fprintf(w, "%s: shape %s\n", label, convolve.FormatShape(shape))
}

func KernelReport(w io.Writer, p kernel.Preset, m mat.Matrix) {
	rows, cols := m.Dims()
	_, _ = fmt.Fprintf(w, "Applying filter: %s (%s, %dx%d, sum %.4g)\n", p.Title(), p, rows, cols, kernel.Sum(m))
	_, _ = fmt.Fprintf(w, "Kernel:\n%s\n", kernel.Format(m))
}
