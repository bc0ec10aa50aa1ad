package cmd

import (
	"fmt"
	"io"

	"github.com/rm-hull/image-convolution/internal/kernel"
)

func Kernels(w io.Writer) {
	for _, p := range kernel.All() {
		m := p.Matrix()
		rows, cols := m.Dims()
		_, _ = fmt.Fprintf(w, "%s - %s (%dx%d, sum %.4g)\n%s\n\n", p, p.Title(), rows, cols, kernel.Sum(m), kernel.Format(m))
	}
}
