// Package convolve implements direct, same-size 2D convolution of 8-bit
// images with small real-valued kernels.
package convolve

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Engine convolves pixel buffers. The zero value uses zero padding and one
// worker per available CPU.
type Engine struct {
	Padding Padding
	// Workers bounds the number of goroutines; values <= 0 mean GOMAXPROCS.
	Workers int
}

// minBandRows is the smallest number of output rows handed to one goroutine.
const minBandRows = 16

// snapTolerance is how close a sum must be to an integer to count as that
// integer before truncation.
const snapTolerance = 1e-9

// Convolve applies k to img with zero padding. The input is left untouched.
func Convolve(img *PixelBuffer, k mat.Matrix) (*PixelBuffer, error) {
	var e Engine
	return e.Convolve(context.Background(), img, k)
}

// Convolve computes, for every sample (i, j) of every channel, the sum of
// the elementwise product of k with the kernel-sized window centred on
// (i, j). Results are clamped to [0, 255] and truncated to uint8. The
// returned buffer has the same shape as img.
func (e *Engine) Convolve(ctx context.Context, img *PixelBuffer, k mat.Matrix) (*PixelBuffer, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	kh, kw := k.Dims()
	if kh < 1 || kw < 1 || kh%2 == 0 || kw%2 == 0 {
		return nil, &KernelShapeError{Rows: kh, Cols: kw}
	}

	weights := make([]float64, kh*kw)
	for r := 0; r < kh; r++ {
		for c := 0; c < kw; c++ {
			weights[r*kw+c] = k.At(r, c)
		}
	}

	h, w, channels := img.Height(), img.Width(), img.Channels()
	ph, pw := kh/2, kw/2
	out := NewPixelBuffer(img.Shape...)
	if h == 0 || w == 0 {
		return out, nil
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	band := max(minBandRows, (h+workers-1)/workers)

	padded := make([][]float64, channels)
	sums := make([][]float64, channels)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for c := range channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			padded[c] = e.Padding.pad(img, c, ph, pw)
			sums[c] = make([]float64, h*w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for c := range channels {
		for top := 0; top < h; top += band {
			bottom := min(top+band, h)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				correlate(sums[c], padded[c], weights, top, bottom, w, kh, kw)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for c, sum := range sums {
		for p, v := range sum {
			out.Pix[p*channels+c] = clamp(v)
		}
	}
	return out, nil
}

// correlate fills rows [top, bottom) of dst. The window for output (i, j)
// has its top-left corner at (i, j) in padded coordinates.
func correlate(dst, padded, weights []float64, top, bottom, w, kh, kw int) {
	pwidth := w + kw - 1
	for i := top; i < bottom; i++ {
		for j := 0; j < w; j++ {
			var sum float64
			for r := 0; r < kh; r++ {
				row := padded[(i+r)*pwidth+j : (i+r)*pwidth+j+kw]
				krow := weights[r*kw : (r+1)*kw]
				for c, v := range row {
					sum += v * krow[c]
				}
			}
			dst[i*w+j] = sum
		}
	}
}

// clamp saturates v to [0, 255] and truncates toward zero. NaN maps to 0.
// Sums within snapTolerance of an integer are rounded to it first, so nine
// weights of 1/9 over a flat region give back the original value.
func clamp(v float64) uint8 {
	if r := math.Round(v); math.Abs(v-r) < snapTolerance {
		v = r
	}
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
