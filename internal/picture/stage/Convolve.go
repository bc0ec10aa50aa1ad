package stage

import (
	"context"
	"fmt"

	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/picture"
	"gonum.org/v1/gonum/mat"
)

type ConvolveStage struct {
	Kernel mat.Matrix
	Mode   picture.ChannelMode
	// Engine defaults to zero padding across all CPUs when nil.
	Engine *convolve.Engine
	// Context defaults to context.Background when nil.
	Context context.Context
}

// Process runs the convolution engine over every channel of the image.
func (s *ConvolveStage) Process(p *picture.Picture) error {
	engine := s.Engine
	if engine == nil {
		engine = &convolve.Engine{}
	}
	ctx := s.Context
	if ctx == nil {
		ctx = context.Background()
	}

	in := picture.ToBuffer(p.Img, s.Mode)
	out, err := engine.Convolve(ctx, in, s.Kernel)
	if err != nil {
		return fmt.Errorf("failed to convolve image of shape %s: %w", in, err)
	}

	img, err := picture.FromBuffer(out, p.Bounds.Min)
	if err != nil {
		return err
	}
	p.Img = img
	return nil
}
