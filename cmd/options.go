package cmd

import (
	"context"
	"fmt"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/convolve"
	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/rm-hull/image-convolution/internal/picture"
	"github.com/rm-hull/image-convolution/internal/picture/stage"
)

// FilterOptions is the filter configuration shared by every command.
type FilterOptions struct {
	Preset   kernel.Preset
	Padding  convolve.Padding
	Mode     picture.ChannelMode
	Workers  int
	PreBlur  float64
	MaxWidth int
}

// Stages builds the pipeline: optional downscale and pre-blur, then the
// convolution itself.
func (o *FilterOptions) Stages(ctx context.Context, preset kernel.Preset) []picture.PipelineStage {
	var stages []picture.PipelineStage
	if o.MaxWidth > 0 {
		stages = append(stages, &stage.ScaleStage{MaxWidth: o.MaxWidth})
	}
	if o.PreBlur > 0 {
		stages = append(stages, &stage.GaussianBlurStage{Sigma: o.PreBlur})
	}
	return append(stages, &stage.ConvolveStage{
		Kernel:  preset.Matrix(),
		Mode:    o.Mode,
		Engine:  &convolve.Engine{Padding: o.Padding, Workers: o.Workers},
		Context: ctx,
	})
}

// loadInput reads a picture from a local path or an http(s) URL.
func loadInput(input string) (*picture.Picture, error) {
	if !internal.IsRemote(input) {
		return picture.Load(input)
	}

	client := internal.NewImageClient("image-convolution/" + versioninfo.Short())
	body, err := client.Fetch(input)
	if err != nil {
		return nil, &picture.MissingInputError{Path: input, Err: err}
	}
	defer func() {
		_ = body.Close()
	}()

	p, err := picture.NewPictureFromReader(body)
	if err != nil {
		return nil, &picture.MissingInputError{Path: input, Err: fmt.Errorf("failed to decode: %w", err)}
	}
	return p, nil
}
