package stage

import (
	"github.com/rm-hull/image-convolution/internal/picture"
)

type GreyscaleStage struct{}

// Process converts the image to single channel luminance. Alpha is discarded.
func (s *GreyscaleStage) Process(p *picture.Picture) error {
	p.Img = picture.Grayscale(p.Img)
	p.Bounds = p.Img.Bounds()
	return nil
}
