package stage

import (
	"image"

	"github.com/rm-hull/image-convolution/internal/picture"
	"golang.org/x/image/draw"
)

type ScaleStage struct {
	MaxWidth int
}

// Process shrinks images wider than MaxWidth with Catmull-Rom resampling,
// keeping the aspect ratio.
func (s *ScaleStage) Process(p *picture.Picture) error {
	w, h := p.Bounds.Dx(), p.Bounds.Dy()
	if s.MaxWidth <= 0 || w <= s.MaxWidth {
		return nil
	}

	nh := max(1, h*s.MaxWidth/w)
	scaled := image.NewNRGBA(image.Rect(0, 0, s.MaxWidth, nh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), p.Img, p.Bounds, draw.Src, nil)
	p.Img = scaled
	p.Bounds = scaled.Bounds()
	return nil
}
