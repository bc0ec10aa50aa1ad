package cmd

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/rm-hull/image-convolution/internal/kernel"
	"github.com/rm-hull/image-convolution/internal/picture"
)

// Showcase runs every preset over one image, saving each result alongside
// an animated PNG that cycles from the original through all the filters.
func Showcase(ctx context.Context, w io.Writer, input, outputDir string, frameDelay float64, opts FilterOptions) (string, error) {
	if !(frameDelay >= 0 && frameDelay <= picture.MaxFrameDelay) {
		return "", fmt.Errorf("--delay must be between 0 and %g seconds, got %g", picture.MaxFrameDelay, frameDelay)
	}
	src, err := loadInput(input)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	frames := []image.Image{src.Img}
	for _, preset := range kernel.All() {
		img := &picture.Picture{Img: src.Img, Bounds: src.Bounds, Format: src.Format}
		if err := img.Pipeline(opts.Stages(ctx, preset)...); err != nil {
			return "", fmt.Errorf("failed to apply %s filter: %w", preset, err)
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("filtered_image_%s.png", preset))
		if err := img.Save(filename); err != nil {
			return "", fmt.Errorf("failed to save %s: %w", filename, err)
		}
		_, _ = fmt.Fprintf(w, "%-28s -> %s\n", preset.Title(), filename)
		frames = append(frames, img.Img)
	}

	apngBytes, err := picture.Animate(frames, frameDelay)
	if err != nil {
		return "", fmt.Errorf("failed to build animation: %w", err)
	}

	animation := filepath.Join(outputDir, "showcase.png")
	if err := os.WriteFile(animation, apngBytes, 0644); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(w, "Animation saved as %s\n", animation)
	return animation, nil
}
