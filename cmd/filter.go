package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rm-hull/image-convolution/internal"
	"github.com/rm-hull/image-convolution/internal/picture"
)

// Filter applies the configured kernel to a single image and writes
// filtered_image_<kernel>.png into outputDir.
func Filter(ctx context.Context, w io.Writer, input, outputDir string, saveOriginal bool, opts FilterOptions) (string, error) {
	img, err := loadInput(input)
	if err != nil {
		return "", err
	}
	internal.ShapeReport(w, "Original image loaded", picture.Shape(img.Img, opts.Mode))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if saveOriginal {
		original := filepath.Join(outputDir, "original_image.png")
		if err := img.Save(original); err != nil {
			return "", fmt.Errorf("failed to save original image: %w", err)
		}
		_, _ = fmt.Fprintf(w, "Original image saved as %s\n", original)
	}

	internal.KernelReport(w, opts.Preset, opts.Preset.Matrix())
	if err := img.Pipeline(opts.Stages(ctx, opts.Preset)...); err != nil {
		return "", fmt.Errorf("failed to apply %s filter: %w", opts.Preset, err)
	}
	internal.ShapeReport(w, "Filtered image", picture.Shape(img.Img, picture.ModeAuto))

	filename := filepath.Join(outputDir, fmt.Sprintf("filtered_image_%s.png", opts.Preset))
	if err := img.Save(filename); err != nil {
		return "", fmt.Errorf("failed to save filtered image: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Filtered image saved as %s\n", filename)
	return filename, nil
}
