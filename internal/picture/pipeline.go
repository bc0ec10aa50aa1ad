package picture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Picture struct {
	Img    image.Image
	Bounds image.Rectangle
	// Format is the codec name the image was decoded with, e.g. "png".
	Format string
}

type PipelineStage interface {
	Process(p *Picture) error
}

// MissingInputError means the source image could not be located or decoded.
type MissingInputError struct {
	Path string
	Err  error
}

func (e *MissingInputError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("image %q not found", e.Path)
	}
	return fmt.Sprintf("failed to read image %q: %v", e.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error { return e.Err }

func NewPictureFromReader(r io.Reader) (*Picture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	// The apng package claims the PNG signature ahead of image/png.
	if format == "apng" {
		format = "png"
	}
	return &Picture{
		Img:    img,
		Bounds: img.Bounds(),
		Format: format,
	}, nil
}

// Load opens and decodes the image at path.
func Load(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	p, err := NewPictureFromReader(f)
	if err != nil {
		return nil, &MissingInputError{Path: path, Err: err}
	}
	return p, nil
}

// EncoderFor returns the encoder for a format name or file extension.
func EncoderFor(format string) (imgio.Encoder, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "png":
		return imgio.PNGEncoder(), nil
	case "jpg", "jpeg":
		return imgio.JPEGEncoder(95), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	case "tif", "tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("no encoder for format %q", format)
	}
}

func (p *Picture) Write(w io.Writer, format string) error {
	enc, err := EncoderFor(format)
	if err != nil {
		return err
	}
	return enc(w, p.Img)
}

// Save encodes the picture to path, choosing the codec from the extension.
func (p *Picture) Save(path string) error {
	enc, err := EncoderFor(filepath.Ext(path))
	if err != nil {
		return err
	}
	return imgio.Save(path, p.Img, enc)
}

func (p *Picture) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}
