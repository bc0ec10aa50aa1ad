package picture

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

// MaxFrameDelay is the longest per-frame delay, in seconds, that fits the
// millisecond numerator of an APNG frame.
const MaxFrameDelay = float64(math.MaxUint16) / 1000

// Animate encodes frames as a looping APNG, showing each for frameDelay
// seconds. Frames smaller than the first are drawn onto a canvas of the
// first frame's size.
func Animate(frames []image.Image, frameDelay float64) ([]byte, error) {
	if !(frameDelay >= 0 && frameDelay <= MaxFrameDelay) {
		return nil, fmt.Errorf("frame delay %gs outside [0, %g]", frameDelay, MaxFrameDelay)
	}
	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	var canvas image.Rectangle
	if len(frames) > 0 {
		canvas = image.Rect(0, 0, frames[0].Bounds().Dx(), frames[0].Bounds().Dy())
	}

	for i, img := range frames {
		frame := image.NewNRGBA(canvas)
		draw.Draw(frame, canvas, img, img.Bounds().Min, draw.Src)

		a.Frames[i] = apng.Frame{
			Image:            frame,
			DelayNumerator:   uint16(math.Round(frameDelay * 1000)),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
