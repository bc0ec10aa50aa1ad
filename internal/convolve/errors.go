package convolve

import (
	"errors"
	"fmt"
)

var ErrUnknownPadding = errors.New("unknown padding policy")

// UnsupportedShapeError reports an image whose shape the engine cannot
// convolve: anything other than rank 2 or 3, or a sample slice that does
// not match the declared shape.
type UnsupportedShapeError struct {
	Shape  []int
	Reason string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("unsupported image shape %v: %s", e.Shape, e.Reason)
}

// KernelShapeError reports a kernel without a single center cell.
type KernelShapeError struct {
	Rows, Cols int
}

func (e *KernelShapeError) Error() string {
	return fmt.Sprintf("invalid kernel shape %dx%d: dimensions must be odd and at least 1", e.Rows, e.Cols)
}
