// Package geometry holds the plain value types of a tiled convolution:
// feature-map sizes, positioned rectangles and convolution descriptors,
// plus the pure functions mapping rectangles between layers.
package geometry

import (
	"fmt"

	"github.com/pkg/errors"
)

// Rect is a width/height pair. It is used both as a feature-map size and
// as a tile size.
type Rect struct {
	W int
	H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d", r.W, r.H)
}

// Positive reports whether both sides are at least 1.
func (r Rect) Positive() bool {
	return r.W > 0 && r.H > 0
}

// Pos is a rectangle with an origin. X/Y may be negative when a receptive
// field extends past the top-left border of a feature map.
type Pos struct {
	X, Y int
	W, H int
}

// Conv2d describes a 2D convolution.
// Stride and Kernel must be positive, Pad may be zero.
type Conv2d struct {
	Stride Rect
	Pad    Rect
	Kernel Rect
}

// OutputShape returns the output feature-map size for an input of size in:
//
//	out = 1 + (in - kernel + 2*pad) / stride
//
// per axis. The result is not checked; see Validate.
func (c Conv2d) OutputShape(in Rect) Rect {
	return Rect{
		W: 1 + (in.W-c.Kernel.W+2*c.Pad.W)/c.Stride.W,
		H: 1 + (in.H-c.Kernel.H+2*c.Pad.H)/c.Stride.H,
	}
}

// Validate checks that the convolution is well formed and that OutputShape
// is at least 1x1 for an input of size in. A kernel wider than the padded
// input is accepted as long as the truncated division still yields 1.
func (c Conv2d) Validate(in Rect) error {
	if !c.Stride.Positive() {
		return errors.Errorf("stride %s must be positive", c.Stride)
	}
	if !c.Kernel.Positive() {
		return errors.Errorf("kernel %s must be positive", c.Kernel)
	}
	if c.Pad.W < 0 || c.Pad.H < 0 {
		return errors.Errorf("padding %s must not be negative", c.Pad)
	}
	if out := c.OutputShape(in); !out.Positive() {
		return errors.Errorf("kernel %s with padding %s on input %s gives output %s", c.Kernel, c.Pad, in, out)
	}
	return nil
}

// OutputTileToInputRect inverts the convolution for a tile of the output
// grid: it returns the input rectangle that out depends on.
//
// The kernel is treated as centred on each output pixel, shifted by
// (kernel-1)/2 with integer truncation. For even kernels this leans the
// window right/down by one pixel. The result is not clipped.
func OutputTileToInputRect(out Pos, c Conv2d) Pos {
	x1, y1 := out.X, out.Y
	x2, y2 := out.X+out.W-1, out.Y+out.H-1
	return Pos{
		X: x1*c.Stride.W - (c.Kernel.W-1)/2,
		Y: y1*c.Stride.H - (c.Kernel.H-1)/2,
		W: (x2-x1)*c.Stride.W + c.Kernel.W,
		H: (y2-y1)*c.Stride.H + c.Kernel.H,
	}
}
