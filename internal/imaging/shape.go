package imaging

import "fmt"

// Layout is the channel ordering of the model input tensor.
type Layout int

const (
	// LayoutNHWC is batch, height, width, channels (Keras default).
	LayoutNHWC Layout = iota
	// LayoutNCHW is batch, channels, height, width.
	LayoutNCHW
)

func (l Layout) String() string {
	if l == LayoutNCHW {
		return "NCHW"
	}
	return "NHWC"
}

const (
	// DefaultSize is used for height or width when the model leaves it dynamic.
	DefaultSize = 224
	channels    = 3
)

// Shape is the concrete input geometry of the model.
type Shape struct {
	Height int
	Width  int
	Layout Layout
}

// ParseInputShape interprets a rank-4 model input shape. Dynamic dimensions
// (zero or negative) fall back to DefaultSize. The layout is NCHW only when
// dim 1 is 3 and dim 3 is not; everything else is read as NHWC.
func ParseInputShape(dims []int64) (Shape, error) {
	if len(dims) != 4 {
		return Shape{}, fmt.Errorf("expected rank-4 image input, got shape %v", dims)
	}
	s := Shape{Layout: LayoutNHWC}
	h, w := dims[1], dims[2]
	if dims[1] == channels && dims[3] != channels {
		s.Layout = LayoutNCHW
		h, w = dims[2], dims[3]
	}
	s.Height = orDefault(h)
	s.Width = orDefault(w)
	return s, nil
}

// Dims returns the concrete tensor shape with a batch of one.
func (s Shape) Dims() []int64 {
	if s.Layout == LayoutNCHW {
		return []int64{1, channels, int64(s.Height), int64(s.Width)}
	}
	return []int64{1, int64(s.Height), int64(s.Width), channels}
}

// Len is the number of float32 values in one input tensor.
func (s Shape) Len() int {
	return channels * s.Height * s.Width
}

func orDefault(d int64) int {
	if d <= 0 {
		return DefaultSize
	}
	return int(d)
}
