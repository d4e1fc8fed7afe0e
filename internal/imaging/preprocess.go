// Package imaging decodes uploaded images into normalized model input.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	// stdlib decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// extra decoders
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nfnt/resize"
)

// ErrDecode is returned when the input bytes are not a supported image.
var ErrDecode = errors.New("cannot decode image")

// DefaultInterpolation matches the nearest-neighbour default of common
// Keras-style image loaders.
const DefaultInterpolation = "nearest"

var interpolations = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseInterpolation maps a config name to a resize kernel. Empty means
// DefaultInterpolation.
func ParseInterpolation(name string) (resize.InterpolationFunction, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultInterpolation
	}
	fn, ok := interpolations[name]
	if !ok {
		return resize.NearestNeighbor, fmt.Errorf("unknown interpolation %q", name)
	}
	return fn, nil
}

// Preprocessor converts an image stream into a flat float32 tensor of Shape.
// It holds no mutable state and is safe for concurrent use.
type Preprocessor struct {
	shape  Shape
	interp resize.InterpolationFunction
}

func NewPreprocessor(shape Shape, interp resize.InterpolationFunction) *Preprocessor {
	return &Preprocessor{shape: shape, interp: interp}
}

// Shape returns the target geometry.
func (p *Preprocessor) Shape() Shape {
	return p.shape
}

// Preprocess decodes r, resizes to the target size, drops alpha and scales
// every channel from [0,255] to [0,1].
func (p *Preprocessor) Preprocess(r io.Reader) ([]float32, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p.FromImage(img), nil
}

// FromImage is Preprocess for an already decoded image.
func (p *Preprocessor) FromImage(img image.Image) []float32 {
	width, height := p.shape.Width, p.shape.Height
	resized := resize.Resize(uint(width), uint(height), img, p.interp)

	b := resized.Bounds()
	plane := width * height
	out := make([]float32, p.shape.Len())

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(resized.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			rgb := [channels]float32{
				float32(c.R) / 255.0,
				float32(c.G) / 255.0,
				float32(c.B) / 255.0,
			}
			pixel := y*width + x
			for ch, v := range rgb {
				if p.shape.Layout == LayoutNCHW {
					out[ch*plane+pixel] = v
				} else {
					out[pixel*channels+ch] = v
				}
			}
		}
	}
	return out
}
