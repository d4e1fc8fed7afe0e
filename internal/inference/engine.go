// Package inference wraps the pretrained classification model.
//
// The model is an opaque collaborator: callers hand it a preprocessed input
// tensor and receive one probability per class. Architecture, weights and
// numeric precision are the runtime's business.
package inference

import (
	"context"
	"errors"

	"leafdoctor/internal/imaging"
)

// ErrInputSize is returned when the input tensor does not match the model.
var ErrInputSize = errors.New("input tensor size mismatch")

// Engine is a loaded, read-only classification model.
type Engine interface {
	// InputShape is the geometry the model expects for a single image.
	InputShape() imaging.Shape
	// NumClasses is the length of every Predict result.
	NumClasses() int
	// Predict runs one forward pass over a batch of one.
	Predict(ctx context.Context, input []float32) ([]float32, error)
	// Close releases runtime resources.
	Close() error
}
