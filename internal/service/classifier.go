package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"leafdoctor/internal/imaging"
	"leafdoctor/internal/inference"
	"leafdoctor/internal/models"
	"leafdoctor/internal/ranking"
)

// ErrInvalidUpload marks uploads that are not a decodable image.
var ErrInvalidUpload = errors.New("invalid upload")

// ClassifierService runs preprocess -> inference -> ranking for one image.
type ClassifierService struct {
	pre    *imaging.Preprocessor
	engine inference.Engine
	labels []string
}

func NewClassifierService(pre *imaging.Preprocessor, engine inference.Engine, labels []string) *ClassifierService {
	return &ClassifierService{pre: pre, engine: engine, labels: labels}
}

// Classify reads an image from r and returns its ranked scores.
func (s *ClassifierService) Classify(ctx context.Context, r io.Reader) (models.PredictionResult, error) {
	input, err := s.pre.Preprocess(r)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			return models.PredictionResult{}, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
		}
		return models.PredictionResult{}, err
	}

	probs, err := s.engine.Predict(ctx, input)
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("predict: %w", err)
	}
	return ranking.Result(probs, s.labels), nil
}

// Labels returns the resolved class names in model order.
func (s *ClassifierService) Labels() []string {
	return append([]string(nil), s.labels...)
}
