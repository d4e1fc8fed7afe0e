// Package ranking turns a raw probability vector into the views returned by
// the prediction endpoint.
package ranking

import (
	"slices"

	"leafdoctor/internal/models"
)

const (
	// DefaultTopK is the number of entries in the "predictions" view.
	DefaultTopK = 3
	// DefaultThreshold is the multi-label cutoff (inclusive).
	DefaultThreshold = 0.5
)

// TopK returns the k highest scores in descending order. Equal scores keep
// their original class order.
func TopK(probs []float32, labels []string, k int) []models.Score {
	if k < 0 {
		k = 0
	}
	scores := All(probs, labels)
	slices.SortStableFunc(scores, func(a, b models.Score) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if k < len(scores) {
		scores = scores[:k]
	}
	return scores
}

// All returns every (label, score) pair in class order.
func All(probs []float32, labels []string) []models.Score {
	out := make([]models.Score, 0, len(probs))
	for i, p := range probs {
		out = append(out, models.Score{Label: labelAt(labels, i), Score: float64(p)})
	}
	return out
}

// MultiLabel returns the pairs whose score is >= threshold, in class order.
func MultiLabel(probs []float32, labels []string, threshold float64) []models.Score {
	out := make([]models.Score, 0)
	for i, p := range probs {
		if float64(p) >= threshold {
			out = append(out, models.Score{Label: labelAt(labels, i), Score: float64(p)})
		}
	}
	return out
}

// Result builds the full response body with the default k and threshold.
func Result(probs []float32, labels []string) models.PredictionResult {
	return models.PredictionResult{
		Predictions: TopK(probs, labels, DefaultTopK),
		All:         All(probs, labels),
		MultiLabel:  MultiLabel(probs, labels, DefaultThreshold),
	}
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return PlaceholderLabel(i)
}
