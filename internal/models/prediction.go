package models

// Score is a single (label, probability) pair.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PredictionResult is the request-scoped output of one classification.
type PredictionResult struct {
	Predictions []Score `json:"predictions"` // top-k, descending
	All         []Score `json:"all"`         // every class, model order
	MultiLabel  []Score `json:"multi_label"` // score >= threshold, model order
}
