package ranking

import (
	"encoding/json"
	"testing"

	"leafdoctor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leafLabels = []string{"healthy", "multiple_diseases", "rust", "scab"}

func labelsOf(t *testing.T, got []models.Score) []string {
	t.Helper()
	out := make([]string, 0, len(got))
	for _, s := range got {
		out = append(out, s.Label)
	}
	return out
}

func TestTopK_OrdersDescending(t *testing.T) {
	probs := []float32{0.1, 0.7, 0.15, 0.05}

	got := TopK(probs, leafLabels, 3)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"multiple_diseases", "rust", "healthy"}, labelsOf(t, got))
	assert.InDelta(t, 0.7, got[0].Score, 1e-6)
	assert.InDelta(t, 0.15, got[1].Score, 1e-6)
	assert.InDelta(t, 0.1, got[2].Score, 1e-6)
}

func TestTopK_TiesKeepClassOrder(t *testing.T) {
	probs := []float32{0.25, 0.25, 0.25, 0.25}

	got := TopK(probs, leafLabels, 3)

	assert.Equal(t, []string{"healthy", "multiple_diseases", "rust"}, labelsOf(t, got))
}

func TestTopK_FewerClassesThanK(t *testing.T) {
	got := TopK([]float32{0.4, 0.6}, []string{"a", "b"}, 3)

	assert.Equal(t, []string{"b", "a"}, labelsOf(t, got))
}

func TestTopK_DoesNotMutateInput(t *testing.T) {
	probs := []float32{0.1, 0.7, 0.15, 0.05}
	_ = TopK(probs, leafLabels, 3)
	assert.Equal(t, []float32{0.1, 0.7, 0.15, 0.05}, probs)
}

func TestAll_KeepsClassOrder(t *testing.T) {
	got := All([]float32{0.1, 0.7, 0.15, 0.05}, leafLabels)

	assert.Equal(t, leafLabels, labelsOf(t, got))
}

func TestMultiLabel(t *testing.T) {
	cases := []struct {
		name      string
		probs     []float32
		threshold float64
		want      []string
	}{
		{"single above", []float32{0.1, 0.7, 0.15, 0.05}, 0.5, []string{"multiple_diseases"}},
		{"inclusive boundary", []float32{0.5, 0.2, 0.5, 0.1}, 0.5, []string{"healthy", "rust"}},
		{"none above", []float32{0.3, 0.3, 0.2, 0.2}, 0.5, []string{}},
		{"multiple in class order", []float32{0.9, 0.1, 0.8, 0.6}, 0.5, []string{"healthy", "rust", "scab"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MultiLabel(tc.probs, leafLabels, tc.threshold)
			assert.Equal(t, tc.want, labelsOf(t, got))
		})
	}
}

func TestMultiLabel_EmptyEncodesAsArray(t *testing.T) {
	res := Result([]float32{0.3, 0.3, 0.2, 0.2}, leafLabels)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"multi_label":[]`)
}

func TestLabelAt_FallsBackToPlaceholder(t *testing.T) {
	got := All([]float32{0.5, 0.5}, []string{"only"})

	assert.Equal(t, []string{"only", "class_1"}, labelsOf(t, got))
}
