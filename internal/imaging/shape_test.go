package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputShape(t *testing.T) {
	cases := []struct {
		name string
		dims []int64
		want Shape
	}{
		{"keras nhwc", []int64{-1, 256, 192, 3}, Shape{Height: 256, Width: 192, Layout: LayoutNHWC}},
		{"dynamic spatial", []int64{-1, -1, -1, 3}, Shape{Height: 224, Width: 224, Layout: LayoutNHWC}},
		{"zero spatial", []int64{1, 0, 0, 3}, Shape{Height: 224, Width: 224, Layout: LayoutNHWC}},
		{"torch nchw", []int64{1, 3, 128, 64}, Shape{Height: 128, Width: 64, Layout: LayoutNCHW}},
		{"three by three nhwc", []int64{1, 3, 3, 3}, Shape{Height: 3, Width: 3, Layout: LayoutNHWC}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInputShape(tc.dims)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseInputShape_RejectsWrongRank(t *testing.T) {
	_, err := ParseInputShape([]int64{1, 784})
	assert.Error(t, err)
}

func TestShape_Dims(t *testing.T) {
	assert.Equal(t, []int64{1, 224, 224, 3}, Shape{Height: 224, Width: 224}.Dims())
	assert.Equal(t, []int64{1, 3, 32, 16}, Shape{Height: 32, Width: 16, Layout: LayoutNCHW}.Dims())
	assert.Equal(t, 3*32*16, Shape{Height: 32, Width: 16}.Len())
}
