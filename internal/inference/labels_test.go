package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClassNames(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"unset", "", nil},
		{"json array", `["healthy","rust"]`, []string{"healthy", "rust"}},
		{"json empty array", `[]`, []string{}},
		{"json non-strings", `[1, "b"]`, []string{"1", "b"}},
		{"csv trimmed", " healthy , rust,scab ", []string{"healthy", "rust", "scab"}},
		{"json scalar falls back to csv", `"a,b"`, []string{`"a`, `b"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseClassNames(tc.raw))
		})
	}
}

func TestResolveLabels(t *testing.T) {
	cases := []struct {
		name       string
		configured []string
		classes    int
		want       []string
	}{
		{"four class fallback", nil, 4, []string{"healthy", "multiple_diseases", "rust", "scab"}},
		{"placeholders", nil, 3, []string{"class_0", "class_1", "class_2"}},
		{"configured wins over fallback", []string{"a", "b", "c", "d"}, 4, []string{"a", "b", "c", "d"}},
		{"configured padded", []string{"a"}, 3, []string{"a", "class_1", "class_2"}},
		{"configured truncated", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
		{"configured empty", []string{}, 4, []string{"class_0", "class_1", "class_2", "class_3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveLabels(tc.configured, tc.classes))
		})
	}
}

func TestResolveLabels_FallbackIsACopy(t *testing.T) {
	got := ResolveLabels(nil, 4)
	got[0] = "mutated"
	assert.Equal(t, "healthy", PlantPathologyLabels[0])
}
