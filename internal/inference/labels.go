package inference

import (
	"encoding/json"
	"fmt"
	"strings"

	"leafdoctor/internal/ranking"
)

// PlantPathologyLabels is the fallback label set for 4-class models.
var PlantPathologyLabels = []string{"healthy", "multiple_diseases", "rust", "scab"}

// ParseClassNames reads a CLASS_NAMES value: a JSON array, or failing that a
// comma-separated list with surrounding spaces trimmed. Empty input yields
// nil, meaning "not configured".
func ParseClassNames(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		names := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				names = append(names, s)
				continue
			}
			names = append(names, fmt.Sprint(it))
		}
		return names
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

// ResolveLabels returns exactly numClasses labels. Configured names win;
// they are padded with placeholders or truncated to fit. Without names a
// 4-class model gets PlantPathologyLabels and anything else placeholders.
func ResolveLabels(configured []string, numClasses int) []string {
	if configured == nil && numClasses == len(PlantPathologyLabels) {
		return append([]string(nil), PlantPathologyLabels...)
	}
	labels := make([]string, numClasses)
	for i := range labels {
		if i < len(configured) {
			labels[i] = configured[i]
		} else {
			labels[i] = ranking.PlaceholderLabel(i)
		}
	}
	return labels
}
