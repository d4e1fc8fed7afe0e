package ranking

import "strconv"

// PlaceholderLabel is the positional name used when no label is known.
func PlaceholderLabel(i int) string {
	return "class_" + strconv.Itoa(i)
}
