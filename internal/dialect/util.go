package dialect

import (
	"strings"
)

// GeneratePlaceholders creates a comma-separated list of count placeholders,
// numbered from offset using placeholderFunc.
func GeneratePlaceholders(count, offset int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(offset + i)
	}
	return strings.Join(placeholders, ", ")
}

// QuoteAll quotes every name with quote and joins them with commas.
func QuoteAll(names []string, quote func(string) string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
