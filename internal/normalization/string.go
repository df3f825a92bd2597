package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// ParsePlaca keeps the plate uppercase: "abc-123" and "ABC-123" are the same
// vehicle in the store and the uppercase form is what the shop prints.
func ParsePlaca(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
