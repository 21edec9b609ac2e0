package parse

import (
	"strconv"
	"strings"
)

// SplitName splits a free-form customer name into first and last name
// tokens. The first whitespace-delimited token becomes the first name and
// the remainder the last name; a single token yields an empty last name.
// A blank name falls back to the "Unknown Customer" placeholder.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "Unknown", "Customer"
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// ParseWeight parses a weight field in kilograms. Blank or malformed input
// coerces to the default instead of failing the intake.
func ParseWeight(value string, def float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	w, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return w
}
