package utils

import "strings"

// SplitNonEmpty splits s on sep, trims whitespace and drops empty parts.
func SplitNonEmpty(s, sep string) []string {
	var result []string

	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}

	return result
}
