package utils

import (
	"strconv"
	"strings"
)

// StringToInt parses a query value, returning fallback when it is empty or
// not a number.
func StringToInt(s string, fallback int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return i
}
