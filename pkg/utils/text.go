package utils

import "math"

// Truncate returns s truncated to maxLen characters, with "..." appended if
// truncated. If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Round2 rounds x to two decimal places for display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
