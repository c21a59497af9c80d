package utils

import "strings"

// ComputeDistance computes the Levenshtein distance between two strings,
// counted in runes. It is case-insensitive.
func ComputeDistance(s1, s2 string) int {
	r1 := []rune(strings.ToLower(s1))
	r2 := []rune(strings.ToLower(s2))

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows are enough: row i only reads row i-1
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			best := prev[j] + 1                   // deletion
			if ins := curr[j-1] + 1; ins < best { // insertion
				best = ins
			}
			if sub := prev[j-1] + cost; sub < best { // substitution
				best = sub
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// WithinDistance reports whether s1 and s2 differ by at most max edits.
func WithinDistance(s1, s2 string, max int) bool {
	d := len([]rune(s1)) - len([]rune(s2))
	if d > max || -d > max {
		return false
	}
	return ComputeDistance(s1, s2) <= max
}
