package utils

import "strings"

// FuzzyMatch checks if source is a fuzzy match of target.
// Characters in source must appear in target in the same order.
// Case-insensitive.
func FuzzyMatch(source, target string) bool {
	sourceRunes := []rune(strings.ToLower(source))
	targetRunes := []rune(strings.ToLower(target))

	sourceIdx := 0
	for targetIdx := 0; sourceIdx < len(sourceRunes) && targetIdx < len(targetRunes); targetIdx++ {
		if sourceRunes[sourceIdx] == targetRunes[targetIdx] {
			sourceIdx++
		}
	}

	return sourceIdx == len(sourceRunes)
}

// Similar reports whether a and b look like two spellings of one name:
// within max edits of each other, or one an in-order subsequence of the
// other. Empty strings are never similar.
func Similar(a, b string, max int) bool {
	if a == "" || b == "" {
		return false
	}
	return WithinDistance(a, b, max) || FuzzyMatch(a, b) || FuzzyMatch(b, a)
}
