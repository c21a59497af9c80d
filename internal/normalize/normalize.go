// Package normalize defines identifier equivalence for model comparison.
//
// Every name that enters a model (entity names, relationship kinds,
// attribute names, CSV terms) goes through Identifier, on both sides of a
// comparison. Two identifiers are equivalent iff their keys are equal.
package normalize

import (
	"strings"
	"unicode"
)

// Identifier canonicalizes a raw identifier into a comparison key.
//
// The raw text is trimmed, every rune other than a letter, number,
// underscore or whitespace is dropped, the result is lowercased, and all
// whitespace and underscores are removed. "Order_Item", "orderitem" and
// "Order Item" all map to "orderitem". Empty or whitespace-only input
// yields "".
func Identifier(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		if r == '_' || unicode.IsSpace(r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SimpleName returns the last dot-separated segment of a qualified name.
// "com.foo.Order" becomes "Order"; unqualified names are returned as is.
func SimpleName(raw string) string {
	if i := strings.LastIndexByte(raw, '.'); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// Key is shorthand for Identifier(SimpleName(raw)), the key used for
// entity names and relationship endpoints.
func Key(raw string) string {
	return Identifier(SimpleName(raw))
}
