package types

import (
	"cmp"
	"slices"
)

// Set is an unordered collection of distinct comparable values.
// The zero value is not usable; create sets with NewSet.
type Set[T comparable] map[T]struct{}

// NewSet returns a set holding the given items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts v. Adding an existing value is a no-op.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Has reports whether v is in s.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of values in s. It is safe on a nil set.
func (s Set[T]) Len() int {
	return len(s)
}

// Intersect returns the values present in both s and other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	out := make(Set[T])
	for v := range s {
		if other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Minus returns the values of s that are not in other.
func (s Set[T]) Minus(other Set[T]) Set[T] {
	out := make(Set[T])
	for v := range s {
		if !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Values returns the set's values in unspecified order.
func (s Set[T]) Values() []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// SortedStrings renders every value with format and returns the results in
// ascending order.
func SortedStrings[T comparable](s Set[T], format func(T) string) []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, format(v))
	}
	slices.SortFunc(out, cmp.Compare[string])
	return out
}
