package domain

import (
	"slices"
	"strings"
)

// NormalizeDestination returns the canonical form of a destination code.
func NormalizeDestination(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DestinationSet is a set of normalized destination codes.
type DestinationSet map[string]struct{}

func NewDestinationSet(codes ...string) DestinationSet {
	s := make(DestinationSet, len(codes))
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add inserts the normalized code. Empty codes are ignored.
func (s DestinationSet) Add(code string) {
	c := NormalizeDestination(code)
	if c == "" {
		return
	}
	s[c] = struct{}{}
}

func (s DestinationSet) Contains(code string) bool {
	_, ok := s[NormalizeDestination(code)]
	return ok
}

// Sorted returns the codes in ascending order.
func (s DestinationSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
