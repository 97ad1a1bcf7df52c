package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedDistance = errors.New("malformed distance")

// ParseDistance normalizes a catalog distance such as "1,234 km" to an integer.
// Thousands separators and a trailing "km" unit are accepted; anything else
// (decimals, negative values, other text) is rejected.
func ParseDistance(raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSpace(strings.TrimSuffix(s, "km"))
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return 0, fmt.Errorf("parse distance %q: %w", raw, ErrMalformedDistance)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse distance %q: %w", raw, ErrMalformedDistance)
	}
	if n < 0 {
		return 0, fmt.Errorf("parse distance %q: negative: %w", raw, ErrMalformedDistance)
	}

	return n, nil
}
