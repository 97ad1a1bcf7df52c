package domain

import (
	"errors"
	"testing"
)

func TestParseDistance(t *testing.T) {
	valid := map[string]int{
		"1,234 km":   1234,
		"980 km":     980,
		" 12,345 KM": 12345,
		"750km":      750,
		"42":         42,
		"0 km":       0,
	}
	for raw, want := range valid {
		got, err := ParseDistance(raw)
		if err != nil {
			t.Fatalf("ParseDistance(%q): unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseDistance(%q) = %d, want %d", raw, got, want)
		}
	}

	for _, raw := range []string{"", "km", "12.5 km", "-40 km", "far", "1 234 miles"} {
		_, err := ParseDistance(raw)
		if !errors.Is(err, ErrMalformedDistance) {
			t.Fatalf("ParseDistance(%q): err = %v, want ErrMalformedDistance", raw, err)
		}
	}
}
