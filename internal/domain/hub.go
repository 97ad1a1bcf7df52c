package domain

import "regexp"

// Represents an originating airport from which every route of a session departs.
// Code is the short identifier used to key the hub's route catalog.
type Hub struct {
	Code string
	Name string
}

var (
	hubPrefixPattern = regexp.MustCompile(`Hub (\w{3})`)
	hubCodePattern   = regexp.MustCompile(`(\w{3})`)
)

// ExtractHubCode pulls the 3-letter code out of a hub name such as
// "Hub CDG - Paris". Names without the "Hub " prefix fall back to their first
// 3-character word run; ok is false when nothing matches.
func ExtractHubCode(name string) (code string, ok bool) {
	if m := hubPrefixPattern.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	if m := hubCodePattern.FindStringSubmatch(name); m != nil {
		return m[1], true
	}
	return "", false
}
