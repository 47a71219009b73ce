package parse

import (
	"regexp"
	"strings"
)

// AddressParts is a decomposed street address. Unmatched parts are "".
type AddressParts struct {
	Street string
	City   string
	State  string
	Zip    string
}

var (
	zipRe   = regexp.MustCompile(`\b(\d{5})\b`)
	stateRe = regexp.MustCompile(`\b([A-Z]{2})\b`)
)

// ParseAddress splits a free-text address on commas into street, city, and a
// trailing segment probed for a two-letter state code. The 5-digit zip is
// taken from anywhere in the input. Never fails.
func ParseAddress(text string) AddressParts {
	var parts AddressParts
	text = strings.TrimSpace(text)
	if text == "" {
		return parts
	}

	if m := zipRe.FindStringSubmatch(text); m != nil {
		parts.Zip = m[1]
	}

	segments := strings.Split(text, ",")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) >= 1 {
		parts.Street = segments[0]
	}
	if len(segments) >= 2 {
		parts.City = segments[1]
	}
	if len(segments) >= 3 {
		if m := stateRe.FindStringSubmatch(segments[2]); m != nil {
			parts.State = m[1]
		}
	}
	return parts
}
