package nominatim

import (
	"regexp"
	"strings"
)

var (
	leadingRangeRe = regexp.MustCompile(`^\s*(\d+)-\d+(\s+)`)
	anyRangeRe     = regexp.MustCompile(`\b(\d+)-\d+\b`)
	parensRe       = regexp.MustCompile(`\([^)]*\)`)
	zip5Re         = regexp.MustCompile(`\b(\d{5})\b`)
)

// Variants generates the ordered sequence of address rewrites to try against
// the geocoding service. Listing addresses frequently carry house-number
// ranges ("3413-3433 53rd Ave") or a building-name prefix the service cannot
// match verbatim; each rewrite targets one of those failure shapes. The
// original string comes first, duplicates and empties are removed, and order
// is otherwise preserved.
func Variants(address string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	add(address)

	// Collapse a leading house-number range to its first endpoint.
	add(leadingRangeRe.ReplaceAllString(address, "$1$2"))

	// Collapse any residual embedded ranges.
	add(anyRangeRe.ReplaceAllString(address, "$1"))

	// Drop everything before the first comma (often a building name).
	if idx := strings.Index(address, ","); idx >= 0 {
		add(address[idx+1:])
	}

	// Strip parenthetical content.
	add(parensRe.ReplaceAllString(address, ""))

	// Street plus zip only.
	if m := zip5Re.FindStringSubmatch(address); m != nil {
		street := address
		if idx := strings.Index(address, ","); idx >= 0 {
			street = address[:idx]
		}
		add(strings.TrimSpace(street) + ", " + m[1])
	}

	return out
}
