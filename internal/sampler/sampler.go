// Package sampler bounds the number of units reported per building while
// preserving bedroom-count diversity.
package sampler

import (
	"sort"

	"github.com/umn-housing/listings-cli/internal/model"
)

// DefaultMaxPerBuilding is the representative-unit bound used in the study.
const DefaultMaxPerBuilding = 2

// Sample selects at most max representative units from one building's parsed
// floorplans. The best-known-sqft 1-bed and 2-bed units are preferred; any
// remaining slots fill from the rest ordered by (has-sqft, beds, sqft)
// ascending. Units without a parsed rent are never selectable.
func Sample(units []*model.Listing, max int) []*model.Listing {
	if len(units) == 0 || max <= 0 {
		return nil
	}

	byBeds := make(map[float64][]*model.Listing)
	for _, u := range units {
		if u.Beds != nil && u.HasRent() {
			byBeds[*u.Beds] = append(byBeds[*u.Beds], u)
		}
	}

	var selected []*model.Listing
	for _, beds := range []float64{1.0, 2.0} {
		if group, ok := byBeds[beds]; ok && len(selected) < max {
			selected = append(selected, largestSqft(group))
		}
	}

	if len(selected) < max {
		chosen := make(map[*model.Listing]bool, len(selected))
		for _, u := range selected {
			chosen[u] = true
		}

		var remaining []*model.Listing
		for _, u := range units {
			if !chosen[u] && u.HasRent() {
				remaining = append(remaining, u)
			}
		}
		sort.SliceStable(remaining, func(i, j int) bool {
			return lessBySqftBeds(remaining[i], remaining[j])
		})
		for _, u := range remaining {
			selected = append(selected, u)
			if len(selected) >= max {
				break
			}
		}
	}

	if len(selected) > max {
		selected = selected[:max]
	}
	return selected
}

// largestSqft picks the unit with the largest known square footage. Unknown
// sqft sorts below any known value; it is not treated as zero. Ties keep the
// earliest unit.
func largestSqft(group []*model.Listing) *model.Listing {
	best := group[0]
	for _, u := range group[1:] {
		if sqftGreater(u, best) {
			best = u
		}
	}
	return best
}

func sqftGreater(a, b *model.Listing) bool {
	if (a.Sqft != nil) != (b.Sqft != nil) {
		return a.Sqft != nil
	}
	if a.Sqft == nil {
		return false
	}
	return *a.Sqft > *b.Sqft
}

func lessBySqftBeds(a, b *model.Listing) bool {
	if (a.Sqft != nil) != (b.Sqft != nil) {
		return b.Sqft != nil // unknown sqft sorts first
	}
	aBeds, bBeds := 0.0, 0.0
	if a.Beds != nil {
		aBeds = *a.Beds
	}
	if b.Beds != nil {
		bBeds = *b.Beds
	}
	if aBeds != bBeds {
		return aBeds < bBeds
	}
	aSqft, bSqft := 0, 0
	if a.Sqft != nil {
		aSqft = *a.Sqft
	}
	if b.Sqft != nil {
		bSqft = *b.Sqft
	}
	return aSqft < bSqft
}
