package parse

import (
	"strings"

	"github.com/umn-housing/listings-cli/internal/model"
)

// MatchAny reports whether any keyword appears as a case-insensitive
// substring of blob. Absence of a keyword is not proof of absence of the
// amenity; callers encode that distinction with nil vs false.
func MatchAny(blob string, keywords []string) bool {
	lower := strings.ToLower(blob)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ExtractAmenities evaluates every amenity flag against a building's full
// page text. Every flag in the result is non-nil: this pass is the point at
// which "not evaluated" becomes "evaluated, true/false".
func ExtractAmenities(pageText string, kw *Keywords) model.Amenities {
	blob := strings.ToLower(pageText)
	flag := func(key string) *bool {
		return model.Bool(MatchAny(blob, kw.Amenities[key]))
	}
	return model.Amenities{
		HasInUnitLaundry:     flag("has_in_unit_laundry"),
		HasOnSiteLaundry:     flag("has_on_site_laundry"),
		HasDishwasher:        flag("has_dishwasher"),
		HasAC:                flag("has_ac"),
		HasHeatIncluded:      flag("has_heat_included"),
		HasWaterIncluded:     flag("has_water_included"),
		HasInternetIncluded:  flag("has_internet_included"),
		IsFurnished:          flag("is_furnished"),
		HasGym:               flag("has_gym"),
		HasPool:              flag("has_pool"),
		HasRooftopOrClubroom: flag("has_rooftop_or_clubroom"),
		HasParkingAvailable:  flag("has_parking_available"),
		HasGarage:            flag("has_garage"),
		PetsAllowed:          flag("pets_allowed"),
		IsStudentBranded:     model.Bool(MatchAny(blob, kw.StudentKeywords)),
	}
}
