// Package geo provides great-circle distance and radius filtering around a
// fixed reference point.
package geo

import (
	"math"
	"strings"

	"github.com/umn-housing/listings-cli/internal/model"
)

const earthRadiusKM = 6371

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKM computes the haversine great-circle distance between two points
// in kilometers. Symmetric, zero at identical points.
func DistanceKM(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Mode selects how records without resolved coordinates are treated.
type Mode string

const (
	// ModeStrict excludes records whose coordinates were never resolved.
	ModeStrict Mode = "strict"

	// ModeCityFallback keeps an unresolved record when its textual city is
	// on the accepted list; ambiguous or empty city text drops the record.
	ModeCityFallback Mode = "city_fallback"
)

// Filter decides whether a listing falls within the study radius of the
// reference point.
type Filter struct {
	Ref            Point
	RadiusKM       float64
	Mode           Mode
	AcceptedCities []string
}

// Keep reports whether the listing passes the radius filter. Records with a
// known distance are judged on it regardless of mode.
func (f *Filter) Keep(l *model.Listing) bool {
	if l.DistKM != nil {
		return *l.DistKM <= f.RadiusKM
	}
	if f.Mode == ModeCityFallback {
		return f.cityAccepted(l.City)
	}
	return false
}

func (f *Filter) cityAccepted(city string) bool {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return false
	}
	for _, c := range f.AcceptedCities {
		if city == strings.ToLower(strings.TrimSpace(c)) {
			return true
		}
	}
	return false
}
