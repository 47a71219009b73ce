// Package model defines the canonical listing record every site extractor populates.
package model

import (
	"strconv"
	"strings"
	"time"
)

// PriceType categorizes how a rent figure was quoted.
type PriceType string

const (
	PriceTypeUnknown   PriceType = "unknown"
	PriceTypePerBed    PriceType = "per_bed"
	PriceTypePerUnit   PriceType = "per_unit"
	PriceTypeFromPrice PriceType = "from_price"
	PriceTypeRange     PriceType = "range"
	PriceTypeTotal     PriceType = "total"
)

// Listing represents one rentable unit at one building. A building may
// contribute multiple listings. Pointer fields are nil until the relevant
// enrichment pass has run; for amenity flags nil means "not evaluated",
// which is distinct from false ("evaluated, not found").
type Listing struct {
	ListingID string `json:"listing_id"`

	BuildingName string   `json:"building_name"`
	FullAddress  string   `json:"full_address"`
	Street       string   `json:"street"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
	DistKM       *float64 `json:"dist_km,omitempty"`

	UnitLabel       string    `json:"unit_label"`
	Beds            *float64  `json:"beds,omitempty"` // 0 encodes studio, nil encodes unknown
	Baths           *float64  `json:"baths,omitempty"`
	Sqft            *int      `json:"sqft,omitempty"`
	RentRaw         string    `json:"rent_raw"`
	RentMin         *float64  `json:"rent_min,omitempty"`
	RentMax         *float64  `json:"rent_max,omitempty"`
	PriceType       PriceType `json:"price_type"`
	IsPerBed        *bool     `json:"is_per_bed,omitempty"`
	IsSharedBedroom *bool     `json:"is_shared_bedroom,omitempty"`

	YearBuilt    *int   `json:"year_built,omitempty"`
	NumUnits     *int   `json:"num_units,omitempty"`
	BuildingType string `json:"building_type"`
	Stories      *int   `json:"stories,omitempty"`

	Amenities

	ScrapeDate time.Time `json:"scrape_date"`
	SourceURL  string    `json:"source_url"`
}

// Amenities holds the per-building boolean flags redistributed to every unit.
type Amenities struct {
	HasInUnitLaundry     *bool `json:"has_in_unit_laundry,omitempty"`
	HasOnSiteLaundry     *bool `json:"has_on_site_laundry,omitempty"`
	HasDishwasher        *bool `json:"has_dishwasher,omitempty"`
	HasAC                *bool `json:"has_ac,omitempty"`
	HasHeatIncluded      *bool `json:"has_heat_included,omitempty"`
	HasWaterIncluded     *bool `json:"has_water_included,omitempty"`
	HasInternetIncluded  *bool `json:"has_internet_included,omitempty"`
	IsFurnished          *bool `json:"is_furnished,omitempty"`
	HasGym               *bool `json:"has_gym,omitempty"`
	HasPool              *bool `json:"has_pool,omitempty"`
	HasRooftopOrClubroom *bool `json:"has_rooftop_or_clubroom,omitempty"`
	HasParkingAvailable  *bool `json:"has_parking_available,omitempty"`
	HasGarage            *bool `json:"has_garage,omitempty"`
	PetsAllowed          *bool `json:"pets_allowed,omitempty"`
	IsStudentBranded     *bool `json:"is_student_branded,omitempty"`
}

// NewListing constructs a record with identity and provenance populated and
// price type at its declared default. Field parsers enrich it in place.
func NewListing(id string, sourceURL string) *Listing {
	return &Listing{
		ListingID:  id,
		PriceType:  PriceTypeUnknown,
		ScrapeDate: time.Now().UTC(),
		SourceURL:  sourceURL,
	}
}

// NewListingID derives the stable dedup key for a unit: the trailing slug of
// the building URL plus a bedroom-count discriminator. Repeated scrapes of the
// same unit must produce the same id.
func NewListingID(sourceURL string, beds *float64) string {
	slug := strings.Trim(sourceURL, "/")
	if idx := strings.LastIndex(slug, "/"); idx >= 0 {
		slug = slug[idx+1:]
	}
	b := "0"
	if beds != nil {
		b = strconv.FormatFloat(*beds, 'f', -1, 64)
	}
	return slug + "-" + b + "bed"
}

// SetCoordinates records resolved coordinates together with the distance to
// the reference point. Lat, lon, and distance are never set independently.
func (l *Listing) SetCoordinates(lat, lon, distKM float64) {
	l.Lat = &lat
	l.Lon = &lon
	d := roundTo(distKM, 2)
	l.DistKM = &d
}

// ApplyAmenities copies an amenity evaluation onto the listing. The caller
// evaluates once per building against the full page text and redistributes
// the result to every unit of that building.
func (l *Listing) ApplyAmenities(a Amenities) {
	l.Amenities = a
}

// HasRent reports whether a rent figure was parsed. Units without one are
// never selectable by the sampler.
func (l *Listing) HasRent() bool {
	return l.RentMin != nil
}

// Located reports whether geocoding succeeded for this record.
func (l *Listing) Located() bool {
	return l.Lat != nil && l.Lon != nil
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	if v >= 0 {
		return float64(int64(v*p+0.5)) / p
	}
	return float64(int64(v*p-0.5)) / p
}

// Ptr helpers keep enrichment call sites terse.

func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func Bool(v bool) *bool        { return &v }
