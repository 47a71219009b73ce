package pipeline

import (
	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/extract"
	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/internal/model"
	"github.com/umn-housing/listings-cli/internal/parse"
	"github.com/umn-housing/listings-cli/internal/sampler"
)

// buildListings turns one raw building into its sampled listing records:
// field parsing, then amenity application, then per-building sampling.
func (p *Pipeline) buildListings(b *extract.Building, sum *Summary) []*model.Listing {
	addr := parse.ParseAddress(b.Address)
	amenities := parse.ExtractAmenities(b.PageText, p.params.Keywords)

	var units []*model.Listing
	for _, raw := range b.Units {
		sum.UnitsParsed++

		rentRaw := parse.ExtractRentRaw(raw.Text)
		if rentRaw == "" {
			// Rows without a dollar figure ("Call for Rent") carry no
			// usable pricing and are never selectable downstream.
			continue
		}

		beds := parse.ParseBeds(raw.Text)
		price := parse.ParsePrice(rentRaw, b.PageText, p.params.Keywords)

		l := model.NewListing(model.NewListingID(b.SourceURL, beds), b.SourceURL)
		l.BuildingName = b.Name
		l.FullAddress = b.Address
		l.Street = addr.Street
		l.City = addr.City
		l.State = addr.State
		l.Zip = addr.Zip
		l.UnitLabel = raw.Label
		l.Beds = beds
		l.Baths = parse.ParseBaths(raw.Text)
		l.Sqft = parse.ParseSqft(raw.Text)
		l.RentRaw = rentRaw
		l.RentMin = price.RentMin
		l.RentMax = price.RentMax
		l.PriceType = price.PriceType
		l.IsPerBed = price.IsPerBed
		l.IsSharedBedroom = price.IsSharedBedroom
		l.BuildingType = b.BuildingType
		l.YearBuilt = b.YearBuilt
		l.NumUnits = b.NumUnits
		l.Stories = b.Stories
		l.ApplyAmenities(amenities)

		// Coordinates the source page itself exposed take precedence over
		// geocoding; distance is computed in the same step.
		if b.Lat != nil && b.Lon != nil {
			pt := geo.Point{Lat: *b.Lat, Lon: *b.Lon}
			l.SetCoordinates(*b.Lat, *b.Lon, geo.DistanceKM(pt, p.params.Filter.Ref))
		}

		units = append(units, l)
	}

	sampled := sampler.Sample(units, p.params.MaxPerBuilding)
	if len(units) > 0 && len(sampled) == 0 {
		zap.L().Debug("pipeline: no sampleable units for building",
			zap.String("building", b.Name))
	}
	return sampled
}
