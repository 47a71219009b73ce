package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/internal/model"
)

// geocodeAll resolves coordinates for every listing that still lacks them.
// Listings are grouped by address so each distinct address hits the external
// service once; distinct addresses may resolve concurrently, with the
// client's shared limiter preserving the minimum delay between calls.
// Cancellation stops further lookups but never discards what resolved.
func (p *Pipeline) geocodeAll(ctx context.Context, listings []*model.Listing, sum *Summary, log *zap.Logger) {
	byAddress := make(map[string][]*model.Listing)
	for _, l := range listings {
		if l.Located() {
			continue
		}
		if l.FullAddress == "" {
			log.Warn("pipeline: empty address, cannot geocode",
				zap.String("listing_id", l.ListingID))
			sum.GeocodeFailed++
			continue
		}
		byAddress[l.FullAddress] = append(byAddress[l.FullAddress], l)
	}
	if len(byAddress) == 0 {
		return
	}
	log.Info("pipeline: geocoding addresses", zap.Int("unique_addresses", len(byAddress)))

	var mu sync.Mutex
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.params.GeocodeConcurrency)

	for address, group := range byAddress {
		if ctx.Err() != nil {
			mu.Lock()
			sum.GeocodeFailed += len(group)
			mu.Unlock()
			continue
		}
		eg.Go(func() error {
			res, err := p.params.Geocoder.Geocode(gCtx, address)

			mu.Lock()
			defer mu.Unlock()
			if err != nil || !res.Matched {
				if err != nil {
					log.Warn("pipeline: geocode error", zap.String("address", address), zap.Error(err))
				} else {
					log.Warn("pipeline: address unresolved", zap.String("address", address))
				}
				sum.GeocodeFailed += len(group)
				return nil // unresolved never fails the session
			}

			dist := geo.DistanceKM(geo.Point{Lat: res.Lat, Lon: res.Lon}, p.params.Filter.Ref)
			for _, l := range group {
				l.SetCoordinates(res.Lat, res.Lon, dist)
			}
			sum.Geocoded += len(group)
			log.Debug("pipeline: address resolved",
				zap.String("address", address),
				zap.Float64("dist_km", dist),
			)
			return nil
		})
	}
	_ = eg.Wait()
}
