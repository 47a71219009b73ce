// Package pipeline orchestrates one collection session: raw extraction →
// field parsing → amenity application → sampling → geocoding → radius
// filtering → merge into the accumulated store.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/dedup"
	"github.com/umn-housing/listings-cli/internal/extract"
	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/internal/model"
	"github.com/umn-housing/listings-cli/internal/parse"
	"github.com/umn-housing/listings-cli/internal/store"
	"github.com/umn-housing/listings-cli/pkg/nominatim"
)

// Geocoder resolves a free-text address. Unresolved is a value, not an error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*nominatim.Result, error)
}

// Paths names the session artifacts.
type Paths struct {
	Store    string // accumulated all-time store, rewritten each run
	Snapshot string // this run's filtered output, always written
	All      string // this run's unfiltered dump, for auditing
	URLs     string // append-only processed-URL log
}

// Params configures a Pipeline.
type Params struct {
	Geocoder           Geocoder
	Filter             *geo.Filter
	Keywords           *parse.Keywords
	MaxPerBuilding     int
	GeocodeConcurrency int
	PrefilterKnown     bool
	RefilterOnLoad     bool
	Paths              Paths
}

// Pipeline runs collection sessions. One session is a single logical unit of
// work against the store; concurrent sessions over the same store files are
// not supported and must be serialized by the caller.
type Pipeline struct {
	params Params
}

// New creates a Pipeline.
func New(p Params) *Pipeline {
	if p.Keywords == nil {
		p.Keywords = parse.DefaultKeywords()
	}
	if p.MaxPerBuilding <= 0 {
		p.MaxPerBuilding = 2
	}
	if p.GeocodeConcurrency <= 0 {
		p.GeocodeConcurrency = 1
	}
	return &Pipeline{params: p}
}

// Summary is the user-visible outcome of one session. Per-record failures
// are not surfaced individually; they degrade into these counts.
type Summary struct {
	SessionID     string
	Buildings     int
	UnitsParsed   int
	Sampled       int
	SkippedKnown  int
	Geocoded      int
	GeocodeFailed int
	Excluded      int
	Kept          int
	NewlyMerged   int
	Duplicates    int
	StoreTotal    int
	DroppedOnLoad int
}

// Run processes one session of raw buildings end to end. Context
// cancellation stops further geocoding but everything accumulated so far is
// still filtered, merged, and written.
func (p *Pipeline) Run(ctx context.Context, buildings []extract.Building) (*Summary, error) {
	sum := &Summary{SessionID: uuid.New().String()}
	log := zap.L().With(zap.String("session_id", sum.SessionID))

	// Parse, enrich, and sample every building.
	var fresh []*model.Listing
	for i := range buildings {
		units := p.buildListings(&buildings[i], sum)
		fresh = append(fresh, units...)
	}
	sum.Buildings = len(buildings)
	sum.Sampled = len(fresh)
	log.Info("pipeline: extraction parsed",
		zap.Int("buildings", sum.Buildings),
		zap.Int("units", sum.UnitsParsed),
		zap.Int("sampled", sum.Sampled),
	)

	// Unfiltered dump first, so nothing parsed is lost to later stages.
	if p.params.Paths.All != "" {
		if err := store.WriteCSV(p.params.Paths.All, deref(fresh)); err != nil {
			log.Warn("pipeline: write unfiltered dump failed", zap.Error(err))
		}
	}

	// Load the accumulated store, optionally re-filtering to the current
	// radius.
	loadOpts := store.LoadOptions{}
	if p.params.RefilterOnLoad {
		loadOpts.Filter = p.params.Filter
	}
	existing, stats, err := store.Load(p.params.Paths.Store, loadOpts)
	if err != nil {
		return nil, err
	}
	sum.DroppedOnLoad = stats.Dropped

	// Known ids are dropped before geocoding to spare the external service.
	if p.params.PrefilterKnown {
		ids := make(map[string]struct{}, len(existing))
		for id := range existing {
			ids[id] = struct{}{}
		}
		fresh, sum.SkippedKnown = dedup.FilterKnown(fresh, ids)
		if sum.SkippedKnown > 0 {
			log.Info("pipeline: skipped known listings before geocoding",
				zap.Int("skipped", sum.SkippedKnown))
		}
	}

	p.geocodeAll(ctx, fresh, sum, log)

	// Radius filter.
	var kept []*model.Listing
	for _, l := range fresh {
		if p.params.Filter.Keep(l) {
			kept = append(kept, l)
		} else {
			sum.Excluded++
		}
	}
	sum.Kept = len(kept)

	// Session snapshot is always written, header-only when empty, so
	// downstream tooling has a stable file to open.
	if err := store.WriteCSV(p.params.Paths.Snapshot, deref(kept)); err != nil {
		return nil, err
	}

	merged, added := dedup.Merge(existing, deref(kept))
	sum.NewlyMerged = added
	sum.Duplicates = len(kept) - added
	sum.StoreTotal = len(merged)

	if err := store.WriteCSV(p.params.Paths.Store, merged); err != nil {
		return nil, err
	}

	log.Info("pipeline: session complete",
		zap.Int("kept", sum.Kept),
		zap.Int("newly_merged", sum.NewlyMerged),
		zap.Int("store_total", sum.StoreTotal),
	)
	return sum, nil
}

func deref(ls []*model.Listing) []model.Listing {
	out := make([]model.Listing, 0, len(ls))
	for _, l := range ls {
		out = append(out, *l)
	}
	return out
}
