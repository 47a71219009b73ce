// Package dedup combines freshly scraped listings with the accumulated store.
package dedup

import (
	"sort"

	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/model"
)

// Merge combines fresh listings into the existing store map keyed by
// listing id. On collision the persisted version wins: once a unit is
// recorded, later re-scrapes of the same id are noise, not updates. Returns
// the merged records ordered by id plus the number newly added. Merging the
// same batch twice is a no-op.
func Merge(existing map[string]model.Listing, fresh []model.Listing) ([]model.Listing, int) {
	merged := make(map[string]model.Listing, len(existing)+len(fresh))
	for id, l := range existing {
		merged[id] = l
	}

	added := 0
	for _, l := range fresh {
		if l.ListingID == "" {
			zap.L().Warn("dedup: dropping listing with empty id",
				zap.String("building", l.BuildingName))
			continue
		}
		if _, ok := merged[l.ListingID]; ok {
			continue
		}
		merged[l.ListingID] = l
		added++
	}

	out := make([]model.Listing, 0, len(merged))
	for _, l := range merged {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out, added
}

// FilterKnown drops fresh listings whose id already exists in the store.
// This runs before geocoding to skip redundant external calls; correctness
// does not depend on it, the final Merge alone guarantees uniqueness.
func FilterKnown(fresh []*model.Listing, existingIDs map[string]struct{}) (kept []*model.Listing, skipped int) {
	for _, l := range fresh {
		if _, ok := existingIDs[l.ListingID]; ok {
			skipped++
			continue
		}
		kept = append(kept, l)
	}
	return kept, skipped
}
