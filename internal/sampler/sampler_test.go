package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umn-housing/listings-cli/internal/model"
)

func unit(beds float64, sqft int, rent float64) *model.Listing {
	l := model.NewListing("u", "https://example.com/u/")
	l.Beds = model.Float(beds)
	if sqft > 0 {
		l.Sqft = model.Int(sqft)
	}
	if rent > 0 {
		l.RentMin = model.Float(rent)
		l.RentMax = model.Float(rent)
	}
	return l
}

func TestSample_PrefersOneAndTwoBed(t *testing.T) {
	units := []*model.Listing{
		unit(3, 1200, 2100),
		unit(1, 650, 1100),
		unit(2, 950, 1600),
	}

	got := Sample(units, DefaultMaxPerBuilding)
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, *got[0].Beds)
	assert.Equal(t, 2.0, *got[1].Beds)
}

func TestSample_BestSqftWithinBedCount(t *testing.T) {
	small := unit(1, 500, 1000)
	big := unit(1, 800, 1200)
	noSqft := unit(1, 0, 900)

	got := Sample([]*model.Listing{small, noSqft, big}, 1)
	require.Len(t, got, 1)
	assert.Same(t, big, got[0])
}

func TestSample_UnknownSqftNotTreatedAsZero(t *testing.T) {
	// A 1-bed without sqft still beats nothing, but loses to any known sqft.
	noSqft := unit(1, 0, 900)
	known := unit(1, 400, 950)

	got := Sample([]*model.Listing{noSqft, known}, 1)
	require.Len(t, got, 1)
	assert.Same(t, known, got[0])
}

func TestSample_FillsFromRemaining(t *testing.T) {
	// No 1-bed or 2-bed at all: slots fill by (has-sqft, beds, sqft) asc.
	studio := unit(0, 450, 900)
	three := unit(3, 1200, 2100)
	four := unit(4, 1500, 2600)

	got := Sample([]*model.Listing{four, three, studio}, 2)
	require.Len(t, got, 2)
	assert.Same(t, studio, got[0])
	assert.Same(t, three, got[1])
}

func TestSample_SkipsUnitsWithoutRent(t *testing.T) {
	noRent := unit(1, 800, 0)
	withRent := unit(2, 900, 1500)

	got := Sample([]*model.Listing{noRent, withRent}, 2)
	require.Len(t, got, 1)
	assert.Same(t, withRent, got[0])
}

func TestSample_Bound(t *testing.T) {
	units := []*model.Listing{
		unit(1, 650, 1100),
		unit(2, 950, 1600),
		unit(3, 1200, 2100),
		unit(4, 1500, 2600),
	}
	assert.Len(t, Sample(units, 2), 2)
	assert.Len(t, Sample(units, 3), 3)
	assert.Nil(t, Sample(units, 0))
	assert.Nil(t, Sample(nil, 2))
}

func TestSample_NoDuplicateSelection(t *testing.T) {
	only := unit(1, 700, 1100)
	got := Sample([]*model.Listing{only}, 2)
	require.Len(t, got, 1)
	assert.Same(t, only, got[0])
}
