package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListingID(t *testing.T) {
	url := "https://www.apartments.com/the-marshall-minneapolis-mn/ezrcwgm/"

	id := NewListingID(url, Float(2))
	assert.Equal(t, "ezrcwgm-2bed", id)

	// Stable across repeated calls and trailing-slash variations.
	assert.Equal(t, id, NewListingID(url, Float(2)))
	assert.Equal(t, id, NewListingID("https://www.apartments.com/the-marshall-minneapolis-mn/ezrcwgm", Float(2)))
}

func TestNewListingID_FractionalAndUnknownBeds(t *testing.T) {
	assert.Equal(t, "abc-2.5bed", NewListingID("https://x.com/abc/", Float(2.5)))
	assert.Equal(t, "abc-0bed", NewListingID("https://x.com/abc/", nil))
	assert.Equal(t, "abc-0bed", NewListingID("https://x.com/abc/", Float(0)))
}

func TestSetCoordinates(t *testing.T) {
	l := NewListing("id", "https://x.com/abc/")
	require.False(t, l.Located())
	require.Nil(t, l.DistKM)

	l.SetCoordinates(44.98, -93.23, 1.2345)

	assert.True(t, l.Located())
	require.NotNil(t, l.DistKM)
	assert.Equal(t, 1.23, *l.DistKM, "distance rounds to two decimals")
	assert.Equal(t, 44.98, *l.Lat)
	assert.Equal(t, -93.23, *l.Lon)
}

func TestHasRent(t *testing.T) {
	l := NewListing("id", "u")
	assert.False(t, l.HasRent())
	l.RentMin = Float(900)
	assert.True(t, l.HasRent())
}

func TestNewListingDefaults(t *testing.T) {
	l := NewListing("id", "https://x.com/abc/")
	assert.Equal(t, PriceTypeUnknown, l.PriceType)
	assert.Equal(t, "https://x.com/abc/", l.SourceURL)
	assert.False(t, l.ScrapeDate.IsZero())
	assert.Nil(t, l.IsPerBed)
	assert.Nil(t, l.HasPool)
}
