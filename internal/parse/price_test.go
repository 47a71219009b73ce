package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umn-housing/listings-cli/internal/model"
)

func TestParsePrice_SingleNumber(t *testing.T) {
	info := ParsePrice("$1,200", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	require.NotNil(t, info.RentMax)
	assert.Equal(t, 1200.0, *info.RentMin)
	assert.Equal(t, 1200.0, *info.RentMax)
	assert.Equal(t, model.PriceTypePerUnit, info.PriceType)
	require.NotNil(t, info.IsPerBed)
	assert.False(t, *info.IsPerBed)
	require.NotNil(t, info.IsSharedBedroom)
	assert.False(t, *info.IsSharedBedroom)
}

func TestParsePrice_Range(t *testing.T) {
	info := ParsePrice("$900 - $1,300", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	require.NotNil(t, info.RentMax)
	assert.Equal(t, 900.0, *info.RentMin)
	assert.Equal(t, 1300.0, *info.RentMax)
	assert.Equal(t, model.PriceTypeRange, info.PriceType)
}

func TestParsePrice_EnDashRange(t *testing.T) {
	info := ParsePrice("$900 – $1,300", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	assert.Equal(t, 900.0, *info.RentMin)
	assert.Equal(t, 1300.0, *info.RentMax)
	assert.Equal(t, model.PriceTypeRange, info.PriceType)
}

func TestParsePrice_ReversedRange(t *testing.T) {
	// Endpoints in descending textual order still yield min <= max.
	info := ParsePrice("$1,300 - $900", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	require.NotNil(t, info.RentMax)
	assert.Equal(t, 900.0, *info.RentMin)
	assert.Equal(t, 1300.0, *info.RentMax)
	assert.Equal(t, model.PriceTypeRange, info.PriceType)
}

func TestHasRangeSeparator(t *testing.T) {
	assert.True(t, hasRangeSeparator("$900 - $1,300"))
	assert.True(t, hasRangeSeparator("$900 – $1,300"))
	assert.True(t, hasRangeSeparator("$900 to $1,300"))
	assert.False(t, hasRangeSeparator("$1,200 today only"))
	assert.False(t, hasRangeSeparator("$1,200"))
}

func TestParsePrice_From(t *testing.T) {
	info := ParsePrice("From $800", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	assert.Equal(t, 800.0, *info.RentMin)
	assert.Equal(t, 800.0, *info.RentMax)
	assert.Equal(t, model.PriceTypeFromPrice, info.PriceType)
}

func TestParsePrice_PerBed(t *testing.T) {
	info := ParsePrice("$650/bed", "", DefaultKeywords())

	require.NotNil(t, info.IsPerBed)
	assert.True(t, *info.IsPerBed)
	assert.Equal(t, model.PriceTypePerBed, info.PriceType)
	require.NotNil(t, info.RentMin)
	assert.Equal(t, 650.0, *info.RentMin)
}

func TestParsePrice_PerBedFromContext(t *testing.T) {
	// The keyword scan covers surrounding page text, not just the fragment.
	info := ParsePrice("$700", "Lease by the bed with roommate matching available", DefaultKeywords())

	require.NotNil(t, info.IsPerBed)
	assert.True(t, *info.IsPerBed)
	assert.Equal(t, model.PriceTypePerBed, info.PriceType)
	require.NotNil(t, info.IsSharedBedroom)
	assert.True(t, *info.IsSharedBedroom)
}

func TestParsePrice_PerBedTypeNotOverwritten(t *testing.T) {
	// Two numbers plus a dash would normally classify as a range, but the
	// per-bed keyword already set the type.
	info := ParsePrice("$650 - $750 per bed", "", DefaultKeywords())

	assert.Equal(t, model.PriceTypePerBed, info.PriceType)
	require.NotNil(t, info.RentMin)
	assert.Equal(t, 650.0, *info.RentMin)
	assert.Equal(t, 750.0, *info.RentMax)
}

func TestParsePrice_ManyNumbers(t *testing.T) {
	info := ParsePrice("$1,100 $950 $1,400", "", DefaultKeywords())

	require.NotNil(t, info.RentMin)
	assert.Equal(t, 950.0, *info.RentMin)
	assert.Equal(t, 1400.0, *info.RentMax)
	assert.Equal(t, model.PriceTypeRange, info.PriceType)
}

func TestParsePrice_Empty(t *testing.T) {
	info := ParsePrice("", "some context", DefaultKeywords())

	assert.Nil(t, info.RentMin)
	assert.Nil(t, info.RentMax)
	assert.Equal(t, model.PriceTypeUnknown, info.PriceType)
	assert.Nil(t, info.IsPerBed)
	assert.Nil(t, info.IsSharedBedroom)
}

func TestParsePrice_NoNumbers(t *testing.T) {
	// Keyword flags stay nil when the price itself was unparseable,
	// distinguishing "checked, not per-bed" from "nothing to check".
	info := ParsePrice("Call for Rent", "", DefaultKeywords())

	assert.Nil(t, info.RentMin)
	assert.Nil(t, info.IsPerBed)
	assert.Nil(t, info.IsSharedBedroom)
	assert.Equal(t, model.PriceTypeUnknown, info.PriceType)
}

func TestExtractRentRaw(t *testing.T) {
	assert.Equal(t, "$1,200", ExtractRentRaw("2 Bed / 1 Bath  $1,200  850 sq ft"))
	assert.Equal(t, "$900 - $1,300", ExtractRentRaw("1 Bed $900 - $1,300 700 sqft"))
	assert.Equal(t, "", ExtractRentRaw("2 Bed / 2 Bath  Call for Rent"))
	assert.Equal(t, "", ExtractRentRaw(""))
}
