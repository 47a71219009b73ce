package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBeds(t *testing.T) {
	b := ParseBeds("2 Bed / 1 Bath")
	require.NotNil(t, b)
	assert.Equal(t, 2.0, *b)

	b = ParseBeds("Studio Apartment")
	require.NotNil(t, b)
	assert.Equal(t, 0.0, *b)

	b = ParseBeds("3 BR townhome")
	require.NotNil(t, b)
	assert.Equal(t, 3.0, *b)

	assert.Nil(t, ParseBeds("Call for details"))
	assert.Nil(t, ParseBeds(""))
}

func TestParseBeds_NoPartialWordMatch(t *testing.T) {
	// "bedroom" still matches via the \b after "bed"; "brick" must not.
	b := ParseBeds("4 bedroom house")
	require.NotNil(t, b)
	assert.Equal(t, 4.0, *b)

	assert.Nil(t, ParseBeds("2 brick fireplaces"))
}

func TestParseBaths(t *testing.T) {
	b := ParseBaths("2 Bed / 1.5 Bath")
	require.NotNil(t, b)
	assert.Equal(t, 1.5, *b)

	b = ParseBaths("1 ba")
	require.NotNil(t, b)
	assert.Equal(t, 1.0, *b)

	assert.Nil(t, ParseBaths("2 Bed"))
	assert.Nil(t, ParseBaths(""))
}

func TestParseSqft(t *testing.T) {
	s := ParseSqft("850 sq ft")
	require.NotNil(t, s)
	assert.Equal(t, 850, *s)

	s = ParseSqft("1,050 sqft")
	require.NotNil(t, s)
	assert.Equal(t, 1050, *s)

	s = ParseSqft("900 sq. ft.")
	require.NotNil(t, s)
	assert.Equal(t, 900, *s)

	assert.Nil(t, ParseSqft("2 Bed / 1 Bath"))
	assert.Nil(t, ParseSqft(""))
}
