package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umn-housing/listings-cli/internal/model"
)

var campus = Point{Lat: 44.9731, Lon: -93.2359}

func TestDistanceKM_Zero(t *testing.T) {
	assert.InDelta(t, 0, DistanceKM(campus, campus), 1e-9)
}

func TestDistanceKM_Symmetric(t *testing.T) {
	a := Point{Lat: 44.98, Lon: -93.23}
	d1 := DistanceKM(campus, a)
	d2 := DistanceKM(a, campus)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKM_KnownPoints(t *testing.T) {
	// Dinkytown is roughly a kilometer from the campus reference point.
	near := Point{Lat: 44.98, Lon: -93.23}
	assert.InDelta(t, 0.9, DistanceKM(campus, near), 0.2)

	// Bloomington is well outside the 10 km study radius.
	far := Point{Lat: 44.87, Lon: -93.28}
	d := DistanceKM(campus, far)
	assert.Greater(t, d, 10.0)
	assert.Less(t, d, 14.0)
}

func TestFilterKeep_ByDistance(t *testing.T) {
	f := &Filter{Ref: campus, RadiusKM: 10, Mode: ModeStrict}

	in := model.Listing{DistKM: model.Float(9.99)}
	out := model.Listing{DistKM: model.Float(10.01)}
	edge := model.Listing{DistKM: model.Float(10.0)}

	assert.True(t, f.Keep(&in))
	assert.False(t, f.Keep(&out))
	assert.True(t, f.Keep(&edge), "radius boundary is inclusive")
}

func TestFilterKeep_StrictDropsUnresolved(t *testing.T) {
	f := &Filter{Ref: campus, RadiusKM: 10, Mode: ModeStrict}
	l := model.Listing{City: "Minneapolis"}
	assert.False(t, f.Keep(&l))
}

func TestFilterKeep_CityFallback(t *testing.T) {
	f := &Filter{
		Ref:            campus,
		RadiusKM:       10,
		Mode:           ModeCityFallback,
		AcceptedCities: []string{"Minneapolis", "St Paul"},
	}

	assert.True(t, f.Keep(&model.Listing{City: "minneapolis"}))
	assert.True(t, f.Keep(&model.Listing{City: " St Paul "}))
	assert.False(t, f.Keep(&model.Listing{City: "Bloomington"}))
	assert.False(t, f.Keep(&model.Listing{City: ""}), "empty city cannot fall back")

	// A resolved distance outranks the city text in either mode.
	l := model.Listing{City: "Minneapolis", DistKM: model.Float(25)}
	assert.False(t, f.Keep(&l))
}
