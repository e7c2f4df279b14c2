package geo

import (
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

func TestToGeomPolygon_SingleRing(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0},
			{X: 0, Y: 2},
			{X: 2, Y: 2},
			{X: 2, Y: 0},
			{X: 0, Y: 0}, // closed ring
		},
	}

	g := toGeomPolygon(poly)
	require.Equal(t, 1, g.NumLinearRings())
	assert.Equal(t, 4.0, g.Area())
}

func TestToGeomPolygon_MultiPart(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, 5},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
			{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 5, Y: 5},
		},
	}

	g := toGeomPolygon(poly)
	assert.Equal(t, 2, g.NumLinearRings())
}

func TestFirstField(t *testing.T) {
	idx := map[string]int{"PUMACE10": 2, "NAMELSAD10": 3}

	assert.Equal(t, 2, firstField(idx, codeFields))
	assert.Equal(t, 3, firstField(idx, nameFields))
	assert.Equal(t, -1, firstField(idx, areaFields))
}

func TestEnrich(t *testing.T) {
	summaries := []model.RegionSummary{
		{PUMA: 7507, EligibleHouseholds: 50},
		{PUMA: 9999, EligibleHouseholds: 10}, // not in the shapefile
	}
	attrs := map[int]PUMAAttributes{
		7507: {PUMA: 7507, Name: "San Francisco County (North)", LandAreaSqKm: 25},
	}

	out := Enrich(summaries, attrs)
	require.Len(t, out, 2)

	assert.Equal(t, "San Francisco County (North)", out[0].RegionName)
	assert.Equal(t, 25.0, out[0].LandAreaSqKm)
	assert.Equal(t, 2.0, out[0].HouseholdsPerSqKm)

	// Unmatched summaries pass through untouched.
	assert.Empty(t, out[1].RegionName)
	assert.Zero(t, out[1].HouseholdsPerSqKm)

	// Input slice is not mutated.
	assert.Empty(t, summaries[0].RegionName)
}

func TestEnrich_ZeroAreaYieldsZeroDensity(t *testing.T) {
	out := Enrich(
		[]model.RegionSummary{{PUMA: 7507, EligibleHouseholds: 50}},
		map[int]PUMAAttributes{7507: {PUMA: 7507, Name: "n"}},
	)
	assert.Zero(t, out[0].HouseholdsPerSqKm)
}
