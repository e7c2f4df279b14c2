// Package geo reads TIGER PUMA shapefiles and enriches regional summaries
// with display names, land areas, and household densities.
package geo

import (
	"math"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/pawelsloboda5/calworks-analysis/internal/model"
)

// PUMAAttributes holds the per-PUMA fields read from a TIGER shapefile.
type PUMAAttributes struct {
	PUMA         int
	Name         string
	LandAreaSqKm float64
	CentroidLon  float64
	CentroidLat  float64
}

// TIGER attribute names vary by vintage; candidates are tried in order.
var (
	codeFields = []string{"PUMACE20", "PUMACE10", "PUMACE"}
	nameFields = []string{"NAMELSAD20", "NAMELSAD10", "NAMELSAD", "NAME20", "NAME10", "NAME"}
	areaFields = []string{"ALAND20", "ALAND10", "ALAND"}
)

// LoadPUMAAttributes reads PUMA codes, names, and land areas from a TIGER
// shapefile. Land area comes from the ALAND attribute (square meters) when
// present, otherwise from the polygon's planar area.
func LoadPUMAAttributes(shpPath string) (map[int]PUMAAttributes, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}

	codeIdx := firstField(fieldIdx, codeFields)
	if codeIdx < 0 {
		return nil, eris.Errorf("geo: no PUMA code field in %s", shpPath)
	}
	nameIdx := firstField(fieldIdx, nameFields)
	areaIdx := firstField(fieldIdx, areaFields)

	attrs := make(map[int]PUMAAttributes)
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		code := attribute(reader, codeIdx)
		puma, err := strconv.Atoi(strings.TrimLeft(code, "0"))
		if err != nil {
			skipped++
			continue
		}

		a := PUMAAttributes{PUMA: puma}
		if nameIdx >= 0 {
			a.Name = attribute(reader, nameIdx)
		}
		if areaIdx >= 0 {
			if sqm, err := strconv.ParseFloat(attribute(reader, areaIdx), 64); err == nil {
				a.LandAreaSqKm = sqm / 1e6
			}
		}

		if poly, ok := shape.(*shp.Polygon); ok {
			g := toGeomPolygon(poly)
			if a.LandAreaSqKm == 0 {
				a.LandAreaSqKm = g.Area()
			}
			if centroid, err := xy.Centroid(g); err == nil && len(centroid) >= 2 {
				a.CentroidLon = centroid[0]
				a.CentroidLat = centroid[1]
			}
		}

		attrs[puma] = a
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped shapefile records", zap.Int("skipped", skipped))
	}
	zap.L().Info("loaded PUMA attributes",
		zap.String("file", shpPath),
		zap.Int("pumas", len(attrs)),
	)
	return attrs, nil
}

func firstField(fieldIdx map[string]int, candidates []string) int {
	for _, name := range candidates {
		if i, ok := fieldIdx[name]; ok {
			return i
		}
	}
	return -1
}

func attribute(reader *shp.Reader, idx int) string {
	return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
}

// toGeomPolygon converts a shapefile polygon to a go-geom polygon. Only the
// outer rings matter for area and centroid at PUMA scale.
func toGeomPolygon(p *shp.Polygon) *geom.Polygon {
	poly := geom.NewPolygon(geom.XY)

	parts := append([]int32{}, p.Parts...)
	parts = append(parts, int32(len(p.Points)))
	for i := 0; i+1 < len(parts); i++ {
		ring := make([]geom.Coord, 0, parts[i+1]-parts[i])
		for _, pt := range p.Points[parts[i]:parts[i+1]] {
			ring = append(ring, geom.Coord{pt.X, pt.Y})
		}
		_ = poly.Push(geom.NewLinearRing(geom.XY).MustSetCoords(ring))
	}
	return poly
}

// Enrich attaches names and densities to the regional summaries. Summaries
// for PUMAs missing from attrs are returned unchanged; a zero land area
// yields zero density rather than an infinite one.
func Enrich(summaries []model.RegionSummary, attrs map[int]PUMAAttributes) []model.RegionSummary {
	out := make([]model.RegionSummary, len(summaries))
	for i, s := range summaries {
		if a, ok := attrs[s.PUMA]; ok {
			s.RegionName = a.Name
			s.LandAreaSqKm = roundTo2(a.LandAreaSqKm)
			if a.LandAreaSqKm > 0 {
				s.HouseholdsPerSqKm = roundTo2(float64(s.EligibleHouseholds) / a.LandAreaSqKm)
			}
		}
		out[i] = s
	}
	return out
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
