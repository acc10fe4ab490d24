package catalog

import "github.com/paulmach/orb"

// Enrich flattens the profile-indexed raw sample fields of every plot into
// flat scalars and converts raw boundary coordinates into orb polygons. It
// runs once after fetching; areas are treated as immutable afterwards.
//
// A plot whose aggregated samples lack the requested profile keeps nil
// scalar fields, so downstream accessors report "no value" instead of
// throwing or reading zeros.
func Enrich(areas []Area, profile string) []Area {
	for i := range areas {
		areas[i].Boundary = boundaryPolygon(areas[i].Geom)
		for j := range areas[i].Plots {
			flattenPlot(&areas[i].Plots[j], profile)
		}
	}
	return areas
}

func flattenPlot(p *Plot, profile string) {
	s, ok := p.AggregatedSamples[profile]
	if !ok {
		return
	}
	p.SOCStock = s.SOCStockMegagPerHectare
	p.MeanC = s.MeanC
	p.TotalDepth = s.TotalDepth
	p.Temperature = s.Temperature
	p.SoilMoisture = s.SoilMoisture
	p.SampleCount = s.SampleCount
	p.PH = s.PH
}

func boundaryPolygon(geom *AreaGeom) orb.Polygon {
	if geom == nil || len(geom.Coordinates) == 0 {
		return nil
	}
	poly := make(orb.Polygon, 0, len(geom.Coordinates))
	for _, rawRing := range geom.Coordinates {
		ring := make(orb.Ring, 0, len(rawRing))
		for _, pt := range rawRing {
			if len(pt) < 2 {
				continue
			}
			ring = append(ring, orb.Point{pt[0], pt[1]})
		}
		if len(ring) > 0 {
			poly = append(poly, ring)
		}
	}
	return poly
}
