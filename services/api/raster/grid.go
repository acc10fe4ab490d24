// Package raster decodes model raster payloads and renders them as colored
// map overlays.
package raster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Grid is the decoded raster payload published by the model pipeline:
// row-major per-band value arrays with null no-data cells, plus reported
// per-band ranges.
type Grid struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	// Bounds is [west, south, east, north] in WGS84.
	Bounds [4]float64   `json:"bounds"`
	Mins   []float64    `json:"mins"`
	Maxs   []float64    `json:"maxs"`
	NoData *float64     `json:"no_data,omitempty"`
	Bands  [][]*float64 `json:"bands"`
}

// Decode parses and validates a raster payload.
func Decode(r io.Reader) (*Grid, error) {
	var g Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Bands) == 0 {
		return nil, errors.New("raster has no bands")
	}
	for i, band := range g.Bands {
		if len(band) != g.Width*g.Height {
			return nil, fmt.Errorf("band %d has %d cells, want %d", i, len(band), g.Width*g.Height)
		}
	}

	if len(g.Mins) < len(g.Bands) || len(g.Maxs) < len(g.Bands) {
		g.fillRanges()
	}
	return &g, nil
}

// At returns the value of one cell, or ok=false for a missing cell (null or
// no-data sentinel).
func (g *Grid) At(band, x, y int) (float64, bool) {
	v := g.Bands[band][y*g.Width+x]
	if v == nil {
		return 0, false
	}
	if g.NoData != nil && *v == *g.NoData {
		return 0, false
	}
	return *v, true
}

// fillRanges computes per-band mins/maxs when the payload omits them.
func (g *Grid) fillRanges() {
	g.Mins = make([]float64, len(g.Bands))
	g.Maxs = make([]float64, len(g.Bands))
	for b := range g.Bands {
		first := true
		for _, v := range g.Bands[b] {
			if v == nil {
				continue
			}
			if g.NoData != nil && *v == *g.NoData {
				continue
			}
			if first || *v < g.Mins[b] {
				g.Mins[b] = *v
			}
			if first || *v > g.Maxs[b] {
				g.Maxs[b] = *v
			}
			first = false
		}
	}
}
