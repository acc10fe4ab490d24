// Package legend builds the legend control model for the active data option.
package legend

import (
	"math"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
	"github.com/soilbgc/alpine-soc-viewer/services/api/scale"
)

// GradientSteps is the number of samples drawn along the continuous strip.
const GradientSteps = 10

// Entry is one swatch+label row of a discrete legend.
type Entry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// GradientStop is one sampled color along the continuous strip, bottom (min)
// to top (max).
type GradientStop struct {
	Color   string `json:"color"`
	Percent int    `json:"percent"`
}

// Control is the legend attached to the map. At most one exists at a time;
// attaching a new one replaces the old (the map owns that slot).
type Control struct {
	Kind    string         `json:"kind"` // "discrete" or "continuous"
	Title   string         `json:"title"`
	Entries []Entry        `json:"entries,omitempty"`
	Stops   []GradientStop `json:"stops,omitempty"`
	Min     float64        `json:"min,omitempty"`
	Max     float64        `json:"max,omitempty"`
	// Mid is the rounded midpoint label, omitted when it collides with an
	// endpoint.
	Mid *float64 `json:"mid,omitempty"`
}

// Build assembles the legend for a data option. Category-based options get
// one row per table entry in table order; continuous options get a sampled
// gradient strip with max/mid/min labels. No option means no legend.
func Build(option, title string, s *scale.Scale, min, max float64, soilTypes, vegetations catalog.CategoryTable) *Control {
	if option == "" {
		return nil
	}

	if option == "soilType" || option == "vegetation" {
		table := soilTypes
		if option == "vegetation" {
			table = vegetations
		}
		entries := make([]Entry, 0, len(table))
		for _, c := range table {
			entries = append(entries, Entry{Label: c.Name, Color: c.Color})
		}
		return &Control{Kind: "discrete", Title: title, Entries: entries}
	}

	if s == nil {
		return nil
	}

	samples := s.Samples(GradientSteps)
	stops := make([]GradientStop, len(samples))
	for i, c := range samples {
		stops[i] = GradientStop{
			Color:   c,
			Percent: int(math.Round(float64(i) / float64(GradientSteps-1) * 100)),
		}
	}

	ctl := &Control{Kind: "continuous", Title: title, Stops: stops, Min: min, Max: max}
	mid := math.Round((min + max) / 2)
	if mid != min && mid != max {
		ctl.Mid = &mid
	}
	return ctl
}
