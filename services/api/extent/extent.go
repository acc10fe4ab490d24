// Package extent computes the [min, max] numeric range that calibrates a
// color scale and legend for the active data option.
package extent

import (
	"math"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
)

// Extent is a closed numeric range.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Default is the safe fallback domain for empty or unknown inputs.
var Default = Extent{Min: 0, Max: 1}

// Accessor extracts one flat scalar from an enriched plot. A missing value
// is reported through ok.
type Accessor func(catalog.Plot) (float64, bool)

func fromPtr(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// accessors assume plots were flattened by catalog.Enrich.
var accessors = map[string]Accessor{
	"SOC":         func(p catalog.Plot) (float64, bool) { return fromPtr(p.SOCStock) },
	"pH":          func(p catalog.Plot) (float64, bool) { return fromPtr(p.PH) },
	"Temperature": func(p catalog.Plot) (float64, bool) { return fromPtr(p.Temperature) },
	"Moisture":    func(p catalog.Plot) (float64, bool) { return fromPtr(p.SoilMoisture) },
	"socStock":    func(p catalog.Plot) (float64, bool) { return fromPtr(p.SOCStock) },
	"meanC":       func(p catalog.Plot) (float64, bool) { return fromPtr(p.MeanC) },
}

// SensorQuantity reports whether an option reads per-sensor depth buckets
// instead of per-plot scalars.
func SensorQuantity(option string) bool {
	return option == "Temperature" || option == "Moisture"
}

// Resolve computes the extent for the option over the areas in scope. Scope
// is the single active area when activeAreaID > 0, else every area. Sensor
// quantities read the depthCm bucket; plots and sensors without a usable
// value are excluded. Empty or unknown inputs yield the default domain,
// never NaN.
func Resolve(areas []catalog.Area, activeAreaID int, option string, depthCm int) Extent {
	if SensorQuantity(option) {
		vals := make([]float64, 0)
		for _, s := range sensorsInScope(areas, activeAreaID) {
			buckets := s.AverageTemperature
			if option == "Moisture" {
				buckets = s.AverageMoisture
			}
			if v, ok := buckets.At(depthCm); ok {
				vals = append(vals, v)
			}
		}
		return fromValues(vals)
	}

	accessor, ok := accessors[option]
	if !ok {
		return Default
	}
	vals := make([]float64, 0)
	for _, p := range plotsInScope(areas, activeAreaID) {
		if v, ok := accessor(p); ok && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return fromValues(vals)
}

// fromValues returns {floor(min), ceil(max)} so legend endpoints read as
// clean integers even when the underlying range is narrow.
func fromValues(vals []float64) Extent {
	if len(vals) == 0 {
		return Default
	}
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Extent{Min: math.Floor(min), Max: math.Ceil(max)}
}

func plotsInScope(areas []catalog.Area, activeAreaID int) []catalog.Plot {
	if activeAreaID > 0 {
		for _, a := range areas {
			if a.ID == activeAreaID {
				return a.Plots
			}
		}
		return nil
	}
	var plots []catalog.Plot
	for _, a := range areas {
		plots = append(plots, a.Plots...)
	}
	return plots
}

func sensorsInScope(areas []catalog.Area, activeAreaID int) []catalog.Sensor {
	if activeAreaID > 0 {
		for _, a := range areas {
			if a.ID == activeAreaID {
				return a.Sensors
			}
		}
		return nil
	}
	var sensors []catalog.Sensor
	for _, a := range areas {
		sensors = append(sensors, a.Sensors...)
	}
	return sensors
}
