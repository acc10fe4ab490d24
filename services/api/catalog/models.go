package catalog

import (
	"strconv"

	"github.com/paulmach/orb"
)

// XY is a projected point, keyed in payloads by CRS identifier ("4326" gives
// x=longitude, y=latitude).
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawSample is one depth-integration profile of a plot's aggregated lab record.
type RawSample struct {
	SOCStockMegagPerHectare *float64 `json:"soc_stock_megag_per_hectare"`
	MeanC                   *float64 `json:"mean_c"`
	TotalDepth              *float64 `json:"total_depth"`
	Temperature             *float64 `json:"temperature"`
	SoilMoisture            *float64 `json:"soil_moisture"`
	SampleCount             *int     `json:"sample_count"`
	PH                      *float64 `json:"ph"`
}

// Plot is a soil sampling location. The flat scalar fields are populated by
// Enrich from the configured sample profile; they stay nil when the profile
// is absent so accessors can fail loudly without panicking.
type Plot struct {
	ID   int           `json:"id"`
	Name string        `json:"name"`
	Geom map[string]XY `json:"geom"`

	AggregatedSamples map[string]RawSample `json:"aggregated_samples,omitempty"`

	SOCStock     *float64 `json:"socStock,omitempty"`
	MeanC        *float64 `json:"meanC,omitempty"`
	TotalDepth   *float64 `json:"totalDepth,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	SoilMoisture *float64 `json:"soilMoisture,omitempty"`
	SampleCount  *int     `json:"sampleCount,omitempty"`
	PH           *float64 `json:"pH,omitempty"`
}

// LonLat returns the plot's WGS84 coordinates.
func (p Plot) LonLat() (lon, lat float64, ok bool) {
	c, ok := p.Geom["4326"]
	if !ok {
		return 0, 0, false
	}
	return c.X, c.Y, true
}

// DepthValues maps a depth in centimeters to a time-averaged reading. Depth
// keys arrive as JSON strings and are not uniform across sensors.
type DepthValues map[string]float64

// At returns the value for the given depth bucket. A missing bucket is
// reported through ok, never as zero.
func (d DepthValues) At(depthCm int) (float64, bool) {
	v, ok := d[strconv.Itoa(depthCm)]
	return v, ok
}

// Sensor is a continuous-logging device within an area.
type Sensor struct {
	ID   int           `json:"id"`
	Name string        `json:"name"`
	Geom map[string]XY `json:"geom"`

	AverageTemperature DepthValues `json:"average_temperature,omitempty"`
	AverageMoisture    DepthValues `json:"average_moisture,omitempty"`
}

// LonLat returns the sensor's WGS84 coordinates.
func (s Sensor) LonLat() (lon, lat float64, ok bool) {
	c, ok := s.Geom["4326"]
	if !ok {
		return 0, 0, false
	}
	return c.X, c.Y, true
}

// AreaGeom is the raw boundary payload: ordered closed rings of
// longitude/latitude pairs.
type AreaGeom struct {
	Type        string        `json:"type,omitempty"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Area is one catchment. Boundary is derived from Geom by Enrich and never
// mutated afterwards.
type Area struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Geom    *AreaGeom `json:"geom,omitempty"`
	Plots   []Plot    `json:"plots"`
	Sensors []Sensor  `json:"sensors"`

	Boundary orb.Polygon `json:"-"`
}

// Bound returns the boundary's bounding box and whether a boundary exists.
func (a Area) Bound() (orb.Bound, bool) {
	if len(a.Boundary) == 0 {
		return orb.Bound{}, false
	}
	return a.Boundary.Bound(), true
}

// SeriesPoint is one observation of a sensor time series.
type SeriesPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// SeriesResponse is the upstream payload for a sensor's full time series,
// bucketed by depth in centimeters.
type SeriesResponse struct {
	Name                        string                   `json:"name"`
	AverageTemperatureByDepthCm map[string][]SeriesPoint `json:"average_temperature_by_depth_cm,omitempty"`
	AverageMoistureByDepthCm    map[string][]SeriesPoint `json:"average_moisture_by_depth_cm,omitempty"`
}
