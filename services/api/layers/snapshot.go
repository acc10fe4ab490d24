package layers

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
	"github.com/soilbgc/alpine-soc-viewer/services/api/extent"
	"github.com/soilbgc/alpine-soc-viewer/services/api/legend"
	"github.com/soilbgc/alpine-soc-viewer/services/api/scale"
	"github.com/soilbgc/alpine-soc-viewer/services/api/vector"
)

// Bounds are [west, south, east, north] in WGS84.
var (
	swissBounds  = [4]float64{5.5, 45.5, 11.0, 48.0}
	valaisBounds = [4]float64{6.0, 45.8, 8.5, 47.3}
)

const (
	activeBoundaryColor = "#2b8cbe"
	boundaryFillOpacity = 0.25
	overviewZoom        = 9
	minZoom             = 8
	boundsPadRatio      = 0.2
	fixedPlotRadius     = 6
	sensorRadius        = 8
)

// Camera describes the current view target and fly state.
type Camera struct {
	State           string      `json:"state"`
	Bounds          *[4]float64 `json:"bounds,omitempty"`
	Center          *[2]float64 `json:"center,omitempty"` // lon, lat
	Zoom            int         `json:"zoom,omitempty"`
	DurationSeconds float64     `json:"durationSeconds"`
	MaxBounds       [4]float64  `json:"maxBounds"`
	MinZoom         int         `json:"minZoom"`
}

// Boundary is one catchment outline. The active area is accented and its
// tooltip suppressed; inactive areas carry a clickable name tooltip.
type Boundary struct {
	AreaID      int               `json:"areaId"`
	Name        string            `json:"name"`
	Active      bool              `json:"active"`
	Color       string            `json:"color"`
	FillOpacity float64           `json:"fillOpacity"`
	Tooltip     bool              `json:"tooltip"`
	Geometry    *geojson.Geometry `json:"geometry"`
}

// PopupLine is one label/value row of a marker popup.
type PopupLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Marker is one plot or sensor circle marker.
type Marker struct {
	Kind        string      `json:"kind"` // "plot" or "sensor"
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Lat         float64     `json:"lat"`
	Lon         float64     `json:"lon"`
	Color       string      `json:"color"`
	Radius      float64     `json:"radius"`
	FillOpacity float64     `json:"fillOpacity"`
	Pane        string      `json:"pane"`
	Popup       []PopupLine `json:"popup"`
}

// OptionItem is one entry of the data-option menu for the current view mode.
type OptionItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// RasterLayer is the snapshot metadata of an attached raster overlay; the
// image itself is served separately.
type RasterLayer struct {
	ID      string     `json:"id"`
	Pane    string     `json:"pane"`
	URL     string     `json:"url,omitempty"`
	Bounds  [4]float64 `json:"bounds"`
	Opacity float64    `json:"opacity"`
}

// State is the full composed map document served to the client.
type State struct {
	ActiveAreaID int               `json:"area_id"`
	DataOption   string            `json:"data_option"`
	ViewMode     string            `json:"view_mode"`
	Camera       Camera            `json:"camera"`
	Panes        []Pane            `json:"panes"`
	BaseLayers   []BaseLayer       `json:"baseLayers"`
	Boundaries   []Boundary        `json:"boundaries"`
	Markers      []Marker          `json:"markers"`
	Extent       extent.Extent     `json:"extent"`
	Legend       *legend.Control   `json:"legend,omitempty"`
	Rasters      []RasterLayer     `json:"rasters"`
	Vectors      []*vector.Overlay `json:"vectors"`
	DataOptions  []OptionItem      `json:"dataOptions"`
}

// Snapshot composes the current map state. Markers appear only once the fly
// animation has settled; boundaries and the legend render regardless.
func (c *Composer) Snapshot() State {
	c.mu.Lock()
	in := c.input
	flyState := c.flyState
	c.mu.Unlock()

	ext := c.resolveExtent(in)
	sc := scale.New(scale.ForOption(in.DataOption), ext.Min, ext.Max)

	st := State{
		ActiveAreaID: in.ActiveAreaID,
		DataOption:   in.DataOption,
		ViewMode:     in.ViewMode,
		Camera:       c.camera(in, flyState),
		Panes:        Panes,
		BaseLayers:   BaseLayers,
		Boundaries:   c.boundaries(in),
		Extent:       ext,
		Legend:       c.m.Legend(),
		DataOptions:  menuOptions(in.ViewMode),
	}

	if flyState == flySettled {
		st.Markers = c.markers(in, sc)
	}

	rasters, vectors := c.m.Overlays()
	st.Rasters = make([]RasterLayer, 0, len(rasters))
	for _, ov := range rasters {
		layer := RasterLayer{
			ID:      ov.ID,
			Pane:    ov.Pane,
			Bounds:  ov.Bounds,
			Opacity: ov.Opacity,
		}
		if c.opts.OverlayURL != nil {
			layer.URL = c.opts.OverlayURL(ov.ID)
		}
		st.Rasters = append(st.Rasters, layer)
	}
	st.Vectors = vectors
	return st
}

func (c *Composer) camera(in Input, flyState string) Camera {
	cam := Camera{
		State:           flyState,
		DurationSeconds: c.opts.FlyDuration.Seconds(),
		MaxBounds:       swissBounds,
		MinZoom:         minZoom,
	}

	if area := c.areaByID(in.ActiveAreaID); area != nil {
		if b, ok := area.Bound(); ok {
			padded := padBound(b, boundsPadRatio)
			bounds := [4]float64{padded.Min[0], padded.Min[1], padded.Max[0], padded.Max[1]}
			cam.Bounds = &bounds
			return cam
		}
	}

	center := [2]float64{
		(valaisBounds[0] + valaisBounds[2]) / 2,
		(valaisBounds[1] + valaisBounds[3]) / 2,
	}
	cam.Center = &center
	cam.Zoom = overviewZoom
	return cam
}

func (c *Composer) boundaries(in Input) []Boundary {
	out := make([]Boundary, 0, len(c.areas))
	for _, a := range c.areas {
		if len(a.Boundary) == 0 {
			continue
		}
		active := a.ID == in.ActiveAreaID
		color := c.opts.DefaultColor
		if active {
			color = activeBoundaryColor
		}
		out = append(out, Boundary{
			AreaID:      a.ID,
			Name:        a.Name,
			Active:      active,
			Color:       color,
			FillOpacity: boundaryFillOpacity,
			Tooltip:     !active,
			Geometry:    geojson.NewGeometry(a.Boundary),
		})
	}
	return out
}

func (c *Composer) markers(in Input, sc *scale.Scale) []Marker {
	area := c.areaByID(in.ActiveAreaID)
	if area == nil {
		return nil
	}

	switch in.DataOption {
	case "SOC", "pH":
		return c.plotMarkers(area, in.DataOption, sc)
	case "Temperature", "Moisture":
		return c.sensorMarkers(area, in.DataOption, sc)
	}
	return nil
}

func (c *Composer) plotMarkers(area *catalog.Area, option string, sc *scale.Scale) []Marker {
	out := make([]Marker, 0, len(area.Plots))
	for _, p := range area.Plots {
		lon, lat, ok := p.LonLat()
		if !ok {
			continue
		}

		val := p.PH
		if option == "SOC" {
			val = p.SOCStock
		}
		color := c.opts.DefaultColor
		if val != nil {
			color = sc.At(*val)
		}

		// Marker area, not radius, tracks the SOC stock so large stocks do
		// not visually dwarf the rest.
		radius := float64(fixedPlotRadius)
		if option == "SOC" && p.SOCStock != nil && *p.SOCStock > 0 {
			radius = math.Sqrt(*p.SOCStock)
		}

		out = append(out, Marker{
			Kind:        "plot",
			ID:          p.ID,
			Name:        p.Name,
			Lat:         lat,
			Lon:         lon,
			Color:       color,
			Radius:      radius,
			FillOpacity: 1,
			Pane:        PaneMarker,
			Popup:       plotPopup(p, option),
		})
	}
	return out
}

func plotPopup(p catalog.Plot, option string) []PopupLine {
	if option == "SOC" {
		lines := make([]PopupLine, 0, 2)
		if p.TotalDepth != nil {
			lines = append(lines, PopupLine{Label: "Total depth", Value: fmt.Sprintf("%g cm", *p.TotalDepth)})
		}
		if p.SOCStock != nil {
			lines = append(lines, PopupLine{Label: "SOC stock", Value: fmt.Sprintf("%.1f Mg ha⁻¹", *p.SOCStock)})
		}
		return lines
	}
	if p.PH != nil {
		return []PopupLine{{Label: "pH", Value: fmt.Sprintf("%.2f", *p.PH)}}
	}
	return nil
}

func (c *Composer) sensorMarkers(area *catalog.Area, option string, sc *scale.Scale) []Marker {
	depth := c.opts.TemperatureDepthCm
	unit := " °C"
	if option == "Moisture" {
		depth = c.opts.MoistureDepthCm
		unit = " [raw]"
	}

	out := make([]Marker, 0, len(area.Sensors))
	for _, s := range area.Sensors {
		lon, lat, ok := s.LonLat()
		if !ok {
			continue
		}

		buckets := s.AverageTemperature
		if option == "Moisture" {
			buckets = s.AverageMoisture
		}

		// A sensor missing the configured depth still shows up, in the
		// neutral color, so the device itself stays discoverable.
		color := c.opts.DefaultColor
		if v, ok := buckets.At(depth); ok {
			color = sc.At(v)
		}

		out = append(out, Marker{
			Kind:        "sensor",
			ID:          s.ID,
			Name:        s.Name,
			Lat:         lat,
			Lon:         lon,
			Color:       color,
			Radius:      sensorRadius,
			FillOpacity: 1,
			Pane:        PaneMarker,
			Popup:       sensorPopup(buckets, unit),
		})
	}
	return out
}

func sensorPopup(buckets catalog.DepthValues, unit string) []PopupLine {
	depths := make([]string, 0, len(buckets))
	for d := range buckets {
		depths = append(depths, d)
	}
	sort.Slice(depths, func(i, j int) bool {
		di, ierr := strconv.Atoi(depths[i])
		dj, jerr := strconv.Atoi(depths[j])
		if ierr != nil || jerr != nil {
			return depths[i] < depths[j]
		}
		return di < dj
	})

	lines := make([]PopupLine, 0, len(depths))
	for _, d := range depths {
		lines = append(lines, PopupLine{
			Label: d + " cm",
			Value: fmt.Sprintf("%.2f%s", buckets[d], unit),
		})
	}
	return lines
}

func padBound(b orb.Bound, ratio float64) orb.Bound {
	dx := (b.Max[0] - b.Min[0]) * ratio
	dy := (b.Max[1] - b.Min[1]) * ratio
	return orb.Bound{
		Min: orb.Point{b.Min[0] - dx, b.Min[1] - dy},
		Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy},
	}
}

var experimentalOptions = []OptionItem{
	{Key: "SOC", Label: "SOC", Color: "#e41a1c"},
	{Key: "pH", Label: "pH", Color: "#377eb8"},
	{Key: "Temperature", Label: "Temperature", Color: "#4daf4a"},
	{Key: "Moisture", Label: "Moisture", Color: "#984ea3"},
}

var modelOptions = []OptionItem{
	{Key: "ndvi", Label: "NDVI"},
	{Key: "socStock", Label: "Output SOC stock"},
	{Key: "soilType", Label: "Input Soil type"},
	{Key: "vegetation", Label: "Input Vegetation"},
}

func menuOptions(viewMode string) []OptionItem {
	if viewMode == "model" {
		return modelOptions
	}
	return experimentalOptions
}

func optionInMode(option, viewMode string) bool {
	for _, item := range menuOptions(viewMode) {
		if item.Key == option {
			return true
		}
	}
	return false
}
