package layers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
	"github.com/soilbgc/alpine-soc-viewer/services/api/extent"
	"github.com/soilbgc/alpine-soc-viewer/services/api/legend"
	"github.com/soilbgc/alpine-soc-viewer/services/api/raster"
	"github.com/soilbgc/alpine-soc-viewer/services/api/scale"
	"github.com/soilbgc/alpine-soc-viewer/services/api/vector"
)

// Input is the view state pushed down by the page-level state owner.
// Recenter is a one-shot flag, cleared through the OnRecenterHandled
// callback once the fly animation settles.
type Input struct {
	ActiveAreaID int    `json:"area_id"`
	DataOption   string `json:"data_option"`
	ViewMode     string `json:"view_mode"` // "experimental" or "model"
	Recenter     bool   `json:"recenter"`
}

// Callbacks are invoked by the composer towards the page-level state owner.
type Callbacks struct {
	OnAreaSelected      func(id int, recenter bool)
	OnSensorSelected    func(sensorID int)
	OnSensorPopupClosed func()
	OnRecenterHandled   func()
}

// Options configures the composer.
type Options struct {
	TemperatureDepthCm int
	MoistureDepthCm    int
	DefaultColor       string
	RasterOpacity      float64
	RasterResolution   int
	FlyDuration        time.Duration
	ResolveAsset       AssetResolver
	// OverlayURL formats the serving location of a raster overlay by id;
	// the transport layer owns the path scheme. Unset leaves the URL empty.
	OverlayURL func(id string) string
	HTTPClient *http.Client
	SoilTypes          catalog.CategoryTable
	Vegetations        catalog.CategoryTable
}

// Camera fly states. Markers render only once settled, so the map is not
// littered with markers and popups mid-animation.
const (
	flyIdle    = "idle"
	flyFlying  = "flying"
	flySettled = "settled"
)

// Composer orchestrates the catchment map: it derives extents and color
// scales from the active selection, keeps the legend slot current, gates
// markers on the fly animation, and loads the model overlay for the active
// (area, option) pair with staleness guards.
type Composer struct {
	opts  Options
	cbs   Callbacks
	areas []catalog.Area
	m     *Map

	mu       sync.Mutex
	input    Input
	flyState string
	flyTimer *time.Timer

	// flySeq identifies the newest flight; a timer completion carrying an
	// older sequence is from a superseded flight and is discarded.
	flySeq uint64

	// loadSeq identifies the newest model-layer request; a response from an
	// older request is discarded instead of overwriting the newer layer.
	loadSeq       uint64
	modelRasterID string
	modelVectorID string
}

// NewComposer creates a composer over the enriched areas. The areas slice is
// treated as immutable.
func NewComposer(areas []catalog.Area, m *Map, opts Options, cbs Callbacks) *Composer {
	if opts.TemperatureDepthCm <= 0 {
		opts.TemperatureDepthCm = 10
	}
	if opts.MoistureDepthCm <= 0 {
		opts.MoistureDepthCm = 10
	}
	if opts.DefaultColor == "" {
		opts.DefaultColor = "#000000"
	}
	if opts.RasterOpacity <= 0 {
		opts.RasterOpacity = 0.9
	}
	if opts.RasterResolution <= 0 {
		opts.RasterResolution = 256
	}
	if opts.FlyDuration <= 0 {
		opts.FlyDuration = time.Second
	}
	if opts.SoilTypes == nil {
		opts.SoilTypes = catalog.SoilTypes
	}
	if opts.Vegetations == nil {
		opts.Vegetations = catalog.Vegetations
	}
	if m == nil {
		m = NewMap()
	}
	return &Composer{
		opts:     opts,
		cbs:      cbs,
		areas:    areas,
		m:        m,
		input:    Input{ViewMode: "experimental"},
		flyState: flyIdle,
	}
}

// Map returns the shared map composition.
func (c *Composer) Map() *Map {
	return c.m
}

// Apply pushes a new view state into the composer. A requested recenter
// starts the fly animation; a changed (area, option, mode) triple tears down
// the current model overlay synchronously and starts loading the new one.
// The legend is rebuilt for the new selection, replacing the previous
// control.
func (c *Composer) Apply(in Input) {
	if in.ViewMode == "" {
		in.ViewMode = "experimental"
	}
	// Switching modes carries the other mode's option along; reset it to
	// the head of the new mode's menu.
	if in.DataOption != "" && !optionInMode(in.DataOption, in.ViewMode) {
		in.DataOption = menuOptions(in.ViewMode)[0].Key
	}

	c.mu.Lock()
	prev := c.input
	c.input = in

	if in.Recenter && len(c.areas) > 0 {
		c.startFlyLocked()
	}

	changed := prev.ActiveAreaID != in.ActiveAreaID ||
		prev.DataOption != in.DataOption ||
		prev.ViewMode != in.ViewMode
	if changed {
		c.refreshModelLayerLocked()
	}
	// Set the legend before releasing the mutex so a concurrent Apply
	// cannot leave the map with one selection's input and another's legend.
	c.m.SetLegend(c.buildLegend(in))
	c.mu.Unlock()
}

// ClickArea handles a click on an area boundary or tooltip. Clicking the
// already active area is ignored. When an OnAreaSelected callback is wired
// the selection is handed to the embedder with a recenter request;
// otherwise the composer applies it itself.
func (c *Composer) ClickArea(id int) {
	c.mu.Lock()
	in := c.input
	c.mu.Unlock()

	if id == in.ActiveAreaID {
		return
	}
	if c.cbs.OnAreaSelected != nil {
		c.cbs.OnAreaSelected(id, true)
		return
	}
	in.ActiveAreaID = id
	in.Recenter = true
	c.Apply(in)
}

// ClickSensor forwards a sensor marker click to the caller, which fetches
// and displays the sensor's time series.
func (c *Composer) ClickSensor(sensorID int) {
	if c.cbs.OnSensorSelected != nil {
		c.cbs.OnSensorSelected(sensorID)
	}
}

// CloseSensorPopup lets the caller drop transient state tied to the open
// sensor popup.
func (c *Composer) CloseSensorPopup() {
	if c.cbs.OnSensorPopupClosed != nil {
		c.cbs.OnSensorPopupClosed()
	}
}

func (c *Composer) startFlyLocked() {
	c.flyState = flyFlying
	c.flySeq++
	seq := c.flySeq
	if c.flyTimer != nil {
		// Stop is best-effort: a timer that already fired still runs its
		// callback, which the sequence check below then discards.
		c.flyTimer.Stop()
	}
	c.flyTimer = time.AfterFunc(c.opts.FlyDuration, func() { c.finishFly(seq) })
}

func (c *Composer) finishFly(seq uint64) {
	c.mu.Lock()
	if seq != c.flySeq {
		c.mu.Unlock()
		return
	}
	c.flyState = flySettled
	c.input.Recenter = false
	c.mu.Unlock()

	if c.cbs.OnRecenterHandled != nil {
		c.cbs.OnRecenterHandled()
	}
}

// refreshModelLayerLocked invalidates any in-flight load, detaches the
// current model overlay, and starts fetching the artifact for the active
// selection when in model mode. Teardown happens before the new fetch so
// overlays never stack.
func (c *Composer) refreshModelLayerLocked() {
	c.loadSeq++
	seq := c.loadSeq

	if c.modelRasterID != "" {
		c.m.RemoveRaster(c.modelRasterID)
		c.modelRasterID = ""
	}
	if c.modelVectorID != "" {
		c.m.RemoveVector(c.modelVectorID)
		c.modelVectorID = ""
	}

	in := c.input
	if in.ViewMode != "model" || in.ActiveAreaID <= 0 || c.opts.ResolveAsset == nil {
		return
	}
	area := c.areaByID(in.ActiveAreaID)
	if area == nil {
		return
	}
	url := c.opts.ResolveAsset(area.Name, in.DataOption)
	if url == "" {
		// No artifact for this (area, option) pair.
		return
	}

	go c.loadModelLayer(seq, url, in.DataOption)
}

func (c *Composer) loadModelLayer(seq uint64, url, option string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if rasterOption(option) {
		ov, err := raster.Render(ctx, c.opts.HTTPClient, url, PaneRaster,
			c.opts.RasterOpacity, c.opts.RasterResolution, scale.ForOption(option))

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.loadSeq {
			return // selection changed while fetching; drop silently
		}
		if err != nil {
			log.Printf("model raster layer: %v", err)
			return
		}
		c.m.AddRaster(ov)
		c.modelRasterID = ov.ID
		return
	}

	table := c.opts.SoilTypes
	if option == "vegetation" {
		table = c.opts.Vegetations
	}
	ov, err := vector.Render(ctx, c.opts.HTTPClient, url, PaneOverlay,
		vector.CategoryStyle(table, c.opts.DefaultColor),
		vector.CategoryLabel(table, c.opts.DefaultColor))

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.loadSeq {
		return
	}
	if err != nil {
		log.Printf("model vector layer: %v", err)
		return
	}
	c.m.AddVector(ov)
	c.modelVectorID = ov.ID
}

func (c *Composer) buildLegend(in Input) *legend.Control {
	if in.DataOption == "" {
		return nil
	}
	ext := c.resolveExtent(in)
	sc := scale.New(scale.ForOption(in.DataOption), ext.Min, ext.Max)
	return legend.Build(in.DataOption, c.legendTitle(in.DataOption), sc,
		ext.Min, ext.Max, c.opts.SoilTypes, c.opts.Vegetations)
}

func (c *Composer) resolveExtent(in Input) extent.Extent {
	depth := c.opts.TemperatureDepthCm
	if in.DataOption == "Moisture" {
		depth = c.opts.MoistureDepthCm
	}
	return extent.Resolve(c.areas, in.ActiveAreaID, in.DataOption, depth)
}

func (c *Composer) legendTitle(option string) string {
	switch option {
	case "SOC":
		return "SOC [MgC/ha]"
	case "pH":
		return "pH"
	case "Temperature":
		return fmt.Sprintf("Avg. temperature (%d cm) [°C]", c.opts.TemperatureDepthCm)
	case "Moisture":
		return fmt.Sprintf("Moisture (%d cm) [raw counts]", c.opts.MoistureDepthCm)
	case "ndvi":
		return "NDVI"
	case "socStock":
		return "Output SOC stock [MgC/ha]"
	case "soilType":
		return "Input Soil type"
	case "vegetation":
		return "Input Vegetation"
	default:
		return option
	}
}

func (c *Composer) areaByID(id int) *catalog.Area {
	for i := range c.areas {
		if c.areas[i].ID == id {
			return &c.areas[i]
		}
	}
	return nil
}
