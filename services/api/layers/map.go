// Package layers composes the catchment map: base tiles, boundary polygons,
// markers, legend and model overlays.
package layers

import (
	"sync"

	"github.com/soilbgc/alpine-soc-viewer/services/api/legend"
	"github.com/soilbgc/alpine-soc-viewer/services/api/raster"
	"github.com/soilbgc/alpine-soc-viewer/services/api/vector"
)

// Pane names, ordered by z-index: rasters draw above base tiles but below
// vector overlays and markers.
const (
	PaneTiles   = "tilePane"
	PaneRaster  = "rasterPane"
	PaneOverlay = "overlayPane"
	PaneMarker  = "markerPane"
)

// Pane is one rendering layer of the map.
type Pane struct {
	Name   string `json:"name"`
	ZIndex int    `json:"zIndex"`
}

// Panes is the fixed pane stack.
var Panes = []Pane{
	{Name: PaneTiles, ZIndex: 200},
	{Name: PaneRaster, ZIndex: 450},
	{Name: PaneOverlay, ZIndex: 500},
	{Name: PaneMarker, ZIndex: 600},
}

// Map is the single shared map instance: it owns the overlay registry and
// the one legend-control slot. It is mutated only by the composer and is
// safe for concurrent snapshots.
type Map struct {
	mu      sync.Mutex
	rasters map[string]*raster.Overlay
	vectors map[string]*vector.Overlay
	legend  *legend.Control
}

// NewMap creates an empty map composition.
func NewMap() *Map {
	return &Map{
		rasters: make(map[string]*raster.Overlay),
		vectors: make(map[string]*vector.Overlay),
	}
}

// AddRaster attaches a raster overlay.
func (m *Map) AddRaster(ov *raster.Overlay) {
	if ov == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rasters[ov.ID] = ov
}

// RemoveRaster detaches a raster overlay. Removing an absent id is a no-op.
func (m *Map) RemoveRaster(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rasters, id)
}

// Raster returns an attached raster overlay by id, e.g. to serve its PNG.
func (m *Map) Raster(id string) (*raster.Overlay, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ov, ok := m.rasters[id]
	return ov, ok
}

// AddVector attaches a vector overlay.
func (m *Map) AddVector(ov *vector.Overlay) {
	if ov == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors[ov.ID] = ov
}

// RemoveVector detaches a vector overlay. Removing an absent id is a no-op.
func (m *Map) RemoveVector(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vectors, id)
}

// SetLegend replaces the current legend control. The old control is detached
// first; nil clears the slot. There is never more than one legend attached.
func (m *Map) SetLegend(ctl *legend.Control) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legend = ctl
}

// Legend returns the currently attached legend control, if any.
func (m *Map) Legend() *legend.Control {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.legend
}

// Overlays returns the attached overlays for a snapshot.
func (m *Map) Overlays() (rasters []*raster.Overlay, vectors []*vector.Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ov := range m.rasters {
		rasters = append(rasters, ov)
	}
	for _, ov := range m.vectors {
		vectors = append(vectors, ov)
	}
	return rasters, vectors
}
