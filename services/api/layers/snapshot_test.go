package layers

import (
	"math"
	"testing"
	"time"
)

func settledComposer(t *testing.T, in Input, opts Options) *Composer {
	t.Helper()
	if opts.FlyDuration == 0 {
		opts.FlyDuration = time.Millisecond
	}
	handled := make(chan struct{}, 1)
	c := NewComposer(testAreas(), NewMap(), opts, Callbacks{
		OnRecenterHandled: func() { handled <- struct{}{} },
	})
	in.Recenter = true
	c.Apply(in)
	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("fly never settled")
	}
	return c
}

func TestCameraPadsActiveAreaBounds(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})
	c.Apply(Input{ActiveAreaID: 1, DataOption: "SOC"})

	cam := c.Snapshot().Camera
	if cam.Bounds == nil {
		t.Fatal("expected bounds for active area")
	}
	// Area spans lon 7.0..7.5, lat 46.0..46.3; pad ratio 0.2 per side.
	b := *cam.Bounds
	if math.Abs(b[0]-6.9) > 1e-9 || math.Abs(b[2]-7.6) > 1e-9 {
		t.Errorf("unexpected padded lon range [%v, %v]", b[0], b[2])
	}
	if math.Abs(b[1]-45.94) > 1e-9 || math.Abs(b[3]-46.36) > 1e-9 {
		t.Errorf("unexpected padded lat range [%v, %v]", b[1], b[3])
	}
	if cam.MaxBounds != swissBounds || cam.MinZoom != minZoom {
		t.Errorf("unexpected camera limits: %+v", cam)
	}
}

func TestCameraOverviewWithoutActiveArea(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})
	c.Apply(Input{DataOption: "SOC"})

	cam := c.Snapshot().Camera
	if cam.Bounds != nil {
		t.Error("expected no target bounds in overview")
	}
	if cam.Center == nil || cam.Zoom != overviewZoom {
		t.Fatalf("expected overview center and zoom, got %+v", cam)
	}
	center := *cam.Center
	if math.Abs(center[0]-7.25) > 1e-9 || math.Abs(center[1]-46.55) > 1e-9 {
		t.Errorf("unexpected overview center %v", center)
	}
}

func TestBoundariesAccentAndTooltip(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})
	c.Apply(Input{ActiveAreaID: 1, DataOption: "SOC"})

	st := c.Snapshot()
	if len(st.Boundaries) != 2 {
		t.Fatalf("expected 2 boundaries, got %d", len(st.Boundaries))
	}
	for _, b := range st.Boundaries {
		if b.AreaID == 1 {
			if !b.Active || b.Color != activeBoundaryColor || b.Tooltip {
				t.Errorf("active boundary misrendered: %+v", b)
			}
		} else {
			if b.Active || b.Color != "#000000" || !b.Tooltip {
				t.Errorf("inactive boundary misrendered: %+v", b)
			}
		}
		if b.Geometry == nil {
			t.Error("boundary geometry missing")
		}
	}
}

func TestPlotMarkersSOC(t *testing.T) {
	c := settledComposer(t, Input{ActiveAreaID: 1, DataOption: "SOC"}, Options{})

	st := c.Snapshot()
	if len(st.Markers) != 2 {
		t.Fatalf("expected 2 plot markers, got %d", len(st.Markers))
	}

	byID := map[int]Marker{}
	for _, m := range st.Markers {
		byID[m.ID] = m
	}

	sampled := byID[10]
	if sampled.Radius != 7 { // sqrt(49)
		t.Errorf("expected radius 7 from stock, got %v", sampled.Radius)
	}
	if sampled.Color == "#000000" {
		t.Error("sampled plot must use the scale color")
	}
	if len(sampled.Popup) != 2 || sampled.Popup[1].Value != "49.0 Mg ha⁻¹" {
		t.Errorf("unexpected popup: %+v", sampled.Popup)
	}

	unsampled := byID[11]
	if unsampled.Color != "#000000" {
		t.Errorf("unsampled plot must use the default color, got %s", unsampled.Color)
	}
	if unsampled.Radius != fixedPlotRadius {
		t.Errorf("unsampled plot keeps fixed radius, got %v", unsampled.Radius)
	}
}

func TestPlotMarkersPH(t *testing.T) {
	c := settledComposer(t, Input{ActiveAreaID: 1, DataOption: "pH"}, Options{})

	st := c.Snapshot()
	byID := map[int]Marker{}
	for _, m := range st.Markers {
		byID[m.ID] = m
	}

	m := byID[10]
	if m.Radius != fixedPlotRadius {
		t.Errorf("pH markers keep fixed radius, got %v", m.Radius)
	}
	if len(m.Popup) != 1 || m.Popup[0].Value != "5.10" {
		t.Errorf("unexpected pH popup: %+v", m.Popup)
	}
}

func TestSensorMarkers(t *testing.T) {
	c := settledComposer(t, Input{ActiveAreaID: 1, DataOption: "Temperature"}, Options{})

	st := c.Snapshot()
	if len(st.Markers) != 1 {
		t.Fatalf("expected 1 sensor marker, got %d", len(st.Markers))
	}
	m := st.Markers[0]
	if m.Kind != "sensor" || m.Radius != sensorRadius {
		t.Errorf("unexpected sensor marker: %+v", m)
	}
	// Depth buckets numerically sorted, 10 before 30.
	if len(m.Popup) != 2 || m.Popup[0].Label != "10 cm" || m.Popup[1].Label != "30 cm" {
		t.Errorf("unexpected popup order: %+v", m.Popup)
	}
	if m.Popup[0].Value != "5.20 °C" {
		t.Errorf("unexpected popup value: %s", m.Popup[0].Value)
	}
}

func TestSensorMarkerMissingDepthUsesDefaultColor(t *testing.T) {
	c := settledComposer(t, Input{ActiveAreaID: 1, DataOption: "Temperature"},
		Options{TemperatureDepthCm: 50})

	st := c.Snapshot()
	if len(st.Markers) != 1 {
		t.Fatalf("expected sensor marker, got %d markers", len(st.Markers))
	}
	if st.Markers[0].Color != "#000000" {
		t.Errorf("expected default color for missing bucket, got %s", st.Markers[0].Color)
	}
}

func TestMarkersAbsentForModelOptions(t *testing.T) {
	c := settledComposer(t, Input{ActiveAreaID: 1, DataOption: "ndvi", ViewMode: "model"}, Options{})

	if st := c.Snapshot(); len(st.Markers) != 0 {
		t.Errorf("model options render no markers, got %d", len(st.Markers))
	}
}

func TestDataOptionMenus(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})

	c.Apply(Input{DataOption: "SOC"})
	st := c.Snapshot()
	if len(st.DataOptions) != 4 || st.DataOptions[0].Key != "SOC" {
		t.Errorf("unexpected experimental menu: %+v", st.DataOptions)
	}

	c.Apply(Input{DataOption: "ndvi", ViewMode: "model"})
	st = c.Snapshot()
	if len(st.DataOptions) != 4 || st.DataOptions[1].Label != "Output SOC stock" {
		t.Errorf("unexpected model menu: %+v", st.DataOptions)
	}
}

func TestModeSwitchResetsForeignOption(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})

	// SOC belongs to the experimental menu; entering model mode falls back
	// to the model menu's first option.
	c.Apply(Input{ActiveAreaID: 1, DataOption: "SOC", ViewMode: "model"})
	if st := c.Snapshot(); st.DataOption != "ndvi" {
		t.Errorf("expected reset to ndvi, got %s", st.DataOption)
	}

	c.Apply(Input{ActiveAreaID: 1, DataOption: "socStock"})
	if st := c.Snapshot(); st.DataOption != "SOC" {
		t.Errorf("expected reset to SOC, got %s", st.DataOption)
	}
}

func TestSnapshotCarriesPanesAndBaseLayers(t *testing.T) {
	c := NewComposer(testAreas(), NewMap(), Options{}, Callbacks{})
	st := c.Snapshot()

	if len(st.Panes) != 4 {
		t.Fatalf("expected 4 panes, got %d", len(st.Panes))
	}
	if st.Panes[0].ZIndex >= st.Panes[1].ZIndex {
		t.Error("panes must be ordered by z-index")
	}
	if len(st.BaseLayers) == 0 || !st.BaseLayers[0].Default {
		t.Error("expected base layer catalog with a default entry")
	}
}

func TestStaticAssetResolver(t *testing.T) {
	resolve := StaticAssetResolver("https://assets.example.com/")

	if got := resolve("Arolla", "ndvi"); got != "https://assets.example.com/arolla/ndvi.json" {
		t.Errorf("unexpected raster url %s", got)
	}
	if got := resolve("Val d'Arolla", "soilType"); got != "https://assets.example.com/val_darolla/soilType.geojson" {
		t.Errorf("unexpected vector url %s", got)
	}
	if got := resolve("Arolla", "SOC"); got != "" {
		t.Errorf("non-model option must resolve to nothing, got %s", got)
	}
	if got := resolve("", "ndvi"); got != "" {
		t.Errorf("empty area must resolve to nothing, got %s", got)
	}
}

func TestMapLegendSlotReplaces(t *testing.T) {
	m := NewMap()
	if m.Legend() != nil {
		t.Fatal("new map has no legend")
	}

	c := NewComposer(testAreas(), m, Options{}, Callbacks{})
	c.Apply(Input{ActiveAreaID: 1, DataOption: "SOC"})
	first := m.Legend()
	c.Apply(Input{ActiveAreaID: 1, DataOption: "pH"})
	second := m.Legend()

	if first == nil || second == nil || first == second {
		t.Error("each selection must install a fresh legend control")
	}
	if second.Title != "pH" {
		t.Errorf("unexpected replacement title %s", second.Title)
	}
}

func TestMapOverlayRegistryIdempotentRemove(t *testing.T) {
	m := NewMap()
	m.RemoveRaster("missing")
	m.RemoveVector("missing")

	if rasters, vectors := m.Overlays(); len(rasters) != 0 || len(vectors) != 0 {
		t.Error("expected empty registries")
	}
}
