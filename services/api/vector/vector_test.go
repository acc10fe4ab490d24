package vector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb/geojson"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
)

const soilTypeFC = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "Histo-Fluviosol"},
			"geometry": {"type": "Polygon", "coordinates": [[[7.0,46.0],[7.1,46.0],[7.1,46.1],[7.0,46.0]]]}
		},
		{
			"type": "Feature",
			"properties": {"name": "Gleysol"},
			"geometry": {"type": "Polygon", "coordinates": [[[7.2,46.0],[7.3,46.0],[7.3,46.1],[7.2,46.0]]]}
		}
	]
}`

func TestCategoryStyleNormalizesCodes(t *testing.T) {
	fn := CategoryStyle(catalog.SoilTypes, "#000000")

	f := geojson.NewFeature(nil)
	f.Properties = geojson.Properties{"name": "Histo-Fluviosol"}
	st := fn(f)
	if st.Color != "#67a9cf" || st.FillColor != "#67a9cf" {
		t.Errorf("expected mapped color #67a9cf, got %+v", st)
	}
	if st.Weight != 2 || st.FillOpacity != 0.75 {
		t.Errorf("unexpected stroke settings: %+v", st)
	}
}

func TestCategoryStyleFallback(t *testing.T) {
	fn := CategoryStyle(catalog.SoilTypes, "#000000")

	f := geojson.NewFeature(nil)
	f.Properties = geojson.Properties{"name": "Gleysol"}
	if st := fn(f); st.Color != "#000000" {
		t.Errorf("expected default color for unmapped code, got %s", st.Color)
	}

	// No properties at all.
	bare := geojson.NewFeature(nil)
	bare.Properties = nil
	if st := fn(bare); st.Color != "#000000" {
		t.Errorf("expected default color for missing name, got %s", st.Color)
	}
}

func TestCategoryLabel(t *testing.T) {
	fn := CategoryLabel(catalog.Vegetations, "#000000")

	f := geojson.NewFeature(nil)
	f.Properties = geojson.Properties{"name": "RV"}
	if got := fn(f); got != "Rhododendron-Vaccinion" {
		t.Errorf("expected display name, got %s", got)
	}

	f.Properties["name"] = "XYZ"
	if got := fn(f); got != "XYZ" {
		t.Errorf("expected raw code for unmapped label, got %s", got)
	}
}

func TestRenderBakesStyleAndLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(soilTypeFC))
	}))
	defer srv.Close()

	ov, err := Render(context.Background(), srv.Client(), srv.URL+"/arolla/soilType.geojson", "overlayPane",
		CategoryStyle(catalog.SoilTypes, "#000000"),
		CategoryLabel(catalog.SoilTypes, "#000000"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if ov.Pane != "overlayPane" {
		t.Errorf("unexpected pane %s", ov.Pane)
	}
	if len(ov.Features.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(ov.Features.Features))
	}

	mapped := ov.Features.Features[0]
	if st, ok := mapped.Properties["style"].(Style); !ok || st.Color != "#67a9cf" {
		t.Errorf("expected baked style #67a9cf, got %v", mapped.Properties["style"])
	}
	if mapped.Properties["label"] != "Histo-Fluviosol" {
		t.Errorf("expected baked label, got %v", mapped.Properties["label"])
	}

	fallback := ov.Features.Features[1]
	if st, ok := fallback.Properties["style"].(Style); !ok || st.Color != "#000000" {
		t.Errorf("expected fallback style for unmapped feature, got %v", fallback.Properties["style"])
	}
}

func TestRenderFailuresProduceNoOverlay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	if ov, err := Render(context.Background(), srv.Client(), srv.URL, "overlayPane", nil, nil); err == nil || ov != nil {
		t.Fatalf("expected error and nil overlay, got %v err=%v", ov, err)
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not geojson"))
	}))
	defer bad.Close()

	if _, err := Render(context.Background(), bad.Client(), bad.URL, "overlayPane", nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}
