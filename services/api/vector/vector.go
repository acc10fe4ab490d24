// Package vector fetches categorical polygon datasets and styles them for
// the map's overlay pane.
package vector

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
)

// Style is the rendered appearance of one feature.
type Style struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

// StyleFunc maps a feature to its style; LabelFunc to its popup label.
type StyleFunc func(*geojson.Feature) Style
type LabelFunc func(*geojson.Feature) string

// Overlay is a styled feature collection bound to the overlay pane. Style
// and label are baked into each feature's properties so the client renders
// without any mapping tables of its own.
type Overlay struct {
	ID       string                     `json:"id"`
	Pane     string                     `json:"pane"`
	Features *geojson.FeatureCollection `json:"features"`
}

// CategoryStyle styles features by the category table keyed on the feature's
// "name" property. Codes are normalized before lookup; unmapped codes fall
// back to the raw code with the default color.
func CategoryStyle(table catalog.CategoryTable, defaultColor string) StyleFunc {
	return func(f *geojson.Feature) Style {
		raw := propertyName(f)
		cat := table.Lookup(raw, defaultColor)
		return Style{Color: cat.Color, FillColor: cat.Color, Weight: 2, FillOpacity: 0.75}
	}
}

// CategoryLabel labels features with the mapped display name, or the raw
// code when unmapped.
func CategoryLabel(table catalog.CategoryTable, defaultColor string) LabelFunc {
	return func(f *geojson.Feature) string {
		raw := propertyName(f)
		return table.Lookup(raw, defaultColor).Name
	}
}

func propertyName(f *geojson.Feature) string {
	if f.Properties == nil {
		return ""
	}
	if s, ok := f.Properties["name"].(string); ok {
		return s
	}
	return ""
}

// Render fetches a GeoJSON payload and returns one styled shape per feature
// with its popup label attached. Any failure is returned for the caller to
// log; no partial overlay is produced.
func Render(ctx context.Context, client *http.Client, url, pane string, styleFn StyleFunc, labelFn LabelFunc) (*Overlay, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch vector %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch vector %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vector %s: %w", url, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("parse vector %s: %w", url, err)
	}

	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		if styleFn != nil {
			f.Properties["style"] = styleFn(f)
		}
		if labelFn != nil {
			f.Properties["label"] = labelFn(f)
		}
	}

	h := fnv.New64a()
	h.Write([]byte(url))
	return &Overlay{ID: fmt.Sprintf("vector-%x", h.Sum64()), Pane: pane, Features: fc}, nil
}
