package layers

import (
	"fmt"
	"strings"
)

// AssetResolver locates the precomputed model artifact for an area and data
// option. An empty result means no artifact exists for that combination and
// nothing is rendered.
type AssetResolver func(areaName, option string) string

// assetExt maps each model option to its artifact type: raster grids for
// the continuous outputs, GeoJSON for the categorical inputs.
var assetExt = map[string]string{
	"ndvi":       "json",
	"socStock":   "json",
	"soilType":   "geojson",
	"vegetation": "geojson",
}

// StaticAssetResolver resolves artifacts laid out as
// {base}/{area-slug}/{option}.{ext}.
func StaticAssetResolver(baseURL string) AssetResolver {
	base := strings.TrimRight(baseURL, "/")
	return func(areaName, option string) string {
		ext, ok := assetExt[option]
		if !ok || areaName == "" {
			return ""
		}
		return fmt.Sprintf("%s/%s/%s.%s", base, slug(areaName), option, ext)
	}
}

// rasterOption reports whether a model option renders as a raster grid
// rather than a vector overlay.
func rasterOption(option string) bool {
	return option == "ndvi" || option == "socStock"
}

func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	return b.String()
}
