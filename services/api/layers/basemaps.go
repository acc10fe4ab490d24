package layers

// BaseLayer is one switchable base tile layer.
type BaseLayer struct {
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	Attribution   string  `json:"attribution"`
	Opacity       float64 `json:"opacity"`
	MaxNativeZoom int     `json:"maxNativeZoom,omitempty"`
	Default       bool    `json:"default,omitempty"`
}

// BaseLayers is the base map catalog served to the client.
var BaseLayers = []BaseLayer{
	{
		Name:        "SwissTopo",
		URL:         "https://wmts20.geo.admin.ch/1.0.0/ch.swisstopo.pixelkarte-farbe/default/current/3857/{z}/{x}/{y}.jpeg",
		Attribution: `&copy; <a href="https://www.swisstopo.admin.ch/">SwissTopo</a>`,
		Opacity:     0.5,
		Default:     true,
	},
	{
		Name:        "SwissTopo Aerial",
		URL:         "https://wmts20.geo.admin.ch/1.0.0/ch.swisstopo.swissimage/default/current/3857/{z}/{x}/{y}.jpeg",
		Attribution: `&copy; <a href="https://www.swisstopo.admin.ch/">SwissTopo</a>`,
		Opacity:     0.5,
	},
	{
		Name:        "SwissTopo swissALTI3D",
		URL:         "https://wmts20.geo.admin.ch/1.0.0/ch.swisstopo.swissalti3d-reliefschattierung/default/current/3857/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.swisstopo.admin.ch/">SwissTopo swissALTI3D</a>`,
		Opacity:     0.5,
	},
	{
		Name:          "SwissTopo Lithology GeoCover",
		URL:           "https://wmts20.geo.admin.ch/1.0.0/ch.swisstopo.geologie-geocover/default/current/3857/{z}/{x}/{y}.png",
		Attribution:   `&copy; <a href="https://www.swisstopo.admin.ch/">SwissTopo GeoCover</a>`,
		Opacity:       0.5,
		MaxNativeZoom: 16,
	},
	{
		Name:        "OpenStreetMap",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
		Opacity:     0.5,
	},
}
