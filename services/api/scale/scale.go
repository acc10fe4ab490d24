// Package scale maps numeric domains to colors for markers, rasters and
// legends.
package scale

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Gradient is an ordered sequence of stop colors, interpolated linearly in
// RGB between neighbours.
type Gradient []colorful.Color

// NewGradient parses hex stop colors into a gradient. Unparseable stops are
// skipped rather than propagated.
func NewGradient(stops ...string) Gradient {
	g := make(Gradient, 0, len(stops))
	for _, s := range stops {
		c, err := colorful.Hex(s)
		if err != nil {
			continue
		}
		g = append(g, c)
	}
	return g
}

// Viridis is the perceptually uniform scale used for stock/NDVI-class
// quantities.
var Viridis = NewGradient(
	"#440154", "#482374", "#404387", "#345e8d", "#29788e",
	"#20908c", "#22a784", "#44be70", "#79d151", "#bdde26", "#fde725",
)

// Greens is the ramp for the remaining continuous field quantities.
var Greens = NewGradient("#ffffcc", "#c2e699", "#31a354", "#006837")

// ModelGreens is the ramp for non-stock model scalars.
var ModelGreens = NewGradient("#edf8e9", "#bae4b3", "#74c476", "#238b45", "#005a32")

// ForOption is the per-data-option gradient policy.
func ForOption(option string) Gradient {
	switch option {
	case "socStock", "ndvi":
		return Viridis
	case "SOC", "pH", "Temperature", "Moisture":
		return Greens
	default:
		return ModelGreens
	}
}

// Scale maps a numeric domain [min, max] through a gradient.
type Scale struct {
	grad     Gradient
	min, max float64
}

// New builds a scale over the given domain. A degenerate domain (min >= max,
// or NaN endpoints) resolves to [0, 1] so color computation never divides by
// zero. An empty gradient falls back to Greens.
func New(grad Gradient, min, max float64) *Scale {
	if len(grad) == 0 {
		grad = Greens
	}
	if math.IsNaN(min) || math.IsNaN(max) || min >= max {
		min, max = 0, 1
	}
	return &Scale{grad: grad, min: min, max: max}
}

// Domain returns the scale's effective [min, max].
func (s *Scale) Domain() (min, max float64) {
	return s.min, s.max
}

// At returns the hex color for a value. Values outside the domain clamp to
// the nearest endpoint.
func (s *Scale) At(v float64) string {
	return s.colorAt(v).Hex()
}

// RGB returns the color for a value as 8-bit channels, for raster pixels.
func (s *Scale) RGB(v float64) (r, g, b uint8) {
	c := s.colorAt(v)
	cr, cg, cb := c.RGB255()
	return cr, cg, cb
}

func (s *Scale) colorAt(v float64) colorful.Color {
	if math.IsNaN(v) {
		return s.grad[0]
	}
	t := (v - s.min) / (s.max - s.min)
	if t <= 0 {
		return s.grad[0]
	}
	if t >= 1 {
		return s.grad[len(s.grad)-1]
	}

	pos := t * float64(len(s.grad)-1)
	lower := int(pos)
	upper := lower + 1
	if upper >= len(s.grad) {
		upper = len(s.grad) - 1
	}
	return s.grad[lower].BlendRgb(s.grad[upper], pos-float64(lower)).Clamped()
}

// Samples returns n evenly spaced colors across the domain, min to max, for
// legend gradient strips.
func (s *Scale) Samples(n int) []string {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{s.At(s.min)}
	}
	out := make([]string, n)
	step := (s.max - s.min) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = s.At(s.min + float64(i)*step)
	}
	return out
}
