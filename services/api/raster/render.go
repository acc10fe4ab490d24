package raster

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net/http"

	"github.com/soilbgc/alpine-soc-viewer/services/api/scale"
)

// Overlay is one rendered raster layer, bound to a dedicated map pane so it
// draws above base tiles but below vector overlays and markers.
type Overlay struct {
	ID      string     `json:"id"`
	Pane    string     `json:"pane"`
	Bounds  [4]float64 `json:"bounds"`
	Opacity float64    `json:"opacity"`
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	PNG     []byte     `json:"-"`
}

// Render fetches, decodes, recolors and encodes a raster overlay. The data
// band is mapped through a scale built from the gradient and the grid's
// reported band-0 range. Any fetch or decode failure is returned to the
// caller to log; nothing is partially rendered.
func Render(ctx context.Context, client *http.Client, url, pane string, opacity float64, resolution int, grad scale.Gradient) (*Overlay, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch raster %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch raster %s: unexpected status %s", url, resp.Status)
	}

	grid, err := Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	sc := scale.New(grad, grid.Mins[0], grid.Maxs[0])
	img := Colorize(grid, sc, resolution)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode raster overlay: %w", err)
	}

	bounds := img.Bounds()
	return &Overlay{
		ID:      overlayID(url),
		Pane:    pane,
		Bounds:  grid.Bounds,
		Opacity: opacity,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		PNG:     buf.Bytes(),
	}, nil
}

// Colorize rasterizes a grid into a straight-alpha NRGBA image, resampled
// so its longer side does not exceed resolution. The per-pixel rule follows
// the band count: 4 bands are pre-rendered RGBA passed through, 2 bands are
// data plus alpha, 1 band is data with full opacity; missing cells are
// transparent. Channel values are not premultiplied, so a partially
// transparent pixel keeps the exact scale color.
func Colorize(g *Grid, sc *scale.Scale, resolution int) *image.NRGBA {
	w, h := targetSize(g.Width, g.Height, resolution)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for oy := 0; oy < h; oy++ {
		sy := oy * g.Height / h
		for ox := 0; ox < w; ox++ {
			sx := ox * g.Width / w
			img.SetNRGBA(ox, oy, pixelColor(g, sc, sx, sy))
		}
	}
	return img
}

func pixelColor(g *Grid, sc *scale.Scale, x, y int) color.NRGBA {
	switch {
	case len(g.Bands) >= 4:
		r, rok := g.At(0, x, y)
		gr, gok := g.At(1, x, y)
		b, bok := g.At(2, x, y)
		a, aok := g.At(3, x, y)
		if !rok || !gok || !bok {
			return color.NRGBA{}
		}
		alpha := uint8(255)
		if aok {
			alpha = clamp255(a)
		}
		return color.NRGBA{R: clamp255(r), G: clamp255(gr), B: clamp255(b), A: alpha}

	case len(g.Bands) == 2:
		v, ok := g.At(0, x, y)
		if !ok {
			return color.NRGBA{}
		}
		alpha := uint8(255)
		if a, ok := g.At(1, x, y); ok {
			alpha = clamp255(a)
		}
		r, gr, b := sc.RGB(v)
		return color.NRGBA{R: r, G: gr, B: b, A: alpha}

	default:
		v, ok := g.At(0, x, y)
		if !ok {
			return color.NRGBA{}
		}
		r, gr, b := sc.RGB(v)
		return color.NRGBA{R: r, G: gr, B: b, A: 255}
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// targetSize shrinks (never grows) the grid to the requested resolution,
// preserving aspect ratio.
func targetSize(w, h, resolution int) (int, int) {
	if resolution <= 0 || (w <= resolution && h <= resolution) {
		return w, h
	}
	if w >= h {
		nh := h * resolution / w
		if nh < 1 {
			nh = 1
		}
		return resolution, nh
	}
	nw := w * resolution / h
	if nw < 1 {
		nw = 1
	}
	return nw, resolution
}

func overlayID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("raster-%x", h.Sum64())
}
