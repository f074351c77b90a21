// Package surface defines the raster drawing target shared by every
// animation and the helpers used to draw onto it.
//
// Coordinates are logical units: a 300x200 surface accepts x in [0,300)
// and y in [0,200) whatever the backing resolution. Hosts map logical
// units onto Braille dots, SVG user units or window pixels.
package surface

import (
	"image"
	"image/color"
	"math"
)

type Surface interface {
	Size() (w, h float64)
	Clear()
	Line(x0, y0, x1, y1 float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	Text(x, y float64, s string, c color.NRGBA)
	// Raster blits img with its top-left corner at the origin, one image
	// pixel per logical unit.
	Raster(img *image.NRGBA)
}

// Sizer is implemented by surfaces whose logical size can change.
type Sizer interface {
	Resize(w, h float64)
}

// RGBA builds a color with alpha given as a fraction, clamped to [0,1].
func RGBA(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func White(alpha float64) color.NRGBA { return RGBA(255, 255, 255, alpha) }

// Alpha reports the opacity of c as a fraction.
func Alpha(c color.NRGBA) float64 { return float64(c.A) / 255 }

// WithAlpha returns c with its opacity replaced.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	return RGBA(c.R, c.G, c.B, alpha)
}

// Glow approximates a radial gradient from c at the center to transparent at
// radius r with concentric discs.
func Glow(s Surface, cx, cy, r float64, c color.NRGBA) {
	const rings = 4
	base := Alpha(c)
	for i := rings; i >= 1; i-- {
		f := float64(i) / rings
		s.FillCircle(cx, cy, r*f, WithAlpha(c, base*(1-f)+base/rings))
	}
}

func StrokeRect(s Surface, x, y, w, h float64, c color.NRGBA) {
	s.Line(x, y, x+w, y, c)
	s.Line(x+w, y, x+w, y+h, c)
	s.Line(x+w, y+h, x, y+h, c)
	s.Line(x, y+h, x, y, c)
}

// Polyline joins consecutive points; closed links the last point back to the first.
func Polyline(s Surface, xs, ys []float64, closed bool, c color.NRGBA) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	for i := 1; i < n; i++ {
		s.Line(xs[i-1], ys[i-1], xs[i], ys[i], c)
	}
	if closed && n > 2 {
		s.Line(xs[n-1], ys[n-1], xs[0], ys[0], c)
	}
}

// Usable reports whether s can be drawn on.
func Usable(s Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Size()
	return w > 0 && h > 0
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TextScaler is implemented by surfaces that can draw text at a scale.
type TextScaler interface {
	ScaledText(x, y float64, s string, scale float64, c color.NRGBA)
}

// TextScaled draws scaled text where supported and plain text elsewhere.
func TextScaled(s Surface, x, y float64, text string, scale float64, c color.NRGBA) {
	if ts, ok := s.(TextScaler); ok {
		ts.ScaledText(x, y, text, scale, c)
		return
	}
	s.Text(x, y, text, c)
}
