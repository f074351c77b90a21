package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// SVG is a surface that collects drawing calls as SVG elements. Clear
// drops everything drawn so far, so after a run the document holds the
// last frame only.
type SVG struct {
	Width, Height float64
	Background    string

	body strings.Builder
}

func NewSVG(w, h float64) *SVG {
	return &SVG{Width: w, Height: h, Background: "#0a0a0a"}
}

func (s *SVG) Size() (float64, float64) { return s.Width, s.Height }

func (s *SVG) Resize(w, h float64) {
	s.Width, s.Height = w, h
}

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) Line(x0, y0, x1, y1 float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" stroke-width="1"/>`+"\n",
		x0, y0, x1, y1, hex(c), opacity(c))
}

func (s *SVG) FillCircle(cx, cy, r float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
		cx, cy, r, hex(c), opacity(c))
}

func (s *SVG) StrokeCircle(cx, cy, r float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-opacity="%.3f"/>`+"\n",
		cx, cy, r, hex(c), opacity(c))
}

func (s *SVG) FillRect(x, y, w, h float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.3f"/>`+"\n",
		x, y, w, h, hex(c), opacity(c))
}

func (s *SVG) Text(x, y float64, text string, c color.NRGBA) {
	s.ScaledText(x, y, text, 1, c)
}

func (s *SVG) ScaledText(x, y float64, text string, scale float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" fill-opacity="%.3f">%s</text>`+"\n",
		x, y, 10*scale, hex(c), opacity(c), html.EscapeString(text))
}

// Raster embeds img as a PNG stretched over the whole document.
func (s *SVG) Raster(img *image.NRGBA) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	fmt.Fprintf(&s.body, `<image x="0" y="0" width="%.0f" height="%.0f" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		s.Width, s.Height, base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Elements reports how many shapes the current frame holds.
func (s *SVG) Elements() int {
	return strings.Count(s.body.String(), "\n")
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
