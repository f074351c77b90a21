//go:build cgo

package gui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/ambient/internal/surface"
)

var _ surface.Surface = (*Screen)(nil)

// Screen is an offscreen ebiten image components draw on, one pixel per
// logical unit.
type Screen struct {
	img    *ebiten.Image
	w, h   int
	raster *ebiten.Image
	buf    []byte
	labels map[string]*ebiten.Image
}

func NewScreen(w, h int) *Screen {
	s := &Screen{labels: make(map[string]*ebiten.Image)}
	s.Resize(float64(w), float64(h))
	return s
}

func (s *Screen) Image() *ebiten.Image { return s.img }

func (s *Screen) Size() (float64, float64) { return float64(s.w), float64(s.h) }

func (s *Screen) Resize(w, h float64) {
	nw, nh := int(w), int(h)
	if nw == s.w && nh == s.h && s.img != nil {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.w, s.h = nw, nh
	if nw > 0 && nh > 0 {
		s.img = ebiten.NewImage(nw, nh)
	} else {
		s.img = nil
	}
}

func (s *Screen) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *Screen) Line(x0, y0, x1, y1 float64, c color.NRGBA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, true)
}

func (s *Screen) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *Screen) StrokeCircle(cx, cy, r float64, c color.NRGBA) {
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), 1, c, true)
}

func (s *Screen) FillRect(x, y, w, h float64, c color.NRGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Screen) Text(x, y float64, text string, c color.NRGBA) {
	s.ScaledText(x, y, text, 1, c)
}

// ScaledText draws the debug font tinted by c. Labels are rendered once
// and cached.
func (s *Screen) ScaledText(x, y float64, text string, scale float64, c color.NRGBA) {
	label, ok := s.labels[text]
	if !ok {
		label = ebiten.NewImage(len(text)*6+2, 16)
		ebitenutil.DebugPrint(label, text)
		s.labels[text] = label
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	// the debug font's baseline sits about 12px below its origin
	op.GeoM.Translate(x, y-12*scale)
	op.ColorScale.ScaleWithColor(c)
	s.img.DrawImage(label, op)
}

func (s *Screen) Raster(img *image.NRGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if s.raster == nil || s.raster.Bounds().Dx() != b.Dx() || s.raster.Bounds().Dy() != b.Dy() {
		if s.raster != nil {
			s.raster.Deallocate()
		}
		s.raster = ebiten.NewImage(b.Dx(), b.Dy())
		s.buf = make([]byte, 4*b.Dx()*b.Dy())
	}
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		premultiply(s.buf[4*b.Dx()*y:4*b.Dx()*(y+1)], row[:4*b.Dx()])
	}
	s.raster.WritePixels(s.buf)
	s.img.DrawImage(s.raster, nil)
}
