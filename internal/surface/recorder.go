package surface

import (
	"image"
	"image/color"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpLine
	OpFillCircle
	OpStrokeCircle
	OpFillRect
	OpText
	OpRaster
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpLine:
		return "line"
	case OpFillCircle:
		return "fill_circle"
	case OpStrokeCircle:
		return "stroke_circle"
	case OpFillRect:
		return "fill_rect"
	case OpText:
		return "text"
	case OpRaster:
		return "raster"
	}
	return "unknown"
}

// Op is one recorded drawing call. Unused fields are zero.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	R              float64
	Text           string
	Color          color.NRGBA
}

// Recorder is a Surface that keeps the operations drawn since the last
// Clear. Headless runs use it to count draw calls; tests inspect Ops.
type Recorder struct {
	W, H   float64
	Ops    []Op
	Frames int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Resize(w, h float64) {
	r.W, r.H = w, h
}

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Frames++
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X0: cx, Y0: cy, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, X0: cx, Y0: cy, R: rad, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X0: x, Y0: y, X1: x + w, Y1: y + h, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X0: x, Y0: y, Text: s, Color: c})
}

func (r *Recorder) Raster(img *image.NRGBA) {
	op := Op{Kind: OpRaster}
	if img != nil {
		b := img.Bounds()
		op.X1, op.Y1 = float64(b.Dx()), float64(b.Dy())
	}
	r.Ops = append(r.Ops, op)
}

// Count returns how many operations of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the recorded operations of kind k in drawing order.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
