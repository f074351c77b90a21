package surface

import (
	"image"
	"testing"
)

func TestRGBAClampsAlpha(t *testing.T) {
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{3, 255},
	}
	for _, tt := range tests {
		if got := White(tt.alpha).A; got != tt.want {
			t.Errorf("alpha %f: expected %d, got %d", tt.alpha, tt.want, got)
		}
	}
}

func TestUsable(t *testing.T) {
	if Usable(nil) {
		t.Error("nil surface should not be usable")
	}
	if Usable(NewRecorder(0, 200)) {
		t.Error("zero-width surface should not be usable")
	}
	if !Usable(NewRecorder(300, 200)) {
		t.Error("sized surface should be usable")
	}
}

func TestRecorderCountsAndClears(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Line(0, 0, 1, 1, White(1))
	r.FillCircle(5, 5, 2, White(1))
	r.FillCircle(6, 6, 2, White(1))
	r.Raster(image.NewNRGBA(image.Rect(0, 0, 4, 3)))

	if r.Count(OpFillCircle) != 2 {
		t.Errorf("expected 2 circles, got %d", r.Count(OpFillCircle))
	}
	raster := r.Filter(OpRaster)
	if len(raster) != 1 || raster[0].X1 != 4 || raster[0].Y1 != 3 {
		t.Errorf("unexpected raster op: %+v", raster)
	}

	r.Clear()
	if len(r.Ops) != 0 || r.Frames != 1 {
		t.Errorf("clear should drop ops and count a frame, got %d ops %d frames", len(r.Ops), r.Frames)
	}
}

func TestStrokeRectDrawsFourEdges(t *testing.T) {
	r := NewRecorder(100, 100)
	StrokeRect(r, 10, 10, 20, 5, White(1))
	if r.Count(OpLine) != 4 {
		t.Errorf("expected 4 lines, got %d", r.Count(OpLine))
	}
}

func TestPolyline(t *testing.T) {
	r := NewRecorder(100, 100)
	xs := []float64{0, 10, 10}
	ys := []float64{0, 0, 10}
	Polyline(r, xs, ys, false, White(1))
	if r.Count(OpLine) != 2 {
		t.Errorf("open polyline: expected 2 lines, got %d", r.Count(OpLine))
	}
	r.Clear()
	Polyline(r, xs, ys, true, White(1))
	if r.Count(OpLine) != 3 {
		t.Errorf("closed polyline: expected 3 lines, got %d", r.Count(OpLine))
	}
}

func TestGlowFadesOutward(t *testing.T) {
	r := NewRecorder(100, 100)
	Glow(r, 50, 50, 8, White(0.4))
	discs := r.Filter(OpFillCircle)
	if len(discs) != 4 {
		t.Fatalf("expected 4 discs, got %d", len(discs))
	}
	if discs[0].R != 8 {
		t.Errorf("outermost disc should have full radius, got %f", discs[0].R)
	}
	for i := 1; i < len(discs); i++ {
		if discs[i].R >= discs[i-1].R {
			t.Error("discs should shrink toward the center")
		}
		if discs[i].Color.A < discs[i-1].Color.A {
			t.Error("discs should brighten toward the center")
		}
	}
}
