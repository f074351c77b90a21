package visuals

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

// Loss is a bowl with a ripple: global minimum region near (0.5, 0.5).
func Loss(x, y float64) float64 {
	return 2*(x-0.5)*(x-0.5) + 3*(y-0.5)*(y-0.5) + 0.3*math.Sin(10*x)*math.Cos(10*y)
}

// Gradient estimates ∇Loss by central difference with step h.
func Gradient(x, y, h float64) (dx, dy float64) {
	dx = (Loss(x+h, y) - Loss(x-h, y)) / (2 * h)
	dy = (Loss(x, y+h) - Loss(x, y-h)) / (2 * h)
	return dx, dy
}

type DescentParams struct {
	LearningRate  float64       `yaml:"learning_rate"`
	Interval      time.Duration `yaml:"interval"`
	MaxIterations int           `yaml:"max_iterations"`
	Tolerance     float64       `yaml:"tolerance"`
	ResetPause    time.Duration `yaml:"reset_pause"`
	H             float64       `yaml:"h"`
	StartMinX     float64       `yaml:"start_min_x"`
	StartMaxX     float64       `yaml:"start_max_x"`
	StartMinY     float64       `yaml:"start_min_y"`
	StartMaxY     float64       `yaml:"start_max_y"`
	MinimumX      float64       `yaml:"minimum_x"`
	MinimumY      float64       `yaml:"minimum_y"`
}

func DefaultDescentParams() DescentParams {
	return DescentParams{
		LearningRate:  0.05,
		Interval:      80 * time.Millisecond,
		MaxIterations: 100,
		Tolerance:     0.02,
		ResetPause:    2 * time.Second,
		H:             0.001,
		StartMinX:     0.7,
		StartMaxX:     1.0,
		StartMinY:     0,
		StartMaxY:     0.3,
		MinimumX:      0.5,
		MinimumY:      0.5,
	}
}

type Phase int

const (
	Stepping Phase = iota
	Resetting
)

func (p Phase) String() string {
	switch p {
	case Stepping:
		return "stepping"
	case Resetting:
		return "resetting"
	default:
		return "unknown"
	}
}

var (
	descentAmber = color.NRGBA{R: 251, G: 191, B: 36, A: 255}
	descentGreen = color.NRGBA{R: 52, G: 211, B: 153, A: 255}
)

// Descent walks a point downhill on Loss in the unit square. Once a run
// converges or exhausts its budget, stepping is suspended for ResetPause and
// a fresh run starts from a random point.
type Descent struct {
	lifecycle
	params    DescentParams
	pos       Point
	path      []Point
	iteration int
	phase     Phase
	resets    int
	ticker    loop.ID
	heatmap   *image.NRGBA
}

func NewDescent(p DescentParams) *Descent {
	return &Descent{params: p}
}

func (d *Descent) Name() string { return "descent" }

func (d *Descent) Mount(env Env) error {
	if err := d.begin(env); err != nil {
		return err
	}
	w, h := env.Surface.Size()
	d.heatmap = Heatmap(int(w), int(h))
	d.resets = 0
	d.Restart()
	d.arm()
	d.animate(func(time.Duration) {
		d.Draw(d.env.Surface)
	})
	return nil
}

func (d *Descent) Unmount() {
	d.end()
	d.ticker = 0
}

func (d *Descent) arm() {
	d.ticker = d.every(d.params.Interval, d.Tick)
}

// Reset starts a run at p.
func (d *Descent) Reset(p Point) {
	d.pos = p
	d.path = []Point{p}
	d.iteration = 0
	d.phase = Stepping
}

// Restart starts a run from a random point in the start region.
func (d *Descent) Restart() {
	src := d.rand()
	x := rng.Range(src, d.params.StartMinX, d.params.StartMaxX)
	y := rng.Range(src, d.params.StartMinY, d.params.StartMaxY)
	d.Reset(Point{X: x, Y: y})
}

// Tick is the stepping timer body. It does nothing while a reset is pending.
func (d *Descent) Tick() {
	if d.phase == Resetting {
		return
	}
	d.Step()
	if !d.Done() {
		return
	}
	d.phase = Resetting
	if !d.mounted {
		return
	}
	d.after(d.params.ResetPause, func() {
		d.resets++
		d.Restart()
		// the next step lands one full interval after the restart
		d.cancel(d.ticker)
		d.arm()
	})
}

// Step moves one learning-rate step against the gradient. The new position
// is clamped to the unit square, so a step that would leave the loss
// surface stops at its edge.
func (d *Descent) Step() {
	gx, gy := Gradient(d.pos.X, d.pos.Y, d.params.H)
	d.pos = Point{
		X: clamp(d.pos.X-gx*d.params.LearningRate, 0, 1),
		Y: clamp(d.pos.Y-gy*d.params.LearningRate, 0, 1),
	}
	d.path = append(d.path, d.pos)
	d.iteration++
}

func (d *Descent) Converged() bool {
	return math.Abs(d.pos.X-d.params.MinimumX) < d.params.Tolerance &&
		math.Abs(d.pos.Y-d.params.MinimumY) < d.params.Tolerance
}

func (d *Descent) Done() bool {
	return d.iteration > d.params.MaxIterations || d.Converged()
}

func (d *Descent) Position() Point { return d.pos }
func (d *Descent) Iteration() int  { return d.iteration }
func (d *Descent) Phase() Phase    { return d.phase }
func (d *Descent) Resets() int     { return d.resets }

func (d *Descent) Path() []Point {
	out := make([]Point, len(d.path))
	copy(out, d.path)
	return out
}

// Heatmap rasterizes Loss over a w×h grid, darker where the loss is high.
func Heatmap(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			l := Loss(float64(px)/float64(w), float64(py)/float64(h))
			i := clamp(255-l*200, 0, 255)
			img.SetNRGBA(px, py, color.NRGBA{
				R: uint8(i * 0.1),
				G: uint8(i * 0.1),
				B: uint8(i * 0.15),
				A: 255,
			})
		}
	}
	return img
}

// Contours returns decorative elliptical rings around the surface centre,
// one per level 0.1, 0.3, ... 1.9.
func Contours(w, h float64) [][]Point {
	var rings [][]Point
	for k := 0; k < 10; k++ {
		level := 0.1 + 0.2*float64(k)
		radius := math.Sqrt(level/2) * w * 0.4
		var ring []Point
		for a := 0.0; a < 2*math.Pi; a += 0.1 {
			ring = append(ring, Point{
				X: w/2 + math.Cos(a)*radius,
				Y: h/2 + math.Sin(a)*radius*0.8,
			})
		}
		rings = append(rings, ring)
	}
	return rings
}

func (d *Descent) Draw(s surface.Surface) {
	w, h := s.Size()
	if d.heatmap != nil {
		s.Raster(d.heatmap)
	}

	for _, ring := range Contours(w, h) {
		xs := make([]float64, len(ring))
		ys := make([]float64, len(ring))
		for i, p := range ring {
			xs[i], ys[i] = p.X, p.Y
		}
		surface.Polyline(s, xs, ys, true, surface.White(0.1))
	}

	for i := 1; i < len(d.path); i++ {
		a, b := d.path[i-1], d.path[i]
		s.Line(a.X*w, a.Y*h, b.X*w, b.Y*h, surface.WithAlpha(descentAmber, 0.6))
	}
	for i, p := range d.path {
		if i == len(d.path)-1 {
			s.FillCircle(p.X*w, p.Y*h, 4, descentAmber)
			continue
		}
		s.FillCircle(p.X*w, p.Y*h, 1.5, surface.WithAlpha(descentAmber, 0.4))
	}
	s.FillCircle(d.pos.X*w, d.pos.Y*h, 12, surface.WithAlpha(descentAmber, 0.2))

	mx, my := d.params.MinimumX*w, d.params.MinimumY*h
	s.StrokeCircle(mx, my, 6, surface.WithAlpha(descentGreen, 0.5))
	s.Text(mx+10, my+4, "min", surface.WithAlpha(descentGreen, 0.6))
	s.Text(w-56, 10, fmt.Sprintf("iter: %d", d.iteration), surface.White(0.5))
}
