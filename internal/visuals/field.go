package visuals

import (
	"math"
	"time"

	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

// pointer pull is scaled down once more after the falloff
const pullScale = 0.01

type FieldParams struct {
	AreaPerNode   float64 `yaml:"area_per_node"`
	InitialSpeed  float64 `yaml:"initial_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	PointerRadius float64 `yaml:"pointer_radius"`
	PointerPull   float64 `yaml:"pointer_pull"`
	RingRadius    float64 `yaml:"ring_radius"`
	LinkDistance  float64 `yaml:"link_distance"`
	Friction      float64 `yaml:"friction"`
}

func DefaultFieldParams() FieldParams {
	return FieldParams{
		AreaPerNode:   25000,
		InitialSpeed:  0.3,
		MinRadius:     0.5,
		MaxRadius:     2.0,
		PointerRadius: 200,
		PointerPull:   0.02,
		RingRadius:    100,
		LinkDistance:  150,
		Friction:      0.99,
	}
}

type Node struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Field is the background node network. Nodes drift, bounce off the
// viewport edges and lean toward the pointer; nearby nodes are linked.
type Field struct {
	lifecycle
	params        FieldParams
	nodes         []Node
	width, height float64
	px, py        float64
}

func NewField(p FieldParams) *Field {
	return &Field{params: p}
}

func (f *Field) Name() string { return "field" }

func (f *Field) Mount(env Env) error {
	if err := f.begin(env); err != nil {
		return err
	}
	w, h := env.Surface.Size()
	f.px, f.py = 0, 0
	f.Reset(w, h)
	if env.Input != nil {
		f.listen(env.Input.OnPointer(f.SetPointer))
		f.listen(env.Input.OnResize(f.Reset))
	}
	f.animate(func(time.Duration) {
		f.Step()
		f.Draw(f.env.Surface)
	})
	return nil
}

func (f *Field) Unmount() { f.end() }

// Reset discards every node and seeds a new field for a w x h viewport.
func (f *Field) Reset(w, h float64) {
	f.width, f.height = math.Max(w, 0), math.Max(h, 0)
	n := 0
	if f.params.AreaPerNode > 0 {
		n = int(math.Floor(f.width * f.height / f.params.AreaPerNode))
	}
	src := f.rand()
	half := f.params.InitialSpeed / 2
	f.nodes = make([]Node, n)
	for i := range f.nodes {
		f.nodes[i] = Node{
			X:      src.Float64() * f.width,
			Y:      src.Float64() * f.height,
			VX:     rng.Range(src, -half, half),
			VY:     rng.Range(src, -half, half),
			Radius: rng.Range(src, f.params.MinRadius, f.params.MaxRadius),
		}
	}
}

func (f *Field) SetPointer(x, y float64) {
	f.px, f.py = x, y
}

func (f *Field) Pointer() (x, y float64) { return f.px, f.py }

func (f *Field) Size() (w, h float64) { return f.width, f.height }

// Nodes returns a copy of the current entity field.
func (f *Field) Nodes() []Node {
	out := make([]Node, len(f.nodes))
	copy(out, f.nodes)
	return out
}

// Step advances every node by one frame.
func (f *Field) Step() {
	p := f.params
	for i := range f.nodes {
		n := &f.nodes[i]

		dx, dy := f.px-n.X, f.py-n.Y
		if d := math.Hypot(dx, dy); d < p.PointerRadius {
			force := (p.PointerRadius - d) / p.PointerRadius * p.PointerPull
			n.VX += dx * force * pullScale
			n.VY += dy * force * pullScale
		}

		n.X += n.VX
		n.Y += n.VY
		n.VX *= p.Friction
		n.VY *= p.Friction

		if n.X < 0 || n.X > f.width {
			n.VX = -n.VX
		}
		if n.Y < 0 || n.Y > f.height {
			n.VY = -n.VY
		}
		n.X = clamp(n.X, 0, f.width)
		n.Y = clamp(n.Y, 0, f.height)
	}
}

func (f *Field) Draw(s surface.Surface) {
	p := f.params
	for i := range f.nodes {
		a := f.nodes[i]
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			d := math.Hypot(b.X-a.X, b.Y-a.Y)
			if d < p.LinkDistance {
				s.Line(a.X, a.Y, b.X, b.Y, surface.White((1-d/p.LinkDistance)*0.15))
			}
		}
	}

	for _, n := range f.nodes {
		d := math.Hypot(f.px-n.X, f.py-n.Y)
		alpha := 0.3
		if d < p.PointerRadius {
			alpha = 0.6
		}
		s.FillCircle(n.X, n.Y, n.Radius, surface.White(alpha))
		if d < p.RingRadius {
			s.StrokeCircle(n.X, n.Y, n.Radius+3, surface.White((p.RingRadius-d)/p.RingRadius*0.3))
		}
	}
}
