package visuals

import (
	"math"
	"time"

	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

type Layer struct {
	Nodes int     `yaml:"nodes"`
	X     float64 `yaml:"x"`
}

type Point struct {
	X, Y float64
}

type FlowParams struct {
	Layers     []Layer `yaml:"layers"`
	Particles  int     `yaml:"particles"`
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Paths      int     `yaml:"paths"`
	MinSize    float64 `yaml:"min_size"`
	MaxSize    float64 `yaml:"max_size"`
	MinOpacity float64 `yaml:"min_opacity"`
	MaxOpacity float64 `yaml:"max_opacity"`
}

func DefaultFlowParams() FlowParams {
	return FlowParams{
		Layers: []Layer{
			{Nodes: 4, X: 40},
			{Nodes: 6, X: 100},
			{Nodes: 8, X: 150},
			{Nodes: 6, X: 200},
			{Nodes: 3, X: 260},
		},
		Particles:  30,
		MinSpeed:   0.003,
		MaxSpeed:   0.007,
		Paths:      4,
		MinSize:    1,
		MaxSize:    3,
		MinOpacity: 0.3,
		MaxOpacity: 0.8,
	}
}

// FlowParticle travels through every layer once per cycle. X and Y hold the
// position computed on the last Advance.
type FlowParticle struct {
	Progress float64
	Speed    float64
	Path     int
	Size     float64
	Opacity  float64
	X, Y     float64
}

// Layout spaces each layer's nodes evenly over height. A negative node
// count is an empty layer.
func Layout(layers []Layer, height float64) [][]Point {
	out := make([][]Point, len(layers))
	for l, layer := range layers {
		n := max(layer.Nodes, 0)
		spacing := height / float64(n+1)
		pts := make([]Point, n)
		for i := range pts {
			pts[i] = Point{X: layer.X, Y: spacing * float64(i+1)}
		}
		out[l] = pts
	}
	return out
}

// Flow animates particles along layer-to-layer edges of a small network.
type Flow struct {
	lifecycle
	params    FlowParams
	nodes     [][]Point
	particles []FlowParticle
}

func NewFlow(p FlowParams) *Flow {
	return &Flow{params: p}
}

func (f *Flow) Name() string { return "flow" }

func (f *Flow) Mount(env Env) error {
	if err := f.begin(env); err != nil {
		return err
	}
	_, h := env.Surface.Size()
	f.Init(h)
	f.animate(func(time.Duration) {
		f.Advance()
		f.Draw(f.env.Surface)
	})
	return nil
}

func (f *Flow) Unmount() { f.end() }

// Init lays out the network for a surface of the given height and seeds the
// particle pool. A negative particle count seeds none.
func (f *Flow) Init(height float64) {
	f.nodes = Layout(f.params.Layers, height)
	src := f.rand()
	f.particles = make([]FlowParticle, max(f.params.Particles, 0))
	for i := range f.particles {
		p := &f.particles[i]
		p.Progress = src.Float64()
		p.Speed = rng.Range(src, f.params.MinSpeed, f.params.MaxSpeed)
		p.Path = rng.Index(src, f.params.Paths)
		p.Size = rng.Range(src, f.params.MinSize, f.params.MaxSize)
		p.Opacity = rng.Range(src, f.params.MinOpacity, f.params.MaxOpacity)
		pos := f.PositionAt(p.Progress, p.Path)
		p.X, p.Y = pos.X, pos.Y
	}
}

// Advance moves every particle forward. A particle that completes its
// journey is drawn at its arrival node for this frame, then wraps to the
// start with a new path and speed.
func (f *Flow) Advance() {
	src := f.rand()
	for i := range f.particles {
		p := &f.particles[i]
		p.Progress += p.Speed
		if p.Progress >= 1 {
			pos := f.PositionAt(1, p.Path)
			p.X, p.Y = pos.X, pos.Y
			p.Progress = 0
			p.Path = rng.Index(src, f.params.Paths)
			p.Speed = rng.Range(src, f.params.MinSpeed, f.params.MaxSpeed)
			continue
		}
		pos := f.PositionAt(p.Progress, p.Path)
		p.X, p.Y = pos.X, pos.Y
	}
}

// PositionAt maps overall progress in [0,1] onto the network: the integer
// part of progress*(layers-1) picks the layer pair, the fraction
// interpolates between node path%len on each side.
func (f *Flow) PositionAt(progress float64, path int) Point {
	if len(f.nodes) == 0 {
		return Point{}
	}
	total := len(f.nodes) - 1
	if total == 0 {
		return pick(f.nodes[0], path)
	}
	seg := clamp(progress, 0, 1) * float64(total)
	idx := int(math.Floor(seg))
	if idx >= total {
		return pick(f.nodes[total], path)
	}
	t := seg - float64(idx)
	from := pick(f.nodes[idx], path)
	to := pick(f.nodes[idx+1], path)
	return Point{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}

func pick(layer []Point, path int) Point {
	if len(layer) == 0 {
		return Point{}
	}
	n := len(layer)
	return layer[((path%n)+n)%n]
}

func (f *Flow) Nodes() [][]Point { return f.nodes }

func (f *Flow) Particles() []FlowParticle {
	out := make([]FlowParticle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *Flow) Draw(s surface.Surface) {
	edge := surface.White(0.05)
	for l := 0; l+1 < len(f.nodes); l++ {
		for _, a := range f.nodes[l] {
			for _, b := range f.nodes[l+1] {
				s.Line(a.X, a.Y, b.X, b.Y, edge)
			}
		}
	}

	for _, layer := range f.nodes {
		for _, n := range layer {
			surface.Glow(s, n.X, n.Y, 8, surface.White(0.2))
			s.FillCircle(n.X, n.Y, 2, surface.White(0.6))
		}
	}

	for _, p := range f.particles {
		surface.Glow(s, p.X, p.Y, p.Size*3, surface.White(p.Opacity))
		s.FillCircle(p.X, p.Y, p.Size, surface.White(p.Opacity))
	}
}
