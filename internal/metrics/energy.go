package metrics

import (
	"math"
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

// Energy is the mean kinetic energy per node of the background field,
// taking every node as unit mass.
type Energy struct {
	mean
	name  string
	field *visuals.Field
}

func NewEnergy(f *visuals.Field) *Energy {
	return &Energy{name: "energy", field: f}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(t time.Duration) {
	nodes := e.field.Nodes()
	if len(nodes) == 0 {
		return
	}
	total := 0.0
	for _, n := range nodes {
		total += 0.5 * (n.VX*n.VX + n.VY*n.VY)
	}
	e.add(total / float64(len(nodes)))
}

// Spread is the mean node distance from the pointer, a rough measure of
// how strongly the field has gathered.
type Spread struct {
	mean
	name  string
	field *visuals.Field
}

func NewSpread(f *visuals.Field) *Spread {
	return &Spread{name: "pointer_spread", field: f}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(t time.Duration) {
	nodes := s.field.Nodes()
	if len(nodes) == 0 {
		return
	}
	px, py := s.field.Pointer()
	total := 0.0
	for _, n := range nodes {
		total += math.Hypot(n.X-px, n.Y-py)
	}
	s.add(total / float64(len(nodes)))
}
