package metrics

import (
	"math"
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

// Stability is the fraction of observations in which every cell above the
// attention diagonal was exactly zero.
type Stability struct {
	name       string
	attention  *visuals.Attention
	violations int
	samples    int
	last       float64
}

func NewStability(a *visuals.Attention) *Stability {
	return &Stability{
		name:      "causal_stability",
		attention: a,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(t time.Duration) {
	s.samples++
	s.last = 1
	for _, c := range s.attention.Cells() {
		if !c.Causal() && c.Value != 0 {
			s.violations++
			s.last = 0
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Last() float64 { return s.last }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.last = 0
}

// CausalMass is the mean weight of the causal cells.
type CausalMass struct {
	mean
	name      string
	attention *visuals.Attention
}

func NewCausalMass(a *visuals.Attention) *CausalMass {
	return &CausalMass{name: "causal_mass", attention: a}
}

func (c *CausalMass) Name() string { return c.name }

func (c *CausalMass) Observe(t time.Duration) {
	total, n := 0.0, 0
	for _, cell := range c.attention.Cells() {
		if cell.Causal() {
			total += math.Abs(cell.Value)
			n++
		}
	}
	if n == 0 {
		return
	}
	c.add(total / float64(n))
}
