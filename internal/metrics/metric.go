package metrics

import (
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

// Metric samples a mounted component. Value aggregates every observation
// since the last Reset; Last is the most recent sample.
type Metric interface {
	Name() string
	Observe(t time.Duration)
	Value() float64
	Last() float64
	Reset()
}

// For returns the metrics that apply to c, or nil.
func For(c visuals.Component) []Metric {
	switch v := c.(type) {
	case *visuals.Field:
		return []Metric{NewEnergy(v), NewSpread(v)}
	case *visuals.Emitter:
		return []Metric{NewTurnover(v)}
	case *visuals.Attention:
		return []Metric{NewCausalMass(v), NewStability(v)}
	case *visuals.Flow:
		return []Metric{NewProgress(v), NewWraps(v)}
	case *visuals.Descent:
		return []Metric{NewLoss(v), NewResets(v)}
	default:
		return nil
	}
}

// Series keeps the Last value of a metric for every observation.
type Series struct {
	Metric Metric
	Times  []time.Duration
	Values []float64
}

func NewSeries(m Metric) *Series {
	return &Series{Metric: m}
}

func (s *Series) Observe(t time.Duration) {
	s.Metric.Observe(t)
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, s.Metric.Last())
}

// mean is the running average shared by most metrics here.
type mean struct {
	sum     float64
	last    float64
	samples int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.last = v
	m.samples++
}

func (m *mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *mean) Last() float64 { return m.last }

func (m *mean) Reset() { *m = mean{} }
