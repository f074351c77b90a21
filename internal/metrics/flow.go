package metrics

import (
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

type Progress struct {
	mean
	name string
	flow *visuals.Flow
}

func NewProgress(f *visuals.Flow) *Progress {
	return &Progress{name: "flow_progress", flow: f}
}

func (p *Progress) Name() string { return p.name }

func (p *Progress) Observe(t time.Duration) {
	ps := p.flow.Particles()
	if len(ps) == 0 {
		return
	}
	total := 0.0
	for _, fp := range ps {
		total += fp.Progress
	}
	p.add(total / float64(len(ps)))
}

// Wraps counts completed journeys, detected as a particle whose progress
// went down since the previous observation. Observe at least once per
// cycle or some wraps are missed.
type Wraps struct {
	name  string
	flow  *visuals.Flow
	prev  []float64
	total int
	last  int
}

func NewWraps(f *visuals.Flow) *Wraps {
	return &Wraps{name: "flow_wraps", flow: f}
}

func (w *Wraps) Name() string { return w.name }

func (w *Wraps) Observe(t time.Duration) {
	ps := w.flow.Particles()
	w.last = 0
	if len(w.prev) == len(ps) {
		for i, fp := range ps {
			if fp.Progress < w.prev[i] {
				w.last++
			}
		}
	}
	w.total += w.last
	w.prev = w.prev[:0]
	for _, fp := range ps {
		w.prev = append(w.prev, fp.Progress)
	}
}

func (w *Wraps) Value() float64 { return float64(w.total) }

func (w *Wraps) Last() float64 { return float64(w.last) }

func (w *Wraps) Reset() {
	w.prev = nil
	w.total = 0
	w.last = 0
}
