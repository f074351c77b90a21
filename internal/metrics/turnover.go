package metrics

import (
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

// Turnover counts labels the emitter has replaced.
type Turnover struct {
	name    string
	emitter *visuals.Emitter
	seen    map[uint64]struct{}
	fresh   int
	last    int
}

func NewTurnover(e *visuals.Emitter) *Turnover {
	return &Turnover{name: "turnover", emitter: e}
}

func (tr *Turnover) Name() string { return tr.name }

func (tr *Turnover) Observe(t time.Duration) {
	first := tr.seen == nil
	if first {
		tr.seen = make(map[uint64]struct{})
	}
	tr.last = 0
	for _, l := range tr.emitter.Labels() {
		if _, ok := tr.seen[l.ID]; ok {
			continue
		}
		tr.seen[l.ID] = struct{}{}
		if !first {
			tr.last++
		}
	}
	tr.fresh += tr.last
}

func (tr *Turnover) Value() float64 { return float64(tr.fresh) }

func (tr *Turnover) Last() float64 { return float64(tr.last) }

func (tr *Turnover) Reset() {
	tr.seen = nil
	tr.fresh = 0
	tr.last = 0
}
