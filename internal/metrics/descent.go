package metrics

import (
	"time"

	"github.com/san-kum/ambient/internal/visuals"
)

// Loss tracks the loss at the descent position.
type Loss struct {
	mean
	name    string
	descent *visuals.Descent
}

func NewLoss(d *visuals.Descent) *Loss {
	return &Loss{name: "loss", descent: d}
}

func (l *Loss) Name() string { return l.name }

func (l *Loss) Observe(t time.Duration) {
	p := l.descent.Position()
	l.add(visuals.Loss(p.X, p.Y))
}

// Resets reports how many runs the descent has restarted since the first
// observation.
type Resets struct {
	name    string
	descent *visuals.Descent
	base    int
	seen    bool
	last    int
}

func NewResets(d *visuals.Descent) *Resets {
	return &Resets{name: "resets", descent: d}
}

func (r *Resets) Name() string { return r.name }

func (r *Resets) Observe(t time.Duration) {
	if !r.seen {
		r.base = r.descent.Resets()
		r.seen = true
	}
	r.last = r.descent.Resets() - r.base
}

func (r *Resets) Value() float64 { return float64(r.last) }

func (r *Resets) Last() float64 { return float64(r.last) }

func (r *Resets) Reset() {
	r.seen = false
	r.base = 0
	r.last = 0
}
