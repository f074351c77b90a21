package visuals

import (
	"math"
	"time"

	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

// Formulas is the fixed set of label texts.
var Formulas = []string{
	"softmax(x)ᵢ = eˣⁱ / Σⱼeˣʲ",
	"Attention(Q,K,V) = softmax(QKᵀ/√dₖ)V",
	"∇θL(θ) = 𝔼[∇θlog π(a|s)R]",
	"L = -Σᵢyᵢlog(ŷᵢ)",
	"h = σ(Wx + b)",
	"θₜ₊₁ = θₜ - α∇L(θ)",
	"P(w|context) = softmax(Wh)",
	"GELU(x) = x·Φ(x)",
	"LayerNorm(x) = γ(x-μ)/σ + β",
	"FFN(x) = max(0, xW₁)W₂",
	"PE(pos,2i) = sin(pos/10000^(2i/d))",
	"KL(p||q) = Σp(x)log(p/q)",
	"H(X) = -Σp(x)log p(x)",
	"σ(z) = 1/(1+e⁻ᶻ)",
	"tanh(x) = (eˣ-e⁻ˣ)/(eˣ+e⁻ˣ)",
	"ReLU(x) = max(0,x)",
	"Adam: m←β₁m+(1-β₁)g",
	"BatchNorm: x̂ = (x-μ)/√(σ²+ε)",
	"Dropout: y = x·m/(1-p)",
	"cos_sim(a,b) = a·b/||a||||b||",
}

type EmitterParams struct {
	PoolSize    int           `yaml:"pool_size"`
	Interval    time.Duration `yaml:"interval"`
	MinX        float64       `yaml:"min_x"`
	MaxX        float64       `yaml:"max_x"`
	MinScale    float64       `yaml:"min_scale"`
	MaxScale    float64       `yaml:"max_scale"`
	MinDuration float64       `yaml:"min_duration"`
	MaxDuration float64       `yaml:"max_duration"`
	MaxDelay    float64       `yaml:"max_delay"`
	Opacity     float64       `yaml:"opacity"`
	Drift       float64       `yaml:"drift"`
}

func DefaultEmitterParams() EmitterParams {
	return EmitterParams{
		PoolSize:    8,
		Interval:    4 * time.Second,
		MinX:        10,
		MaxX:        90,
		MinScale:    0.7,
		MaxScale:    1.0,
		MinDuration: 15,
		MaxDuration: 35,
		MaxDelay:    5,
		Opacity:     0.06,
		Drift:       10,
	}
}

// Label is one floating equation. X and Y are percentages of the surface;
// Duration and Delay are seconds. ID is never reused, so a recycled slot
// always looks like a new element.
type Label struct {
	ID       uint64
	Text     string
	X, Y     float64
	Scale    float64
	Duration float64
	Delay    float64
	Born     time.Duration
}

// Emitter keeps a fixed pool of labels and swaps one out at random on every
// interval.
type Emitter struct {
	lifecycle
	params EmitterParams
	pool   []Label
	nextID uint64
}

func NewEmitter(p EmitterParams) *Emitter {
	return &Emitter{params: p}
}

func (e *Emitter) Name() string { return "equations" }

func (e *Emitter) Mount(env Env) error {
	if err := e.begin(env); err != nil {
		return err
	}
	e.Populate()
	e.every(e.params.Interval, e.Recycle)
	e.animate(func(now time.Duration) {
		e.Draw(e.env.Surface, now)
	})
	return nil
}

func (e *Emitter) Unmount() { e.end() }

// Populate fills the whole pool with fresh labels.
func (e *Emitter) Populate() {
	e.pool = make([]Label, e.params.PoolSize)
	for i := range e.pool {
		e.pool[i] = e.newLabel()
	}
}

// Recycle replaces one uniformly chosen slot.
func (e *Emitter) Recycle() {
	if len(e.pool) == 0 {
		return
	}
	i := rng.Index(e.rand(), len(e.pool))
	e.pool[i] = e.newLabel()
}

func (e *Emitter) newLabel() Label {
	src := e.rand()
	p := e.params
	l := Label{
		ID:       e.nextID,
		Text:     Formulas[rng.Index(src, len(Formulas))],
		X:        rng.Range(src, p.MinX, p.MaxX),
		Y:        src.Float64() * 100,
		Scale:    rng.Range(src, p.MinScale, p.MaxScale),
		Duration: rng.Range(src, p.MinDuration, p.MaxDuration),
		Delay:    src.Float64() * p.MaxDelay,
		Born:     e.clock(),
	}
	e.nextID++
	return l
}

func (e *Emitter) Labels() []Label {
	out := make([]Label, len(e.pool))
	copy(out, e.pool)
	return out
}

// Opacity returns the alpha of l at loop time now: hidden until its delay
// has passed, then rising and falling once per cycle.
func (e *Emitter) Opacity(l Label, now time.Duration) float64 {
	phase, ok := labelPhase(l, now)
	if !ok {
		return 0
	}
	return e.params.Opacity * math.Sin(math.Pi*phase)
}

func (e *Emitter) Draw(s surface.Surface, now time.Duration) {
	w, h := s.Size()
	for _, l := range e.pool {
		phase, ok := labelPhase(l, now)
		if !ok {
			continue
		}
		alpha := e.params.Opacity * math.Sin(math.Pi*phase)
		y := (l.Y - e.params.Drift*phase) / 100 * h
		surface.TextScaled(s, l.X/100*w, y, l.Text, l.Scale, surface.White(alpha))
	}
}

func labelPhase(l Label, now time.Duration) (float64, bool) {
	age := (now - l.Born).Seconds() - l.Delay
	if age < 0 || l.Duration <= 0 {
		return 0, false
	}
	return math.Mod(age/l.Duration, 1), true
}
