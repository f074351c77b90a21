package visuals

import (
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/ambient/internal/surface"
)

// Block is one layer of the transformer stack.
type Block struct {
	Key         string
	Label       string
	Sublabel    string
	Title       string
	Description string
	Equation    string
	Color       color.NRGBA
}

var Blocks = []Block{
	{
		Key:         "input",
		Label:       "Input Embedding",
		Sublabel:    "+ Positional Encoding",
		Title:       "Input Embeddings",
		Description: "Token IDs are converted to dense vectors and combined with positional encodings.",
		Equation:    "E(x) = TokenEmbed(x) + PosEmbed(pos)",
		Color:       color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
	},
	{
		Key:         "attention",
		Label:       "Multi-Head Attention",
		Sublabel:    "h=8, dₖ=64",
		Title:       "Multi-Head Attention",
		Description: "Parallel attention heads learn different relationship patterns between tokens.",
		Equation:    "MultiHead(Q,K,V) = Concat(head₁,...,headₕ)Wᴼ",
		Color:       color.NRGBA{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff},
	},
	{
		Key:         "norm1",
		Label:       "Add & Norm",
		Title:       "Layer Normalization",
		Description: "Normalizes activations to stabilize training and improve gradient flow.",
		Equation:    "LayerNorm(x) = γ · (x-μ)/σ + β",
		Color:       color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	},
	{
		Key:         "ffn",
		Label:       "Feed Forward",
		Sublabel:    "d_ff=2048",
		Title:       "Feed-Forward Network",
		Description: "Two-layer MLP that processes each position independently.",
		Equation:    "FFN(x) = GELU(xW₁ + b₁)W₂ + b₂",
		Color:       color.NRGBA{R: 0x34, G: 0xd3, B: 0x99, A: 0xff},
	},
	{
		Key:         "norm2",
		Label:       "Add & Norm",
		Title:       "Layer Normalization",
		Description: "Second normalization layer for the residual connection.",
		Equation:    "output = LayerNorm(x + FFN(x))",
		Color:       color.NRGBA{R: 0xa7, G: 0x8b, B: 0xfa, A: 0xff},
	},
	{
		Key:         "output",
		Label:       "Output Projection",
		Sublabel:    "→ Vocabulary",
		Title:       "Output Projection",
		Description: "Projects hidden states to vocabulary logits for next token prediction.",
		Equation:    "P(next) = softmax(hWᵥ)",
		Color:       color.NRGBA{R: 0xfb, G: 0xbf, B: 0x24, A: 0xff},
	},
}

type TransformerParams struct {
	Active     string  `yaml:"active"`
	ArrowSpeed float64 `yaml:"arrow_speed"`
}

func DefaultTransformerParams() TransformerParams {
	return TransformerParams{Active: "attention", ArrowSpeed: 1.5}
}

// Transformer is a clickable stack of transformer blocks. The active
// block fills in and the arrow below it carries a moving pulse.
type Transformer struct {
	lifecycle
	params  TransformerParams
	active  int
	phase   float64
	last    time.Duration
	spring  harmonica.Spring
	fill    float64
	fillVel float64
}

func NewTransformer(p TransformerParams) *Transformer {
	t := &Transformer{
		params: p,
		spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.8),
	}
	if i := blockIndex(p.Active); i >= 0 {
		t.active = i
	} else {
		t.active = blockIndex("attention")
	}
	return t
}

func (t *Transformer) Name() string { return "transformer" }

func (t *Transformer) Mount(env Env) error {
	if err := t.begin(env); err != nil {
		return err
	}
	t.last = env.Scheduler.Now()
	t.phase, t.fill, t.fillVel = 0, 0, 0
	t.animate(func(now time.Duration) {
		t.Animate(now)
		t.Draw(t.env.Surface)
	})
	return nil
}

func (t *Transformer) Unmount() { t.end() }

func blockIndex(key string) int {
	for i, b := range Blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

func (t *Transformer) Select(key string) error {
	i := blockIndex(key)
	if i < 0 {
		return ErrUnknownBlock
	}
	t.activate(i)
	return nil
}

func (t *Transformer) Next() { t.activate((t.active + 1) % len(Blocks)) }

func (t *Transformer) Prev() { t.activate((t.active - 1 + len(Blocks)) % len(Blocks)) }

func (t *Transformer) activate(i int) {
	if i == t.active {
		return
	}
	t.active = i
	t.phase, t.fill, t.fillVel = 0, 0, 0
}

func (t *Transformer) Active() Block { return Blocks[t.active] }

// Fill is the eased fill level of the active block, heading to 1.
func (t *Transformer) Fill() float64 { return t.fill }

// Phase is the arrow pulse position in [0,1).
func (t *Transformer) Phase() float64 { return t.phase }

func (t *Transformer) Animate(now time.Duration) {
	dt := (now - t.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	t.last = now
	t.phase = math.Mod(t.phase+dt*t.params.ArrowSpeed, 1)
	t.fill, t.fillVel = t.spring.Update(t.fill, t.fillVel, 1)
}

func (t *Transformer) Draw(s surface.Surface) {
	w, h := s.Size()
	const pad, arrow = 8.0, 14.0
	n := float64(len(Blocks))
	bh := (h - 2*pad - arrow*(n-1)) / n
	if bh <= 0 {
		return
	}
	bw := math.Min(w-2*pad, 200)
	x := (w - bw) / 2

	for i, b := range Blocks {
		y := pad + float64(i)*(bh+arrow)
		border := surface.White(0.15)
		if i == t.active {
			border = surface.WithAlpha(b.Color, 0.9)
			s.FillRect(x, y, bw*clamp(t.fill, 0, 1), bh, surface.WithAlpha(b.Color, 0.15))
			s.FillCircle(x+bw, y+bh/2, 2, b.Color)
		}
		surface.StrokeRect(s, x, y, bw, bh, border)
		s.Text(x+6, y+bh/2-2, b.Label, surface.White(0.9))
		if b.Sublabel != "" {
			s.Text(x+6, y+bh/2+8, b.Sublabel, surface.White(0.45))
		}

		if i == len(Blocks)-1 {
			continue
		}
		ax, ay := w/2, y+bh
		s.Line(ax, ay, ax, ay+arrow, surface.White(0.2))
		if i == t.active {
			s.FillCircle(ax, ay+arrow*t.phase, 1.5, surface.White(0.9))
		}
	}
}
