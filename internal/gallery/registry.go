package gallery

import (
	"errors"
	"fmt"

	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/visuals"
)

var ErrUnknownComponent = errors.New("gallery: unknown component")

// Entry describes a registered component. A zero Width or Height means
// the component fills the viewport.
type Entry struct {
	Name        string
	Description string
	Width       float64
	Height      float64
	Background  bool
	build       func() visuals.Component
}

type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry registers every component with parameters from cfg.
func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Registry{entries: make(map[string]Entry)}

	r.add(Entry{
		Name:        "field",
		Description: "drifting node network that leans toward the pointer",
		Background:  true,
		build:       func() visuals.Component { return visuals.NewField(cfg.Field) },
	})
	r.add(Entry{
		Name:        "equations",
		Description: "floating formulas recycled every few seconds",
		Background:  true,
		build:       func() visuals.Component { return visuals.NewEmitter(cfg.Equations) },
	})
	r.add(Entry{
		Name:        "attention",
		Description: "causal self-attention heatmap",
		Width:       300,
		Height:      260,
		build:       func() visuals.Component { return visuals.NewAttention(cfg.Attention) },
	})
	r.add(Entry{
		Name:        "transformer",
		Description: "transformer block stack, one layer at a time",
		Width:       300,
		Height:      260,
		build:       func() visuals.Component { return visuals.NewTransformer(cfg.Transformer) },
	})
	r.add(Entry{
		Name:        "flow",
		Description: "particles streaming through a layered network",
		Width:       300,
		Height:      200,
		build:       func() visuals.Component { return visuals.NewFlow(cfg.Flow) },
	})
	r.add(Entry{
		Name:        "descent",
		Description: "gradient descent on a rippled bowl",
		Width:       280,
		Height:      200,
		build:       func() visuals.Component { return visuals.NewDescent(cfg.Descent) },
	})

	return r
}

func (r *Registry) add(e Entry) {
	r.entries[e.Name] = e
	r.order = append(r.order, e.Name)
}

// Get builds a fresh, unmounted component.
func (r *Registry) Get(name string) (visuals.Component, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	return e.build(), nil
}

func (r *Registry) Entry(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names lists components in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Tabs lists the fixed-size diagrams, in registration order.
func (r *Registry) Tabs() []string {
	var out []string
	for _, name := range r.order {
		if !r.entries[name].Background {
			out = append(out, name)
		}
	}
	return out
}

// Size resolves the logical surface size of name inside a vw x vh viewport.
func (r *Registry) Size(name string, vw, vh float64) (float64, float64, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	if e.Width == 0 || e.Height == 0 {
		return vw, vh, nil
	}
	return e.Width, e.Height, nil
}
