package visuals

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

// Tokens label both axes of the attention grid.
var Tokens = []string{"<s>", "The", "model", "learns", "to", "predict", "next", "token"}

type AttentionParams struct {
	Size           int           `yaml:"size"`
	Interval       time.Duration `yaml:"interval"`
	Smoothing      float64       `yaml:"smoothing"`
	ResampleChance float64       `yaml:"resample_chance"`
	BaseMin        float64       `yaml:"base_min"`
	BaseMax        float64       `yaml:"base_max"`
	DiagonalBoost  float64       `yaml:"diagonal_boost"`
	TargetMin      float64       `yaml:"target_min"`
	DiagonalMin    float64       `yaml:"diagonal_min"`
	TargetSpan     float64       `yaml:"target_span"`
	Emphasis       float64       `yaml:"emphasis"`
}

func DefaultAttentionParams() AttentionParams {
	return AttentionParams{
		Size:           8,
		Interval:       100 * time.Millisecond,
		Smoothing:      0.1,
		ResampleChance: 0.3,
		BaseMin:        0.1,
		BaseMax:        0.4,
		DiagonalBoost:  0.4,
		TargetMin:      0.1,
		DiagonalMin:    0.3,
		TargetSpan:     0.5,
		Emphasis:       1.5,
	}
}

type Cell struct {
	Row, Col int
	Value    float64
	Target   float64
}

// Causal reports whether the cell lies on or below the diagonal.
func (c Cell) Causal() bool { return c.Col <= c.Row }

// Attention is a causal self-attention heatmap whose weights drift toward
// randomly resampled targets.
type Attention struct {
	lifecycle
	params AttentionParams
	cells  []Cell

	hovered            bool
	hoverRow, hoverCol int

	spring      harmonica.Spring
	emphasis    float64
	emphasisVel float64
}

func NewAttention(p AttentionParams) *Attention {
	return &Attention{
		params:   p,
		spring:   harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
		emphasis: 1,
	}
}

func (a *Attention) Name() string { return "attention" }

func (a *Attention) Mount(env Env) error {
	if err := a.begin(env); err != nil {
		return err
	}
	a.Init()
	a.every(a.params.Interval, a.Tick)
	a.animate(func(time.Duration) {
		a.Ease()
		a.Draw(a.env.Surface)
	})
	return nil
}

func (a *Attention) Unmount() {
	a.end()
	a.ClearHover()
	a.emphasis, a.emphasisVel = 1, 0
}

// Init seeds every cell: causal cells get a small random weight, the
// diagonal an extra boost, everything above the diagonal zero.
func (a *Attention) Init() {
	n := a.params.Size
	src := a.rand()
	a.cells = make([]Cell, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := Cell{Row: i, Col: j}
			if c.Causal() {
				c.Value = rng.Range(src, a.params.BaseMin, a.params.BaseMax)
			}
			if i == j {
				c.Value += a.params.DiagonalBoost
			}
			c.Target = c.Value
			a.cells = append(a.cells, c)
		}
	}
}

// Tick smooths every causal cell toward its target and occasionally picks a
// new target. Cells above the diagonal are pinned to zero.
func (a *Attention) Tick() {
	p := a.params
	src := a.rand()
	for i := range a.cells {
		c := &a.cells[i]
		if !c.Causal() {
			c.Value, c.Target = 0, 0
			continue
		}
		c.Value += (c.Target - c.Value) * p.Smoothing
		if rng.Chance(src, p.ResampleChance) {
			lo := p.TargetMin
			if c.Row == c.Col {
				lo = p.DiagonalMin
			}
			c.Target = lo + src.Float64()*p.TargetSpan
		}
	}
}

func (a *Attention) Cells() []Cell {
	out := make([]Cell, len(a.cells))
	copy(out, a.cells)
	return out
}

// At returns the cell at (row, col).
func (a *Attention) At(row, col int) Cell {
	return a.cells[row*a.params.Size+col]
}

// SetHover highlights a row and column. Out-of-range positions clear it.
func (a *Attention) SetHover(row, col int) {
	n := a.params.Size
	if row < 0 || col < 0 || row >= n || col >= n {
		a.ClearHover()
		return
	}
	a.hovered, a.hoverRow, a.hoverCol = true, row, col
}

func (a *Attention) ClearHover() { a.hovered = false }

func (a *Attention) Hover() (row, col int, ok bool) {
	return a.hoverRow, a.hoverCol, a.hovered
}

// MoveHover shifts the hovered cell, starting from the top-left corner.
func (a *Attention) MoveHover(dRow, dCol int) {
	if !a.hovered {
		a.SetHover(0, 0)
		return
	}
	n := a.params.Size
	a.SetHover((a.hoverRow+dRow+n)%n, (a.hoverCol+dCol+n)%n)
}

// Ease advances the hover emphasis spring by one frame.
func (a *Attention) Ease() {
	target := 1.0
	if a.hovered {
		target = a.params.Emphasis
	}
	a.emphasis, a.emphasisVel = a.spring.Update(a.emphasis, a.emphasisVel, target)
}

func (a *Attention) Emphasis() float64 { return a.emphasis }

const gridLeft, gridTop, gridGap = 56.0, 28.0, 2.0

// cellSize is the grid pitch on a w x h surface.
func (a *Attention) cellSize(w, h float64) float64 {
	n := float64(a.params.Size)
	return math.Min((w-gridLeft-8)/n, (h-gridTop-8)/n)
}

// HoverAt hovers the cell under (x, y) on a w x h surface, or clears the
// hover when the point is off the grid.
func (a *Attention) HoverAt(x, y, w, h float64) {
	if a.params.Size == 0 {
		return
	}
	cell := a.cellSize(w, h)
	if cell <= gridGap || x < gridLeft || y < gridTop {
		a.ClearHover()
		return
	}
	a.SetHover(int((y-gridTop)/cell), int((x-gridLeft)/cell))
}

func (a *Attention) Draw(s surface.Surface) {
	w, h := s.Size()
	n := a.params.Size
	if n == 0 {
		return
	}
	const left, top, gap = gridLeft, gridTop, gridGap
	cell := a.cellSize(w, h)
	if cell <= gap {
		return
	}

	label := func(i int) string {
		if i < len(Tokens) {
			return Tokens[i]
		}
		return ""
	}
	for i := 0; i < n; i++ {
		alpha := 0.35
		if a.hovered && a.hoverRow == i {
			alpha = 1
		}
		s.Text(4, top+float64(i)*cell+cell/2, label(i), surface.White(alpha))

		alpha = 0.35
		if a.hovered && a.hoverCol == i {
			alpha = 1
		}
		s.Text(left+float64(i)*cell, top/2, label(i), surface.White(alpha))
	}

	for _, c := range a.cells {
		x := left + float64(c.Col)*cell
		y := top + float64(c.Row)*cell
		highlighted := a.hovered && (c.Row == a.hoverRow || c.Col == a.hoverCol)

		alpha := 0.02
		if c.Value > 0 {
			alpha = c.Value
			if highlighted {
				alpha *= a.emphasis
			}
		}
		s.FillRect(x, y, cell-gap, cell-gap, surface.White(alpha))
		if a.hovered && c.Row == a.hoverRow && c.Col == a.hoverCol {
			surface.StrokeRect(s, x-1, y-1, cell, cell, surface.White(0.3*a.emphasis))
		}
	}
}
