package viz

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ambient/internal/surface"
)

var _ surface.Surface = (*Canvas)(nil)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// DefaultMinAlpha is the faintest alpha that still lights a dot.
const DefaultMinAlpha = 0.03

type cell struct {
	ink   color.NRGBA
	text  rune
	tint  color.NRGBA
	bg    color.NRGBA
	hasBg bool
}

// Canvas is a Braille surface. Drawing happens in logical units that are
// scaled onto Width*2 x Height*4 dots; every cell keeps the strongest
// color drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	MinAlpha      float64

	lw, lh float64
	cells  [][]cell
}

func NewCanvas(cols, rows int, lw, lh float64) *Canvas {
	c := &Canvas{MinAlpha: DefaultMinAlpha, lw: lw, lh: lh}
	c.SetCells(cols, rows)
	return c
}

// SetCells resizes the character grid and clears it.
func (c *Canvas) SetCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.Width, c.Height = cols, rows
	c.Grid = make([][]rune, rows)
	c.cells = make([][]cell, rows)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, cols)
		c.cells[i] = make([]cell, cols)
	}
	c.Clear()
}

func (c *Canvas) Size() (float64, float64) { return c.lw, c.lh }

// Resize changes the logical size; the character grid stays as it is.
func (c *Canvas) Resize(w, h float64) { c.lw, c.lh = w, h }

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.cells[i][j] = cell{}
		}
	}
}

// FromCell maps a character cell to the logical point at its center.
func (c *Canvas) FromCell(col, row int) (float64, float64) {
	if c.Width == 0 || c.Height == 0 {
		return 0, 0
	}
	return (float64(col) + 0.5) / float64(c.Width) * c.lw, (float64(row) + 0.5) / float64(c.Height) * c.lh
}

func (c *Canvas) dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) toDots(x, y float64) (float64, float64) {
	if c.lw <= 0 || c.lh <= 0 {
		return 0, 0
	}
	dw, dh := c.dots()
	return x / c.lw * float64(dw), y / c.lh * float64(dh)
}

// Set lights the dot at (x, y) in dot coordinates. The canvas size in dots
// is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.plot(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

func (c *Canvas) plot(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	if col.A > c.cells[cy][cx].ink.A {
		c.cells[cy][cx].ink = col
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) visible(col color.NRGBA) bool {
	return float64(col.A)/255 >= c.MinAlpha
}

// DrawLine draws a line in dot coordinates using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

func (c *Canvas) line(x0, y0, x1, y1 int, col color.NRGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.NRGBA) {
	if !c.visible(col) {
		return
	}
	ax, ay := c.toDots(x0, y0)
	bx, by := c.toDots(x1, y1)
	c.line(int(ax), int(ay), int(bx), int(by), col)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if !c.visible(col) {
		return
	}
	x, y := c.toDots(cx, cy)
	rx, ry := c.toDots(r, r)
	if rx < 0.5 && ry < 0.5 {
		c.plot(int(x), int(y), col)
		return
	}
	for py := int(math.Floor(y - ry)); py <= int(math.Ceil(y+ry)); py++ {
		for px := int(math.Floor(x - rx)); px <= int(math.Ceil(x+rx)); px++ {
			nx := (float64(px) + 0.5 - x) / math.Max(rx, 0.5)
			ny := (float64(py) + 0.5 - y) / math.Max(ry, 0.5)
			if nx*nx+ny*ny <= 1 {
				c.plot(px, py, col)
			}
		}
	}
}

func (c *Canvas) StrokeCircle(cx, cy, r float64, col color.NRGBA) {
	if !c.visible(col) {
		return
	}
	x, y := c.toDots(cx, cy)
	rx, ry := c.toDots(r, r)
	steps := int(math.Max(8, 2*math.Pi*math.Max(rx, ry)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.plot(int(x+math.Cos(a)*rx), int(y+math.Sin(a)*ry), col)
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if !c.visible(col) {
		return
	}
	x0, y0 := c.toDots(x, y)
	x1, y1 := c.toDots(x+w, y+h)
	for py := int(y0); py < int(math.Ceil(y1)); py++ {
		for px := int(x0); px < int(math.Ceil(x1)); px++ {
			c.plot(px, py, col)
		}
	}
}

// Text writes s into the character grid starting at the cell holding
// (x, y). Text hides the dots underneath it.
func (c *Canvas) Text(x, y float64, s string, col color.NRGBA) {
	if !c.visible(col) {
		return
	}
	dx, dy := c.toDots(x, y)
	cx, cy := int(dx)/2, int(dy)/4
	if cy < 0 || cy >= c.Height {
		return
	}
	for _, r := range s {
		if cx >= c.Width {
			break
		}
		if cx >= 0 {
			c.cells[cy][cx].text = r
			c.cells[cy][cx].tint = col
		}
		cx++
	}
}

// Raster paints img behind the dots, sampling the pixel under each cell
// center. Image pixels are logical units.
func (c *Canvas) Raster(img *image.NRGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			x, y := c.FromCell(col, row)
			p := image.Pt(b.Min.X+int(x), b.Min.Y+int(y))
			if !p.In(b) {
				continue
			}
			c.cells[row][col].bg = img.NRGBAAt(p.X, p.Y)
			c.cells[row][col].hasBg = true
		}
	}
}

// Lit counts lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			bits := int(r - blank)
			for bits != 0 {
				n += bits & 1
				bits >>= 1
			}
		}
	}
	return n
}

// String renders the grid without color, text overlay included.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if t := c.cells[i][j].text; t != 0 {
				r = t
			}
			b.WriteRune(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render draws the grid with colors, tinting pure white ink with the
// theme's primary color. Runs of identically styled cells share one
// style.
func (c *Canvas) Render(theme Theme) string {
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
		for j, r := range row {
			cl := c.cells[i][j]
			style := lipgloss.NewStyle()
			key := ""
			switch {
			case cl.text != 0:
				r = cl.text
				fg := theme.Shade(cl.tint)
				style = style.Foreground(fg)
				key += string(fg)
			case r != blank:
				fg := theme.Shade(cl.ink)
				style = style.Foreground(fg)
				key += string(fg)
			}
			if cl.hasBg {
				bg := hex(cl.bg)
				style = style.Background(bg)
				key += "/" + string(bg)
			}
			if key != runKey {
				flush()
				runKey, runStyle = key, style
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
