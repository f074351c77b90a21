//go:build cgo

package gui

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/gallery"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/viz"
)

// Monochrome palette
var (
	ColBg    = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	ColPanel = color.NRGBA{R: 255, G: 255, B: 255, A: 10}
)

// App hosts the gallery: the background components across the window and
// the selected tab in a panel on the right.
type App struct {
	Host *gallery.Host
	reg  *gallery.Registry
	fps  int

	background *Screen
	panel      *ebiten.Image
	width      int
	height     int
}

// NewApp builds the gallery and selects start when it names a tab.
func NewApp(cfg *config.Config, start string) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	reg := gallery.NewRegistry(cfg)
	if start != "" {
		if _, ok := reg.Entry(start); !ok {
			return nil, fmt.Errorf("%w: %s", gallery.ErrUnknownComponent, start)
		}
	}
	bg := NewScreen(winW, winH)
	a := &App{
		reg:        reg,
		fps:        cfg.FPS,
		background: bg,
		width:      winW,
		height:     winH,
	}
	a.Host = gallery.NewHost(reg, rng.New(cfg.Seed), bg, func(_ string, w, h float64) surface.Surface {
		return NewScreen(int(w), int(h))
	})
	if err := a.Host.Start(); err != nil {
		return nil, err
	}
	for i, name := range a.Host.Tabs() {
		if name == start {
			if err := a.Host.Select(i); err != nil {
				return nil, err
			}
		}
	}
	return a, nil
}

// Run opens the window and blocks until it closes.
func Run(cfg *config.Config, start string) error {
	a, err := NewApp(cfg, start)
	if err != nil {
		return err
	}
	defer a.Host.Stop()
	ebiten.SetWindowTitle("ambient")
	ebiten.SetWindowSize(winW, winH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.fps)
	return ebiten.RunGame(a)
}

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "up",
	ebiten.KeyArrowDown:  "down",
	ebiten.KeyArrowLeft:  "left",
	ebiten.KeyArrowRight: "right",
	ebiten.KeyEscape:     "esc",
}

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			err = a.Host.Prev()
		} else {
			err = a.Host.Next()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.Host.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = a.Host.Remount()
	}
	for i := range a.Host.Tabs() {
		if i < len(digitKeys) && inpututil.IsKeyJustPressed(digitKeys[i]) {
			err = a.Host.Select(i)
		}
	}
	for k, name := range keyNames {
		if inpututil.IsKeyJustPressed(k) {
			viz.Nudge(a.Host.Active(), name)
		}
	}
	if err != nil {
		log.Printf("gui: %v", err)
	}

	cx, cy := ebiten.CursorPosition()
	a.pointer(float64(cx), float64(cy))

	a.Host.Tick(time.Second / time.Duration(a.fps))
	return nil
}

// pointer feeds the background, or the attention grid when the cursor is
// over the tab panel.
func (a *App) pointer(x, y float64) {
	s, ok := a.Host.Surface().(*Screen)
	if !ok {
		a.Host.Pointer(x, y)
		return
	}
	tw, th := s.Size()
	p := PlaceTab(float64(a.width), float64(a.height), tw, th)
	if !p.Contains(x, y, tw, th) {
		a.Host.Pointer(x, y)
		return
	}
	if h, ok := a.Host.Active().(interface{ HoverAt(x, y, w, h float64) }); ok {
		lx, ly := p.ToLogical(x, y)
		h.HoverAt(lx, ly, tw, th)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	if img := a.background.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	if s, ok := a.Host.Surface().(*Screen); ok && s.Image() != nil {
		tw, th := s.Size()
		p := PlaceTab(float64(a.width), float64(a.height), tw, th)
		if a.panel == nil {
			a.panel = ebiten.NewImage(1, 1)
			a.panel.Fill(ColPanel)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(tw*p.Scale+16, th*p.Scale+16)
		op.GeoM.Translate(p.X-8, p.Y-8)
		screen.DrawImage(a.panel, op)

		op = &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Scale, p.Scale)
		op.GeoM.Translate(p.X, p.Y)
		screen.DrawImage(s.Image(), op)
	}

	var tabs []string
	for i, name := range a.Host.Tabs() {
		mark := " "
		if i == a.Host.ActiveIndex() {
			mark = ">"
		}
		tabs = append(tabs, fmt.Sprintf("%s%d %s", mark, i+1, name))
	}
	status := "RUNNING"
	if a.Host.Paused() {
		status = "PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, "ambient  "+strings.Join(tabs, "  ")+"   "+status, margin, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f FPS  [TAB] SWITCH  [SPACE] PAUSE  [R] REMOUNT  [Q] QUIT", ebiten.ActualFPS()), margin, a.height-24)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.Host.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
