package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/gallery"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/viz"
	"github.com/san-kum/ambient/internal/visuals"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	panelStyle = lipgloss.NewStyle().Padding(0, 1)
)

const (
	headerLines  = 3
	sideWidth    = 52
	sparkWidth   = 24
	historyLimit = 120
	// terminal cells are roughly 8x16 pixels
	cellW = 8
	cellH = 16
)

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// tabCanvas sizes a tab canvas at one cell per 6x12 logical units.
func tabCanvas(_ string, w, h float64) surface.Surface {
	return viz.NewCanvas(int(w/6), int(h/12), w, h)
}

// Model is the gallery: the background components on the left, the
// selected diagram and its stats on the right.
type Model struct {
	host *gallery.Host
	reg  *gallery.Registry
	fps  int

	background *viz.Canvas
	tracked    visuals.Component
	series     []*metrics.Series
	bgSeries   []*metrics.Series

	showHelp bool
	frames   int
	err      error

	width  int
	height int
}

// NewGallery builds the gallery and mounts its components.
func NewGallery(cfg *config.Config) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	reg := gallery.NewRegistry(cfg)
	cols, rows := int(cfg.Viewport.Width/cellW), int(cfg.Viewport.Height/cellH)
	bg := viz.NewCanvas(cols, rows, float64(cols*cellW), float64(rows*cellH))
	host := gallery.NewHost(reg, rng.New(cfg.Seed), bg, tabCanvas)
	if err := host.Start(); err != nil {
		return nil, err
	}
	m := &Model{
		host:       host,
		reg:        reg,
		fps:        cfg.FPS,
		background: bg,
		width:      cols + sideWidth,
		height:     rows + headerLines + 2,
	}
	for _, c := range host.Background() {
		for _, mt := range metrics.For(c) {
			m.bgSeries = append(m.bgSeries, metrics.NewSeries(mt))
		}
	}
	m.track()
	return m, nil
}

func (m *Model) Host() *gallery.Host { return m.host }

// track rebuilds the tab series whenever the mounted tab changes.
func (m *Model) track() {
	if m.host.Active() == m.tracked {
		return
	}
	m.tracked = m.host.Active()
	m.series = nil
	for _, mt := range metrics.For(m.tracked) {
		m.series = append(m.series, metrics.NewSeries(mt))
	}
}

func (m *Model) Init() tea.Cmd { return tick(m.fps) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			col := msg.X - panelStyle.GetPaddingLeft()
			row := msg.Y - headerLines
			if col >= 0 && col < m.background.Width && row >= 0 && row < m.background.Height {
				m.host.Pointer(m.background.FromCell(col, row))
			}
			m.hoverTab(msg.X, msg.Y)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.step()
		return m, tick(m.fps)
	}
	return m, nil
}

// hoverTab forwards the mouse to a tab that tracks a hovered point.
func (m *Model) hoverTab(x, y int) {
	c, ok := m.host.Surface().(*viz.Canvas)
	if !ok {
		return
	}
	h, ok := m.host.Active().(hoverer)
	if !ok {
		return
	}
	col := x - m.background.Width - panelStyle.GetHorizontalPadding() - panelStyle.GetPaddingLeft()
	row := y - headerLines - 1
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	lx, ly := c.FromCell(col, row)
	w, hgt := c.Size()
	h.HoverAt(lx, ly, w, hgt)
}

type hoverer interface {
	HoverAt(x, y, w, h float64)
}

func (m *Model) step() {
	if m.host.Paused() {
		return
	}
	m.host.Tick(time.Second / time.Duration(m.fps))
	m.frames++
	now := m.host.Loop.Now()
	for _, group := range [][]*metrics.Series{m.bgSeries, m.series} {
		for _, s := range group {
			s.Observe(now)
			if len(s.Values) > historyLimit {
				s.Values = s.Values[1:]
				s.Times = s.Times[1:]
			}
		}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := width - sideWidth - panelStyle.GetHorizontalPadding()
	rows := height - headerLines - 2
	if cols < 8 || rows < 4 {
		return
	}
	m.background.SetCells(cols, rows)
	m.host.Resize(float64(cols*cellW), float64(rows*cellH))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch k := msg.String(); k {
	case "q", "ctrl+c":
		m.host.Stop()
		if n := m.host.Loop.Pending(); n != 0 {
			log.Printf("tui: %d registrations left after stop", n)
		}
		return m, tea.Quit
	case "tab":
		err = m.host.Next()
	case "shift+tab":
		err = m.host.Prev()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(k[0] - '1'); i < len(m.host.Tabs()) {
			err = m.host.Select(i)
		}
	case " ":
		m.host.TogglePause()
	case "r":
		err = m.host.Remount()
	case "t":
		viz.NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	default:
		viz.Nudge(m.host.Active(), k)
	}
	if err != nil {
		m.err = err
		log.Printf("tui: %v", err)
	}
	m.track()
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString("  " + viz.GradientText("a m b i e n t", viz.CurrentTheme.Primary, viz.CurrentTheme.Accent) + "  " + m.viewTabs() + "\n")
	status := green.Render(viz.AnimatedSpinner(m.frames) + " running")
	if m.host.Paused() {
		status = yellow.Render("○ paused")
	}
	b.WriteString("  " + status + "  " + dim.Render(fmt.Sprintf("t=%.1fs  theme %s", m.host.Loop.Now().Seconds(), viz.CurrentTheme.Name)) + "\n\n")

	left := panelStyle.Render(m.background.Render(viz.CurrentTheme))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.viewSide())
	b.WriteString(body + "\n")
	b.WriteString(dim.Render("  tab/1-4 switch  ←↑↓→ interact  space pause  t theme  r remount  ? help  q quit"))

	if m.showHelp {
		return viz.HelpOverlay() + "\n\n" + b.String()
	}
	return b.String()
}

func (m *Model) viewTabs() string {
	var parts []string
	for i, name := range m.host.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.host.ActiveIndex() {
			parts = append(parts, white.Bold(true).Render("▸ "+label))
		} else {
			parts = append(parts, dim.Render("  "+label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewSide() string {
	var b strings.Builder
	name := m.host.ActiveName()
	b.WriteString(cyan.Render(name))
	if e, ok := m.reg.Entry(name); ok {
		b.WriteString("  " + dim.Render(e.Description))
	}
	b.WriteString("\n")

	if c, ok := m.host.Surface().(*viz.Canvas); ok {
		b.WriteString(c.Render(viz.CurrentTheme))
	}
	if m.host.Active() == nil {
		b.WriteString(yellow.Render("idle") + "\n")
	}

	for _, s := range append(append([]*metrics.Series{}, m.series...), m.bgSeries...) {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			dim.Render(fmt.Sprintf("%-16s", s.Metric.Name())),
			viz.SparklineChart(s.Values, sparkWidth),
			white.Render(fmt.Sprintf("%.3f", s.Metric.Last()))))
	}
	b.WriteString(viz.Describe(m.host.Active()))
	if m.err != nil {
		b.WriteString("\n" + dimmer.Render(m.err.Error()) + "\n")
	}
	return panelStyle.Width(sideWidth).Render(b.String())
}

// Run starts the gallery full screen with mouse motion reporting.
func Run(cfg *config.Config) error {
	m, err := NewGallery(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
