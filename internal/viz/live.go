package viz

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/visuals"
)

const (
	historyCapacity = 600
	// recording stops and saves itself after this many frames
	recordLimit = historyCapacity
	statsWidth      = 45
	recordPath      = "ambient.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveConfig describes the component a Live model runs. Width and Height
// are its logical size; Fill makes it track the terminal size instead.
type LiveConfig struct {
	Name   string
	Build  func() visuals.Component
	Width  float64
	Height float64
	Fill   bool
	FPS    int
	Seed   int64
}

// Live runs one component full screen.
type Live struct {
	cfg    LiveConfig
	loop   *loop.Loop
	comp   visuals.Component
	canvas *Canvas
	series []*metrics.Series

	running   bool
	idle      bool
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	maxFrames int
	gifPath   string
	status    string
}

func NewLive(cfg LiveConfig) *Live {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	m := &Live{
		cfg:       cfg,
		loop:      loop.New(),
		canvas:    NewCanvas(cellsFor(cfg.Width, cfg.Height)),
		running:   true,
		maxFrames: recordLimit,
		gifPath:   recordPath,
	}
	m.mount()
	return m
}

// cellsFor picks a grid with about one dot per two logical units.
func cellsFor(w, h float64) (int, int, float64, float64) {
	cols := int(w / 4)
	rows := int(h / 8)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows, w, h
}

func (m *Live) mount() {
	m.comp = m.cfg.Build()
	m.series = nil
	err := m.comp.Mount(visuals.Env{
		Scheduler: m.loop,
		Input:     m.loop,
		Surface:   m.canvas,
		Rand:      rng.New(m.cfg.Seed),
	})
	m.idle = err != nil
	if err != nil {
		if !errors.Is(err, visuals.ErrNoSurface) {
			m.status = err.Error()
		}
		log.Printf("live: %s idle: %v", m.cfg.Name, err)
		return
	}
	for _, mt := range metrics.For(m.comp) {
		m.series = append(m.series, metrics.NewSeries(mt))
	}
}

// Remount unmounts the component and mounts a fresh one with the same seed.
func (m *Live) Remount() {
	m.comp.Unmount()
	m.mount()
}

func (m *Live) Stop() {
	m.comp.Unmount()
	if n := m.loop.Pending(); n != 0 {
		log.Printf("live: %s left %d registrations behind", m.cfg.Name, n)
	}
}

func (m *Live) Component() visuals.Component { return m.comp }
func (m *Live) Canvas() *Canvas               { return m.canvas }
func (m *Live) Loop() *loop.Loop              { return m.loop }
func (m *Live) Running() bool                 { return m.running }
func (m *Live) Recording() bool               { return m.recording }

// Step advances one frame on a cleared canvas and samples the metrics.
func (m *Live) Step() {
	m.canvas.Clear()
	m.loop.Step(time.Second / time.Duration(m.cfg.FPS))
	now := m.loop.Now()
	for _, s := range m.series {
		s.Observe(now)
		if len(s.Values) > historyCapacity {
			s.Values = s.Values[1:]
			s.Times = s.Times[1:]
		}
	}
	if m.recording {
		m.frames = append(m.frames, m.canvas.Capture(CurrentTheme))
		if len(m.frames) >= m.maxFrames {
			m.toggleRecording()
		}
	}
}

func (m *Live) Init() tea.Cmd {
	return tick(m.cfg.FPS)
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Stop()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.Remount()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		case "g":
			m.toggleRecording()
		default:
			Nudge(m.comp, msg.String())
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			x, y := m.canvas.FromCell(msg.X-canvasStyle.GetPaddingLeft(), msg.Y-canvasStyle.GetPaddingTop())
			m.loop.Pointer(x, y)
			if h, ok := m.comp.(interface{ HoverAt(x, y, w, h float64) }); ok {
				w, hgt := m.canvas.Size()
				h.HoverAt(x, y, w, hgt)
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.Step()
		}
		return m, tick(m.cfg.FPS)
	}
	return m, nil
}

func (m *Live) resize(width, height int) {
	cols := width - statsWidth - canvasStyle.GetHorizontalPadding() - 2
	rows := height - canvasStyle.GetVerticalPadding()
	if cols < 8 || rows < 4 {
		return
	}
	if !m.cfg.Fill {
		// keep the aspect ratio of the logical size, one cell being 1:2
		want := int(float64(rows) * 2 * m.cfg.Width / m.cfg.Height)
		if want < cols {
			cols = want
		} else {
			rows = int(float64(cols) / 2 * m.cfg.Height / m.cfg.Width)
		}
		m.canvas.SetCells(cols, rows)
		return
	}
	m.canvas.SetCells(cols, rows)
	w, h := float64(cols*charW), float64(rows*charH)
	m.canvas.Resize(w, h)
	m.loop.Resize(w, h)
}

func (m *Live) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		return
	}
	m.recording = false
	if err := SaveGIF(m.gifPath, m.frames, 100/m.cfg.FPS); err != nil {
		m.status = err.Error()
		log.Printf("live: %v", err)
	} else {
		m.status = fmt.Sprintf("saved %s (%d frames)", m.gifPath, len(m.frames))
	}
	m.frames = nil
}

func (m *Live) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	switch {
	case m.idle:
		s.WriteString(StatusPaused.Render("IDLE") + "\n\n")
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", len(m.frames))) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.series) > 0 && len(m.series[0].Values) > 1 {
		first := m.series[0]
		chart := asciigraph.Plot(first.Values, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(first.Metric.Name()))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.loop.Now().Seconds())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")
	for _, sr := range m.series {
		s.WriteString(labelStyle.Render(sr.Metric.Name()) + valueStyle.Render(fmt.Sprintf("%.4f", sr.Metric.Last())) + "\n")
	}
	s.WriteString(Describe(m.comp))
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Remount Q:Quit\nT:Theme  G:Record  ?:Help\n←↑↓→:Interact"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return HelpOverlay() + "\n\n" + mainView
	}
	return mainView
}

// HelpOverlay lists the key bindings shared by the terminal hosts.
func HelpOverlay() string {
	return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Remount component        ║
║  Q        - Quit                     ║
║  Tab/1-4  - Switch component         ║
║  Arrows   - Move hover / layer       ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
}

// Nudge applies an arrow key to components that take one and reports
// whether it was used.
func Nudge(c visuals.Component, key string) bool {
	switch v := c.(type) {
	case *visuals.Attention:
		switch key {
		case "up", "k":
			v.MoveHover(-1, 0)
		case "down", "j":
			v.MoveHover(1, 0)
		case "left", "h":
			v.MoveHover(0, -1)
		case "right", "l":
			v.MoveHover(0, 1)
		case "esc":
			v.ClearHover()
		default:
			return false
		}
		return true
	case *visuals.Transformer:
		switch key {
		case "up", "k", "left", "h":
			v.Prev()
		case "down", "j", "right", "l":
			v.Next()
		default:
			return false
		}
		return true
	}
	return false
}

// Describe renders the detail panel of components that carry one.
func Describe(c visuals.Component) string {
	switch v := c.(type) {
	case *visuals.Transformer:
		b := v.Active()
		return "\n" + MetricValue.Render(b.Title) + "  " + ProgressBar(v.Fill(), 12) + "\n" +
			lipgloss.NewStyle().Width(statsWidth-6).Render(b.Description) + "\n" +
			KeyHint.Render(b.Equation) + "\n"
	case *visuals.Attention:
		if row, col, ok := v.Hover(); ok {
			cell := v.At(row, col)
			return "\n" + MetricLabel.Render(fmt.Sprintf("q%d → k%d", row, col)) + " " + MetricValue.Render(fmt.Sprintf("%.3f", cell.Value)) + "\n"
		}
	case *visuals.Descent:
		p := v.Position()
		return "\n" + MetricLabel.Render("position ") + MetricValue.Render(fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)) + "\n" +
			MetricLabel.Render("phase    ") + MetricValue.Render(v.Phase().String()) + "\n"
	}
	return ""
}
