package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/viz"
	"github.com/san-kum/ambient/internal/visuals"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Watcher prints every frame of a headless run drawn on a viz.Canvas,
// paced to frameRate frames per wall-clock second. A zero frameRate
// prints as fast as the run goes.
type Watcher struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	sleep     func(time.Duration)
	metrics   []metrics.Metric
	bound     visuals.Component
}

func NewWatcher(frameRate int) *Watcher {
	return &Watcher{out: os.Stdout, frameRate: frameRate, sleep: time.Sleep}
}

func (w *Watcher) OnFrame(c visuals.Component, s surface.Surface, now time.Duration) {
	canvas, ok := s.(*viz.Canvas)
	if !ok {
		return
	}
	if c != w.bound {
		w.bound, w.metrics = c, metrics.For(c)
	}
	for _, m := range w.metrics {
		m.Observe(now)
	}
	if w.frameRate > 0 && !w.lastFrame.IsZero() {
		if wait := time.Second/time.Duration(w.frameRate) - time.Since(w.lastFrame); wait > 0 {
			w.sleep(wait)
		}
	}
	w.lastFrame = time.Now()
	w.render(c.Name(), canvas, now)
}

func (w *Watcher) render(name string, canvas *viz.Canvas, now time.Duration) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", name, now.Seconds()))
	b.WriteString("  " + strings.Repeat("-", canvas.Width) + "\n")

	for _, row := range strings.Split(strings.TrimSuffix(canvas.Render(viz.CurrentTheme), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", canvas.Width) + "\n")

	stats := "  "
	for _, m := range w.metrics {
		stats += fmt.Sprintf("%s=%.3f ", m.Name(), m.Last())
	}
	b.WriteString(stats + "\n")

	fmt.Fprint(w.out, b.String())
}

func (w *Watcher) Start() { fmt.Fprint(w.out, hideCursor) }
func (w *Watcher) Stop()  { fmt.Fprint(w.out, showCursor) }
