package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	StatusRunning   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusRecording = lipgloss.NewStyle().Bold(true).Blink(true).Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	KeyHint     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#666688"))

	// low, mid and high bands of sparklines and progress bars
	bands = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
	}
)

var (
	spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")
	sparkLevels   = []rune("▁▂▃▄▅▆▇█")
)

func band(f, lo, hi float64) lipgloss.Style {
	switch {
	case f > hi:
		return bands[2]
	case f > lo:
		return bands[1]
	}
	return bands[0]
}

// GradientText colors each rune of text on a blend from one color to the
// other.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, b := rgb(from), rgb(to)
	var sb strings.Builder
	for i, r := range runes {
		f := 0.0
		if len(runes) > 1 {
			f = float64(i) / float64(len(runes)-1)
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(hex(lerp(a, b, f))).Render(string(r)))
	}
	return sb.String()
}

func AnimatedSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return string(spinnerFrames[frame%len(spinnerFrames)])
}

// ProgressBar renders fraction f of width cells as filled.
func ProgressBar(f float64, width int) string {
	filled := min(max(int(f*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return band(f, 0.4, 0.8).Render(bar)
}

// SparklineChart draws values scaled to their own range, one sample per
// cell, taking every n-th value when there are more values than cells.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	stride := max(len(values)/max(width, 1), 1)

	var sb strings.Builder
	top := len(sparkLevels) - 1
	for i := 0; i < width && i*stride < len(values); i++ {
		f := (values[i*stride] - lo) / span
		level := min(max(int(f*float64(top)), 0), top)
		sb.WriteString(band(f, 0.3, 0.7).Render(string(sparkLevels[level])))
	}
	return sb.String()
}
