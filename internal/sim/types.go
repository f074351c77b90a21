package sim

import (
	"time"

	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/visuals"
)

// Factory builds a fresh, unmounted component. Each run gets its own.
type Factory func() visuals.Component

// SurfaceFactory builds the surface a run draws on.
type SurfaceFactory func() surface.Surface

// Observer sees every frame after it has been drawn.
type Observer interface {
	OnFrame(c visuals.Component, s surface.Surface, now time.Duration)
}

type ObserverFunc func(c visuals.Component, s surface.Surface, now time.Duration)

func (f ObserverFunc) OnFrame(c visuals.Component, s surface.Surface, now time.Duration) {
	f(c, s, now)
}

type Config struct {
	FPS      int
	Duration float64
	Seed     int64
}

// Frames is the number of frames a run of cfg draws.
func (c Config) Frames() int {
	return int(c.Duration * float64(c.FPS))
}

// Interval is the virtual time between frames.
func (c Config) Interval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

type Result struct {
	Component string
	Seed      int64
	Frames    int
	Times     []time.Duration
	Series    []*metrics.Series
	Metrics   map[string]float64
	Surface   surface.Surface
}
