package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/visuals"
)

// ErrLeak is returned when a component leaves registrations behind after
// Unmount.
var ErrLeak = errors.New("sim: component left pending callbacks")

// Simulator drives one component on a virtual clock, frame by frame, the
// way a display would.
type Simulator struct {
	newComponent Factory
	newSurface   SurfaceFactory
	observers    []Observer
}

func New(component Factory, surface SurfaceFactory) *Simulator {
	return &Simulator{
		newComponent: component,
		newSurface:   surface,
		observers:    make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	l := loop.New()
	c := s.newComponent()
	surf := s.newSurface()
	env := visuals.Env{Scheduler: l, Input: l, Surface: surf, Rand: rng.New(cfg.Seed)}
	if err := c.Mount(env); err != nil {
		return nil, fmt.Errorf("mount %s: %w", c.Name(), err)
	}

	frames := cfg.Frames()
	result := &Result{
		Component: c.Name(),
		Seed:      cfg.Seed,
		Times:     make([]time.Duration, 0, frames),
		Metrics:   make(map[string]float64),
		Surface:   surf,
	}
	for _, m := range metrics.For(c) {
		result.Series = append(result.Series, metrics.NewSeries(m))
	}

	dt := cfg.Interval()
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			c.Unmount()
			return result, ctx.Err()
		default:
		}

		surf.Clear()
		l.Step(dt)
		now := l.Now()
		result.Times = append(result.Times, now)
		result.Frames++

		for _, sr := range result.Series {
			sr.Observe(now)
		}
		for _, obs := range s.observers {
			obs.OnFrame(c, surf, now)
		}
	}

	for _, sr := range result.Series {
		result.Metrics[sr.Metric.Name()] = sr.Metric.Value()
	}

	c.Unmount()
	if n := l.Pending(); n != 0 {
		log.Printf("sim: %s left %d pending registrations", c.Name(), n)
		return result, fmt.Errorf("%w: %s left %d", ErrLeak, c.Name(), n)
	}
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
