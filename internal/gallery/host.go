package gallery

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/visuals"
)

// SurfaceFunc builds the drawing target for a tab of logical size w x h.
type SurfaceFunc func(name string, w, h float64) surface.Surface

// Host runs the background components over the whole viewport and one
// tab component at a time on its own surface, all on a single loop.
type Host struct {
	Loop *loop.Loop

	reg        *Registry
	src        rng.Source
	newSurface SurfaceFunc

	background        surface.Surface
	backgroundMounted []visuals.Component

	tabs    []string
	active  int
	current visuals.Component
	surface surface.Surface

	paused bool
}

func NewHost(reg *Registry, src rng.Source, background surface.Surface, newSurface SurfaceFunc) *Host {
	return &Host{
		Loop:       loop.New(),
		reg:        reg,
		src:        src,
		newSurface: newSurface,
		background: background,
		tabs:       reg.Tabs(),
	}
}

func (h *Host) env(s surface.Surface) visuals.Env {
	return visuals.Env{Scheduler: h.Loop, Input: h.Loop, Surface: s, Rand: h.src}
}

// Start mounts the background and the active tab. A component that
// cannot mount is logged and skipped.
func (h *Host) Start() error {
	for _, name := range h.reg.Names() {
		e, _ := h.reg.Entry(name)
		if !e.Background {
			continue
		}
		c, err := h.reg.Get(name)
		if err != nil {
			return err
		}
		if err := c.Mount(h.env(h.background)); err != nil {
			if errors.Is(err, visuals.ErrNoSurface) {
				log.Printf("gallery: %s idle: %v", name, err)
				continue
			}
			return fmt.Errorf("mount %s: %w", name, err)
		}
		h.backgroundMounted = append(h.backgroundMounted, c)
	}
	return h.mountActive()
}

// Stop unmounts everything.
func (h *Host) Stop() {
	h.unmountActive()
	for _, c := range h.backgroundMounted {
		c.Unmount()
	}
	h.backgroundMounted = nil
}

func (h *Host) mountActive() error {
	if len(h.tabs) == 0 {
		return nil
	}
	name := h.tabs[h.active]
	c, err := h.reg.Get(name)
	if err != nil {
		return err
	}
	w, hgt, err := h.reg.Size(name, 0, 0)
	if err != nil {
		return err
	}
	s := h.newSurface(name, w, hgt)
	if err := c.Mount(h.env(s)); err != nil {
		if errors.Is(err, visuals.ErrNoSurface) {
			log.Printf("gallery: %s idle: %v", name, err)
			h.current, h.surface = nil, s
			return nil
		}
		return fmt.Errorf("mount %s: %w", name, err)
	}
	h.current, h.surface = c, s
	return nil
}

func (h *Host) unmountActive() {
	if h.current != nil {
		h.current.Unmount()
	}
	h.current = nil
}

// Select switches to tab i, unmounting the previous one first.
func (h *Host) Select(i int) error {
	if i < 0 || i >= len(h.tabs) {
		return fmt.Errorf("%w: tab %d", ErrUnknownComponent, i)
	}
	h.unmountActive()
	h.active = i
	return h.mountActive()
}

func (h *Host) Next() error {
	if len(h.tabs) == 0 {
		return nil
	}
	return h.Select((h.active + 1) % len(h.tabs))
}

func (h *Host) Prev() error {
	if len(h.tabs) == 0 {
		return nil
	}
	return h.Select((h.active - 1 + len(h.tabs)) % len(h.tabs))
}

// Remount tears the active tab down and mounts a fresh copy.
func (h *Host) Remount() error { return h.Select(h.active) }

func (h *Host) Tabs() []string { return h.tabs }

func (h *Host) ActiveIndex() int { return h.active }

func (h *Host) ActiveName() string {
	if len(h.tabs) == 0 {
		return ""
	}
	return h.tabs[h.active]
}

// Active is the mounted tab component, or nil when it is idle.
func (h *Host) Active() visuals.Component { return h.current }

func (h *Host) Surface() surface.Surface { return h.surface }

func (h *Host) Background() []visuals.Component { return h.backgroundMounted }

func (h *Host) Paused() bool { return h.paused }

func (h *Host) TogglePause() { h.paused = !h.paused }

// Tick advances the loop by dt and draws one frame on freshly cleared
// surfaces. It does nothing while paused.
func (h *Host) Tick(dt time.Duration) {
	if h.paused {
		return
	}
	if h.background != nil {
		h.background.Clear()
	}
	if h.surface != nil {
		h.surface.Clear()
	}
	h.Loop.Step(dt)
}

// Pointer forwards a pointer position in viewport units.
func (h *Host) Pointer(x, y float64) { h.Loop.Pointer(x, y) }

// Resize resizes the background surface and notifies listeners.
func (h *Host) Resize(w, hgt float64) {
	if sz, ok := h.background.(surface.Sizer); ok {
		sz.Resize(w, hgt)
	}
	h.Loop.Resize(w, hgt)
}
