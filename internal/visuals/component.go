package visuals

import (
	"time"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
)

// Env is what a host hands a component at mount time. Input may be nil for
// components that ignore the pointer; Rand may be nil to use a time seed.
type Env struct {
	Scheduler loop.Scheduler
	Input     loop.Input
	Surface   surface.Surface
	Rand      rng.Source
}

type Component interface {
	Name() string
	Mount(env Env) error
	Unmount()
}

// lifecycle tracks every registration a component makes so Unmount can
// cancel them all.
type lifecycle struct {
	env       Env
	src       rng.Source
	mounted   bool
	frame     loop.ID
	timers    map[loop.ID]struct{}
	listeners []loop.ID
}

func (lc *lifecycle) begin(env Env) error {
	if lc.mounted {
		return ErrMounted
	}
	if env.Scheduler == nil {
		return ErrNoScheduler
	}
	if !surface.Usable(env.Surface) {
		return ErrNoSurface
	}
	if env.Rand != nil {
		lc.src = env.Rand
	}
	lc.env = env
	lc.mounted = true
	lc.timers = make(map[loop.ID]struct{})
	return nil
}

func (lc *lifecycle) Mounted() bool { return lc.mounted }

func (lc *lifecycle) rand() rng.Source {
	if lc.src == nil {
		lc.src = rng.New(time.Now().UnixNano())
	}
	return lc.src
}

// clock returns the scheduler time, or zero when unmounted.
func (lc *lifecycle) clock() time.Duration {
	if lc.env.Scheduler == nil {
		return 0
	}
	return lc.env.Scheduler.Now()
}

// animate runs fn once per frame until unmount.
func (lc *lifecycle) animate(fn func(now time.Duration)) {
	var tick loop.FrameFunc
	tick = func(now time.Duration) {
		if !lc.mounted {
			return
		}
		fn(now)
		if lc.mounted {
			lc.frame = lc.env.Scheduler.RequestFrame(tick)
		}
	}
	lc.frame = lc.env.Scheduler.RequestFrame(tick)
}

func (lc *lifecycle) every(d time.Duration, fn func()) loop.ID {
	id := lc.env.Scheduler.Every(d, fn)
	lc.timers[id] = struct{}{}
	return id
}

func (lc *lifecycle) after(d time.Duration, fn func()) loop.ID {
	var id loop.ID
	id = lc.env.Scheduler.After(d, func() {
		delete(lc.timers, id)
		fn()
	})
	lc.timers[id] = struct{}{}
	return id
}

func (lc *lifecycle) cancel(id loop.ID) {
	if _, ok := lc.timers[id]; !ok {
		return
	}
	delete(lc.timers, id)
	lc.env.Scheduler.Cancel(id)
}

func (lc *lifecycle) listen(id loop.ID) {
	lc.listeners = append(lc.listeners, id)
}

func (lc *lifecycle) end() {
	if !lc.mounted {
		return
	}
	lc.env.Scheduler.Cancel(lc.frame)
	for id := range lc.timers {
		lc.env.Scheduler.Cancel(id)
	}
	if lc.env.Input != nil {
		for _, id := range lc.listeners {
			lc.env.Input.Cancel(id)
		}
	}
	lc.frame = 0
	lc.timers = nil
	lc.listeners = nil
	lc.mounted = false
	lc.env = Env{}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
