package loop

import (
	"container/heap"
	"log"
	"time"
)

// ID identifies a registration. The zero ID is never issued.
type ID uint64

// FrameFunc receives the loop time at which the frame runs.
type FrameFunc func(now time.Duration)

// Scheduler is the display-refresh and timer primitive handed to components.
type Scheduler interface {
	Now() time.Duration
	RequestFrame(fn FrameFunc) ID
	Every(d time.Duration, fn func()) ID
	After(d time.Duration, fn func()) ID
	Cancel(id ID)
}

// Input delivers host pointer and viewport events.
type Input interface {
	OnPointer(fn func(x, y float64)) ID
	OnResize(fn func(w, h float64)) ID
	Cancel(id ID)
}

// MinInterval bounds recurring timers so Advance always terminates.
const MinInterval = time.Millisecond

type frameReq struct {
	id ID
	fn FrameFunc
}

type listener struct {
	id      ID
	pointer func(x, y float64)
	resize  func(w, h float64)
}

type Loop struct {
	now    time.Duration
	nextID ID
	seq    uint64

	frames     map[ID]struct{}
	frameQueue []frameReq

	timers map[ID]*timer
	queue  timerHeap

	listeners []listener
}

func New() *Loop {
	return &Loop{
		frames: make(map[ID]struct{}),
		timers: make(map[ID]*timer),
	}
}

func (l *Loop) Now() time.Duration { return l.now }

func (l *Loop) id() ID {
	l.nextID++
	return l.nextID
}

func (l *Loop) RequestFrame(fn FrameFunc) ID {
	id := l.id()
	l.frames[id] = struct{}{}
	l.frameQueue = append(l.frameQueue, frameReq{id: id, fn: fn})
	return id
}

func (l *Loop) Every(d time.Duration, fn func()) ID {
	if d < MinInterval {
		d = MinInterval
	}
	return l.schedule(d, d, fn)
}

func (l *Loop) After(d time.Duration, fn func()) ID {
	if d < 0 {
		d = 0
	}
	return l.schedule(d, 0, fn)
}

func (l *Loop) schedule(delay, every time.Duration, fn func()) ID {
	l.seq++
	t := &timer{id: l.id(), due: l.now + delay, every: every, fn: fn, seq: l.seq}
	l.timers[t.id] = t
	heap.Push(&l.queue, t)
	return t.id
}

func (l *Loop) OnPointer(fn func(x, y float64)) ID {
	id := l.id()
	l.listeners = append(l.listeners, listener{id: id, pointer: fn})
	return id
}

func (l *Loop) OnResize(fn func(w, h float64)) ID {
	id := l.id()
	l.listeners = append(l.listeners, listener{id: id, resize: fn})
	return id
}

// Cancel drops a frame, timer or listener. Unknown IDs are ignored.
func (l *Loop) Cancel(id ID) {
	if id == 0 {
		return
	}
	if _, ok := l.frames[id]; ok {
		delete(l.frames, id)
		return
	}
	if t, ok := l.timers[id]; ok {
		delete(l.timers, id)
		if t.index >= 0 {
			heap.Remove(&l.queue, t.index)
		}
		return
	}
	for i, ln := range l.listeners {
		if ln.id == id {
			l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Recurring timers are re-armed before their callback runs, so a callback
// may cancel itself.
func (l *Loop) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	target := l.now + d
	for len(l.queue) > 0 && l.queue[0].due <= target {
		t := heap.Pop(&l.queue).(*timer)
		l.now = t.due
		if t.every > 0 {
			l.seq++
			t.due += t.every
			t.seq = l.seq
			heap.Push(&l.queue, t)
		} else {
			delete(l.timers, t.id)
		}
		l.guard(t.id, t.fn)
	}
	l.now = target
}

// Frame runs the frame callbacks requested before this call. Callbacks
// requested while it runs wait for the next frame.
func (l *Loop) Frame() {
	batch := l.frameQueue
	l.frameQueue = nil
	now := l.now
	for _, req := range batch {
		if _, live := l.frames[req.id]; !live {
			continue
		}
		delete(l.frames, req.id)
		fn := req.fn
		l.guard(req.id, func() { fn(now) })
	}
}

// Step advances the clock by d and runs one frame.
func (l *Loop) Step(d time.Duration) {
	l.Advance(d)
	l.Frame()
}

func (l *Loop) Pointer(x, y float64) {
	for _, ln := range l.snapshot() {
		if ln.pointer != nil {
			fn := ln.pointer
			l.guard(ln.id, func() { fn(x, y) })
		}
	}
}

func (l *Loop) Resize(w, h float64) {
	for _, ln := range l.snapshot() {
		if ln.resize != nil {
			fn := ln.resize
			l.guard(ln.id, func() { fn(w, h) })
		}
	}
}

func (l *Loop) snapshot() []listener {
	out := make([]listener, len(l.listeners))
	copy(out, l.listeners)
	return out
}

// Pending reports outstanding frames, timers and listeners.
func (l *Loop) Pending() int {
	return len(l.frames) + len(l.timers) + len(l.listeners)
}

func (l *Loop) PendingFrames() int    { return len(l.frames) }
func (l *Loop) PendingTimers() int    { return len(l.timers) }
func (l *Loop) PendingListeners() int { return len(l.listeners) }

// guard runs fn and drops its registration if it panics. Decorative
// animation must never take the host down with it.
func (l *Loop) guard(id ID, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("loop: callback %d panicked: %v", id, r)
			l.Cancel(id)
		}
	}()
	fn()
}
