package loop_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/loop"
)

var _ = Describe("Loop", func() {
	var l *loop.Loop

	BeforeEach(func() {
		l = loop.New()
	})

	Describe("frame callbacks", func() {
		It("runs each request exactly once", func() {
			calls := 0
			l.RequestFrame(func(time.Duration) { calls++ })

			l.Frame()
			l.Frame()

			Expect(calls).To(Equal(1))
			Expect(l.PendingFrames()).To(BeZero())
		})

		It("defers requests made during a frame to the next one", func() {
			calls := 0
			var tick loop.FrameFunc
			tick = func(time.Duration) {
				calls++
				l.RequestFrame(tick)
			}
			l.RequestFrame(tick)

			l.Frame()
			Expect(calls).To(Equal(1))
			Expect(l.PendingFrames()).To(Equal(1))

			l.Frame()
			Expect(calls).To(Equal(2))
		})

		It("passes the loop time", func() {
			var seen time.Duration
			l.Advance(250 * time.Millisecond)
			l.RequestFrame(func(now time.Duration) { seen = now })
			l.Frame()
			Expect(seen).To(Equal(250 * time.Millisecond))
		})

		It("skips cancelled requests", func() {
			called := false
			id := l.RequestFrame(func(time.Duration) { called = true })
			l.Cancel(id)
			l.Frame()
			Expect(called).To(BeFalse())
		})
	})

	Describe("timers", func() {
		It("fires recurring timers once per interval", func() {
			fired := 0
			l.Every(100*time.Millisecond, func() { fired++ })

			l.Advance(99 * time.Millisecond)
			Expect(fired).To(BeZero())

			l.Advance(901 * time.Millisecond)
			Expect(fired).To(Equal(10))
			Expect(l.PendingTimers()).To(Equal(1))
		})

		It("fires one-shot timers once and forgets them", func() {
			fired := 0
			l.After(2*time.Second, func() { fired++ })
			l.Advance(5 * time.Second)
			Expect(fired).To(Equal(1))
			Expect(l.Pending()).To(BeZero())
		})

		It("fires timers in deadline order with the clock at their deadline", func() {
			var order []string
			var at []time.Duration
			l.After(300*time.Millisecond, func() { order = append(order, "c"); at = append(at, l.Now()) })
			l.After(100*time.Millisecond, func() { order = append(order, "a"); at = append(at, l.Now()) })
			l.After(200*time.Millisecond, func() { order = append(order, "b"); at = append(at, l.Now()) })

			l.Advance(time.Second)

			Expect(order).To(Equal([]string{"a", "b", "c"}))
			Expect(at).To(Equal([]time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}))
			Expect(l.Now()).To(Equal(time.Second))
		})

		It("lets a recurring timer cancel itself", func() {
			fired := 0
			var id loop.ID
			id = l.Every(10*time.Millisecond, func() {
				fired++
				if fired == 3 {
					l.Cancel(id)
				}
			})
			l.Advance(time.Second)
			Expect(fired).To(Equal(3))
			Expect(l.Pending()).To(BeZero())
		})

		It("fires timers scheduled from a callback within the same advance", func() {
			fired := false
			l.After(10*time.Millisecond, func() {
				l.After(10*time.Millisecond, func() { fired = true })
			})
			l.Advance(50 * time.Millisecond)
			Expect(fired).To(BeTrue())
		})

		It("clamps zero intervals", func() {
			fired := 0
			l.Every(0, func() { fired++ })
			l.Advance(5 * time.Millisecond)
			Expect(fired).To(Equal(5))
		})
	})

	Describe("input listeners", func() {
		It("delivers pointer and resize events until cancelled", func() {
			var px, py, rw, rh float64
			pid := l.OnPointer(func(x, y float64) { px, py = x, y })
			rid := l.OnResize(func(w, h float64) { rw, rh = w, h })
			Expect(l.PendingListeners()).To(Equal(2))

			l.Pointer(3, 4)
			l.Resize(640, 480)
			Expect([]float64{px, py, rw, rh}).To(Equal([]float64{3, 4, 640, 480}))

			l.Cancel(pid)
			l.Cancel(rid)
			l.Pointer(9, 9)
			Expect(px).To(Equal(3.0))
			Expect(l.Pending()).To(BeZero())
		})
	})

	Describe("panics", func() {
		It("recovers and drops the offending registration", func() {
			healthy := 0
			l.Every(10*time.Millisecond, func() { panic("boom") })
			l.Every(10*time.Millisecond, func() { healthy++ })

			Expect(func() { l.Advance(100 * time.Millisecond) }).NotTo(Panic())
			Expect(healthy).To(Equal(10))
			Expect(l.PendingTimers()).To(Equal(1))
		})

		It("survives a panicking frame", func() {
			l.RequestFrame(func(time.Duration) { panic("frame") })
			Expect(l.Frame).NotTo(Panic())
			Expect(l.Pending()).To(BeZero())
		})
	})

	It("ignores the zero ID and unknown IDs", func() {
		l.Every(time.Second, func() {})
		l.Cancel(0)
		l.Cancel(12345)
		Expect(l.Pending()).To(Equal(1))
	})
})
