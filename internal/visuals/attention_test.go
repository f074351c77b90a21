package visuals_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/visuals"
)

var _ = Describe("Attention", func() {
	var (
		l   *loop.Loop
		rec *surface.Recorder
		a   *visuals.Attention
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(300, 260)
		a = visuals.NewAttention(visuals.DefaultAttentionParams())
		Expect(a.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(11)})).To(Succeed())
	})

	AfterEach(func() {
		a.Unmount()
		Expect(l.Pending()).To(BeZero())
	})

	It("starts with a causal mask and a boosted diagonal", func() {
		Expect(a.Cells()).To(HaveLen(64))
		for _, c := range a.Cells() {
			switch {
			case !c.Causal():
				Expect(c.Value).To(BeZero())
			case c.Row == c.Col:
				Expect(c.Value).To(BeNumerically(">=", 0.5))
				Expect(c.Value).To(BeNumerically("<=", 0.8))
			default:
				Expect(c.Value).To(BeNumerically(">=", 0.1))
				Expect(c.Value).To(BeNumerically("<=", 0.4))
			}
			Expect(c.Target).To(Equal(c.Value))
		}
	})

	It("keeps cells above the diagonal at zero on every tick", func() {
		for i := 0; i < 500; i++ {
			l.Advance(100 * time.Millisecond)
			Expect(a.At(2, 5).Value).To(BeZero())
			for _, c := range a.Cells() {
				if !c.Causal() {
					Expect(c.Value).To(BeZero())
					Expect(c.Target).To(BeZero())
				}
			}
		}
	})

	It("keeps causal weights in range", func() {
		for i := 0; i < 300; i++ {
			l.Advance(100 * time.Millisecond)
		}
		for _, c := range a.Cells() {
			if c.Causal() {
				Expect(c.Value).To(BeNumerically(">", 0))
				Expect(c.Value).To(BeNumerically("<=", 0.8))
			}
		}
	})

	It("smooths toward the target", func() {
		b := visuals.NewAttention(visuals.AttentionParams{
			Size:       2,
			Smoothing:  0.1,
			BaseMin:    0.2,
			BaseMax:    0.2,
			TargetSpan: 0.5,
		})
		Expect(b.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.NewSequence(0.5)})).To(Succeed())
		defer b.Unmount()

		b.Tick()
		Expect(b.At(1, 0).Value).To(BeNumerically("~", 0.2, 1e-12))
		Expect(b.At(0, 1).Value).To(BeZero())
	})

	It("treats hover as display only", func() {
		before := a.Cells()
		a.SetHover(3, 2)
		row, col, ok := a.Hover()
		Expect(ok).To(BeTrue())
		Expect([]int{row, col}).To(Equal([]int{3, 2}))
		Expect(a.Cells()).To(Equal(before))

		for i := 0; i < 60; i++ {
			rec.Clear()
			l.Frame()
		}
		Expect(a.Emphasis()).To(BeNumerically(">", 1.2))
		Expect(rec.Count(surface.OpFillRect)).To(Equal(64))

		a.SetHover(9, 9)
		_, _, ok = a.Hover()
		Expect(ok).To(BeFalse())
	})

	It("wraps hover movement around the grid", func() {
		a.MoveHover(0, 1)
		row, col, _ := a.Hover()
		Expect([]int{row, col}).To(Equal([]int{0, 0}))

		a.MoveHover(-1, -1)
		row, col, _ = a.Hover()
		Expect([]int{row, col}).To(Equal([]int{7, 7}))
	})
	It("maps surface points onto the grid", func() {
		a.HoverAt(56+28*2+5, 28+28*3+5, 300, 260)
		row, col, ok := a.Hover()
		Expect(ok).To(BeTrue())
		Expect([]int{row, col}).To(Equal([]int{3, 2}))

		a.HoverAt(10, 10, 300, 260)
		_, _, ok = a.Hover()
		Expect(ok).To(BeFalse())

		a.HoverAt(100, 100, 300, 260)
		a.HoverAt(290, 250, 300, 260)
		_, _, ok = a.Hover()
		Expect(ok).To(BeFalse())
	})
})
