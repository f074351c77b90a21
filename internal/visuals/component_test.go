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

func allComponents() []visuals.Component {
	return []visuals.Component{
		visuals.NewField(visuals.DefaultFieldParams()),
		visuals.NewEmitter(visuals.DefaultEmitterParams()),
		visuals.NewAttention(visuals.DefaultAttentionParams()),
		visuals.NewFlow(visuals.DefaultFlowParams()),
		visuals.NewDescent(visuals.DefaultDescentParams()),
		visuals.NewTransformer(visuals.DefaultTransformerParams()),
	}
}

var _ = Describe("Component lifecycle", func() {
	var (
		l   *loop.Loop
		rec *surface.Recorder
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(300, 260)
	})

	env := func() visuals.Env {
		return visuals.Env{Scheduler: l, Input: l, Surface: rec, Rand: rng.New(7)}
	}

	It("leaves nothing pending after unmount", func() {
		for _, c := range allComponents() {
			Expect(c.Mount(env())).To(Succeed(), c.Name())
			Expect(l.Pending()).NotTo(BeZero(), c.Name())
			for i := 0; i < 30; i++ {
				rec.Clear()
				l.Step(50 * time.Millisecond)
			}
			c.Unmount()
			Expect(l.Pending()).To(BeZero(), c.Name())
		}
	})

	It("survives repeated mount and unmount", func() {
		for _, c := range allComponents() {
			for round := 0; round < 3; round++ {
				Expect(c.Mount(env())).To(Succeed())
				l.Step(5 * time.Second)
				c.Unmount()
			}
			Expect(l.Pending()).To(BeZero(), c.Name())
		}
	})

	It("rejects a second mount", func() {
		for _, c := range allComponents() {
			Expect(c.Mount(env())).To(Succeed())
			Expect(c.Mount(env())).To(MatchError(visuals.ErrMounted))
			c.Unmount()
		}
		Expect(l.Pending()).To(BeZero())
	})

	It("stays idle without a surface", func() {
		for _, c := range allComponents() {
			err := c.Mount(visuals.Env{Scheduler: l, Input: l})
			Expect(err).To(MatchError(visuals.ErrNoSurface), c.Name())
			c.Unmount()
		}
		Expect(l.Pending()).To(BeZero())
	})

	It("stays idle on a zero sized surface", func() {
		for _, c := range allComponents() {
			err := c.Mount(visuals.Env{Scheduler: l, Surface: surface.NewRecorder(0, 0)})
			Expect(err).To(MatchError(visuals.ErrNoSurface))
		}
		Expect(l.Pending()).To(BeZero())
	})

	It("requires a scheduler", func() {
		f := visuals.NewField(visuals.DefaultFieldParams())
		Expect(f.Mount(visuals.Env{Surface: rec})).To(MatchError(visuals.ErrNoScheduler))
	})

	It("is safe to unmount twice", func() {
		f := visuals.NewField(visuals.DefaultFieldParams())
		Expect(f.Mount(env())).To(Succeed())
		f.Unmount()
		f.Unmount()
		Expect(l.Pending()).To(BeZero())
	})
})
