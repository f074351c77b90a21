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

var _ = Describe("Flow", func() {
	var (
		l   *loop.Loop
		rec *surface.Recorder
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(300, 200)
	})

	It("spaces layer nodes evenly", func() {
		nodes := visuals.Layout(visuals.DefaultFlowParams().Layers, 200)
		Expect(nodes).To(HaveLen(5))
		Expect(nodes[0]).To(Equal([]visuals.Point{{X: 40, Y: 40}, {X: 40, Y: 80}, {X: 40, Y: 120}, {X: 40, Y: 160}}))
		Expect(nodes[4]).To(Equal([]visuals.Point{{X: 260, Y: 50}, {X: 260, Y: 100}, {X: 260, Y: 150}}))
	})

	It("mounts with negative counts as an empty network", func() {
		p := visuals.DefaultFlowParams()
		p.Particles = -1
		p.Layers[1].Nodes = -2
		f := visuals.NewFlow(p)
		Expect(f.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(5)})).To(Succeed())
		defer f.Unmount()

		Expect(f.Particles()).To(BeEmpty())
		Expect(visuals.Layout(p.Layers, 200)[1]).To(BeEmpty())
		Expect(func() { l.Step(16 * time.Millisecond) }).NotTo(Panic())
	})

	It("keeps progress in [0,1)", func() {
		f := visuals.NewFlow(visuals.DefaultFlowParams())
		Expect(f.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(5)})).To(Succeed())
		defer f.Unmount()

		Expect(f.Particles()).To(HaveLen(30))
		for i := 0; i < 1000; i++ {
			rec.Clear()
			l.Step(16 * time.Millisecond)
			for _, p := range f.Particles() {
				Expect(p.Progress).To(BeNumerically(">=", 0))
				Expect(p.Progress).To(BeNumerically("<", 1))
				Expect(p.Path).To(BeNumerically(">=", 0))
				Expect(p.Path).To(BeNumerically("<", 4))
				Expect(p.Speed).To(BeNumerically(">=", 0.003))
				Expect(p.Speed).To(BeNumerically("<=", 0.007))
			}
		}
	})

	It("lands on the last node of the path after one full cycle", func() {
		params := visuals.DefaultFlowParams()
		params.MinSpeed, params.MaxSpeed = 0.0625, 0.0625
		// progress 0, speed, path 2, size, opacity
		src := rng.NewSequence(0, 0.5, 0.5, 0.5, 0.5)
		f := visuals.NewFlow(params)
		Expect(f.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: src})).To(Succeed())
		defer f.Unmount()

		for _, p := range f.Particles() {
			Expect(p.Path).To(Equal(2))
			Expect(p.Progress).To(BeZero())
		}

		for i := 0; i < 15; i++ {
			l.Frame()
		}
		for _, p := range f.Particles() {
			Expect(p.Progress).To(BeNumerically("~", 0.9375, 1e-12))
		}

		l.Frame()
		for _, p := range f.Particles() {
			Expect(p.X).To(Equal(260.0))
			Expect(p.Y).To(Equal(150.0))
			Expect(p.Progress).To(BeZero())
		}
	})

	It("interpolates between layers", func() {
		f := visuals.NewFlow(visuals.DefaultFlowParams())
		Expect(f.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(1)})).To(Succeed())
		defer f.Unmount()

		Expect(f.PositionAt(0, 0)).To(Equal(visuals.Point{X: 40, Y: 40}))
		// halfway through the first transition: node 1 of layer 0 to node 1 of layer 1
		mid := f.PositionAt(0.125, 1)
		Expect(mid.X).To(BeNumerically("~", 70, 1e-9))
		Expect(mid.Y).To(BeNumerically("~", (80+200.0/7*2)/2, 1e-9))
		// path 7 wraps to 3 in the four-node layer
		Expect(f.PositionAt(0, 7)).To(Equal(visuals.Point{X: 40, Y: 160}))
	})

	It("draws every edge, node and particle", func() {
		f := visuals.NewFlow(visuals.DefaultFlowParams())
		Expect(f.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(1)})).To(Succeed())
		defer f.Unmount()

		rec.Clear()
		l.Frame()
		Expect(rec.Count(surface.OpLine)).To(Equal(4*6 + 6*8 + 8*6 + 6*3))
	})
})
