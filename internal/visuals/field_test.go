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

var _ = Describe("Field", func() {
	var (
		l     *loop.Loop
		rec   *surface.Recorder
		field *visuals.Field
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(1000, 500)
		field = visuals.NewField(visuals.DefaultFieldParams())
		Expect(field.Mount(visuals.Env{Scheduler: l, Input: l, Surface: rec, Rand: rng.New(42)})).To(Succeed())
	})

	AfterEach(func() {
		field.Unmount()
		Expect(l.Pending()).To(BeZero())
	})

	It("sizes the field by viewport area", func() {
		Expect(field.Nodes()).To(HaveLen(20))
		for _, n := range field.Nodes() {
			Expect(n.Radius).To(BeNumerically(">=", 0.5))
			Expect(n.Radius).To(BeNumerically("<=", 2.0))
		}
	})

	It("keeps every node inside the viewport", func() {
		for i := 0; i < 2000; i++ {
			if i%100 == 0 {
				l.Pointer(float64(i%1000), float64(i%500))
			}
			rec.Clear()
			l.Step(16 * time.Millisecond)
			for _, n := range field.Nodes() {
				Expect(n.X).To(BeNumerically(">=", 0))
				Expect(n.X).To(BeNumerically("<=", 1000))
				Expect(n.Y).To(BeNumerically(">=", 0))
				Expect(n.Y).To(BeNumerically("<=", 500))
			}
		}
	})

	It("follows pointer events", func() {
		l.Pointer(120, 80)
		x, y := field.Pointer()
		Expect(x).To(Equal(120.0))
		Expect(y).To(Equal(80.0))
	})

	It("reinitializes on resize", func() {
		rec.Resize(500, 500)
		l.Resize(500, 500)

		Expect(field.Nodes()).To(HaveLen(10))
		w, h := field.Size()
		Expect(w).To(Equal(500.0))
		Expect(h).To(Equal(500.0))
		for _, n := range field.Nodes() {
			Expect(n.X).To(BeNumerically("<=", 500))
		}
	})

	It("pulls nodes toward a nearby pointer", func() {
		f := visuals.NewField(visuals.FieldParams{
			AreaPerNode:   100 * 100,
			PointerRadius: 200,
			PointerPull:   0.02,
			Friction:      1,
			LinkDistance:  150,
			RingRadius:    100,
		})
		// one node at (25,50), at rest
		Expect(f.Mount(visuals.Env{
			Scheduler: l,
			Surface:   surface.NewRecorder(100, 100),
			Rand:      rng.NewSequence(0.25, 0.5, 0.5, 0.5, 0),
		})).To(Succeed())
		defer f.Unmount()

		f.SetPointer(75, 50)
		f.Step()
		n := f.Nodes()[0]
		Expect(n.VX).To(BeNumerically(">", 0))
		Expect(n.VY).To(BeNumerically("~", 0, 1e-12))
		Expect(n.X).To(BeNumerically(">", 25))
	})

	It("draws links between close nodes and a circle per node", func() {
		rec.Clear()
		l.Frame()
		Expect(rec.Count(surface.OpFillCircle)).To(Equal(20))
		Expect(rec.Count(surface.OpLine)).To(BeNumerically("<=", 20*19/2))
	})
})
