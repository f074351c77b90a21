package visuals_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/rng"
	"github.com/san-kum/ambient/internal/surface"
	"github.com/san-kum/ambient/internal/visuals"
)

// exact partial derivatives of visuals.Loss
func analyticGradient(x, y float64) (float64, float64) {
	dx := 4*(x-0.5) + 3*math.Cos(10*x)*math.Cos(10*y)
	dy := 6*(y-0.5) - 3*math.Sin(10*x)*math.Sin(10*y)
	return dx, dy
}

var _ = Describe("Descent", func() {
	var (
		l   *loop.Loop
		rec *surface.Recorder
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(280, 200)
	})

	It("estimates the gradient by central difference", func() {
		for _, p := range []visuals.Point{{X: 0.85, Y: 0.15}, {X: 0.2, Y: 0.7}, {X: 0.5, Y: 0.5}} {
			gx, gy := visuals.Gradient(p.X, p.Y, 0.001)
			wx, wy := analyticGradient(p.X, p.Y)
			Expect(gx).To(BeNumerically("~", wx, 1e-3))
			Expect(gy).To(BeNumerically("~", wy, 1e-3))
		}
	})

	It("takes one learning-rate step downhill", func() {
		d := visuals.NewDescent(visuals.DefaultDescentParams())
		d.Reset(visuals.Point{X: 0.85, Y: 0.15})
		d.Step()

		gx, gy := analyticGradient(0.85, 0.15)
		pos := d.Position()
		Expect(pos.X).To(BeNumerically("~", 0.85-0.05*gx, 1e-4))
		Expect(pos.Y).To(BeNumerically("~", 0.15-0.05*gy, 1e-4))
		Expect(d.Iteration()).To(Equal(1))
		Expect(d.Path()).To(HaveLen(2))
		Expect(visuals.Loss(pos.X, pos.Y)).To(BeNumerically("<", visuals.Loss(0.85, 0.15)))
	})

	It("stops at the edge of the unit square", func() {
		p := visuals.DefaultDescentParams()
		p.LearningRate = 1
		d := visuals.NewDescent(p)
		// the gradient at the origin is about (1, -3)
		d.Reset(visuals.Point{X: 0, Y: 0})
		d.Step()
		Expect(d.Position()).To(Equal(visuals.Point{X: 0, Y: 1}))
	})

	It("starts from the upper right region", func() {
		d := visuals.NewDescent(visuals.DefaultDescentParams())
		Expect(d.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.NewSequence(0, 1)})).To(Succeed())
		defer d.Unmount()

		Expect(d.Position()).To(Equal(visuals.Point{X: 0.7, Y: 0.3}))
		Expect(d.Path()).To(HaveLen(1))
		Expect(d.Phase()).To(Equal(visuals.Stepping))
	})

	Context("when the iteration budget runs out", func() {
		var d *visuals.Descent

		BeforeEach(func() {
			params := visuals.DefaultDescentParams()
			params.LearningRate = 0
			params.Tolerance = 0
			d = visuals.NewDescent(params)
			Expect(d.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(9)})).To(Succeed())
		})

		AfterEach(func() {
			d.Unmount()
			Expect(l.Pending()).To(BeZero())
		})

		It("pauses, then restarts two seconds later", func() {
			l.Advance(100 * 80 * time.Millisecond)
			Expect(d.Iteration()).To(Equal(100))
			Expect(d.Phase()).To(Equal(visuals.Stepping))

			l.Advance(80 * time.Millisecond)
			Expect(d.Iteration()).To(Equal(101))
			Expect(d.Phase()).To(Equal(visuals.Resetting))

			l.Advance(1999 * time.Millisecond)
			Expect(d.Iteration()).To(Equal(101))
			Expect(d.Path()).To(HaveLen(102))

			l.Advance(time.Millisecond)
			Expect(d.Iteration()).To(BeZero())
			Expect(d.Path()).To(HaveLen(1))
			Expect(d.Phase()).To(Equal(visuals.Stepping))
			Expect(d.Resets()).To(Equal(1))

			l.Advance(79 * time.Millisecond)
			Expect(d.Iteration()).To(BeZero())
			l.Advance(time.Millisecond)
			Expect(d.Iteration()).To(Equal(1))
		})

		It("keeps one ticker across restarts", func() {
			for i := 0; i < 5; i++ {
				l.Advance(101*80*time.Millisecond + 2*time.Second)
			}
			Expect(d.Resets()).To(Equal(5))
			Expect(l.PendingTimers()).To(Equal(1))
		})
	})

	It("resets after converging", func() {
		params := visuals.DefaultDescentParams()
		params.LearningRate = 0
		d := visuals.NewDescent(params)
		Expect(d.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(2)})).To(Succeed())
		defer d.Unmount()

		d.Reset(visuals.Point{X: 0.505, Y: 0.495})
		l.Advance(80 * time.Millisecond)
		Expect(d.Converged()).To(BeTrue())
		Expect(d.Phase()).To(Equal(visuals.Resetting))

		l.Advance(2000 * time.Millisecond)
		Expect(d.Iteration()).To(BeZero())
		Expect(d.Path()).To(HaveLen(1))
		Expect(d.Position().X).To(BeNumerically(">=", 0.7))
	})

	It("rasterizes the loss field once", func() {
		img := visuals.Heatmap(280, 200)
		Expect(img.Bounds().Dx()).To(Equal(280))
		Expect(img.Bounds().Dy()).To(Equal(200))
		Expect(img.NRGBAAt(140, 100).A).To(Equal(uint8(255)))

		d := visuals.NewDescent(visuals.DefaultDescentParams())
		Expect(d.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(4)})).To(Succeed())
		defer d.Unmount()
		rec.Clear()
		l.Frame()
		Expect(rec.Count(surface.OpRaster)).To(Equal(1))
		Expect(rec.Count(surface.OpStrokeCircle)).To(Equal(1))
	})

	It("draws ten closed contour rings", func() {
		rings := visuals.Contours(280, 200)
		Expect(rings).To(HaveLen(10))
		first := rings[0][0]
		Expect(first.X).To(BeNumerically("~", 140+math.Sqrt(0.05)*112, 1e-9))
		Expect(first.Y).To(BeNumerically("~", 100, 1e-9))
	})
})
