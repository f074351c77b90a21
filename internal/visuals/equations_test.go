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

var _ = Describe("Emitter", func() {
	var (
		l *loop.Loop
		e *visuals.Emitter
	)

	BeforeEach(func() {
		l = loop.New()
		e = visuals.NewEmitter(visuals.DefaultEmitterParams())
		Expect(e.Mount(visuals.Env{Scheduler: l, Surface: surface.NewRecorder(800, 600), Rand: rng.New(3)})).To(Succeed())
	})

	AfterEach(func() {
		e.Unmount()
		Expect(l.Pending()).To(BeZero())
	})

	It("keeps the pool at eight labels", func() {
		Expect(e.Labels()).To(HaveLen(8))
		for i := 0; i < 50; i++ {
			l.Advance(4 * time.Second)
			Expect(e.Labels()).To(HaveLen(8))
		}
	})

	It("gives every recycled label a fresh identity", func() {
		seen := map[uint64]bool{}
		for _, lb := range e.Labels() {
			seen[lb.ID] = true
		}
		Expect(seen).To(HaveLen(8))

		for i := 0; i < 10; i++ {
			l.Advance(4 * time.Second)
			fresh := 0
			for _, lb := range e.Labels() {
				if !seen[lb.ID] {
					fresh++
					seen[lb.ID] = true
					Expect(lb.Born).To(Equal(l.Now()))
				}
			}
			Expect(fresh).To(Equal(1))
		}
	})

	It("recycles only on the interval", func() {
		before := e.Labels()
		l.Advance(3999 * time.Millisecond)
		Expect(e.Labels()).To(Equal(before))
	})

	It("keeps labels within the configured ranges", func() {
		for _, lb := range e.Labels() {
			Expect(visuals.Formulas).To(ContainElement(lb.Text))
			Expect(lb.X).To(BeNumerically(">=", 10))
			Expect(lb.X).To(BeNumerically("<=", 90))
			Expect(lb.Y).To(BeNumerically(">=", 0))
			Expect(lb.Y).To(BeNumerically("<", 100))
			Expect(lb.Duration).To(BeNumerically(">=", 15))
			Expect(lb.Duration).To(BeNumerically("<=", 35))
		}
	})

	It("hides a label until its delay has passed", func() {
		lb := visuals.Label{Duration: 10, Delay: 2}
		Expect(e.Opacity(lb, time.Second)).To(BeZero())
		Expect(e.Opacity(lb, 7*time.Second)).To(BeNumerically("~", 0.06, 1e-9))
	})
})
