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

var _ = Describe("Transformer", func() {
	var (
		l   *loop.Loop
		rec *surface.Recorder
		t   *visuals.Transformer
	)

	BeforeEach(func() {
		l = loop.New()
		rec = surface.NewRecorder(300, 260)
		t = visuals.NewTransformer(visuals.DefaultTransformerParams())
		Expect(t.Mount(visuals.Env{Scheduler: l, Surface: rec, Rand: rng.New(1)})).To(Succeed())
	})

	AfterEach(func() {
		t.Unmount()
		Expect(l.Pending()).To(BeZero())
	})

	It("starts on multi-head attention", func() {
		Expect(t.Active().Key).To(Equal("attention"))
		Expect(t.Active().Equation).To(ContainSubstring("MultiHead"))
	})

	It("selects blocks by key", func() {
		Expect(t.Select("ffn")).To(Succeed())
		Expect(t.Active().Title).To(Equal("Feed-Forward Network"))
		Expect(t.Select("decoder")).To(MatchError(visuals.ErrUnknownBlock))
		Expect(t.Active().Key).To(Equal("ffn"))
	})

	It("cycles through the stack", func() {
		Expect(t.Select("output")).To(Succeed())
		t.Next()
		Expect(t.Active().Key).To(Equal("input"))
		t.Prev()
		t.Prev()
		Expect(t.Active().Key).To(Equal("norm2"))
	})

	It("eases the active block in and restarts on selection", func() {
		for i := 0; i < 60; i++ {
			l.Step(16 * time.Millisecond)
		}
		Expect(t.Fill()).To(BeNumerically("~", 1, 0.05))
		Expect(t.Phase()).To(BeNumerically(">=", 0))
		Expect(t.Phase()).To(BeNumerically("<", 1))

		t.Next()
		Expect(t.Fill()).To(BeZero())
	})

	It("falls back to attention for an unknown default", func() {
		u := visuals.NewTransformer(visuals.TransformerParams{Active: "nope"})
		Expect(u.Active().Key).To(Equal("attention"))
	})

	It("draws one frame per block", func() {
		rec.Clear()
		l.Frame()
		Expect(rec.Count(surface.OpFillRect)).To(Equal(1))
		Expect(rec.Count(surface.OpText)).To(BeNumerically(">=", len(visuals.Blocks)))
	})
})
