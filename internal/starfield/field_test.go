package starfield

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Field", func() {
	var (
		bounds Bounds
		src    *rand.Rand
	)

	BeforeEach(func() {
		bounds = Bounds{Width: 800, Height: 600}
		src = rand.New(rand.NewSource(11))
	})

	Describe("New", func() {
		It("populates the requested number of stars inside the canvas", func() {
			f := New(200, bounds, WithSource(src))
			Expect(f.Len()).To(Equal(200))
			Expect(f.Target()).To(Equal(200))
			for _, s := range f.Stars() {
				Expect(math.Abs(s.X)).To(BeNumerically("<=", bounds.Width/2))
				Expect(math.Abs(s.Y)).To(BeNumerically("<=", bounds.Height/2))
				Expect(s.Speed).To(Equal(1.0))
				Expect(s.Size).To(Equal(1.0))
			}
		})

		It("clamps the population", func() {
			Expect(New(-4, bounds).Len()).To(Equal(0))
			Expect(New(5000, bounds).Len()).To(Equal(MaxPopulation))
		})

		It("uses the default rates unless told otherwise", func() {
			Expect(New(1, bounds).Rates()).To(Equal(DefaultRates()))
			r := Rates{Speed: 1.01, Size: 1.02}
			Expect(New(1, bounds, WithRates(r)).Rates()).To(Equal(r))
		})
	})

	Describe("Step", func() {
		It("is a no-op on an empty field", func() {
			f := New(0, bounds, WithSource(src))
			rec := &Recorder{}
			st := f.Step(rec)
			Expect(rec.Circles).To(BeEmpty())
			Expect(st.Population).To(Equal(0))
			Expect(f.Len()).To(Equal(0))
		})

		It("draws one circle per star around the center", func() {
			f := New(30, bounds, WithSource(src))
			rec := &Recorder{}
			f.Step(rec)
			Expect(rec.Circles).To(HaveLen(30))
			for i, s := range f.Stars() {
				Expect(rec.Circles[i].X).To(Equal(400 + s.X))
				Expect(rec.Circles[i].Y).To(Equal(300 + s.Y))
				Expect(rec.Circles[i].Diameter).To(Equal(s.Size))
			}
		})

		It("tolerates a nil renderer", func() {
			f := New(3, bounds, WithSource(src))
			Expect(func() { f.Step(nil) }).NotTo(Panic())
		})

		It("keeps speed and size at or above one", func() {
			f := New(300, bounds, WithSource(src))
			f.SetMotionRates(MotionRates(DefaultRates(), 1000))
			for range 2000 {
				f.Step(nil)
			}
			for _, s := range f.Stars() {
				Expect(s.Speed).To(BeNumerically(">=", 1.0))
				Expect(s.Size).To(BeNumerically(">=", 1.0))
			}
		})

		It("recycles escaped stars without changing the population", func() {
			f := New(200, bounds, WithSource(src))
			resets := 0
			for range 1000 {
				resets += f.Step(nil).Resets
			}
			Expect(resets).To(BeNumerically(">", 0))
			Expect(f.Len()).To(Equal(200))
		})

		It("resets every star each frame on a zero-size canvas", func() {
			f := New(10, Bounds{}, WithSource(src))
			st := f.Step(nil)
			Expect(st.Resets).To(Equal(10))
			for _, s := range f.Stars() {
				Expect(s.Speed).To(Equal(1.0))
				Expect(s.Size).To(Equal(1.0))
			}
		})

		It("applies new motion rates from the next step", func() {
			f := New(1, Bounds{Width: 1e12, Height: 1e12}, WithSource(src))
			f.Step(nil)
			before := f.Stars()[0]

			f.SetMotionRates(Rates{Speed: 2, Size: 3})
			Expect(f.Stars()[0]).To(Equal(before))

			f.Step(nil)
			after := f.Stars()[0]
			Expect(after.Speed).To(Equal(before.Speed * 2))
			Expect(after.Size).To(Equal(before.Size * 3))
		})

		It("notifies observers with the frame stats", func() {
			f := New(5, bounds, WithSource(src))
			obs := &recordingObserver{}
			f.AddObserver(obs)
			f.Step(nil)
			f.Step(nil)
			Expect(obs.frames).To(HaveLen(2))
			Expect(obs.frames[1].Frame).To(Equal(1))
			Expect(obs.frames[1].Population).To(Equal(5))
			Expect(obs.frames[1].MeanSpeed).To(BeNumerically(">=", 1.0))
		})
	})

	Describe("population control", func() {
		It("grows by one star on the next tick", func() {
			f := New(200, bounds, WithSource(src))
			PopulationPolicy{}.Wheel(f, 1)
			Expect(f.Len()).To(Equal(200))
			f.Step(nil)
			Expect(f.Len()).To(Equal(201))
		})

		It("ignores growth at the ceiling", func() {
			f := New(MaxPopulation, bounds, WithSource(src))
			f.Grow(1)
			f.Step(nil)
			Expect(f.Len()).To(Equal(MaxPopulation))
		})

		It("ignores shrinking an empty field", func() {
			f := New(0, bounds, WithSource(src))
			f.Shrink(1)
			f.Step(nil)
			Expect(f.Len()).To(Equal(0))
			Expect(f.Target()).To(Equal(0))
		})

		It("converges at most MaxAdjustPerTick stars per tick", func() {
			f := New(0, bounds, WithSource(src))
			f.SetPopulationTarget(60)
			f.Step(nil)
			Expect(f.Len()).To(Equal(25))
			f.Step(nil)
			Expect(f.Len()).To(Equal(50))
			f.Step(nil)
			Expect(f.Len()).To(Equal(60))

			f.SetPopulationTarget(0)
			f.Step(nil)
			Expect(f.Len()).To(Equal(35))
		})

		It("caps a single adjustment", func() {
			f := New(100, bounds, WithSource(src))
			f.Grow(500)
			Expect(f.Target()).To(Equal(125))
			f.Shrink(-3)
			Expect(f.Target()).To(Equal(125))
		})

		It("stays within bounds for any sequence of requests", func() {
			f := New(500, bounds, WithSource(src))
			ops := rand.New(rand.NewSource(5))
			for range 5000 {
				n := ops.Intn(40)
				if ops.Intn(2) == 0 {
					f.Grow(n)
				} else {
					f.Shrink(n)
				}
				f.Step(nil)
				Expect(f.Target()).To(BeNumerically(">=", 0))
				Expect(f.Target()).To(BeNumerically("<=", MaxPopulation))
				Expect(f.Len()).To(BeNumerically(">=", 0))
				Expect(f.Len()).To(BeNumerically("<=", MaxPopulation))
			}
		})
	})
})

type recordingObserver struct {
	frames []FrameStats
}

func (r *recordingObserver) OnFrame(s FrameStats) { r.frames = append(r.frames, s) }
