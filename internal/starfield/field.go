package starfield

import (
	"math"
	"math/rand"
	"time"
)

// Field is the simulator state: the stars, the canvas they live in and the
// control parameters that input policies write between frames.
type Field struct {
	stars     []Star
	bounds    Bounds
	rates     Rates
	target    int
	frame     int
	src       Source
	metrics   []Metric
	observers []Observer
}

type Option func(*Field)

// WithSource sets the random source used to place new and recycled stars.
func WithSource(src Source) Option {
	return func(f *Field) { f.src = src }
}

// WithRates sets the initial motion rates.
func WithRates(r Rates) Option {
	return func(f *Field) { f.rates = r }
}

// New populates a field of the given size inside b. Populations outside
// [0, MaxPopulation] are clamped.
func New(population int, b Bounds, opts ...Option) *Field {
	f := &Field{
		bounds:    b,
		rates:     DefaultRates(),
		target:    clampPopulation(population),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.src == nil {
		f.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f.stars = make([]Star, 0, f.target)
	for range f.target {
		f.stars = append(f.stars, Reset(f.bounds, f.src))
	}
	return f
}

func (f *Field) AddMetric(m Metric)     { f.metrics = append(f.metrics, m) }
func (f *Field) AddObserver(o Observer) { f.observers = append(f.observers, o) }

func (f *Field) Len() int          { return len(f.stars) }
func (f *Field) Target() int       { return f.target }
func (f *Field) Rates() Rates      { return f.rates }
func (f *Field) Bounds() Bounds    { return f.bounds }
func (f *Field) Frame() int        { return f.frame }
func (f *Field) Metrics() []Metric { return f.metrics }

func (f *Field) Center() (float64, float64) { return f.bounds.Center() }

// Stars returns a copy of the current population.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// SetMotionRates replaces the growth rates used by the next Step.
func (f *Field) SetMotionRates(r Rates) { f.rates = r }

// SetPopulationTarget sets the population the field converges to, clamped to
// [0, MaxPopulation]. The population itself changes during Step.
func (f *Field) SetPopulationTarget(n int) { f.target = clampPopulation(n) }

// Grow raises the target by n, at most MaxAdjustPerTick per call.
func (f *Field) Grow(n int) { f.SetPopulationTarget(f.target + clampAdjust(n)) }

// Shrink lowers the target by n, at most MaxAdjustPerTick per call.
func (f *Field) Shrink(n int) { f.SetPopulationTarget(f.target - clampAdjust(n)) }

// Step advances the field by one frame. It first moves the population toward
// the target by up to MaxAdjustPerTick stars, then updates every star and
// draws it on r. A nil renderer skips drawing.
func (f *Field) Step(r Renderer) FrameStats {
	f.resolve()

	cx, cy := f.bounds.Center()
	stats := FrameStats{
		Frame:      f.frame,
		Population: len(f.stars),
		Target:     f.target,
		Rates:      f.rates,
	}

	var speedSum float64
	for i := range f.stars {
		s, reset := Update(f.stars[i], f.rates, f.bounds, f.src)
		f.stars[i] = s
		if reset {
			stats.Resets++
		}
		speedSum += s.Speed
		stats.MaxSize = math.Max(stats.MaxSize, s.Size)

		if r != nil {
			r.DrawCircle(cx+s.X, cy+s.Y, s.Size)
		}
	}
	if len(f.stars) > 0 {
		stats.MeanSpeed = speedSum / float64(len(f.stars))
	}
	f.frame++

	for _, m := range f.metrics {
		m.Observe(stats)
	}
	for _, o := range f.observers {
		o.OnFrame(stats)
	}
	return stats
}

func (f *Field) resolve() {
	switch n := len(f.stars); {
	case n < f.target:
		for range min(f.target-n, MaxAdjustPerTick) {
			f.stars = append(f.stars, Reset(f.bounds, f.src))
		}
	case n > f.target:
		f.stars = f.stars[:n-min(n-f.target, MaxAdjustPerTick)]
	}
}

func clampPopulation(n int) int {
	return max(0, min(n, MaxPopulation))
}

func clampAdjust(n int) int {
	return max(0, min(n, MaxAdjustPerTick))
}
