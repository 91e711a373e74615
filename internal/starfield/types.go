package starfield

const (
	MaxPopulation     = 1000
	MaxAdjustPerTick  = 25
	DefaultPopulation = 200

	DefaultSpeedFactor = 1.0001
	DefaultSizeFactor  = 1.01

	// StepFineness sets how fast pointer distance can drive the stars.
	StepFineness = 200.0
	// SizeSpeedRatio keeps size growth from outpacing speed growth.
	SizeSpeedRatio = 4.0
)

// Star is one point of light, stored as an offset from the screen center.
type Star struct {
	X, Y  float64
	Speed float64
	Size  float64
}

// Bounds is the visible canvas. It is fixed for the lifetime of a Field.
type Bounds struct {
	Width, Height float64
}

func (b Bounds) Center() (float64, float64) { return b.Width / 2, b.Height / 2 }

// Rates are the per-frame multiplicative growth factors applied to every star.
type Rates struct {
	Speed float64
	Size  float64
}

func DefaultRates() Rates {
	return Rates{Speed: DefaultSpeedFactor, Size: DefaultSizeFactor}
}

// Source is a uniform random source over [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Renderer receives the draw commands of one frame.
type Renderer interface {
	Clear()
	DrawCircle(x, y, diameter float64)
}

// FrameStats summarizes one Step for metrics and observers.
type FrameStats struct {
	Frame      int
	Population int
	Target     int
	Resets     int
	Rates      Rates
	MeanSpeed  float64
	MaxSize    float64
}

type Metric interface {
	Name() string
	Observe(s FrameStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s FrameStats)
}
