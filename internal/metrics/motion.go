package metrics

import (
	"math"

	"github.com/san-kum/starfield/internal/starfield"
)

// MeanSpeed averages the per-frame mean star speed, skipping empty frames.
type MeanSpeed struct {
	name    string
	samples int
	total   float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(s starfield.FrameStats) {
	if s.Population == 0 {
		return
	}
	m.total += s.MeanSpeed
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// PeakSize tracks the largest diameter drawn.
type PeakSize struct {
	name string
	peak float64
}

func NewPeakSize() *PeakSize {
	return &PeakSize{name: "peak_size"}
}

func (p *PeakSize) Name() string { return p.name }

func (p *PeakSize) Observe(s starfield.FrameStats) {
	p.peak = math.Max(p.peak, s.MaxSize)
}

func (p *PeakSize) Value() float64 { return p.peak }

func (p *PeakSize) Reset() { p.peak = 0 }

// All returns one of each field metric.
func All() []starfield.Metric {
	return []starfield.Metric{
		NewPopulation(),
		NewResetRate(),
		NewMeanSpeed(),
		NewPeakSize(),
	}
}
