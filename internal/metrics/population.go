package metrics

import "github.com/san-kum/starfield/internal/starfield"

// Population is the mean number of stars per frame.
type Population struct {
	name    string
	samples int
	total   float64
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(s starfield.FrameStats) {
	p.total += float64(s.Population)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// ResetRate is the mean number of recycled stars per frame.
type ResetRate struct {
	name    string
	samples int
	resets  int
}

func NewResetRate() *ResetRate {
	return &ResetRate{name: "reset_rate"}
}

func (r *ResetRate) Name() string { return r.name }

func (r *ResetRate) Observe(s starfield.FrameStats) {
	r.resets += s.Resets
	r.samples++
}

func (r *ResetRate) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.resets) / float64(r.samples)
}

func (r *ResetRate) Reset() {
	r.resets = 0
	r.samples = 0
}
