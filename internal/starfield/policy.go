package starfield

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects which input signal drives the field.
type Mode int

const (
	// ModeWheel lets the wheel change the population.
	ModeWheel Mode = iota
	// ModePointer lets pointer distance from the center change the rates.
	ModePointer
)

func (m Mode) String() string {
	switch m {
	case ModeWheel:
		return "wheel"
	case ModePointer:
		return "pointer"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wheel", "population":
		return ModeWheel, nil
	case "pointer", "mouse", "motion":
		return ModePointer, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Policy turns host input events into field control changes. Each policy
// ignores the input it does not own.
type Policy interface {
	Mode() Mode
	Wheel(f *Field, notches float64)
	Pointer(f *Field, x, y float64)
}

func NewPolicy(m Mode, base Rates) (Policy, error) {
	switch m {
	case ModeWheel:
		return PopulationPolicy{}, nil
	case ModePointer:
		return MotionPolicy{Base: base}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, m)
	}
}

// PopulationPolicy grows the population on scroll up and shrinks it on
// scroll down, one star per notch and at most MaxAdjustPerTick per event.
type PopulationPolicy struct{}

func (PopulationPolicy) Mode() Mode { return ModeWheel }

func (PopulationPolicy) Wheel(f *Field, notches float64) {
	if notches == 0 || math.IsNaN(notches) {
		return
	}
	n := int(math.Min(math.Ceil(math.Abs(notches)), MaxAdjustPerTick))
	if notches > 0 {
		f.Grow(n)
	} else {
		f.Shrink(n)
	}
}

func (PopulationPolicy) Pointer(*Field, float64, float64) {}

// MotionPolicy maps pointer distance from the center onto the motion rates.
type MotionPolicy struct {
	Base Rates
}

func (MotionPolicy) Mode() Mode { return ModePointer }

func (MotionPolicy) Wheel(*Field, float64) {}

func (p MotionPolicy) Pointer(f *Field, x, y float64) {
	f.SetMotionRates(MotionRates(p.Base, DistanceRatio(f.Bounds(), x, y)))
}

// WheelNotches converts a browser-style wheel delta, 125 units per notch with
// negative meaning up, into signed notches where positive means up.
func WheelNotches(deltaY float64) float64 {
	return -deltaY / 125
}

// DistanceRatio expresses the distance of (x, y) from the canvas center as a
// value in [0, 1000], where 1000 is half the canvas diagonal.
func DistanceRatio(b Bounds, x, y float64) float64 {
	maxDist := math.Hypot(b.Width, b.Height) / 2
	if maxDist <= 0 {
		return 0
	}
	cx, cy := b.Center()
	ratio := 1000 * math.Hypot(x-cx, y-cy) / maxDist
	return math.Min(ratio, 1000)
}

// MotionRates derives the rates for a distance ratio. Both factors grow with
// the ratio, size four times slower than speed.
func MotionRates(base Rates, ratio float64) Rates {
	return Rates{
		Speed: base.Speed + 0.0001*(ratio/StepFineness),
		Size:  base.Size + 0.01*(ratio/(StepFineness*SizeSpeedRatio)),
	}
}

// Toggle switches to the other input policy. Leaving pointer mode restores
// the base rates, since nothing else would bring them back down.
func Toggle(p Policy, f *Field, base Rates) Policy {
	if p.Mode() == ModePointer {
		f.SetMotionRates(base)
		return PopulationPolicy{}
	}
	return MotionPolicy{Base: base}
}
