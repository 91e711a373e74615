package starfield

import "math"

// Reset returns a fresh star at a uniform random offset inside b with unit
// speed and size.
func Reset(b Bounds, src Source) Star {
	return Star{
		X:     b.Width * (src.Float64() - 0.5),
		Y:     b.Height * (src.Float64() - 0.5),
		Speed: 1.0,
		Size:  1.0,
	}
}

// Advance applies one frame of motion: the offset grows by the star's speed,
// then speed and size compound by the field rates.
func Advance(s Star, r Rates) Star {
	s.X *= s.Speed
	s.Y *= s.Speed
	s.Speed *= r.Speed
	s.Size *= r.Size
	return s
}

// Escaped reports whether s has left the visible rectangle. Degenerate bounds
// count every star as escaped, as does a star whose factors overflowed.
func Escaped(s Star, b Bounds) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return true
	}
	if math.IsInf(s.Speed, 0) || math.IsNaN(s.X) || math.IsNaN(s.Y) {
		return true
	}
	return math.Abs(s.X) > b.Width/2 || math.Abs(s.Y) > b.Height/2
}

// Update advances s and recycles it if it escaped. The second result reports
// whether a reset happened.
func Update(s Star, r Rates, b Bounds, src Source) (Star, bool) {
	s = Advance(s, r)
	if Escaped(s, b) {
		return Reset(b, src), true
	}
	return s, false
}
