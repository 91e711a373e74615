// Package starfield simulates the classic "flying stars" screensaver.
//
// A [Field] owns a population of [Star] values, each an offset from the
// screen center with multiplicative speed and size factors. Every call to
// [Field.Step] pushes each star outward geometrically and grows its speed
// and size by the current [Rates]; a star that leaves the visible rectangle
// is reset in place to a fresh random offset.
//
// Hosts drive the field from a frame clock and forward input to a [Policy]:
//
//   - [PopulationPolicy]: wheel notches grow or shrink the population target
//   - [MotionPolicy]: pointer distance from the center scales the rates
//
// # Drawing
//
// Step emits one filled circle per star to a [Renderer]. [Recorder] keeps the
// draw commands in memory for hosts that draw outside their update callback.
//
//	f := starfield.New(200, starfield.Bounds{Width: 800, Height: 600})
//	for {
//	    f.Step(renderer)
//	}
package starfield
