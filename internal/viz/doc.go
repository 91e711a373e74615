// Package viz renders a star field in the terminal.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: steps a [starfield.Field] at a fixed frame rate and routes
//     mouse and keyboard input to the active [starfield.Policy]
//   - [Canvas]: Braille-based pixel canvas, also a [starfield.Renderer]
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Wheel, +/-  - Grow/shrink the population (wheel mode)
//	Mouse move  - Speed up away from the center (pointer mode)
//	M           - Switch input mode
//	Space       - Pause/Resume
//	T           - Cycle color themes
//	?           - Show help and population graph
//	Q           - Quit
package viz
