package starfield

// Circle is one recorded draw command, in canvas coordinates.
type Circle struct {
	X, Y     float64
	Diameter float64
}

// Recorder is a Renderer that keeps the last frame's draw commands.
type Recorder struct {
	Circles []Circle
	Clears  int
}

func (r *Recorder) Clear() {
	r.Circles = r.Circles[:0]
	r.Clears++
}

func (r *Recorder) DrawCircle(x, y, diameter float64) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, Diameter: diameter})
}

// Replay sends the recorded frame to another renderer.
func (r *Recorder) Replay(dst Renderer) {
	dst.Clear()
	for _, c := range r.Circles {
		dst.DrawCircle(c.X, c.Y, c.Diameter)
	}
}
