// Package export writes star field frames to files.
package export

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/starfield/internal/starfield"
)

const (
	background = "fill:black"
	starStyle  = "fill:white"
)

// SVG is a Renderer that keeps one frame and writes it as an SVG document.
type SVG struct {
	width, height int
	frame         starfield.Recorder
}

func NewSVG(b starfield.Bounds) *SVG {
	return &SVG{width: int(math.Ceil(b.Width)), height: int(math.Ceil(b.Height))}
}

func (s *SVG) Clear() { s.frame.Clear() }

func (s *SVG) DrawCircle(x, y, diameter float64) { s.frame.DrawCircle(x, y, diameter) }

// Len is the number of circles in the current frame.
func (s *SVG) Len() int { return len(s.frame.Circles) }

func (s *SVG) Write(w io.Writer) {
	canvas := svg.New(w)
	canvas.Start(s.width, s.height)
	canvas.Title("starfield")
	canvas.Rect(0, 0, s.width, s.height, background)
	canvas.Gstyle(starStyle)
	for _, c := range s.frame.Circles {
		canvas.Circle(int(math.Round(c.X)), int(math.Round(c.Y)), radius(c.Diameter))
	}
	canvas.Gend()
	canvas.End()
}

// radius rounds to whole pixels, keeping unit stars visible.
func radius(diameter float64) int {
	return max(1, int(math.Round(diameter/2)))
}
