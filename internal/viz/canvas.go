package viz

import (
	"math"
	"strings"

	"github.com/san-kum/starfield/internal/starfield"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid. Each cell holds 2x4 sub-pixels, so a canvas
// of Width x Height cells is (Width*2) x (Height*4) pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

var _ starfield.Renderer = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Bounds is the canvas size in sub-pixels, the space stars move in.
func (c *Canvas) Bounds() starfield.Bounds {
	return starfield.Bounds{Width: float64(c.Width * 2), Height: float64(c.Height * 4)}
}

// Set sets a pixel at (x, y) in sub-pixel coordinates. Out of range pixels
// are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawCircle fills a disk of the given diameter centered on (x, y). Anything
// smaller than a pixel still lights the pixel under its center.
func (c *Canvas) DrawCircle(x, y, diameter float64) {
	px, py := int(math.Floor(x)), int(math.Floor(y))
	r := diameter / 2
	if r < 1 {
		c.Set(px, py)
		return
	}

	// Only visit the part of the bounding box that lands on the canvas.
	ri := int(math.Ceil(r))
	minX, maxX := max(-ri, -px), min(ri, c.Width*2-1-px)
	minY, maxY := max(-ri, -py), min(ri, c.Height*4-1-py)
	for dy := minY; dy <= maxY; dy++ {
		for dx := minX; dx <= maxX; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.Set(px+dx, py+dy)
			}
		}
	}
}

// Lit counts the lit pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			for bits := cell - blank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
