package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	c.Set(3, 7)
	c.Set(-1, 0)
	c.Set(100, 100)

	if !c.IsSet(0, 0) || !c.IsSet(3, 7) {
		t.Error("expected set pixels to be lit")
	}
	if c.Lit() != 2 {
		t.Errorf("expected 2 lit pixels, got %d", c.Lit())
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != 0x2880 {
		t.Errorf("expected dot 8 in last row cell, got %U", c.Grid[1][1])
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawCircle(3, 6, 4)
	if c.Lit() == 0 {
		t.Fatal("expected lit pixels before clear")
	}
	c.Clear()
	if c.Lit() != 0 {
		t.Errorf("expected empty canvas, got %d lit", c.Lit())
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	tests := []struct {
		name     string
		diameter float64
		want     int
	}{
		{"unit star", 1, 1},
		{"sub-pixel star", 0.2, 1},
		{"diameter two", 2, 5},
		{"diameter four", 4, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 5)
			c.DrawCircle(10.4, 10.6, tt.diameter)
			if c.Lit() != tt.want {
				t.Errorf("expected %d lit pixels, got %d", tt.want, c.Lit())
			}
			if !c.IsSet(10, 10) {
				t.Error("expected center pixel lit")
			}
		})
	}
}

func TestCanvasClipsCircle(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawCircle(0, 0, 6)
	// only the quarter disk inside the 4x4 pixel grid survives
	if c.Lit() != 11 {
		t.Errorf("expected 11 lit pixels, got %d", c.Lit())
	}
}

func TestCanvasBoundsAndString(t *testing.T) {
	c := NewCanvas(80, 24)
	b := c.Bounds()
	if b.Width != 160 || b.Height != 96 {
		t.Errorf("expected 160x96 sub-pixels, got %vx%v", b.Width, b.Height)
	}

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 24 {
		t.Errorf("expected 24 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 80 {
		t.Errorf("expected 80 cells per line, got %d", len([]rune(lines[0])))
	}
}

func TestCanvasHugeCircle(t *testing.T) {
	c := NewCanvas(4, 2)

	c.DrawCircle(4, 4, 1e9)
	if c.Lit() != 64 {
		t.Errorf("expected every pixel lit, got %d", c.Lit())
	}

	c.Clear()
	c.DrawCircle(-1e6, 4, 100)
	if c.Lit() != 0 {
		t.Errorf("expected off-canvas circle to light nothing, got %d", c.Lit())
	}
}
