package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/starfield/internal/starfield"
)

type raylibRenderer struct{}

func (raylibRenderer) Clear() { rl.ClearBackground(rl.Black) }

func (raylibRenderer) DrawCircle(x, y, diameter float64) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(diameter/2), rl.White)
}

// runRaylib drives the field from raylib's frame loop. Esc closes the window.
func runRaylib(f *starfield.Field, p starfield.Policy, opts Options) error {
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "starfield")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FrameRate))

	var r raylibRenderer
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsKeyPressed(rl.KeyM) {
			p = starfield.Toggle(p, f, opts.Base)
			opts.Logger.Debug("input mode", "mode", p.Mode())
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			p.Wheel(f, float64(wheel))
		}
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			pos := rl.GetMousePosition()
			p.Pointer(f, float64(pos.X), float64(pos.Y))
		}

		rl.BeginDrawing()
		r.Clear()
		f.Step(r)
		rl.EndDrawing()
	}
	opts.Logger.Info("window closed", "frames", f.Frame(), "stars", f.Len())
	return nil
}
