package gui

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/starfield/internal/starfield"
)

type ebitenRenderer struct {
	dst *ebiten.Image
}

func (r ebitenRenderer) Clear() { r.dst.Fill(color.Black) }

func (r ebitenRenderer) DrawCircle(x, y, diameter float64) {
	vector.DrawFilledCircle(r.dst, float32(x), float32(y), float32(diameter/2), color.White, true)
}

// game steps the field in Update and replays the recorded frame in Draw,
// since ebiten does not hand out the screen during Update.
type game struct {
	field  *starfield.Field
	policy starfield.Policy
	opts   Options
	frame  starfield.Recorder

	cursorX, cursorY int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.policy = starfield.Toggle(g.policy, g.field, g.opts.Base)
		g.opts.Logger.Debug("input mode", "mode", g.policy.Mode())
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.policy.Wheel(g.field, dy)
	}
	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.policy.Pointer(g.field, float64(x), float64(y))
	}

	g.frame.Clear()
	g.field.Step(&g.frame)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.frame.Replay(ebitenRenderer{dst: screen})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

func runEbiten(f *starfield.Field, p starfield.Policy, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("starfield")
	ebiten.SetTPS(opts.FrameRate)

	g := &game{field: f, policy: p, opts: opts}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	opts.Logger.Info("window closed", "frames", f.Frame(), "stars", f.Len())
	return nil
}
