package viz

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/starfield"
)

func newTestModel(t *testing.T, mode starfield.Mode) Model {
	t.Helper()
	canvas := NewCanvas(80, 24)
	f := starfield.New(200, canvas.Bounds(), starfield.WithSource(rand.New(rand.NewSource(1))))
	p, err := starfield.NewPolicy(mode, starfield.DefaultRates())
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	return NewModel(f, canvas, p, starfield.DefaultRates())
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t, starfield.ModeWheel)

	m, cmd := send(m, TickMsg{})
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if m.Field().Frame() != 1 {
		t.Errorf("expected 1 frame, got %d", m.Field().Frame())
	}
	if m.canvas.Lit() == 0 {
		t.Error("expected stars drawn on the canvas")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, starfield.ModeWheel)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Running() {
		t.Fatal("expected model paused")
	}
	m, cmd := send(m, TickMsg{})
	if m.Field().Frame() != 0 {
		t.Errorf("expected no frames while paused, got %d", m.Field().Frame())
	}
	if cmd == nil {
		t.Error("expected tick to keep running while paused")
	}
}

func TestModelWheelGrowsPopulation(t *testing.T) {
	m := newTestModel(t, starfield.ModeWheel)

	m, _ = send(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.Field().Target() != 201 {
		t.Fatalf("expected target 201, got %d", m.Field().Target())
	}
	m, _ = send(m, TickMsg{})
	if m.Field().Len() != 201 {
		t.Errorf("expected 201 stars after tick, got %d", m.Field().Len())
	}

	m, _ = send(m, key("-"))
	m, _ = send(m, key("-"))
	if m.Field().Target() != 199 {
		t.Errorf("expected target 199, got %d", m.Field().Target())
	}
}

func TestModelPointerDrivesRates(t *testing.T) {
	m := newTestModel(t, starfield.ModePointer)

	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	corner := m.Field().Rates()
	if corner.Speed <= starfield.DefaultSpeedFactor || corner.Size <= starfield.DefaultSizeFactor {
		t.Fatalf("expected faster rates near the corner, got %+v", corner)
	}

	m, _ = send(m, tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionMotion})
	middle := m.Field().Rates()
	if middle.Speed >= corner.Speed {
		t.Errorf("expected slower rates near the center: corner %+v, middle %+v", corner, middle)
	}

	m, _ = send(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.Field().Target() != 200 {
		t.Errorf("expected wheel ignored in pointer mode, got target %d", m.Field().Target())
	}
}

func TestModelSwitchMode(t *testing.T) {
	m := newTestModel(t, starfield.ModePointer)
	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})

	m, _ = send(m, key("m"))
	if m.Policy().Mode() != starfield.ModeWheel {
		t.Fatalf("expected wheel mode, got %s", m.Policy().Mode())
	}
	if m.Field().Rates() != starfield.DefaultRates() {
		t.Errorf("expected base rates after leaving pointer mode, got %+v", m.Field().Rates())
	}

	m, _ = send(m, key("m"))
	if m.Policy().Mode() != starfield.ModePointer {
		t.Errorf("expected pointer mode, got %s", m.Policy().Mode())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, starfield.ModeWheel)
	_, cmd := send(m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, starfield.ModeWheel)
	m, _ = send(m, TickMsg{})
	m, _ = send(m, TickMsg{})
	m, _ = send(m, key("?"))
	m, _ = send(m, key("t"))

	view := m.View()
	for _, want := range []string{"200 / 200", "wheel", "population"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Population = 40
	cfg.Seed = 3

	m, err := FromConfig(cfg, 60, 20)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	b := m.Field().Bounds()
	if b.Width != 120 || b.Height != 80 {
		t.Errorf("expected 120x80 field, got %vx%v", b.Width, b.Height)
	}
	if m.Field().Len() != 40 {
		t.Errorf("expected 40 stars, got %d", m.Field().Len())
	}
	if m.Policy().Mode() != starfield.ModePointer {
		t.Errorf("expected default pointer mode, got %s", m.Policy().Mode())
	}

	cfg.Mode = "bogus"
	if _, err := FromConfig(cfg, 60, 20); err == nil {
		t.Error("expected error for unknown mode")
	}
}
