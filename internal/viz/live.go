package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/starfield"
)

const historyCapacity = 120

type TickMsg time.Time

// Model hosts a star field in the terminal. The canvas is drawn at the top
// left of the view, so mouse cells map straight onto canvas pixels.
type Model struct {
	field      *starfield.Field
	policy     starfield.Policy
	base       starfield.Rates
	canvas     *Canvas
	fps        int
	running    bool
	showHelp   bool
	theme      int
	renderer   *lipgloss.Renderer
	styles     styles
	popHistory []float64
}

type Option func(*Model)

// WithRenderer styles the HUD for a specific output, such as an SSH session.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

func WithFrameRate(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

// NewModel wraps a field whose bounds come from canvas.Bounds().
func NewModel(f *starfield.Field, canvas *Canvas, p starfield.Policy, base starfield.Rates, opts ...Option) Model {
	m := Model{
		field:      f,
		policy:     p,
		base:       base,
		canvas:     canvas,
		fps:        60,
		running:    true,
		renderer:   lipgloss.DefaultRenderer(),
		popHistory: make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.styles = newStyles(m.renderer, Themes[m.theme])
	return m
}

func (m Model) Field() *starfield.Field  { return m.field }
func (m Model) Policy() starfield.Policy { return m.policy }
func (m Model) Running() bool            { return m.running }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update routes input to the active policy and steps the field on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=", "up", "k":
			m.policy.Wheel(m.field, 1)
		case "-", "_", "down", "j":
			m.policy.Wheel(m.field, -1)
		case "m":
			m.policy = starfield.Toggle(m.policy, m.field, m.base)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(m.renderer, Themes[m.theme])
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.policy.Wheel(m.field, 1)
		case msg.Button == tea.MouseButtonWheelDown:
			m.policy.Wheel(m.field, -1)
		case msg.Action == tea.MouseActionMotion:
			x, y := cellCenter(msg.X, msg.Y)
			m.policy.Pointer(m.field, x, y)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.canvas.Clear()
	st := m.field.Step(m.canvas)

	m.popHistory = append(m.popHistory, float64(st.Population))
	if len(m.popHistory) > historyCapacity {
		m.popHistory = m.popHistory[1:]
	}
}

// cellCenter maps a terminal cell to the sub-pixel at its middle.
func cellCenter(col, row int) (float64, float64) {
	return float64(col*2) + 1, float64(row*4) + 2
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(m.canvas.String())

	status := s.running.Render("RUNNING")
	if !m.running {
		status = s.paused.Render("PAUSED")
	}
	b.WriteString(s.gradient("STARFIELD", s.theme.Primary, s.theme.Accent) + "  " + status + "\n")

	rates := m.field.Rates()
	b.WriteString(s.label.Render("Stars") + s.value.Render(fmt.Sprintf("%d / %d", m.field.Len(), m.field.Target())) + "\n")
	b.WriteString(s.label.Render("Speed") + s.value.Render(fmt.Sprintf("%.5f", rates.Speed)) + "\n")
	b.WriteString(s.label.Render("Growth") + s.value.Render(fmt.Sprintf("%.4f", rates.Size)) + "\n")
	b.WriteString(s.label.Render("Mode") + s.value.Render(m.policy.Mode().String()) + "\n")

	if m.showHelp {
		if len(m.popHistory) > 1 {
			chart := asciigraph.Plot(m.popHistory, asciigraph.Height(3), asciigraph.Width(40), asciigraph.Caption("population"))
			b.WriteString(s.graph.Render(chart) + "\n")
		}
		b.WriteString(s.help.Render(
			s.key.Render("wheel/+/-") + " stars  " +
				s.key.Render("move") + " speed  " +
				s.key.Render("m") + " mode  " +
				s.key.Render("t") + " theme  " +
				s.key.Render("space") + " pause  " +
				s.key.Render("q") + " quit"))
	} else {
		b.WriteString(s.help.Render(s.key.Render("?") + " help"))
	}
	return b.String()
}

// FromConfig builds a model with a cols x rows canvas and a field configured
// by cfg.
func FromConfig(cfg *config.Config, cols, rows int, opts ...Option) (Model, error) {
	canvas := NewCanvas(cols, rows)
	f, p, err := cfg.NewField(canvas.Bounds())
	if err != nil {
		return Model{}, err
	}
	opts = append([]Option{WithFrameRate(cfg.FrameRate)}, opts...)
	return NewModel(f, canvas, p, cfg.BaseRates(), opts...), nil
}
