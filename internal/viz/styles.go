package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	renderer *lipgloss.Renderer
	theme    Theme

	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	key     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t Theme) styles {
	return styles{
		renderer: r,
		theme:    t,
		label:    r.NewStyle().Foreground(t.Muted).Width(12),
		value:    r.NewStyle().Foreground(t.Text),
		running:  r.NewStyle().Bold(true).Foreground(t.Accent),
		paused:   r.NewStyle().Bold(true).Foreground(t.Warning),
		graph:    r.NewStyle().Foreground(t.Accent),
		help:     r.NewStyle().Foreground(t.Muted).MarginTop(1),
		key:      r.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

// gradient colors each rune of text by blending from one color to another.
func (s styles) gradient(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	start, err1 := colorful.Hex(string(from))
	end, err2 := colorful.Hex(string(to))
	if err1 != nil || err2 != nil {
		return s.renderer.NewStyle().Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(start.BlendLuv(end, t).Clamped().Hex())
		b.WriteString(s.renderer.NewStyle().Foreground(color).Render(string(c)))
	}
	return b.String()
}
