package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gate-runner/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// Painter converts Screen buffers to styled strings.
// Styles are built once per color pair on the painter's renderer,
// so an SSH session gets the color profile of its own terminal.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
}

// NewPainter creates a painter. A nil renderer uses the process default.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

func (p *Painter) style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if st, ok := p.styles[key]; ok {
		return st
	}
	st := p.renderer.NewStyle()
	if fg != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg != core.ColorDefault {
		st = st.Background(lipgloss.Color(bg))
	}
	p.styles[key] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != start.FG || cell.BG != start.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(start.FG, start.BG).Render(run.String()))
		}
	}
	return sb.String()
}
