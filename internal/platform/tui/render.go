package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapcolour/internal/core"
)

// ansiCodes maps core colors to ANSI 256-color codes.
var ansiCodes = map[core.Color]string{
	core.ColorRed:         "1",
	core.ColorGreen:       "2",
	core.ColorYellow:      "3",
	core.ColorBlue:        "4",
	core.ColorMagenta:     "5",
	core.ColorCyan:        "6",
	core.ColorWhite:       "7",
	core.ColorBrightRed:   "9",
	core.ColorBrightGreen: "10",
	core.ColorBrightWhite: "15",
	core.ColorOrange:      "208",
	core.ColorGray:        "245",
}

// Painter turns screen buffers into styled strings for one output.
// SSH sessions each get their own, bound to the client's color profile.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewPainter creates a painter for the renderer. A nil renderer means the
// process's own terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Painter{
		renderer: r,
		styles:   make(map[core.Color]lipgloss.Style, len(ansiCodes)+1),
	}
	p.styles[core.ColorDefault] = r.NewStyle()
	for c, code := range ansiCodes {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var defaultPainter = NewPainter(nil)

// NewStyle returns an empty style bound to the painter's output.
func (p *Painter) NewStyle() lipgloss.Style {
	if p == nil {
		p = defaultPainter
	}
	return p.renderer.NewStyle()
}

// Paint styles text in one screen color.
func (p *Painter) Paint(c core.Color, text string) string {
	if p == nil {
		p = defaultPainter
	}
	style, ok := p.styles[c]
	if !ok {
		style = p.styles[core.ColorDefault]
	}
	return style.Render(text)
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one escape sequence.
func (p *Painter) Render(s *core.Screen) string {
	if p == nil {
		p = defaultPainter
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			sb.WriteString(p.Paint(color, run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s for the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultPainter.Render(s)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
