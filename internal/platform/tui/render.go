package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimyer/driftfield/internal/render"
)

// colorStyles maps render colors to lipgloss styles.
var colorStyles = map[render.Color]lipgloss.Style{
	render.ColorDefault: lipgloss.NewStyle(),
	render.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	render.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	render.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	render.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	render.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	render.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a screen buffer to a styled string for display.
// Adjacent cells with the same color are grouped to keep the ANSI
// escape overhead down.
func RenderScreen(s *render.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[render.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
