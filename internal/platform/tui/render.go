package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// palette maps logical cell colors to terminal styles. Unknown colors
// render unstyled.
var palette = map[core.Color]lipgloss.Style{
	core.ColorRed:          fg("1"),
	core.ColorYellow:       fg("3"),
	core.ColorBrightRed:    fg("9").Bold(true),
	core.ColorBrightYellow: fg("11").Bold(true),
	core.ColorBlue:         fg("4"),
	core.ColorBrightBlue:   fg("12").Bold(true),
	core.ColorWhite:        fg("7"),
	core.ColorGray:         fg("245"),
	core.ColorOrange:       fg("208"),
	core.ColorBrightGreen:  fg("10").Bold(true),
	core.ColorMagenta:      fg("13"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// RenderScreen turns a screen buffer into a styled string, one line per
// row. Runs of same-colored cells share a single style.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == color; x++ {
				run.WriteRune(s.GetCell(x, y).Rune)
			}
			if style, ok := palette[color]; ok {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
		}
	}
	return sb.String()
}
