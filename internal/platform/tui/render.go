package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hex-skirmish/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes.
var ansiCodes = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorBrightCyan:   "14",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorDarkGray:     "236",
	core.ColorNavy:         "17",
	core.ColorMaroon:       "52",
	core.ColorOlive:        "58",
	core.ColorTeal:         "23",
}

type colorPair struct {
	fg, bg core.Color
}

// styleCache holds one lipgloss style per foreground/background pair.
// SSH sessions render concurrently.
var (
	styleMu    sync.Mutex
	styleCache = map[colorPair]lipgloss.Style{}
)

func styleFor(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	styleMu.Lock()
	defer styleMu.Unlock()
	if s, ok := styleCache[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if code, ok := ansiCodes[fg]; ok {
		s = s.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiCodes[bg]; ok {
		s = s.Background(lipgloss.Color(code))
	}
	styleCache[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
