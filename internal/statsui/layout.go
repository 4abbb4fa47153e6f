package statsui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type regions struct {
	header int
	body   int
	footer int
}

func (m *Model) regions() regions {
	r := regions{header: 2, footer: 1}
	r.body = max(1, m.height-r.header-r.footer)
	return r
}

// frame pads or cuts s to exactly height lines of width cells.
func frame(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}

// clip truncates plain text to width cells.
func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
