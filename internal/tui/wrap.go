package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than width cells, splitting at
// spaces where possible. Words wider than a line are split by rune.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}
	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		flush := func() {
			if line != "" {
				out = append(out, line)
				line = ""
			}
		}
		for _, word := range words {
			wordWidth := runewidth.StringWidth(word)
			switch {
			case wordWidth > width:
				flush()
				chunks := splitWidth(word, width)
				out = append(out, chunks[:len(chunks)-1]...)
				line = chunks[len(chunks)-1]
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+wordWidth <= width:
				line += " " + word
			default:
				flush()
				line = word
			}
		}
		flush()
	}
	return out
}

func splitWidth(word string, width int) []string {
	var chunks []string
	var b strings.Builder
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
			w = 0
		}
		b.WriteRune(r)
		w += rw
	}
	if b.Len() > 0 || len(chunks) == 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// fitName truncates or pads s to exactly width cells.
func fitName(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

// clipLines returns at most height lines, keeping the focused line visible.
func clipLines(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
