package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const ellipsis = "…"

// Fit pads or truncates text to exactly width display cells.
func Fit(text string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, ellipsis)
	}
	if align == AlignRight {
		return runewidth.FillLeft(text, width)
	}
	return runewidth.FillRight(text, width)
}

// Fill repeats glyph until it covers width cells.
func Fill(glyph string, width int) string {
	gw := runewidth.StringWidth(glyph)
	if width <= 0 || gw == 0 {
		return ""
	}
	return Fit(strings.Repeat(glyph, width/gw), width, AlignLeft)
}

// Width returns the display width of text, ignoring escape sequences.
func Width(text string) int {
	return ansi.StringWidth(text)
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if c >= colCount {
				break
			}
			widths[c] = max(widths[c], Width(cell))
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c >= colCount {
				break
			}
			if c > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", max(widths[c]-Width(cell), 0))
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}
