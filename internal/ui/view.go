package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// reservedRows holds the info line and the prompt.
const reservedRows = 2

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	items := m.items
	start := 0
	if size := m.pageSize(); size > 0 && len(items) > size {
		start = m.offset
		items = items[start : start+size]
	}
	if len(m.items) == 0 {
		b.WriteString(m.fit(m.styles.Info.Render(fmt.Sprintf("No matches for %q", m.input.Value()))))
		b.WriteString("\n")
	}
	for i, line := range items {
		b.WriteString(m.fit(m.renderLine(line.Text, start+i == m.cursor)))
		b.WriteString("\n")
	}
	b.WriteString(m.fit(m.styles.Info.Render(m.counter())))
	b.WriteString("\n")
	b.WriteString(m.fit(m.styles.Prompt.Render(promptGlyph) + m.input.View()))
	return b.String()
}

func (m *Model) renderLine(text string, selected bool) string {
	if !selected {
		return strings.Repeat(" ", ansi.StringWidth(pointerGlyph)) + text
	}
	return m.styles.Pointer.Render(pointerGlyph) + m.styles.SelectedItem.Render(ansi.Strip(text))
}

func (m *Model) counter() string {
	total := 0
	for _, line := range m.lines {
		if line.Selectable() {
			total++
		}
	}
	shown := 0
	for _, line := range m.items {
		if line.Selectable() {
			shown++
		}
	}
	return fmt.Sprintf("  %d/%d", shown, total)
}

func (m *Model) fit(text string) string {
	if m.width <= 0 {
		return text
	}
	return ansi.Truncate(text, m.width, "")
}
