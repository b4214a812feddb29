package ui

import (
	"strings"

	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/picker"
)

// refilter recomputes the visible items from the query and places the
// cursor on the best match.
func (m *Model) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.items = m.lines
		m.offset = 0
		m.cursor = m.nextSelectable(0, 1)
		m.syncViewport()
		return
	}
	m.items = picker.Match(m.lines, query)
	m.cursor = picker.BestIndex(m.items, query)
	m.syncViewport()
}

func (m *Model) current() (feed.Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return feed.Line{}, false
	}
	line := m.items[m.cursor]
	if !line.Selectable() {
		return feed.Line{}, false
	}
	return line, true
}

// moveCursor moves by delta, clamps to the list, and skips separators.
func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 || delta == 0 {
		return
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	target := m.cursor + delta
	if target < 0 {
		target = 0
	}
	if target > len(m.items)-1 {
		target = len(m.items) - 1
	}
	next := m.nextSelectable(target, dir)
	if next < 0 {
		next = m.nextSelectable(target, -dir)
	}
	if next >= 0 {
		m.cursor = next
	}
	m.syncViewport()
}

// nextSelectable walks from start in dir and returns the first selectable
// index, or -1.
func (m *Model) nextSelectable(start, dir int) int {
	for i := start; i >= 0 && i < len(m.items); i += dir {
		if m.items[i].Selectable() {
			return i
		}
	}
	return -1
}

// pageSize is the number of item rows that fit on screen. Zero means
// everything fits.
func (m *Model) pageSize() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-reservedRows, 1)
}

func (m *Model) syncViewport() {
	size := m.pageSize()
	if size == 0 || len(m.items) <= size {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+size {
		m.offset = m.cursor - size + 1
	}
	if m.offset > len(m.items)-size {
		m.offset = len(m.items) - size
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
