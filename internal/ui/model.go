package ui

import (
	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/atomicstack/tav/internal/picker"
	"github.com/atomicstack/tav/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	promptGlyph  = "▶ "
	pointerGlyph = "▶ "
)

// Model implements the Bubble Tea model for the builtin picker.
type Model struct {
	lines  []feed.Line
	items  []feed.Line
	cursor int
	offset int

	input  textinput.Model
	styles *theme.Styles

	width  int
	height int

	chosen    string
	done      bool
	cancelled bool
}

// NewModel prepares a picker over fd with an optional initial query.
func NewModel(fd feed.Feed, styles *theme.Styles, query string) *Model {
	if styles == nil {
		styles = theme.Default()
	}
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = ""
	input.Focus()
	input.SetValue(query)
	input.CursorEnd()

	m := &Model{
		lines:  append([]feed.Line(nil), fd.Lines...),
		input:  input,
		styles: styles,
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len([]rune(promptGlyph))-1, 0)
		m.syncViewport()
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		return m, m.updateInput(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		return m.choose(), true
	case "esc", "ctrl+c":
		m.done = true
		m.cancelled = true
		events.Picker.Cancelled()
		return tea.Quit, true
	case "up", "ctrl+p", "ctrl+k":
		m.moveCursor(-1)
		return nil, true
	case "down", "ctrl+n", "ctrl+j":
		m.moveCursor(1)
		return nil, true
	case "pgup":
		m.moveCursor(-m.pageSize())
		return nil, true
	case "pgdown":
		m.moveCursor(m.pageSize())
		return nil, true
	case "home":
		m.moveCursor(-len(m.items))
		return nil, true
	case "end":
		m.moveCursor(len(m.items))
		return nil, true
	case "ctrl+u", "ctrl+g", "ctrl+q":
		m.input.SetValue("")
		m.refilter()
		return nil, true
	}
	return nil, false
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return cmd
}

func (m *Model) choose() tea.Cmd {
	m.done = true
	if line, ok := m.current(); ok {
		m.chosen = line.Key
		events.Picker.Selected(line.Key)
	}
	return tea.Quit
}

// Query returns the current filter text.
func (m *Model) Query() string {
	return m.input.Value()
}

// Selection reports what the user picked. It is empty until enter is
// pressed, and stays empty when the picker was cancelled.
func (m *Model) Selection() picker.Selection {
	if m.cancelled {
		return picker.Selection{}
	}
	return picker.Selection{Key: m.chosen}
}

// Done reports whether the program should have exited.
func (m *Model) Done() bool {
	return m.done
}
