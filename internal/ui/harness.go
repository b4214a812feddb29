package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the picker model programmatically for tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and returns the command it
// produced. Commands are not executed; the cursor blink would block.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	if h.model == nil {
		return nil
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a special key.
func (h *Harness) Press(key tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: key})
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
