package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/picker"
	"github.com/atomicstack/tav/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// Picker runs the builtin picker as a full-screen Bubble Tea program.
type Picker struct {
	Styles *theme.Styles
	Query  string
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

var runProgram = func(p *tea.Program) (tea.Model, error) {
	return p.Run()
}

func (p Picker) Select(ctx context.Context, fd feed.Feed) (picker.Selection, error) {
	model := NewModel(fd, p.Styles, p.Query)
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if p.Input != nil {
		opts = append(opts, tea.WithInput(p.Input))
	}
	if p.Output != nil {
		opts = append(opts, tea.WithOutput(p.Output))
	}
	final, err := runProgram(tea.NewProgram(model, opts...))
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return picker.Selection{}, ctx.Err()
		}
		return picker.Selection{}, fmt.Errorf("builtin picker: %w", err)
	}
	if m, ok := final.(*Model); ok {
		return m.Selection(), nil
	}
	return picker.Selection{}, nil
}
