package picker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/logging"
	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/atomicstack/tav/internal/proc"
)

const (
	// DefaultCommand opens fzf inside a tmux popup.
	DefaultCommand = "fzf-tmux"

	popupWidthExtra  = 11
	popupHeightExtra = 10
	popupHeightSlack = 16
)

// FZF runs fzf, or fzf-tmux, over the feed.
type FZF struct {
	Command string
	Query   string
	// Stderr receives the picker's stderr; nil captures it.
	Stderr io.Writer
}

func (f FZF) command() string {
	if cmd := strings.TrimSpace(f.Command); cmd != "" {
		return cmd
	}
	return DefaultCommand
}

// Popup reports whether the command is the tmux popup wrapper.
func (f FZF) Popup() bool {
	return filepath.Base(f.command()) == DefaultCommand
}

// PopupSize returns the popup dimensions for a feed. The height is clamped
// to leave room around the popup unless the terminal height is unknown or
// too small for the clamp to make sense.
func PopupSize(fd feed.Feed) (width, height int) {
	width = fd.Width + popupWidthExtra
	height = fd.Height + popupHeightExtra
	if limit := fd.TermHeight - popupHeightSlack; limit > 0 {
		height = min(height, limit)
	}
	return width, height
}

// Args builds the command line for fd.
func (f FZF) Args(fd feed.Feed) []string {
	var args []string
	if f.Popup() {
		width, height := PopupSize(fd)
		args = append(args, "-w", fmt.Sprint(width), "-h", fmt.Sprint(height))
	}
	args = append(args,
		"--delimiter=\t",
		"--with-nth=2..",
		"--no-sort",
		"--ansi",
		"--margin=2,4,2,2",
		"--inline-info",
		"--header=",
		"--prompt=▶ ",
		"--pointer=▶",
		"--bind=esc:abort",
	)
	for _, key := range []string{"ctrl-c", "ctrl-g", "ctrl-q"} {
		args = append(args, "--bind="+key+":unix-line-discard")
	}
	args = append(args, "--color=bg:-1,bg+:-1", "--border=none")
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "--query="+q)
	}
	return args
}

// Select writes the feed to the picker and decodes its answer. A picker
// that exits non-zero (fzf uses 130 for abort and 1 for no match) counts as
// no selection; one that cannot start is an error.
func (f FZF) Select(ctx context.Context, fd feed.Feed) (Selection, error) {
	args := f.Args(fd)
	events.Picker.Launch(f.command(), args)
	out, err := proc.Run(ctx, proc.Command{
		Name:   f.command(),
		Args:   args,
		Stdin:  strings.NewReader(fd.Payload()),
		Stderr: f.Stderr,
	})
	if err != nil {
		if proc.IsExit(err) {
			logging.Debug("picker exited without a selection", "err", err)
			events.Picker.Cancelled()
			return Selection{}, nil
		}
		return Selection{}, err
	}
	sel := FromOutput(out)
	events.Picker.Selected(sel.Key)
	return sel, nil
}
