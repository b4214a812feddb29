package tmux

import (
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/atomicstack/tav/internal/snapshot"
)

const sizeFormat = "#{window_width}\t#{window_height}"

// TerminalSize reports the size of the terminal tav runs in. The local TTY
// is asked first; inside a popup without one, the size of the window that
// launched it is used. A zero size means unknown.
func TerminalSize(socketPath string) snapshot.TermSize {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		w, h, err := terminalSize(int(f.Fd()))
		if err == nil && w > 0 && h > 0 {
			events.Snapshot.Geometry(w, h, "tty")
			return snapshot.TermSize{Width: w, Height: h}
		}
	}
	pane := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if pane == "" {
		return snapshot.TermSize{}
	}
	client, err := getClient(socketPath)
	if err != nil {
		return snapshot.TermSize{}
	}
	out, err := client.DisplayMessage(pane, sizeFormat)
	if err != nil {
		return snapshot.TermSize{}
	}
	size, ok := parseSize(out)
	if ok {
		events.Snapshot.Geometry(size.Width, size.Height, "tmux")
	}
	return size
}

func parseSize(text string) (snapshot.TermSize, bool) {
	parts := strings.SplitN(strings.TrimSpace(text), "\t", 2)
	if len(parts) != 2 {
		return snapshot.TermSize{}, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return snapshot.TermSize{}, false
	}
	return snapshot.TermSize{Width: w, Height: h}, true
}
