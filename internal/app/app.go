package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/tav/internal/dispatcher"
	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/logging"
	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/atomicstack/tav/internal/picker"
	"github.com/atomicstack/tav/internal/registry"
	"github.com/atomicstack/tav/internal/snapshot"
	"github.com/atomicstack/tav/internal/theme"
	"github.com/atomicstack/tav/internal/tmux"
	"github.com/atomicstack/tav/internal/ui"
)

// PickerMode selects the interactive chooser.
type PickerMode string

const (
	PickerAuto    PickerMode = "auto"
	PickerFZF     PickerMode = "fzf"
	PickerBuiltin PickerMode = "builtin"
)

// ParsePickerMode accepts auto, fzf or builtin. Empty means auto.
func ParsePickerMode(value string) (PickerMode, error) {
	switch mode := PickerMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return PickerAuto, nil
	case PickerAuto, PickerFZF, PickerBuiltin:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown picker %q (supported: auto, fzf, builtin)", value)
	}
}

// Config describes user-provided application options.
type Config struct {
	SocketPath  string
	SessionsDir string
	Picker      PickerMode
	FZFCommand  string
	// Filter, when set, picks the best match for the query without any UI.
	Filter  string
	Timeout time.Duration
	Width   int
	Height  int
	Plain   bool
	Icons   map[string]string
}

var (
	fetchRecords  = tmux.FetchRecords
	terminalSize  = tmux.TerminalSize
	currentClient = tmux.CurrentClientID
	lookPath      = exec.LookPath
	newSwitcher   = func(socketPath, clientID string) dispatcher.Switcher {
		return tmux.Switcher{SocketPath: socketPath, ClientID: clientID}
	}
	newBuiltin = func(styles *theme.Styles) picker.Picker {
		return ui.Picker{Styles: styles}
	}
)

// Run renders the feed, lets the user pick a line and acts on it. An empty
// feed returns immediately without starting a picker.
func Run(ctx context.Context, cfg Config) (dispatcher.Result, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return dispatcher.Result{}, fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	fd, reg, err := buildFeed(socketPath, cfg)
	if err != nil {
		return dispatcher.Result{}, err
	}
	if fd.Empty() {
		events.App.Empty()
		return dispatcher.Result{}, nil
	}

	sel, err := choose(ctx, cfg, fd)
	if err != nil {
		return dispatcher.Result{}, err
	}
	if sel.None() {
		return dispatcher.Result{}, nil
	}
	d := dispatcher.New(newSwitcher(socketPath, currentClient(socketPath)), reg)
	return d.Dispatch(ctx, sel)
}

// BuildFeed renders the feed for the configured server without picking.
func BuildFeed(cfg Config) (feed.Feed, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return feed.Feed{}, fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()
	fd, _, err := buildFeed(socketPath, cfg)
	return fd, err
}

// Resurrect runs the script of a dead session by name and switches to it.
func Resurrect(ctx context.Context, cfg Config, name string) (dispatcher.Result, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return dispatcher.Result{}, fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	reg, err := registry.Discover(cfg.SessionsDir)
	if err != nil {
		return dispatcher.Result{}, fmt.Errorf("discover sessions: %w", err)
	}
	if !reg.Has(name) {
		return dispatcher.Result{}, fmt.Errorf("no session script for %q in %s", name, reg.Dir)
	}
	d := dispatcher.New(newSwitcher(socketPath, currentClient(socketPath)), reg)
	return d.Resurrect(ctx, name)
}

// DeadEntry is one registry name and whether a session of that name is
// currently running.
type DeadEntry struct {
	Name string
	Live bool
}

// DeadSessions lists the registry. A server that cannot be queried counts
// as having no live sessions.
func DeadSessions(cfg Config) ([]DeadEntry, error) {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	reg, err := registry.Discover(cfg.SessionsDir)
	if err != nil {
		return nil, fmt.Errorf("discover sessions: %w", err)
	}
	var snap *snapshot.Snapshot
	if lines, err := fetchRecords(socketPath); err != nil {
		logging.Warn("listing live sessions failed", "err", err)
	} else if snap, err = snapshot.FromLines(lines, snapshot.TermSize{}); err != nil {
		return nil, err
	}
	entries := make([]DeadEntry, 0, len(reg.Names))
	for _, name := range reg.Names {
		entries = append(entries, DeadEntry{Name: name, Live: snap != nil && snap.HasSessionNamed(name)})
	}
	return entries, nil
}

func buildFeed(socketPath string, cfg Config) (feed.Feed, registry.Registry, error) {
	lines, err := fetchRecords(socketPath)
	if err != nil {
		return feed.Feed{}, registry.Registry{}, fmt.Errorf("list panes: %w", err)
	}
	size := terminalSize(socketPath)
	if cfg.Width > 0 {
		size.Width = cfg.Width
	}
	if cfg.Height > 0 {
		size.Height = cfg.Height
	}
	snap, err := snapshot.FromLines(lines, size)
	if err != nil {
		return feed.Feed{}, registry.Registry{}, err
	}
	events.Snapshot.Built(snap.Counts.Sessions, snap.Counts.Windows, snap.Counts.Panes)

	reg, err := registry.Discover(cfg.SessionsDir)
	if err != nil {
		return feed.Feed{}, registry.Registry{}, fmt.Errorf("discover sessions: %w", err)
	}
	events.Feed.Registry(reg.Dir, len(reg.Names))

	fd := feed.Render(snap, reg.Names, feed.Options{
		TermWidth:  size.Width,
		TermHeight: size.Height,
		Icons:      feed.Icons(cfg.Icons),
		Styles:     stylesFor(cfg),
	})
	dead := 0
	for _, line := range fd.Lines {
		if line.Kind == feed.LineDead {
			dead++
		}
	}
	events.Feed.Rendered(len(fd.Lines), fd.Width, fd.Height, dead)
	return fd, reg, nil
}

func choose(ctx context.Context, cfg Config, fd feed.Feed) (picker.Selection, error) {
	p, kind, command := pickerFor(cfg)
	events.App.PickerChosen(kind, command)
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	sel, err := p.Select(ctx, fd)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return picker.Selection{}, fmt.Errorf("picker timed out after %s: %w", cfg.Timeout, err)
		}
		return picker.Selection{}, fmt.Errorf("picker: %w", err)
	}
	return sel, nil
}

// pickerFor resolves the configured mode. Auto uses fzf when the command is
// installed and the builtin picker otherwise.
func pickerFor(cfg Config) (picker.Picker, string, string) {
	if cfg.Filter != "" {
		return picker.Filter{Query: cfg.Filter}, "filter", ""
	}
	command := cfg.FZFCommand
	if command == "" {
		command = picker.DefaultCommand
	}
	fzf := picker.FZF{Command: command, Stderr: os.Stderr}
	switch cfg.Picker {
	case PickerFZF:
		return fzf, string(PickerFZF), command
	case PickerBuiltin:
		return newBuiltin(stylesFor(cfg)), string(PickerBuiltin), ""
	}
	if _, err := lookPath(command); err == nil {
		return fzf, string(PickerFZF), command
	}
	logging.Debug("fzf not found, using builtin picker", "command", command)
	return newBuiltin(stylesFor(cfg)), string(PickerBuiltin), ""
}

func stylesFor(cfg Config) *theme.Styles {
	if cfg.Plain {
		return theme.Plain()
	}
	return theme.Default()
}
