// Package dispatcher turns a picker selection into a tmux action.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/atomicstack/tav/internal/feed"
	"github.com/atomicstack/tav/internal/logging"
	"github.com/atomicstack/tav/internal/logging/events"
	"github.com/atomicstack/tav/internal/picker"
	"github.com/atomicstack/tav/internal/proc"
	"github.com/atomicstack/tav/internal/registry"
)

// Switcher moves the user's client to a session or window.
type Switcher interface {
	Switch(target string) error
}

// Runner executes a resurrection script.
type Runner func(ctx context.Context, c proc.Command) ([]byte, error)

type Action int

const (
	ActionNone Action = iota
	ActionSwitch
	ActionResurrect
)

func (a Action) String() string {
	switch a {
	case ActionSwitch:
		return "switch"
	case ActionResurrect:
		return "resurrect"
	default:
		return "none"
	}
}

// Result describes what Dispatch did.
type Result struct {
	Action Action
	Target string
	Output string
}

type Dispatcher struct {
	switcher Switcher
	run      Runner
	registry registry.Registry
}

func New(sw Switcher, reg registry.Registry) *Dispatcher {
	return &Dispatcher{switcher: sw, run: proc.Run, registry: reg}
}

// WithRunner replaces the script runner.
func (d *Dispatcher) WithRunner(run Runner) *Dispatcher {
	d.run = run
	return d
}

// Dispatch acts on sel. Separators, unknown keys and empty selections are
// ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, sel picker.Selection) (Result, error) {
	kind, name := sel.Kind()
	switch kind {
	case feed.KeySession, feed.KeyWindow:
		return d.switchTo(sel.Key)
	case feed.KeyDead:
		return d.Resurrect(ctx, name)
	default:
		if !sel.None() {
			events.Dispatch.Ignored(sel.Key, kind.String())
			logging.Debug("ignoring selection", "key", sel.Key, "kind", kind.String())
		}
		return Result{}, nil
	}
}

// Resurrect runs the script for a dead session and, when it succeeds,
// switches to the session it created. A failing script leaves the client
// where it is.
func (d *Dispatcher) Resurrect(ctx context.Context, name string) (Result, error) {
	if name == "" {
		return Result{}, fmt.Errorf("session name required")
	}
	script := d.registry.ScriptPath(name)
	events.Dispatch.Resurrect(name, script)
	out, err := d.run(ctx, proc.Command{Name: script})
	res := Result{Action: ActionResurrect, Target: name, Output: string(out)}
	if err != nil {
		return res, fmt.Errorf("resurrect %s: %w", name, err)
	}
	if err := d.switcher.Switch(name); err != nil {
		return res, fmt.Errorf("switch to %s: %w", name, err)
	}
	return res, nil
}

func (d *Dispatcher) switchTo(target string) (Result, error) {
	events.Dispatch.Switch(target)
	res := Result{Action: ActionSwitch, Target: target}
	if err := d.switcher.Switch(target); err != nil {
		return res, fmt.Errorf("switch to %s: %w", target, err)
	}
	return res, nil
}
