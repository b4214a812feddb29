package dispatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tav/internal/picker"
	"github.com/atomicstack/tav/internal/proc"
	"github.com/atomicstack/tav/internal/registry"
)

type fakeSwitcher struct {
	targets []string
	err     error
}

func (f *fakeSwitcher) Switch(target string) error {
	f.targets = append(f.targets, target)
	return f.err
}

type fakeRunner struct {
	calls []proc.Command
	out   []byte
	err   error
}

func (f *fakeRunner) run(_ context.Context, c proc.Command) ([]byte, error) {
	f.calls = append(f.calls, c)
	return f.out, f.err
}

func newTestDispatcher(sw Switcher, run *fakeRunner) *Dispatcher {
	return New(sw, registry.Registry{Dir: "/srv/sessions"}).WithRunner(run.run)
}

func TestDispatchSwitchesToSessionAndWindow(t *testing.T) {
	for _, key := range []string{"$3", "@12"} {
		sw := &fakeSwitcher{}
		run := &fakeRunner{}
		res, err := newTestDispatcher(sw, run).Dispatch(context.Background(), picker.Selection{Key: key})
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if res.Action != ActionSwitch || res.Target != key {
			t.Fatalf("%s: unexpected result %+v", key, res)
		}
		if len(sw.targets) != 1 || sw.targets[0] != key {
			t.Fatalf("%s: unexpected switch calls %v", key, sw.targets)
		}
		if len(run.calls) != 0 {
			t.Fatalf("%s: no script should run", key)
		}
	}
}

func TestDispatchIgnoresNonActionable(t *testing.T) {
	for _, key := range []string{"", "[sep]", "%1", "[dead]", "garbage"} {
		sw := &fakeSwitcher{}
		run := &fakeRunner{}
		res, err := newTestDispatcher(sw, run).Dispatch(context.Background(), picker.Selection{Key: key})
		if err != nil {
			t.Fatalf("%q: %v", key, err)
		}
		if res.Action != ActionNone || len(sw.targets) != 0 || len(run.calls) != 0 {
			t.Fatalf("%q: expected no-op, got %+v", key, res)
		}
	}
}

func TestDispatchResurrectsThenSwitches(t *testing.T) {
	sw := &fakeSwitcher{}
	run := &fakeRunner{out: []byte("created\n")}
	res, err := newTestDispatcher(sw, run).Dispatch(context.Background(), picker.Selection{Key: "[dead]web"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Action != ActionResurrect || res.Target != "web" || res.Output != "created\n" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(run.calls) != 1 || run.calls[0].Name != "/srv/sessions/web.tmux-session.zsh" {
		t.Fatalf("unexpected script calls %+v", run.calls)
	}
	if len(sw.targets) != 1 || sw.targets[0] != "web" {
		t.Fatalf("expected switch to web, got %v", sw.targets)
	}
}

func TestDispatchFailedScriptSkipsSwitch(t *testing.T) {
	sw := &fakeSwitcher{}
	run := &fakeRunner{err: &proc.ExitError{Name: "web", Code: 2, Stderr: "no such dir"}}
	_, err := newTestDispatcher(sw, run).Dispatch(context.Background(), picker.Selection{Key: "[dead]web"})
	var exitErr *proc.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit error, got %v", err)
	}
	if len(sw.targets) != 0 {
		t.Fatalf("switch must be skipped, got %v", sw.targets)
	}
}

func TestDispatchSwitchFailure(t *testing.T) {
	sw := &fakeSwitcher{err: errors.New("no client")}
	_, err := newTestDispatcher(sw, &fakeRunner{}).Dispatch(context.Background(), picker.Selection{Key: "$1"})
	if err == nil {
		t.Fatalf("expected switch error")
	}
}

func TestResurrectRequiresName(t *testing.T) {
	if _, err := newTestDispatcher(&fakeSwitcher{}, &fakeRunner{}).Resurrect(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestDispatchKeepsDeadNameWhitespace(t *testing.T) {
	for _, name := range []string{" spaced", "trail ", " both "} {
		sw := &fakeSwitcher{}
		run := &fakeRunner{}
		line := "[dead]" + name + "\t  " + name + "  dead\n"
		res, err := newTestDispatcher(sw, run).Dispatch(context.Background(), picker.FromOutput([]byte(line)))
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if res.Target != name {
			t.Fatalf("%q: unexpected target %q", name, res.Target)
		}
		want := "/srv/sessions/" + name + registry.ScriptSuffix
		if len(run.calls) != 1 || run.calls[0].Name != want {
			t.Fatalf("%q: expected script %q, got %+v", name, want, run.calls)
		}
		if len(sw.targets) != 1 || sw.targets[0] != name {
			t.Fatalf("%q: expected switch to exact name, got %v", name, sw.targets)
		}
	}
}

func TestResurrectRunsRealScript(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := "#!/bin/sh\ntouch " + marker + "\n"
	if err := os.WriteFile(filepath.Join(dir, "web"+registry.ScriptSuffix), []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	sw := &fakeSwitcher{}
	if _, err := New(sw, registry.Registry{Dir: dir}).Resurrect(context.Background(), "web"); err != nil {
		t.Fatalf("resurrect: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("script did not run: %v", err)
	}
	if len(sw.targets) != 1 || sw.targets[0] != "web" {
		t.Fatalf("expected switch to web, got %v", sw.targets)
	}
}

func TestResurrectMissingScriptIsLaunchError(t *testing.T) {
	sw := &fakeSwitcher{}
	_, err := New(sw, registry.Registry{Dir: t.TempDir()}).Resurrect(context.Background(), "ghost")
	if !proc.IsLaunch(err) {
		t.Fatalf("expected launch error, got %v", err)
	}
	if len(sw.targets) != 0 {
		t.Fatalf("switch must be skipped")
	}
}
