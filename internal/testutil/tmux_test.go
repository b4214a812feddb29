package testutil

import (
	"strings"
	"testing"
)

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	out, err := tmuxCommand(socket, "list-sessions", "-F", "#{session_name}").Output()
	if err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
	if !strings.Contains(string(out), BootstrapSession) {
		t.Fatalf("expected bootstrap session, got %q", out)
	}
}

func TestNewSessionAndWindow(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	if err := NewSession(socket, "alpha", "editor"); err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := NewWindow(socket, "alpha", "logs"); err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	out, err := Command(socket, "list-windows", "-t", "alpha", "-F", "#{window_name}").Output()
	if err != nil {
		t.Fatalf("list-windows: %v", err)
	}
	if got := strings.Fields(string(out)); strings.Join(got, ",") != "editor,logs" {
		t.Fatalf("unexpected windows %q", got)
	}
}
