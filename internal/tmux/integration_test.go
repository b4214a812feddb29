package tmux

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tav/internal/snapshot"
	testutil "github.com/atomicstack/tav/internal/testutil"
)

func TestFetchRecordsIntegration(t *testing.T) {
	testutil.RequireTmux(t)
	socket, cleanup, logDir := testutil.StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		testutil.AssertNoServerCrash(t, logDir)
		Shutdown()
	})

	if err := testutil.NewSession(socket, "records", "editor"); err != nil {
		t.Skipf("skipping: unable to create session (%v)", err)
	}

	var snap *snapshot.Snapshot
	deadline := time.Now().Add(2 * time.Second)
	for {
		lines, err := FetchRecords(socket)
		if err != nil {
			t.Fatalf("FetchRecords failed: %v", err)
		}
		snap, err = snapshot.FromLines(lines, snapshot.TermSize{})
		if err != nil {
			t.Fatalf("records did not parse: %v\n%s", err, strings.Join(lines, "\n"))
		}
		if snap.HasSessionNamed("records") || time.Now().After(deadline) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !snap.HasSessionNamed("records") {
		t.Fatalf("expected session records in snapshot")
	}
	if snap.Counts.Sessions < 2 || snap.Counts.Panes < 2 {
		t.Fatalf("unexpected counts %+v", snap.Counts)
	}
	for _, session := range snap.SortedSessions() {
		if !strings.HasPrefix(session.ID, "$") {
			t.Fatalf("unexpected session id %q", session.ID)
		}
		for _, window := range session.SortedWindows() {
			if !strings.HasPrefix(window.ID, "@") {
				t.Fatalf("unexpected window id %q", window.ID)
			}
		}
	}
}

func TestFetchRecordsFallbackIntegration(t *testing.T) {
	testutil.RequireTmux(t)
	socket, cleanup, _ := testutil.StartTmuxServer(t)
	defer cleanup()

	lines, err := fetchRecordsFallback(socket)
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if _, err := snapshot.FromLines(lines, snapshot.TermSize{}); err != nil {
		t.Fatalf("fallback records did not parse: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected at least the bootstrap pane")
	}
}
