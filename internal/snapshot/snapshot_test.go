package snapshot

import "testing"

func TestSortedSessionsNumericAware(t *testing.T) {
	snap, err := FromLines([]string{
		rec("$10", "ten", "@3", "0", "w", "%3", "0", ""),
		rec("$2", "two", "@2", "0", "w", "%2", "0", ""),
		rec("$1", "one", "@1", "0", "w", "%1", "0", ""),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions := snap.SortedSessions()
	got := []string{sessions[0].ID, sessions[1].ID, sessions[2].ID}
	want := []string{"$1", "$2", "$10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSortedWindowsByIndex(t *testing.T) {
	snap, err := FromLines([]string{
		rec("$0", "s", "@7", "5", "five", "%0", "0", ""),
		rec("$0", "s", "@8", "1", "one", "%1", "0", ""),
		rec("$0", "s", "@9", "3", "three", "%2", "0", ""),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	windows := snap.Sessions["$0"].SortedWindows()
	if windows[0].Index != 1 || windows[1].Index != 3 || windows[2].Index != 5 {
		t.Fatalf("unexpected window order %d %d %d", windows[0].Index, windows[1].Index, windows[2].Index)
	}
}

func TestSortedPanesByIndex(t *testing.T) {
	snap, err := FromLines([]string{
		rec("$0", "s", "@0", "0", "w", "%4", "2", "b"),
		rec("$0", "s", "@0", "0", "w", "%3", "0", "a"),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	panes := snap.Sessions["$0"].Windows["@0"].SortedPanes()
	if panes[0].ID != "%3" || panes[1].ID != "%4" {
		t.Fatalf("unexpected pane order %s %s", panes[0].ID, panes[1].ID)
	}
}

func TestHasSessionNamed(t *testing.T) {
	snap, err := FromLines(scenarioLines(), TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.HasSessionNamed("main") || !snap.HasSessionNamed("work") {
		t.Fatalf("expected live session names to be found")
	}
	if snap.HasSessionNamed("old") {
		t.Fatalf("did not expect old to be live")
	}
	var nilSnap *Snapshot
	if nilSnap.HasSessionNamed("main") {
		t.Fatalf("nil snapshot should have no sessions")
	}
}
