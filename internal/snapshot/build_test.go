package snapshot

import (
	"errors"
	"strings"
	"testing"
)

func rec(fields ...string) string {
	return strings.Join(fields, "\t")
}

func scenarioLines() []string {
	return []string{
		rec("$0", "main", "@0", "1", "editor", "%0", "1", "vim"),
		rec("$0", "main", "@0", "1", "editor", "%1", "2", "zsh"),
		rec("$1", "work", "@1", "1", "shell", "%2", "1", "zsh"),
	}
}

func TestFromLinesScenario(t *testing.T) {
	snap, err := FromLines(scenarioLines(), TermSize{Width: 200, Height: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Counts.Sessions != 2 || snap.Counts.Windows != 2 || snap.Counts.Panes != 3 {
		t.Fatalf("unexpected counts %#v", snap.Counts)
	}
	if snap.Counts.Sessions != len(snap.Sessions) {
		t.Fatalf("session count %d does not match map size %d", snap.Counts.Sessions, len(snap.Sessions))
	}
	if snap.Geometry.TermWidth != 200 || snap.Geometry.TermHeight != 60 {
		t.Fatalf("terminal size not stored verbatim: %#v", snap.Geometry)
	}
	if snap.Geometry.SessionNameMaxWidth != 4 {
		t.Fatalf("expected session width 4, got %d", snap.Geometry.SessionNameMaxWidth)
	}
	if snap.Geometry.WindowNameMaxWidth != 6 {
		t.Fatalf("expected window width 6, got %d", snap.Geometry.WindowNameMaxWidth)
	}
	if snap.Geometry.PaneTitleMaxWidth != 3 {
		t.Fatalf("expected pane width 3, got %d", snap.Geometry.PaneTitleMaxWidth)
	}
}

func TestBuildDeduplicatesRepeatedParents(t *testing.T) {
	records, err := ParseRecords(scenarioLines()[:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := Build(records, TermSize{})
	if len(snap.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(snap.Sessions))
	}
	session := snap.Sessions["$0"]
	if session == nil || len(session.Windows) != 1 {
		t.Fatalf("expected one window in $0, got %#v", session)
	}
	window := session.Windows["@0"]
	if window == nil || len(window.Panes) != 2 {
		t.Fatalf("expected two panes in @0, got %#v", window)
	}
	if snap.Counts.Windows != 1 || snap.Counts.Panes != 2 {
		t.Fatalf("unexpected counts %#v", snap.Counts)
	}
}

func TestBuildKeepsFirstSeenAttributes(t *testing.T) {
	snap, err := FromLines([]string{
		rec("$0", "short", "@0", "0", "a", "%0", "0", "t"),
		rec("$0", "a-much-longer-name", "@0", "9", "renamed-window", "%1", "1", "t"),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session := snap.Sessions["$0"]
	if session.Name != "short" {
		t.Fatalf("expected first name kept, got %q", session.Name)
	}
	if session.Windows["@0"].Index != 0 {
		t.Fatalf("expected first index kept, got %d", session.Windows["@0"].Index)
	}
	if snap.Geometry.SessionNameMaxWidth != len("short") {
		t.Fatalf("duplicate record skewed session width: %d", snap.Geometry.SessionNameMaxWidth)
	}
	if snap.Geometry.WindowNameMaxWidth != 1 {
		t.Fatalf("duplicate record skewed window width: %d", snap.Geometry.WindowNameMaxWidth)
	}
}

func TestBuildCountsDistinctWindowsPerSession(t *testing.T) {
	// The same window id under two sessions is a linked window: two entries.
	snap, err := FromLines([]string{
		rec("$0", "a", "@5", "0", "w", "%0", "0", ""),
		rec("$1", "b", "@5", "3", "w", "%0", "0", ""),
		rec("$1", "b", "@6", "4", "x", "%1", "0", ""),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Counts.Windows != 3 {
		t.Fatalf("expected 3 distinct (session, window) pairs, got %d", snap.Counts.Windows)
	}
}

func TestBuildMeasuresDisplayWidth(t *testing.T) {
	snap, err := FromLines([]string{
		rec("$0", "日本", "@0", "0", "é", "%0", "0", ""),
	}, TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Geometry.SessionNameMaxWidth != 4 {
		t.Fatalf("expected wide runes to count double, got %d", snap.Geometry.SessionNameMaxWidth)
	}
	if snap.Geometry.WindowNameMaxWidth != 1 {
		t.Fatalf("expected accented rune width 1, got %d", snap.Geometry.WindowNameMaxWidth)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	snap, err := FromLines(nil, TermSize{Width: 80, Height: 24})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Sessions) != 0 {
		t.Fatalf("expected no sessions")
	}
	if snap.Counts != (Counts{}) {
		t.Fatalf("expected zero counts, got %#v", snap.Counts)
	}
	geo := snap.Geometry
	if geo.SessionNameMaxWidth != 0 || geo.WindowNameMaxWidth != 0 || geo.PaneTitleMaxWidth != 0 {
		t.Fatalf("expected zero widths, got %#v", geo)
	}
}

func TestParseRecordsSkipsBlankLines(t *testing.T) {
	lines := append(scenarioLines(), "", "  ")
	records, err := ParseRecords(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestParseRecordsRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"too few fields":   rec("$0", "main", "@0", "1"),
		"too many fields":  rec("$0", "main", "@0", "1", "editor", "%0", "1", "vim", "extra"),
		"bad window index": rec("$0", "main", "@0", "x", "editor", "%0", "1", "vim"),
		"bad pane index":   rec("$0", "main", "@0", "1", "editor", "%0", "-1", "vim"),
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			lines := append(scenarioLines(), bad)
			records, err := ParseRecords(lines)
			if err == nil {
				t.Fatalf("expected error")
			}
			if records != nil {
				t.Fatalf("expected no partial records, got %d", len(records))
			}
			var perr *RecordParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected RecordParseError, got %T", err)
			}
			if perr.Line != 4 {
				t.Fatalf("expected line 4, got %d", perr.Line)
			}
			if _, err := FromLines(lines, TermSize{}); err == nil {
				t.Fatalf("expected FromLines to fail")
			}
		})
	}
}

func TestParseRecordAllowsEmptyTitle(t *testing.T) {
	r, err := ParseRecord(rec("$3", "s", "@4", "2", "w", "%9", "0", "") + "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PaneTitle != "" || r.WindowIndex != 2 || r.PaneID != "%9" {
		t.Fatalf("unexpected record %#v", r)
	}
}

func TestBackReferencesResolveThroughSnapshot(t *testing.T) {
	snap, err := FromLines(scenarioLines(), TermSize{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	window := snap.Sessions["$1"].Windows["@1"]
	session, ok := snap.SessionOf(window)
	if !ok || session.Name != "work" {
		t.Fatalf("expected window @1 to resolve to work, got %#v", session)
	}
	pane := window.Panes["%2"]
	parent, ok := snap.WindowOf(pane)
	if !ok || parent != window {
		t.Fatalf("expected pane %%2 to resolve to @1")
	}
	orphan := &Window{ID: "@9", SessionID: "$9"}
	if _, ok := snap.SessionOf(orphan); ok {
		t.Fatalf("expected orphan window lookup to fail")
	}
}
