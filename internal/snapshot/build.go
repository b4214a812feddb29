package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FieldCount is the number of tab-separated fields in a raw record.
const FieldCount = 8

// Record is one list-panes line. Session and window attributes repeat for
// every pane they contain.
type Record struct {
	SessionID   string
	SessionName string
	WindowID    string
	WindowIndex int
	WindowName  string
	PaneID      string
	PaneIndex   int
	PaneTitle   string
}

// RecordParseError reports a malformed raw record.
type RecordParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *RecordParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("record %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("record: %s: %q", e.Reason, e.Text)
}

// ParseRecord splits a single tab-separated line into a Record.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, "\t")
	if len(parts) != FieldCount {
		return Record{}, &RecordParseError{
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(parts)),
		}
	}
	windowIndex, err := parseIndex(parts[3])
	if err != nil {
		return Record{}, &RecordParseError{Text: line, Reason: "window index " + err.Error()}
	}
	paneIndex, err := parseIndex(parts[6])
	if err != nil {
		return Record{}, &RecordParseError{Text: line, Reason: "pane index " + err.Error()}
	}
	return Record{
		SessionID:   parts[0],
		SessionName: parts[1],
		WindowID:    parts[2],
		WindowIndex: windowIndex,
		WindowName:  parts[4],
		PaneID:      parts[5],
		PaneIndex:   paneIndex,
		PaneTitle:   parts[7],
	}, nil
}

func parseIndex(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

// ParseRecords parses every non-blank line. The first malformed line aborts
// the parse and no records are returned.
func ParseRecords(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			if perr, ok := err.(*RecordParseError); ok {
				perr.Line = i + 1
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Build assembles a snapshot from records in a single pass. Parents repeated
// across records are inserted once; later copies are assumed consistent and
// never overwrite the first.
func Build(records []Record, term TermSize) *Snapshot {
	snap := newSnapshot(term)
	geo := &snap.Geometry

	for _, rec := range records {
		session, ok := snap.Sessions[rec.SessionID]
		if !ok {
			session = &Session{
				ID:      rec.SessionID,
				Name:    rec.SessionName,
				Windows: make(map[string]*Window),
			}
			snap.Sessions[rec.SessionID] = session
			geo.SessionNameMaxWidth = max(geo.SessionNameMaxWidth, runewidth.StringWidth(rec.SessionName))
		}

		window, ok := session.Windows[rec.WindowID]
		if !ok {
			window = &Window{
				ID:        rec.WindowID,
				Index:     rec.WindowIndex,
				Name:      rec.WindowName,
				SessionID: session.ID,
				Panes:     make(map[string]*Pane),
			}
			session.Windows[rec.WindowID] = window
			snap.Counts.Windows++
			geo.WindowNameMaxWidth = max(geo.WindowNameMaxWidth, runewidth.StringWidth(rec.WindowName))
		}

		if _, ok := window.Panes[rec.PaneID]; !ok {
			window.Panes[rec.PaneID] = &Pane{
				ID:        rec.PaneID,
				Index:     rec.PaneIndex,
				Title:     rec.PaneTitle,
				SessionID: session.ID,
				WindowID:  window.ID,
			}
		}
		geo.PaneTitleMaxWidth = max(geo.PaneTitleMaxWidth, runewidth.StringWidth(rec.PaneTitle))
	}

	snap.Counts.Sessions = len(snap.Sessions)
	snap.Counts.Panes = len(records)
	return snap
}

// FromLines parses raw list-panes output lines and builds a snapshot.
func FromLines(lines []string, term TermSize) (*Snapshot, error) {
	records, err := ParseRecords(lines)
	if err != nil {
		return nil, err
	}
	return Build(records, term), nil
}
