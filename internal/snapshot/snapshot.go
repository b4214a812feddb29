package snapshot

import (
	"sort"
	"strconv"
	"strings"
)

// Counts holds entity totals for a snapshot.
type Counts struct {
	Sessions int
	Windows  int
	Panes    int
}

// Geometry records the widest names seen while building plus the terminal
// size supplied by the caller.
type Geometry struct {
	SessionNameMaxWidth int
	WindowNameMaxWidth  int
	PaneTitleMaxWidth   int

	TermWidth  int
	TermHeight int
}

// TermSize is the host terminal size in character cells.
type TermSize struct {
	Width  int
	Height int
}

// Snapshot is a point-in-time copy of the tmux session/window/pane tree.
type Snapshot struct {
	Sessions map[string]*Session
	Counts   Counts
	Geometry Geometry
}

type Session struct {
	ID      string
	Name    string
	Windows map[string]*Window
}

// Window refers back to its session by id; resolve it with Snapshot.SessionOf.
type Window struct {
	ID        string
	Index     int
	Name      string
	SessionID string
	Panes     map[string]*Pane
}

type Pane struct {
	ID        string
	Index     int
	Title     string
	SessionID string
	WindowID  string
}

func newSnapshot(term TermSize) *Snapshot {
	return &Snapshot{
		Sessions: make(map[string]*Session),
		Geometry: Geometry{TermWidth: term.Width, TermHeight: term.Height},
	}
}

// SessionOf returns the session owning w.
func (s *Snapshot) SessionOf(w *Window) (*Session, bool) {
	if s == nil || w == nil {
		return nil, false
	}
	session, ok := s.Sessions[w.SessionID]
	return session, ok
}

// WindowOf returns the window owning p.
func (s *Snapshot) WindowOf(p *Pane) (*Window, bool) {
	if s == nil || p == nil {
		return nil, false
	}
	session, ok := s.Sessions[p.SessionID]
	if !ok {
		return nil, false
	}
	window, ok := session.Windows[p.WindowID]
	return window, ok
}

// HasSessionNamed reports whether a live session carries the given name.
func (s *Snapshot) HasSessionNamed(name string) bool {
	if s == nil {
		return false
	}
	for _, session := range s.Sessions {
		if session.Name == name {
			return true
		}
	}
	return false
}

// SortedSessions returns sessions ordered by id. Ids sharing a sigil compare
// numerically so $2 sorts before $10.
func (s *Snapshot) SortedSessions() []*Session {
	if s == nil {
		return nil
	}
	out := make([]*Session, 0, len(s.Sessions))
	for _, session := range s.Sessions {
		out = append(out, session)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessID(out[i].ID, out[j].ID)
	})
	return out
}

// SortedWindows returns the session's windows ordered by index, then id.
func (s *Session) SortedWindows() []*Window {
	out := make([]*Window, 0, len(s.Windows))
	for _, w := range s.Windows {
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return lessID(out[i].ID, out[j].ID)
	})
	return out
}

// SortedPanes returns the window's panes ordered by index, then id.
func (w *Window) SortedPanes() []*Pane {
	out := make([]*Pane, 0, len(w.Panes))
	for _, p := range w.Panes {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return lessID(out[i].ID, out[j].ID)
	})
	return out
}

func lessID(a, b string) bool {
	an, aok := idNumber(a)
	bn, bok := idNumber(b)
	if aok && bok && a[0] == b[0] && an != bn {
		return an < bn
	}
	return a < b
}

func idNumber(id string) (int, bool) {
	if len(id) < 2 || !strings.ContainsRune("$@%", rune(id[0])) {
		return 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
