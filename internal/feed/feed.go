package feed

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tav/internal/format/table"
	"github.com/atomicstack/tav/internal/snapshot"
	"github.com/atomicstack/tav/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const (
	SessionSymbolWidth = 2
	WindowSymbolWidth  = 2
	LeftMargin         = 2 // picker pointer column
	MinGap             = 4
	MinWidth           = 50

	minPathWidth   = 10
	pathIndexExtra = 4 // room for ":<index>"

	fillerGlyph   = "·"
	windowSymbol  = "-"
	deadMarker    = "dead"
	orphanSession = "[W]"
)

type LineKind int

const (
	LineSession LineKind = iota
	LineWindow
	LineDead
	LineSeparator
)

// Line is one picker row: a machine-readable key and the styled text shown
// to the user.
type Line struct {
	Kind LineKind
	Key  string
	Text string
}

func (l Line) String() string {
	return l.Key + "\t" + l.Text
}

// Selectable reports whether picking the line means anything.
func (l Line) Selectable() bool {
	return l.Kind != LineSeparator
}

// Visible returns the words a user sees on the line, without styling or
// filler, for matching queries against.
func (l Line) Visible() string {
	text := strings.ReplaceAll(ansi.Strip(l.Text), fillerGlyph, " ")
	return strings.Join(strings.Fields(text), " ")
}

// Feed is the rendered picker input.
type Feed struct {
	Lines  []Line
	Width  int // content columns, including the left margin
	Height int // number of lines

	TermWidth  int
	TermHeight int
}

// Payload joins the lines as written to the picker's stdin.
func (f Feed) Payload() string {
	parts := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		parts[i] = line.String()
	}
	return strings.Join(parts, "\n")
}

// Empty reports whether there is nothing to pick.
func (f Feed) Empty() bool {
	return len(f.Lines) == 0
}

// Options carries the inputs Render needs besides the snapshot.
type Options struct {
	TermWidth  int
	TermHeight int
	Icons      IconLookup
	Styles     *theme.Styles
}

type layout struct {
	part1 int
	part2 int
	gap   string
	width int

	icons  IconLookup
	styles *theme.Styles
}

// Render lays out live sessions with their windows followed by the dead
// sessions that are not currently running.
func Render(snap *snapshot.Snapshot, dead []string, opts Options) Feed {
	if snap == nil {
		snap = snapshot.Build(nil, snapshot.TermSize{})
	}
	var names []string
	deadWidth := 0
	for _, name := range dead {
		if name == "" || strings.ContainsAny(name, "\t\n") || snap.HasSessionNamed(name) {
			continue
		}
		names = append(names, name)
		deadWidth = max(deadWidth, table.Width(clean(name)))
	}
	l := newLayout(snap.Geometry, deadWidth, opts)

	var lines []Line
	for i, session := range snap.SortedSessions() {
		if i > 0 {
			lines = append(lines, separatorLine())
		}
		lines = append(lines, l.sessionLine(session))
		for _, window := range session.SortedWindows() {
			path := orphanSession
			if parent, ok := snap.SessionOf(window); ok {
				path = parent.Name
			}
			lines = append(lines, l.windowLine(window, path))
		}
	}

	if len(names) > 0 && len(lines) > 0 {
		lines = append(lines, separatorLine())
	}
	for _, name := range names {
		lines = append(lines, l.deadLine(name))
	}

	return Feed{
		Lines:      lines,
		Width:      l.width,
		Height:     len(lines),
		TermWidth:  opts.TermWidth,
		TermHeight: opts.TermHeight,
	}
}

// newLayout sizes the columns so that no session, window or dead name is
// truncated. Window names sit after their symbol inside part1.
func newLayout(geo snapshot.Geometry, deadWidth int, opts Options) *layout {
	part1 := max(geo.SessionNameMaxWidth, geo.WindowNameMaxWidth+WindowSymbolWidth, deadWidth, WindowSymbolWidth)
	part2 := max(geo.SessionNameMaxWidth+pathIndexExtra, minPathWidth)

	withoutGap := LeftMargin + SessionSymbolWidth + part1 + part2
	width := max(withoutGap+MinGap, MinWidth)

	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	l := &layout{
		part1:  part1,
		part2:  part2,
		width:  width,
		icons:  opts.Icons,
		styles: styles,
	}
	l.gap = l.styles.Filler.Render(table.Fill(fillerGlyph, width-withoutGap))
	return l
}

func (l *layout) sessionLine(s *snapshot.Session) Line {
	symbol := l.styles.SessionSymbol.Render(symbolFor(l.icons, s.Name, SessionSymbolWidth))
	name := l.styles.SessionName.Render(table.Fit(clean(s.Name), l.part1, table.AlignLeft))
	return Line{Kind: LineSession, Key: s.ID, Text: symbol + name}
}

func (l *layout) windowLine(w *snapshot.Window, session string) Line {
	margin := l.styles.Filler.Render(table.Fill(fillerGlyph, SessionSymbolWidth))
	symbol := l.styles.WindowSymbol.Render(table.Fit(windowSymbol, WindowSymbolWidth, table.AlignLeft))
	name := l.styles.WindowName.Render(table.Fit(clean(w.Name), l.part1-WindowSymbolWidth, table.AlignLeft))
	path := fmt.Sprintf("%s:%d", clean(session), w.Index)
	path = l.styles.WindowPath.Render(table.Fit(path, l.part2, table.AlignRight))
	return Line{Kind: LineWindow, Key: w.ID, Text: margin + symbol + name + l.gap + path}
}

func (l *layout) deadLine(name string) Line {
	symbol := l.styles.Dead.Render(symbolFor(l.icons, name, WindowSymbolWidth))
	left := l.styles.Dead.Render(table.Fit(clean(name), l.part1, table.AlignLeft))
	right := l.styles.Dead.Render(table.Fit(deadMarker, l.part2, table.AlignRight))
	return Line{Kind: LineDead, Key: DeadKey(name), Text: symbol + left + l.gap + right}
}

func separatorLine() Line {
	return Line{Kind: LineSeparator, Key: SeparatorKey}
}

// clean keeps user-controlled names from breaking the line format.
func clean(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, text)
}
