package feed

import "strings"

const (
	// DeadPrefix marks the selector key of a resurrectable session.
	DeadPrefix = "[dead]"
	// SeparatorKey is the selector key of a non-selectable spacer line.
	SeparatorKey = "[sep]"
)

// KeyKind classifies a selector key.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeySession
	KeyWindow
	KeyDead
	KeySeparator
	KeyUnknown
)

func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeySession:
		return "session"
	case KeyWindow:
		return "window"
	case KeyDead:
		return "dead"
	case KeySeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// DeadKey builds the selector key for a dead session.
func DeadKey(name string) string {
	return DeadPrefix + name
}

// KeyOf extracts the selector key from a feed line as echoed by a picker.
// Only the first line is considered; everything after the first tab is
// display text and may carry escape sequences. The key itself is returned
// byte for byte, since dead session names may start or end with spaces.
func KeyOf(line string) string {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(line, "\r")
	key, _, _ := strings.Cut(line, "\t")
	return key
}

// Classify reports what a selector key refers to. For dead keys the second
// return value is the session name.
func Classify(key string) (KeyKind, string) {
	switch {
	case key == "":
		return KeyNone, ""
	case key == SeparatorKey:
		return KeySeparator, ""
	case strings.HasPrefix(key, DeadPrefix):
		name := strings.TrimPrefix(key, DeadPrefix)
		if name == "" {
			return KeyUnknown, ""
		}
		return KeyDead, name
	case strings.HasPrefix(key, "$"):
		return KeySession, ""
	case strings.HasPrefix(key, "@"):
		return KeyWindow, ""
	default:
		return KeyUnknown, ""
	}
}
