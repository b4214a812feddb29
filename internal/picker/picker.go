// Package picker hands a rendered feed to an interactive chooser and decodes
// the chosen line back into a selector key.
package picker

import (
	"context"

	"github.com/atomicstack/tav/internal/feed"
)

// Picker shows a feed and blocks until the user picks a line or gives up.
type Picker interface {
	Select(ctx context.Context, f feed.Feed) (Selection, error)
}

// Selection is the key of the chosen line. The zero value means nothing was
// chosen.
type Selection struct {
	Key string
}

// None reports whether the user made no choice.
func (s Selection) None() bool {
	return s.Key == ""
}

// Kind classifies the selected key.
func (s Selection) Kind() (feed.KeyKind, string) {
	return feed.Classify(s.Key)
}

// FromOutput decodes picker stdout. Only the first line is considered.
func FromOutput(out []byte) Selection {
	return Selection{Key: feed.KeyOf(string(out))}
}
