package feed

import (
	"strings"

	"github.com/atomicstack/tav/internal/format/table"
)

// IconLookup resolves a display glyph for a session name.
type IconLookup interface {
	Icon(name string) (string, bool)
}

// Icons is a name to glyph table, typically loaded from the config file.
type Icons map[string]string

func (i Icons) Icon(name string) (string, bool) {
	glyph, ok := i[name]
	if !ok || strings.TrimSpace(glyph) == "" {
		return "", false
	}
	return glyph, true
}

// symbolFor returns the glyph for name fitted to width, or a blank
// placeholder of the same width.
func symbolFor(icons IconLookup, name string, width int) string {
	if icons != nil {
		if glyph, ok := icons.Icon(name); ok {
			return table.Fit(glyph, width, table.AlignLeft)
		}
	}
	return strings.Repeat(" ", width)
}
