package picker

import (
	"context"

	"github.com/atomicstack/tav/internal/feed"
)

// Filter picks without user interaction: the best match for Query wins.
type Filter struct {
	Query string
}

func (f Filter) Select(ctx context.Context, fd feed.Feed) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}
	matches := Match(fd.Lines, f.Query)
	idx := BestIndex(matches, f.Query)
	if idx < 0 {
		return Selection{}, nil
	}
	return Selection{Key: matches[idx].Key}, nil
}
