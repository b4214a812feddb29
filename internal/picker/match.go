package picker

import (
	"strings"

	"github.com/atomicstack/tav/internal/feed"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match returns the selectable lines whose visible text matches query, in
// feed order. An empty query keeps every selectable line.
func Match(lines []feed.Line, query string) []feed.Line {
	candidates := make([]feed.Line, 0, len(lines))
	for _, line := range lines {
		if line.Selectable() {
			candidates = append(candidates, line)
		}
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return candidates
	}
	labels := make([]string, len(candidates))
	for i, line := range candidates {
		labels[i] = line.Visible()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]feed.Line, 0, len(matches))
		for idx, line := range candidates {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, line)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]feed.Line, 0, len(candidates))
	for i, line := range candidates {
		if strings.Contains(strings.ToLower(labels[i]), lower) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// BestIndex returns the index of the line that best answers query, or -1
// when lines is empty.
func BestIndex(lines []feed.Line, query string) int {
	if len(lines) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	labels := make([]string, len(lines))
	for i, line := range lines {
		labels[i] = line.Visible()
	}
	for i, label := range labels {
		if strings.EqualFold(label, trimmed) || strings.EqualFold(lines[i].Key, trimmed) {
			return i
		}
	}
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
