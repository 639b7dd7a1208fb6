package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultSuggestLimit caps Suggest results when the caller passes a
// non-positive limit.
const DefaultSuggestLimit = 10

// suggestCutoff scales the similarity threshold with input length, counted
// in characters. Very short inputs accept any scored match, mid-length
// inputs need a weak resemblance, and longer inputs need a real one.
func suggestCutoff(partial string) float64 {
	switch n := utf8.RuneCountInString(partial); {
	case n <= 3:
		return 0
	case n <= 6:
		return 0.3
	default:
		return 0.5
	}
}

// Suggest returns up to limit canonical card names resembling partial,
// case-insensitively. Scored matches that contain partial as a literal
// substring are surfaced ahead of matches that only resemble it, with
// each group keeping its score order.
func (c *Catalog) Suggest(partial string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	lower := strings.ToLower(strings.TrimSpace(partial))
	if lower == "" {
		return nil
	}
	cutoff := suggestCutoff(lower)

	type scored struct {
		entry entry
		ratio float64
	}
	var matches []scored
	for _, e := range c.entries {
		m := difflib.NewMatcher(strings.Split(lower, ""), strings.Split(e.lower, ""))
		if ratio := m.Ratio(); ratio >= cutoff {
			matches = append(matches, scored{entry: e, ratio: ratio})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ratio > matches[j].ratio
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	// Substring hits first, both groups in score order.
	var contains, rest []string
	for _, m := range matches {
		if strings.Contains(m.entry.lower, lower) {
			contains = append(contains, m.entry.card.Name)
		} else {
			rest = append(rest, m.entry.card.Name)
		}
	}
	return append(contains, rest...)
}
