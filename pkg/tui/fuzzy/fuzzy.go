// ABOUTME: Thin wrapper over sahilm/fuzzy for ranking names against a typed pattern
// ABOUTME: Closest picks the best candidate for "did you mean" hints

package fuzzy

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match represents a single fuzzy match result.
type Match struct {
	Str   string
	Index int
	Score int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Str: r.Str, Index: r.Index, Score: r.Score}
	}
	return matches
}

// Closest returns the candidate that best matches name, ignoring case.
// It reports false when nothing matches.
func Closest(name string, candidates []string) (string, bool) {
	if name == "" || len(candidates) == 0 {
		return "", false
	}
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}
	matches := Find(strings.ToLower(name), lowered)
	if len(matches) == 0 {
		return "", false
	}
	return candidates[matches[0].Index], true
}
