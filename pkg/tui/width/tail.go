// ABOUTME: TailByColumns keeps the rightmost part of a string that fits in a column budget
// ABOUTME: Used to clip the command line from the left so the newest input stays visible

package width

import "github.com/rivo/uniseg"

// TailByColumns returns the longest suffix of s whose display width is at
// most n columns. Whole grapheme clusters are kept or dropped together, so
// a wide character that would straddle the budget is dropped.
// s must not contain escape sequences.
func TailByColumns(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= n {
			return s
		}
		return s[len(s)-n:]
	}

	var clusters []string
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}

	used := 0
	start := len(s)
	for i := len(clusters) - 1; i >= 0; i-- {
		w := graphemeWidth(clusters[i])
		if used+w > n {
			break
		}
		used += w
		start -= len(clusters[i])
	}
	return s[start:]
}
