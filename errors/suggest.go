package errors

import (
	"sort"
	"strings"
)

// MaxSuggestionDistance is the largest edit distance at which a candidate
// is still offered as a suggestion.
const MaxSuggestionDistance = 3

// Suggest returns the candidate closest to target, if any candidate is
// close enough to be a plausible misspelling. A target that matches one of
// the candidates (ignoring case) yields false.
func Suggest(target string, candidates []string) (string, bool) {
	target = strings.ToLower(target)
	if target == "" {
		return "", false
	}
	threshold := MaxSuggestionDistance
	switch {
	case len(target) <= 3:
		threshold = 1
	case len(target) <= 5:
		threshold = 2
	}

	type scored struct {
		value string
		dist  int
	}
	var found []scored
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if lower == target {
			return "", false
		}
		if candidate == "" {
			continue
		}
		if d := levenshtein(target, lower); d <= threshold {
			found = append(found, scored{candidate, d})
		}
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].value < found[j].value
	})
	return found[0].value, true
}

// levenshtein computes the edit distance between two strings using two rows
// of the dynamic programming matrix.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
