// Package fuzzy scores loose text matches for in-memory search.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultThreshold is the lowest per-term score that still counts as a hit.
const DefaultThreshold = 45

type Suggestion struct {
	Text  string
	Score int
}

// Score rates how well pattern matches a single word or short phrase, 0..100.
// Substrings rank above scattered subsequences; an exact match is 100.
func Score(pattern, text string) int {
	p := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	t := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(p) == 0 || len(t) == 0 || len(p) > len(t) {
		return 0
	}
	if string(p) == string(t) {
		return 100
	}

	if idx := strings.Index(string(t), string(p)); idx >= 0 {
		at := len([]rune(string(t)[:idx]))
		score := 70 + 20*len(p)/len(t)
		if at == 0 || isBoundary(t[at-1]) {
			score += 8
		}
		return min(score, 99)
	}

	positions := subsequence(p, t)
	if positions == nil {
		return 0
	}

	run := longestRun(positions)
	score := 25.0
	score += 25.0 * float64(run) / float64(len(p))
	score += 15.0 * float64(len(p)) / float64(len(t))
	if positions[0] == 0 {
		score += 8
	}
	if boundaryShare(t, positions) >= 0.3 {
		score += 6
	}
	// spread-out matches are mostly noise
	span := positions[len(positions)-1] - positions[0] + 1
	score -= float64(span-len(p)) * 3

	return max(0, min(int(score), 69))
}

// MatchText reports whether every term of query matches some word of text.
// The returned score is the mean of the per-term best scores.
func MatchText(query, text string, threshold int) (int, bool) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return 100, true
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	lowered := strings.ToLower(text)

	total := 0
	for _, term := range terms {
		best := 0
		if strings.Contains(lowered, strings.ToLower(term)) {
			best = 80
		}
		for _, w := range words {
			if s := Score(term, w); s > best {
				best = s
			}
		}
		if best < threshold {
			return 0, false
		}
		total += best
	}
	return total / len(terms), true
}

// Filter keeps items whose text matches query, preserving their order.
func Filter[T any](query string, items []T, text func(T) string, threshold int) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, ok := MatchText(query, text(it), threshold); ok {
			out = append(out, it)
		}
	}
	return out
}

// Suggest ranks candidates against pattern, best first, dropping weak matches.
func Suggest(pattern string, candidates []string, limit int) []Suggestion {
	results := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		s := Score(pattern, c)
		if s >= DefaultThreshold {
			results = append(results, Suggestion{Text: c, Score: s})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func subsequence(p, t []rune) []int {
	positions := make([]int, 0, len(p))
	pi := 0
	for ti := 0; ti < len(t) && pi < len(p); ti++ {
		if p[pi] == t[ti] {
			positions = append(positions, ti)
			pi++
		}
	}
	if pi < len(p) {
		return nil
	}
	return positions
}

func longestRun(positions []int) int {
	best, run := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			run++
			best = max(best, run)
		} else {
			run = 1
		}
	}
	return best
}

func boundaryShare(t []rune, positions []int) float64 {
	n := 0
	for _, pos := range positions {
		if pos == 0 || isBoundary(t[pos-1]) {
			n++
		}
	}
	return float64(n) / float64(len(positions))
}

func isBoundary(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '/' || r == '.' || r == '@'
}
