package heuristic

import (
	"regexp"
	"sort"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-z]{4,}`)

// stopwords are common filler words excluded from keyword ranking.
var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "about": {}, "would": {},
	"could": {}, "there": {}, "their": {}, "where": {}, "which": {}, "while": {},
	"these": {}, "those": {}, "have": {}, "because": {}, "between": {}, "other": {},
	"under": {}, "after": {}, "before": {}, "whose": {}, "over": {}, "into": {},
	"given": {}, "might": {}, "should": {}, "during": {}, "against": {}, "your": {},
	"they": {},
}

// Keywords returns the most frequent non-stopword alphabetic runs (length >= 4)
// in text, most frequent first. Ties keep first-seen order.
func Keywords(text string, limit int) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		if _, ok := counts[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	ranked := make([]string, 0, len(counts))
	for w := range counts {
		ranked = append(ranked, w)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
