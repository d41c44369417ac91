package curation

import (
	"strings"
	"unicode"
)

// stopWords are dropped from titles before comparison so filler does not
// inflate the overlap between unrelated headlines.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "to": {}, "in": {},
	"on": {}, "for": {}, "and": {}, "with": {}, "at": {}, "is": {},
}

// Similarity scores how likely two titles describe the same article: the
// Jaccard index of their normalized token sets, in [0,1]. Symmetric by
// construction; an empty token set on either side scores 0.
func Similarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	intersection := 0
	for token := range ta {
		if _, ok := tb[token]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection

	return float64(intersection) / float64(union)
}

// tokenSet lowercases, strips punctuation and removes stop-words.
func tokenSet(title string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	set := map[string]struct{}{}
	for _, word := range strings.Fields(b.String()) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}
