package curation

import "TrendsReporter/internal/domain"

// ImproveCache records URL repairs made during a single run so the same
// weak URL is not re-queried. It is created per run and passed down
// explicitly; nothing in this package keeps state between runs.
type ImproveCache struct {
	repaired map[string]string
}

// NewImproveCache returns an empty per-run cache.
func NewImproveCache() *ImproveCache {
	return &ImproveCache{repaired: map[string]string{}}
}

// Lookup returns a previously found replacement for the given URL.
func (c *ImproveCache) Lookup(original string) (string, bool) {
	if c == nil {
		return "", false
	}
	repaired, ok := c.repaired[original]
	return repaired, ok
}

// Store remembers a repair for the rest of the run.
func (c *ImproveCache) Store(original, repaired string) {
	if c == nil || original == "" {
		return
	}
	c.repaired[original] = repaired
}

// Improve tries to swap a weak URL for the best matching good sibling.
// Only domain_only/poor candidates are eligible; the winning sibling must
// score at least the similarity threshold and carry a good URL. When no
// sibling qualifies the candidate is returned unchanged — improvement
// never fails the pipeline. Pure selection: gathering the pool is the
// caller's concern.
func Improve(cand domain.ArticleCandidate, siblings []domain.ArticleCandidate, opts Options) (domain.ArticleCandidate, bool) {
	if cand.URLQuality != domain.QualityPoor && cand.URLQuality != domain.QualityDomainOnly {
		return cand, false
	}

	threshold := opts.threshold()
	best := -1
	bestScore := 0.0
	for i, sibling := range siblings {
		if sibling.URLQuality != domain.QualityGood || sibling.URL == "" {
			continue
		}
		score := Similarity(cand.Title, sibling.Title)
		if score < threshold {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best < 0 {
		return cand, false
	}

	cand.URL = siblings[best].URL
	cand.URLQuality = domain.QualityGood
	return cand, true
}
