package curation

import (
	"sort"

	"TrendsReporter/internal/domain"
)

// Group merges filtered candidates whose titles still read as the same
// article into ArticleGroups. First-seen clustering again: a candidate
// joins the first group scoring at least the threshold against the
// group's canonical title, otherwise it opens a new group. The canonical
// title is the longest member title; the canonical URL is the
// best-quality one.
func Group(candidates []domain.ArticleCandidate, opts Options) []domain.ArticleGroup {
	threshold := opts.threshold()

	var groups []domain.ArticleGroup
	for _, cand := range candidates {
		idx := -1
		for i := range groups {
			if Similarity(cand.Title, groups[i].Title) >= threshold {
				idx = i
				break
			}
		}

		if idx < 0 {
			groups = append(groups, domain.ArticleGroup{
				Title:          cand.Title,
				URL:            cand.URL,
				SourceDomain:   cand.SourceDomain,
				Snippet:        cand.Snippet,
				Category:       cand.Category,
				URLQuality:     cand.URLQuality,
				Domains:        []string{cand.SourceDomain},
				EditorialScore: cand.EditorialScore,
				Members:        []domain.ArticleCandidate{cand},
			})
			continue
		}

		g := &groups[idx]
		g.Members = append(g.Members, cand)
		g.Domains = append(g.Domains, cand.SourceDomain)
		if len(cand.Title) > len(g.Title) {
			g.Title = cand.Title
		}
		if qualityRank(cand.URLQuality) > qualityRank(g.URLQuality) {
			g.URL = cand.URL
			g.SourceDomain = cand.SourceDomain
			g.URLQuality = cand.URLQuality
			if cand.Snippet != "" {
				g.Snippet = cand.Snippet
			}
		}
		if cand.EditorialScore > g.EditorialScore {
			g.EditorialScore = cand.EditorialScore
		}
	}

	for i := range groups {
		groups[i].CrossSourceCount = aggregateCrossSource(groups[i].Members)
	}
	return groups
}

// aggregateCrossSource sums the members' filter-stage counts, which
// already cover the domains of candidates absorbed earlier. The sum may
// double-count a domain shared by two merged groups; popularity clamping
// bounds the effect.
func aggregateCrossSource(members []domain.ArticleCandidate) int {
	total := 0
	for _, m := range members {
		if m.CrossSourceCount > 0 {
			total += m.CrossSourceCount
		} else {
			total++
		}
	}
	if total < 1 {
		total = 1
	}
	return total
}

// Rank computes popularity and combined scores, orders groups and
// re-applies the per-domain cap as a final safety net. The sort is a
// total order: combined score descending, ties by cross-source count
// descending, remaining ties keep discovery order. Running Rank on its
// own output returns the same sequence.
func Rank(groups []domain.ArticleGroup, opts Options) []domain.ArticleGroup {
	editorialW, popularityW := opts.weights()
	norm := opts.normalization()

	for i := range groups {
		popularity := clamp01(float64(groups[i].CrossSourceCount) / norm)
		groups[i].PopularityScore = popularity
		groups[i].CombinedScore = editorialW*clamp01(groups[i].EditorialScore) + popularityW*popularity
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].CombinedScore != groups[j].CombinedScore {
			return groups[i].CombinedScore > groups[j].CombinedScore
		}
		return groups[i].CrossSourceCount > groups[j].CrossSourceCount
	})

	ranked := make([]domain.ArticleGroup, 0, len(groups))
	perDomain := map[string]int{}
	for _, g := range groups {
		if opts.PerDomainCap > 0 && perDomain[g.SourceDomain] >= opts.PerDomainCap {
			continue
		}
		perDomain[g.SourceDomain]++
		ranked = append(ranked, g)
	}
	return ranked
}
