package curation

import (
	"strings"

	"TrendsReporter/internal/domain"
)

// titleCluster tracks one open group during first-seen clustering. The
// first candidate above threshold opens the cluster and its title stays
// the comparison anchor; later arrivals may replace the representative
// but never the anchor.
type titleCluster struct {
	anchor  string
	rep     domain.ArticleCandidate
	domains map[string]struct{}
}

// Filter classifies, deduplicates and diversity-caps one batch of raw
// candidates. Survivors carry their URL quality and cross-source count;
// every drop is attributed in the returned stats. Grouping is
// order-sensitive by design: the first-seen title wins as anchor.
func Filter(candidates []domain.ArticleCandidate, classifier *Classifier, opts Options) ([]domain.ArticleCandidate, domain.CurationStats) {
	stats := domain.CurationStats{Input: len(candidates)}
	threshold := opts.threshold()

	var clusters []*titleCluster
	for _, cand := range candidates {
		if strings.TrimSpace(cand.Title) == "" {
			stats.DroppedNoTitle++
			continue
		}

		cand.URLQuality = classifier.Classify(cand.URL)
		if cand.URLQuality == domain.QualityPoor {
			stats.DroppedInvalidURL++
			continue
		}

		merged := false
		for _, cluster := range clusters {
			if Similarity(cand.Title, cluster.anchor) < threshold {
				continue
			}
			cluster.domains[cand.SourceDomain] = struct{}{}
			if qualityRank(cand.URLQuality) > qualityRank(cluster.rep.URLQuality) {
				cluster.rep = cand
			}
			stats.DroppedDuplicate++
			merged = true
			break
		}
		if merged {
			continue
		}

		clusters = append(clusters, &titleCluster{
			anchor:  cand.Title,
			rep:     cand,
			domains: map[string]struct{}{cand.SourceDomain: {}},
		})
	}

	kept := make([]domain.ArticleCandidate, 0, len(clusters))
	perDomain := map[string]int{}
	for _, cluster := range clusters {
		rep := cluster.rep
		rep.CrossSourceCount = len(cluster.domains)

		if opts.PerDomainCap > 0 && perDomain[rep.SourceDomain] >= opts.PerDomainCap {
			stats.DroppedDomainCap++
			continue
		}
		perDomain[rep.SourceDomain]++
		kept = append(kept, rep)
	}

	stats.Kept = len(kept)
	return kept, stats
}

// qualityRank orders URL qualities for representative selection: good
// beats domain_only beats unknown beats poor. Strictly-greater wins, so
// ties keep the earliest occurrence.
func qualityRank(q domain.URLQuality) int {
	switch q {
	case domain.QualityGood:
		return 3
	case domain.QualityDomainOnly:
		return 2
	case domain.QualityUnknown:
		return 1
	default:
		return 0
	}
}
