package curation

import (
	"testing"

	"TrendsReporter/internal/domain"
)

func TestImproveUpgradesWeakURL(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	cand := domain.ArticleCandidate{
		Title:        "Example ships AI news platform",
		URL:          "https://example.com/",
		SourceDomain: "example.com",
		URLQuality:   domain.QualityDomainOnly,
	}
	pool := []domain.ArticleCandidate{
		{
			Title:      "Example ships AI news platform",
			URL:        "https://example.com/blog/ai-news",
			URLQuality: domain.QualityGood,
		},
	}

	improved, ok := Improve(cand, pool, opts)
	if !ok {
		t.Fatalf("expected an improvement")
	}
	if improved.URL != "https://example.com/blog/ai-news" {
		t.Fatalf("unexpected URL: %s", improved.URL)
	}
	if improved.URLQuality != domain.QualityGood {
		t.Fatalf("quality should upgrade to good, got %s", improved.URLQuality)
	}
}

func TestImprovePicksMostSimilarSibling(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	cand := domain.ArticleCandidate{
		Title:      "Anthropic publishes interpretability research",
		URL:        "https://anthropic.com/",
		URLQuality: domain.QualityDomainOnly,
	}
	pool := []domain.ArticleCandidate{
		{Title: "Anthropic research roundup", URL: "https://anthropic.com/news/roundup", URLQuality: domain.QualityGood},
		{Title: "Anthropic publishes interpretability research paper", URL: "https://anthropic.com/research/interpretability", URLQuality: domain.QualityGood},
	}

	improved, ok := Improve(cand, pool, opts)
	if !ok {
		t.Fatalf("expected an improvement")
	}
	if improved.URL != "https://anthropic.com/research/interpretability" {
		t.Fatalf("should pick the most similar sibling, got %s", improved.URL)
	}
}

func TestImproveLeavesCandidateWhenNoQualifyingSibling(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	cand := domain.ArticleCandidate{
		Title:      "Completely specific headline about robotics",
		URL:        "https://example.com/",
		URLQuality: domain.QualityDomainOnly,
	}
	pool := []domain.ArticleCandidate{
		// Similar enough but not a good URL.
		{Title: "Completely specific headline about robotics", URL: "https://example.com/", URLQuality: domain.QualityDomainOnly},
		// Good URL but unrelated title.
		{Title: "Quarterly earnings beat expectations", URL: "https://example.com/blog/earnings", URLQuality: domain.QualityGood},
	}

	improved, ok := Improve(cand, pool, opts)
	if ok {
		t.Fatalf("no sibling qualifies, expected no improvement")
	}
	if improved.URL != cand.URL || improved.URLQuality != cand.URLQuality {
		t.Fatalf("candidate must be returned unchanged, got %+v", improved)
	}
}

func TestImproveSkipsGoodCandidates(t *testing.T) {
	t.Parallel()

	cand := domain.ArticleCandidate{
		Title:      "Already fine",
		URL:        "https://example.com/blog/fine",
		URLQuality: domain.QualityGood,
	}
	pool := []domain.ArticleCandidate{
		{Title: "Already fine", URL: "https://example.com/blog/other", URLQuality: domain.QualityGood},
	}

	improved, ok := Improve(cand, pool, DefaultOptions())
	if ok || improved.URL != cand.URL {
		t.Fatalf("good candidates are not eligible for improvement")
	}
}

func TestImproveCache(t *testing.T) {
	t.Parallel()

	cache := NewImproveCache()
	if _, ok := cache.Lookup("https://example.com/"); ok {
		t.Fatalf("empty cache should miss")
	}

	cache.Store("https://example.com/", "https://example.com/blog/ai-news")
	repaired, ok := cache.Lookup("https://example.com/")
	if !ok || repaired != "https://example.com/blog/ai-news" {
		t.Fatalf("cache lookup failed: %q %v", repaired, ok)
	}

	var nilCache *ImproveCache
	if _, ok := nilCache.Lookup("anything"); ok {
		t.Fatalf("nil cache must miss, not panic")
	}
	nilCache.Store("a", "b")
}
