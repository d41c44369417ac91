package curation

import (
	"testing"

	"TrendsReporter/internal/domain"
)

func TestFilterMergesSimilarTitles(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(DefaultOptions())
	opts := DefaultOptions()
	opts.PerDomainCap = 1

	candidates := []domain.ArticleCandidate{
		{Title: "OpenAI Releases GPT-5", URL: "https://openai.com/blog/gpt-5", SourceDomain: "openai.com"},
		{Title: "OpenAI releases GPT-5 today", URL: "https://techcrunch.com/2025/08/20/openai-gpt-5/", SourceDomain: "techcrunch.com"},
		{Title: "Unrelated AI Story", URL: "https://openai.com/blog/unrelated-ai-story", SourceDomain: "openai.com"},
	}

	kept, stats := Filter(candidates, classifier, opts)

	if len(kept) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(kept))
	}
	if kept[0].Title != "OpenAI Releases GPT-5" {
		t.Fatalf("first-seen title should anchor the group, got %q", kept[0].Title)
	}
	if kept[0].CrossSourceCount != 2 {
		t.Fatalf("merged group should count 2 distinct domains, got %d", kept[0].CrossSourceCount)
	}
	if stats.DroppedDuplicate != 1 {
		t.Fatalf("expected 1 duplicate drop, got %d", stats.DroppedDuplicate)
	}
	if stats.DroppedDomainCap != 1 {
		t.Fatalf("openai.com cap of 1 should drop the second openai.com entry, got %d", stats.DroppedDomainCap)
	}
	if stats.Kept != 1 || stats.Input != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestFilterDropsInvalidAndUntitled(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(DefaultOptions())
	opts := DefaultOptions()

	candidates := []domain.ArticleCandidate{
		{Title: "", URL: "https://example.com/blog/no-title", SourceDomain: "example.com"},
		{Title: "Search page result", URL: "https://example.com/search?q=ai", SourceDomain: "example.com"},
		{Title: "Valid article", URL: "https://example.com/blog/valid-article", SourceDomain: "example.com"},
	}

	kept, stats := Filter(candidates, classifier, opts)

	if len(kept) != 1 || kept[0].Title != "Valid article" {
		t.Fatalf("expected only the valid article to survive, got %+v", kept)
	}
	if stats.DroppedNoTitle != 1 {
		t.Fatalf("expected 1 missing-title drop, got %d", stats.DroppedNoTitle)
	}
	if stats.DroppedInvalidURL != 1 {
		t.Fatalf("expected 1 invalid-url drop, got %d", stats.DroppedInvalidURL)
	}
	if kept[0].URLQuality != domain.QualityGood {
		t.Fatalf("survivor should be annotated with url quality, got %s", kept[0].URLQuality)
	}
}

func TestFilterRepresentativePrefersGoodURL(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(DefaultOptions())
	opts := DefaultOptions()

	candidates := []domain.ArticleCandidate{
		{Title: "Meta open sources new model", URL: "https://ai.meta.com/", SourceDomain: "ai.meta.com"},
		{Title: "Meta open sources new model weights", URL: "https://ai.meta.com/blog/new-model-weights/", SourceDomain: "ai.meta.com"},
	}

	kept, _ := Filter(candidates, classifier, opts)

	if len(kept) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(kept))
	}
	if kept[0].URL != "https://ai.meta.com/blog/new-model-weights/" {
		t.Fatalf("representative should prefer the good URL, got %s", kept[0].URL)
	}
	if kept[0].URLQuality != domain.QualityGood {
		t.Fatalf("representative quality = %s, want good", kept[0].URLQuality)
	}
}

func TestFilterDomainCapHolds(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(DefaultOptions())
	opts := DefaultOptions()
	opts.PerDomainCap = 2

	candidates := []domain.ArticleCandidate{
		{Title: "First unique story about robots", URL: "https://example.com/blog/robots-one", SourceDomain: "example.com"},
		{Title: "Second unrelated piece on chips", URL: "https://example.com/blog/chips-two", SourceDomain: "example.com"},
		{Title: "Third distinct headline on funding", URL: "https://example.com/blog/funding-three", SourceDomain: "example.com"},
	}

	kept, stats := Filter(candidates, classifier, opts)

	perDomain := map[string]int{}
	for _, c := range kept {
		perDomain[c.SourceDomain]++
	}
	for d, n := range perDomain {
		if n > opts.PerDomainCap {
			t.Fatalf("domain %s exceeds cap: %d > %d", d, n, opts.PerDomainCap)
		}
	}
	if stats.DroppedDomainCap != 1 {
		t.Fatalf("expected 1 cap drop, got %d", stats.DroppedDomainCap)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	t.Parallel()

	kept, stats := Filter(nil, NewClassifier(DefaultOptions()), DefaultOptions())
	if len(kept) != 0 {
		t.Fatalf("empty input must give empty output, got %d", len(kept))
	}
	if stats.Input != 0 || stats.Kept != 0 {
		t.Fatalf("unexpected stats for empty input: %+v", stats)
	}
}
