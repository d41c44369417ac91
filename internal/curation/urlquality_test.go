package curation

import (
	"testing"

	"TrendsReporter/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultOptions())

	cases := []struct {
		name string
		url  string
		want domain.URLQuality
	}{
		{"empty", "", domain.QualityPoor},
		{"malformed", "ht!tp://%zz", domain.QualityPoor},
		{"non http scheme", "ftp://example.com/file", domain.QualityPoor},
		{"search query param", "https://x.com/search?q=ai", domain.QualityPoor},
		{"query param only", "https://example.com/results?query=llm", domain.QualityPoor},
		{"search path segment", "https://news.example.com/search/ai-news", domain.QualityPoor},
		{"category page", "https://reuters.com/category/artificial-intelligence", domain.QualityPoor},
		{"landing page", "https://example.com/index.html", domain.QualityPoor},
		{"home page", "https://example.com/home", domain.QualityPoor},
		{"bare root", "https://openai.com/", domain.QualityDomainOnly},
		{"no path", "https://openai.com", domain.QualityDomainOnly},
		{"article path", "https://openai.com/blog/gpt-improvements", domain.QualityGood},
		{"dated article", "https://techcrunch.com/2025/07/15/ai-startup-funding/", domain.QualityGood},
		{"research path not search", "https://deepmind.google/research/alphafold-update", domain.QualityGood},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tc.url); got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.url, got, tc.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultOptions())

	if got := c.Confidence("https://x.com/search?q=ai"); got != 0 {
		t.Fatalf("poor URL confidence = %v, want 0", got)
	}
	if got := c.Confidence("https://openai.com/"); got != 0.3 {
		t.Fatalf("domain-only confidence = %v, want 0.3", got)
	}

	plain := c.Confidence("https://example.com/some-long-page-slug")
	boosted := c.Confidence("https://example.com/blog/some-long-page-slug")
	if boosted <= plain {
		t.Fatalf("article path should boost confidence: plain=%v boosted=%v", plain, boosted)
	}

	allowlisted := c.Confidence("https://openai.com/some-long-page-slug")
	if allowlisted <= plain {
		t.Fatalf("allowlisted host should boost confidence: plain=%v allowlisted=%v", plain, allowlisted)
	}
	if allowlisted > 1 {
		t.Fatalf("confidence must stay within [0,1], got %v", allowlisted)
	}
}

func TestConfidenceSubdomainAllowlist(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultOptions())

	base := c.Confidence("https://unknown.example/long-page-slug-here")
	sub := c.Confidence("https://www.blog.openai.com/long-page-slug-here")
	if sub <= base {
		t.Fatalf("subdomain of allowlisted host should boost confidence: base=%v sub=%v", base, sub)
	}
}
