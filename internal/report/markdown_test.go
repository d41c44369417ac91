package report

import (
	"strings"
	"testing"
	"time"

	"TrendsReporter/internal/domain"
)

func TestRenderFullReport(t *testing.T) {
	t.Parallel()

	sections := []CategorySection{
		{
			Name:      "research",
			Narrative: "Model releases dominated the cycle.",
			Groups: []domain.ArticleGroup{
				{
					Title:            "OpenAI announces GPT-5",
					URL:              "https://openai.com/blog/gpt-5",
					SourceDomain:     "openai.com",
					Snippet:          "The flagship model ships today.",
					CrossSourceCount: 3,
					Members: []domain.ArticleCandidate{
						{URL: "https://openai.com/blog/gpt-5", SourceDomain: "openai.com"},
						{URL: "https://techcrunch.com/2026/08/20/gpt-5", SourceDomain: "techcrunch.com"},
					},
				},
			},
			Contents: map[string]domain.ArticleContent{
				"https://openai.com/blog/gpt-5": {Description: "GPT-5 improves reasoning."},
			},
		},
		{Name: "tools"},
	}
	stats := domain.CurationStats{Input: 40, Kept: 12, DroppedDuplicate: 20, DroppedInvalidURL: 5, DroppedNoTitle: 1, DroppedDomainCap: 2, Improved: 3}

	got := NewRenderer("Weekly AI Digest").Render(sections, stats, time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC), "2026-08-12 to 2026-08-26")

	for _, want := range []string{
		"# Weekly AI Digest",
		"## Executive Summary",
		"- **Research**: OpenAI announces GPT-5 (covered by 3 sources)",
		"Model releases dominated the cycle.",
		"### OpenAI announces GPT-5",
		"> GPT-5 improves reasoning.",
		"- [openai.com](https://openai.com/blog/gpt-5)",
		"- [techcrunch.com](https://techcrunch.com/2026/08/20/gpt-5)",
		"No stories made the cut this period.",
		"40 candidates in, 12 kept",
		"3 URLs improved",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered report missing %q:\n%s", want, got)
		}
	}

	// Representative URL must not be repeated in the member list.
	if strings.Count(got, "https://openai.com/blog/gpt-5)") != 1 {
		t.Fatalf("representative link duplicated:\n%s", got)
	}
}

func TestRenderEmptySections(t *testing.T) {
	t.Parallel()

	got := NewRenderer("").Render(nil, domain.CurationStats{}, time.Now(), "")

	if !strings.Contains(got, "# Recent AI Trends and Advancements") {
		t.Fatalf("expected default title:\n%s", got)
	}
	if !strings.Contains(got, "No notable developments were found for this period.") {
		t.Fatalf("expected empty summary note:\n%s", got)
	}
}
