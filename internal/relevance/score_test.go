package relevance

import (
	"testing"

	"TrendsReporter/internal/curation"
	"TrendsReporter/internal/domain"
)

func TestScoreStaysInRange(t *testing.T) {
	t.Parallel()

	s := NewScorer(curation.NewClassifier(curation.DefaultOptions()))

	cands := []domain.ArticleCandidate{
		{},
		{Title: "ai"},
		{
			Title:        "OpenAI releases new GPT model API with large language model benchmark results",
			Snippet:      "The new large language model from OpenAI improves reasoning, multimodal understanding and fine-tuning across every benchmark the team published this week.",
			SourceDomain: "openai.com",
			URL:          "https://openai.com/blog/new-gpt-model",
		},
	}

	for _, cand := range cands {
		got := s.Score(cand)
		if got < 0 || got > 1 {
			t.Fatalf("score out of range for %q: %v", cand.Title, got)
		}
	}
}

func TestScorePrefersCredibleDetailedHits(t *testing.T) {
	t.Parallel()

	s := NewScorer(curation.NewClassifier(curation.DefaultOptions()))

	strong := domain.ArticleCandidate{
		Title:        "OpenAI releases new GPT model API with reasoning improvements",
		Snippet:      "The new large language model improves reasoning and multimodal understanding, with fine-tuning support arriving for developers later this month.",
		SourceDomain: "openai.com",
		URL:          "https://openai.com/blog/new-gpt-model",
	}
	weak := domain.ArticleCandidate{
		Title:        "Weather today",
		Snippet:      "Sunny.",
		SourceDomain: "example.com",
		URL:          "https://example.com/",
	}

	if s.Score(strong) <= s.Score(weak) {
		t.Fatalf("credible detailed hit should outscore off-topic one: %v <= %v",
			s.Score(strong), s.Score(weak))
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	s := NewScorer(curation.NewClassifier(curation.DefaultOptions()))
	cand := domain.ArticleCandidate{
		Title:        "Anthropic publishes interpretability research",
		Snippet:      "New results on understanding transformer internals.",
		SourceDomain: "anthropic.com",
		URL:          "https://anthropic.com/research/interpretability",
	}

	if s.Score(cand) != s.Score(cand) {
		t.Fatalf("score must be deterministic")
	}
}
