// Package relevance estimates the editorial impact of raw search hits.
// The score feeds the curation pipeline as the editorial input of the
// combined ranking; the pipeline treats it as immutable.
package relevance

import (
	"strings"

	"TrendsReporter/internal/curation"
	"TrendsReporter/internal/domain"
)

// aiKeywords signal on-topic content in title or snippet.
var aiKeywords = []string{
	"artificial intelligence", "machine learning", "deep learning",
	"neural network", "ai ", " ai", "llm", "gpt", "transformer",
	"computer vision", "natural language", "robotics", "generative ai",
	"foundation model", "large language model", "claude", "gemini",
	"chatgpt", "anthropic", "openai", "multimodal", "reasoning",
	"reinforcement learning", "diffusion model", "fine-tuning", "rag",
}

// technicalTerms in a title indicate developer-facing content.
var technicalTerms = []string{
	"api", "sdk", "framework", "library", "model", "algorithm",
	"benchmark", "dataset",
}

// sourceTiers assign a credibility weight per domain fragment, ordered
// from company research blogs down to business press.
var sourceTiers = []struct {
	fragments []string
	weight    float64
}{
	{[]string{"googleblog", "openai", "anthropic", "research.microsoft", "ai.meta"}, 0.25},
	{[]string{"deepmind", "papers.nips", "news.mit"}, 0.20},
	{[]string{"huggingface", "github"}, 0.15},
	{[]string{"technologyreview.mit", "spectrum.ieee"}, 0.10},
	{[]string{"techcrunch", "venturebeat", "theinformation"}, 0.08},
}

// Scorer produces editorial scores in [0,1] from keyword density,
// source credibility, URL confidence and content detail.
type Scorer struct {
	classifier *curation.Classifier
}

// NewScorer wires the URL classifier used for the confidence component.
func NewScorer(classifier *curation.Classifier) *Scorer {
	return &Scorer{classifier: classifier}
}

// Score grades one candidate. Deterministic and side-effect free.
func (s *Scorer) Score(cand domain.ArticleCandidate) float64 {
	text := strings.ToLower(cand.Title + " " + cand.Snippet)
	source := strings.ToLower(cand.SourceDomain)

	var score float64

	matches := 0
	for _, keyword := range aiKeywords {
		if strings.Contains(text, keyword) {
			matches++
		}
	}
	if matches > 5 {
		matches = 5
	}
	score += float64(matches) * 0.05

	for _, tier := range sourceTiers {
		if containsAny(source, tier.fragments) {
			score += tier.weight
			break
		}
	}

	if s.classifier != nil {
		score += 0.2 * s.classifier.Confidence(cand.URL)
	}

	if len(cand.Title) > 50 {
		score += 0.1
	}
	if len(cand.Snippet) > 100 {
		score += 0.1
	}

	title := strings.ToLower(cand.Title)
	for _, term := range technicalTerms {
		if strings.Contains(title, term) {
			score += 0.1
			break
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
