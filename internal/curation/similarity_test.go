package curation

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	t.Parallel()

	titles := []string{
		"OpenAI Releases GPT-5",
		"Anthropic ships new safety research",
		"AI chips, GPUs & the 2025 supply crunch",
	}
	for _, title := range titles {
		if got := Similarity(title, title); got != 1.0 {
			t.Fatalf("Similarity(%q, same) = %v, want 1.0", title, got)
		}
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	t.Parallel()

	a := "OpenAI Releases GPT-5"
	b := "OpenAI releases GPT-5 today"
	if Similarity(a, b) != Similarity(b, a) {
		t.Fatalf("similarity is not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
	}
}

func TestSimilarityOverlap(t *testing.T) {
	t.Parallel()

	// Token sets {openai,releases,gpt,5} and {openai,releases,gpt,5,today}.
	got := Similarity("OpenAI Releases GPT-5", "OpenAI releases GPT-5 today")
	if got != 0.8 {
		t.Fatalf("expected 4/5 overlap = 0.8, got %v", got)
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	t.Parallel()

	if got := Similarity("OpenAI Releases GPT-5", "Quantum supremacy milestone reached"); got != 0 {
		t.Fatalf("disjoint titles should score 0, got %v", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	t.Parallel()

	if got := Similarity("", "Some title"); got != 0 {
		t.Fatalf("empty title should score 0, got %v", got)
	}
	if got := Similarity("the of a", "the of a"); got != 0 {
		t.Fatalf("stop-word-only titles normalize to empty sets and score 0, got %v", got)
	}
}

func TestSimilarityPunctuationInsensitive(t *testing.T) {
	t.Parallel()

	if got := Similarity("OpenAI (GPT-5) Launch!", "openai gpt 5 launch"); got != 1.0 {
		t.Fatalf("punctuation should not affect similarity, got %v", got)
	}
}
