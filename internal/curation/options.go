package curation

// Options tune identity merging, diversity capping and score blending.
// All values have working defaults; zero values fall back to them.
type Options struct {
	// SimilarityThreshold is the boundary above which two titles are
	// treated as the same article.
	SimilarityThreshold float64
	// PerDomainCap limits how many entries a single source domain may
	// contribute to the final list. Zero disables the cap.
	PerDomainCap int
	// EditorialWeight and PopularityWeight blend the two score inputs.
	// They are renormalized to sum to 1 before use.
	EditorialWeight  float64
	PopularityWeight float64
	// QualityDomains boost classification confidence for known hosts.
	QualityDomains []string
	// ArticlePathPatterns mark URL paths that look like individual
	// articles; PoorPathPatterns mark search and landing pages.
	ArticlePathPatterns []string
	PoorPathPatterns    []string
	// SourcesPerCategory is the expected maximum cross-source count,
	// used to normalize popularity into [0,1].
	SourcesPerCategory int
}

// DefaultOptions returns the heuristics carried over from the reporting
// agent this pipeline replaces. They are configuration defaults, not
// invariants.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: 0.3,
		PerDomainCap:        3,
		EditorialWeight:     0.7,
		PopularityWeight:    0.3,
		SourcesPerCategory:  5,
		QualityDomains: []string{
			"googleblog.com", "blog.google", "openai.com", "anthropic.com",
			"research.microsoft.com", "ai.meta.com", "deepmind.google",
			"huggingface.co", "github.com", "news.mit.edu",
			"technologyreview.mit.edu", "spectrum.ieee.org",
			"techcrunch.com", "venturebeat.com", "theinformation.com",
			"reuters.com", "theverge.com", "arstechnica.com", "zdnet.com",
			"developer.nvidia.com", "aws.amazon.com",
		},
		ArticlePathPatterns: []string{
			"/blog/", "/news/", "/article/", "/post/", "/research/",
			"/papers/", "/release/", "/story/", "/announcements/",
		},
		PoorPathPatterns: []string{
			"/category/", "/categories/", "/topics/", "/tags/", "/page/",
		},
	}
}

// weights returns the editorial/popularity weights renormalized so they
// sum to 1, falling back to the defaults when both are zero or negative.
func (o Options) weights() (editorial, popularity float64) {
	we, wp := o.EditorialWeight, o.PopularityWeight
	if we < 0 {
		we = 0
	}
	if wp < 0 {
		wp = 0
	}
	if we+wp == 0 {
		return 0.7, 0.3
	}
	return we / (we + wp), wp / (we + wp)
}

// threshold returns the similarity boundary, defaulted when unset.
func (o Options) threshold() float64 {
	if o.SimilarityThreshold <= 0 {
		return 0.3
	}
	return o.SimilarityThreshold
}

// normalization returns the popularity normalization constant.
func (o Options) normalization() float64 {
	if o.SourcesPerCategory <= 0 {
		return 5
	}
	return float64(o.SourcesPerCategory)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
