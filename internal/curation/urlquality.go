package curation

import (
	"net/url"
	"regexp"
	"strings"

	"TrendsReporter/internal/domain"
)

// Classifier labels result URLs by structural quality. Classification is
// a pure function of the URL string and never fails: malformed input is
// simply poor.
type Classifier struct {
	qualityDomains  map[string]struct{}
	articlePatterns []string
	poorPatterns    []string
}

// yearSegmentExpr matches date-stamped article paths like /2025/07/ or
// /2025-07-15/.
var yearSegmentExpr = regexp.MustCompile(`/20\d{2}([/-])`)

// landingPages are generic entry points that never identify an article.
var landingPages = map[string]struct{}{
	"home":       {},
	"index.html": {},
	"index.php":  {},
	"main.html":  {},
}

// NewClassifier builds a classifier from the configured domain allowlist
// and path pattern lists.
func NewClassifier(opts Options) *Classifier {
	c := &Classifier{
		qualityDomains:  make(map[string]struct{}, len(opts.QualityDomains)),
		articlePatterns: opts.ArticlePathPatterns,
		poorPatterns:    opts.PoorPathPatterns,
	}
	for _, d := range opts.QualityDomains {
		c.qualityDomains[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return c
}

// Classify grades a URL as good, domain_only or poor.
func (c *Classifier) Classify(raw string) domain.URLQuality {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.QualityPoor
	}

	u, err := url.Parse(raw)
	if err != nil {
		return domain.QualityPoor
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return domain.QualityPoor
	}
	if u.Host == "" {
		return domain.QualityPoor
	}

	if isSearchPage(u) {
		return domain.QualityPoor
	}

	path := strings.ToLower(u.Path)
	lowered := strings.ToLower(u.String())
	for _, pattern := range c.poorPatterns {
		if pattern != "" && strings.Contains(lowered, strings.ToLower(pattern)) {
			return domain.QualityPoor
		}
	}
	if _, landing := landingPages[strings.Trim(path, "/")]; landing {
		return domain.QualityPoor
	}

	if strings.Trim(path, "/") == "" {
		return domain.QualityDomainOnly
	}

	return domain.QualityGood
}

// Confidence grades a URL in [0,1]. Good URLs earn a boost when the path
// looks article-like or the host is on the quality allowlist; the boost
// is a numeric nudge, not a separate quality state.
func (c *Classifier) Confidence(raw string) float64 {
	switch c.Classify(raw) {
	case domain.QualityPoor:
		return 0
	case domain.QualityDomainOnly:
		return 0.3
	}

	score := 0.7
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return score
	}
	if c.articleLike(u.Path) || c.allowlisted(u.Host) {
		score += 0.3
	}
	return clamp01(score)
}

func (c *Classifier) articleLike(path string) bool {
	lowered := strings.ToLower(path)
	for _, pattern := range c.articlePatterns {
		if pattern != "" && strings.Contains(lowered, strings.ToLower(pattern)) {
			return true
		}
	}
	return yearSegmentExpr.MatchString(lowered)
}

func (c *Classifier) allowlisted(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	if _, ok := c.qualityDomains[host]; ok {
		return true
	}
	// Allowlist entries also cover their subdomains.
	for d := range c.qualityDomains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// isSearchPage detects search-engine result endpoints: a q/query
// parameter or a path segment named "search". Segment matching keeps
// paths like /research/ out of the net.
func isSearchPage(u *url.URL) bool {
	q := u.Query()
	if q.Get("q") != "" || q.Get("query") != "" {
		return true
	}
	for _, segment := range strings.Split(strings.ToLower(u.Path), "/") {
		if segment == "search" {
			return true
		}
	}
	return false
}
