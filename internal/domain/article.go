package domain

import "time"

// URLQuality grades how specific a result URL is. Quality only moves
// forward: unknown is resolved by classification, and poor/domain_only
// may later be upgraded to good by URL improvement, never the reverse.
type URLQuality string

const (
	QualityUnknown    URLQuality = "unknown"
	QualityGood       URLQuality = "good"
	QualityDomainOnly URLQuality = "domain_only"
	QualityPoor       URLQuality = "poor"
)

// ArticleCandidate is one raw search hit flowing through the curation
// pipeline. Title is the primary deduplication key.
type ArticleCandidate struct {
	Title        string
	URL          string
	SourceDomain string
	Snippet      string
	PublishedAt  time.Time
	Category     string

	URLQuality       URLQuality
	EditorialScore   float64
	PopularityScore  float64
	CombinedScore    float64
	CrossSourceCount int
}

// ArticleGroup is the unit of identity after deduplication: one or more
// candidates judged to describe the same real-world article. Title is
// the longest member title; URL is the best-quality URL among members.
type ArticleGroup struct {
	Title        string
	URL          string
	SourceDomain string
	Snippet      string
	Category     string
	URLQuality   URLQuality

	Domains          []string
	CrossSourceCount int
	EditorialScore   float64
	PopularityScore  float64
	CombinedScore    float64

	Members []ArticleCandidate
}

// CurationStats counts every filtering decision so callers can report
// quality metrics; the pipeline never discards without attribution.
type CurationStats struct {
	Input             int
	DroppedNoTitle    int
	DroppedInvalidURL int
	DroppedDuplicate  int
	DroppedDomainCap  int
	Improved          int
	Kept              int
}

// Add accumulates per-category stats into a run total.
func (s *CurationStats) Add(other CurationStats) {
	s.Input += other.Input
	s.DroppedNoTitle += other.DroppedNoTitle
	s.DroppedInvalidURL += other.DroppedInvalidURL
	s.DroppedDuplicate += other.DroppedDuplicate
	s.DroppedDomainCap += other.DroppedDomainCap
	s.Improved += other.Improved
	s.Kept += other.Kept
}

// ReportRun is the persisted projection of one curation run.
type ReportRun struct {
	ID          string
	GeneratedAt time.Time
	DateRange   string
	Groups      []ArticleGroup
	Stats       CurationStats
	ExportPath  string
}

// ArticleContent is distilled full text fetched for top-ranked entries.
type ArticleContent struct {
	Title       string
	Description string
	Text        string
	Length      int
}
