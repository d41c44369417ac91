package ports

import (
	"context"
	"time"

	"TrendsReporter/internal/domain"
)

// CandidateSource pulls raw search hits for every configured category.
type CandidateSource interface {
	FetchCandidates(ctx context.Context) ([]domain.ArticleCandidate, error)
}

// SiblingSearcher re-queries a title constrained to its source domain,
// returning alternate hits for URL repair.
type SiblingSearcher interface {
	FindAlternates(ctx context.Context, title, sourceDomain string) ([]domain.ArticleCandidate, error)
}

// CurationRepository persists ranked groups and answers cross-run
// already-reported checks.
type CurationRepository interface {
	AlreadyReported(ctx context.Context, urls []string) (map[string]bool, error)
	SaveRun(ctx context.Context, run domain.ReportRun) error
}

// ContentExtractor fetches and distills article bodies used to enrich
// top-ranked report entries.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (domain.ArticleContent, error)
}

// Narrator writes a short narrative for one ranked category.
type Narrator interface {
	Narrate(ctx context.Context, category string, groups []domain.ArticleGroup) (string, error)
}

// Notifier publishes the report digest to Telegram or other channels.
type Notifier interface {
	PublishReport(ctx context.Context, digest string) error
}

// Exporter stores the rendered markdown document and returns its path.
type Exporter interface {
	Export(report string, generatedAt time.Time) (string, error)
}

// Scheduler controls when report runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
