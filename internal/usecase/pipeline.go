package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"TrendsReporter/internal/curation"
	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/metrics"
	"TrendsReporter/internal/ports"
	"TrendsReporter/internal/relevance"
	"TrendsReporter/internal/report"
)

// Number of top-ranked stories per category that get page content
// extracted for the report.
const extractTop = 3

// PipelineDeps wires all driven adapters into the report pipeline.
type PipelineDeps struct {
	Source     ports.CandidateSource
	Siblings   ports.SiblingSearcher
	Repository ports.CurationRepository
	Extractor  ports.ContentExtractor
	Narrator   ports.Narrator
	Notifier   ports.Notifier
	Exporter   ports.Exporter
	Renderer   *report.Renderer
	Metrics    *metrics.Set
	Options    curation.Options
	DaysBack   int
	Logger     *slog.Logger
}

// Pipeline implements the fetch-curate-rank-report workflow.
type Pipeline struct {
	source     ports.CandidateSource
	siblings   ports.SiblingSearcher
	repository ports.CurationRepository
	extractor  ports.ContentExtractor
	narrator   ports.Narrator
	notifier   ports.Notifier
	exporter   ports.Exporter
	renderer   *report.Renderer
	metrics    *metrics.Set
	opts       curation.Options
	classifier *curation.Classifier
	scorer     *relevance.Scorer
	daysBack   int
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	classifier := curation.NewClassifier(deps.Options)
	renderer := deps.Renderer
	if renderer == nil {
		renderer = report.NewRenderer("")
	}
	daysBack := deps.DaysBack
	if daysBack <= 0 {
		daysBack = 14
	}
	return &Pipeline{
		source:     deps.Source,
		siblings:   deps.Siblings,
		repository: deps.Repository,
		extractor:  deps.Extractor,
		narrator:   deps.Narrator,
		notifier:   deps.Notifier,
		exporter:   deps.Exporter,
		renderer:   renderer,
		metrics:    deps.Metrics,
		opts:       deps.Options,
		classifier: classifier,
		scorer:     relevance.NewScorer(classifier),
		daysBack:   daysBack,
		logger:     deps.Logger,
	}
}

// ProcessRun executes one full report run triggered at the given time.
func (p *Pipeline) ProcessRun(ctx context.Context, trigger time.Time) error {
	if p.source == nil {
		return nil
	}
	started := time.Now()

	raw, err := p.source.FetchCandidates(ctx)
	if err != nil {
		return fmt.Errorf("fetch candidates: %w", err)
	}
	if len(raw) == 0 {
		p.info("no candidates fetched, skipping run")
		return nil
	}

	for i := range raw {
		raw[i].EditorialScore = p.scorer.Score(raw[i])
	}

	var (
		totalStats domain.CurationStats
		sections   []report.CategorySection
		allGroups  []domain.ArticleGroup
	)
	cache := curation.NewImproveCache()

	for _, category := range categoriesInOrder(raw) {
		candidates := byCategory(raw, category)

		kept, stats := curation.Filter(candidates, p.classifier, p.opts)
		improved := p.improveWeakURLs(ctx, kept, cache)
		stats.Improved = improved

		groups := curation.Rank(curation.Group(kept, p.opts), p.opts)

		groups, skipped, err := p.dropAlreadyReported(ctx, groups)
		if err != nil {
			return fmt.Errorf("category %s: %w", category, err)
		}

		stats.Kept = len(groups)
		totalStats.Add(stats)
		allGroups = append(allGroups, groups...)

		p.info("category curated", "category", category,
			"input", stats.Input, "kept", stats.Kept,
			"duplicates", stats.DroppedDuplicate, "improved", improved, "already_reported", skipped)

		sections = append(sections, p.buildSection(ctx, category, groups))
	}

	p.metrics.ObserveStats(totalStats)

	generatedAt := trigger
	dateRange := fmt.Sprintf("%s to %s",
		generatedAt.AddDate(0, 0, -p.daysBack).Format("2006-01-02"),
		generatedAt.Format("2006-01-02"))

	rendered := p.renderer.Render(sections, totalStats, generatedAt, dateRange)

	run := domain.ReportRun{
		ID:          uuid.NewString(),
		GeneratedAt: generatedAt,
		DateRange:   dateRange,
		Groups:      allGroups,
		Stats:       totalStats,
	}

	if p.exporter != nil {
		path, err := p.exporter.Export(rendered, generatedAt)
		if err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		run.ExportPath = path
	}

	if p.repository != nil {
		if err := p.repository.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishReport(ctx, rendered); err != nil {
			return fmt.Errorf("publish report: %w", err)
		}
	}

	if p.metrics != nil {
		p.metrics.GroupsRanked.Add(float64(len(allGroups)))
		p.metrics.ReportsGenerated.Inc()
		p.metrics.RunDuration.Observe(time.Since(started).Seconds())
	}

	p.info("run complete", "run_id", run.ID, "groups", len(allGroups), "export", run.ExportPath)
	return nil
}

// improveWeakURLs tries to replace domain-only URLs with article URLs
// from sibling coverage on the same source. Results are memoized per
// run so repeated weak URLs trigger one search each.
func (p *Pipeline) improveWeakURLs(ctx context.Context, kept []domain.ArticleCandidate, cache *curation.ImproveCache) int {
	if p.siblings == nil {
		return 0
	}

	improved := 0
	for i := range kept {
		cand := kept[i]
		if cand.URLQuality != domain.QualityDomainOnly && cand.URLQuality != domain.QualityPoor {
			continue
		}

		if repaired, ok := cache.Lookup(cand.URL); ok {
			kept[i].URL = repaired
			kept[i].URLQuality = domain.QualityGood
			improved++
			continue
		}

		pool, err := p.siblings.FindAlternates(ctx, cand.Title, cand.SourceDomain)
		if err != nil {
			p.warn("sibling search failed", "domain", cand.SourceDomain, "err", err)
			continue
		}
		for j := range pool {
			pool[j].URLQuality = p.classifier.Classify(pool[j].URL)
		}

		repaired, ok := curation.Improve(cand, pool, p.opts)
		if !ok {
			continue
		}
		cache.Store(cand.URL, repaired.URL)
		kept[i] = repaired
		improved++
	}
	return improved
}

// dropAlreadyReported removes groups whose representative URL appeared
// in a previous run.
func (p *Pipeline) dropAlreadyReported(ctx context.Context, groups []domain.ArticleGroup) ([]domain.ArticleGroup, int, error) {
	if p.repository == nil || len(groups) == 0 {
		return groups, 0, nil
	}

	urls := make([]string, len(groups))
	for i, group := range groups {
		urls[i] = group.URL
	}

	seen, err := p.repository.AlreadyReported(ctx, urls)
	if err != nil {
		return nil, 0, fmt.Errorf("load reported: %w", err)
	}

	fresh := groups[:0]
	skipped := 0
	for _, group := range groups {
		if seen[group.URL] {
			skipped++
			continue
		}
		fresh = append(fresh, group)
	}
	return fresh, skipped, nil
}

func (p *Pipeline) buildSection(ctx context.Context, category string, groups []domain.ArticleGroup) report.CategorySection {
	section := report.CategorySection{
		Name:   category,
		Groups: groups,
	}

	if p.narrator != nil && len(groups) > 0 {
		narrative, err := p.narrator.Narrate(ctx, category, groups)
		if err != nil {
			p.warn("narration failed", "category", category, "err", err)
		} else {
			section.Narrative = narrative
		}
	}

	if p.extractor != nil {
		section.Contents = map[string]domain.ArticleContent{}
		for i, group := range groups {
			if i >= extractTop {
				break
			}
			content, err := p.extractor.Extract(ctx, group.URL)
			if err != nil {
				p.warn("content extraction failed", "url", group.URL, "err", err)
				continue
			}
			section.Contents[group.URL] = content
		}
	}

	return section
}

// categoriesInOrder returns distinct categories in first-seen order so
// report sections track the configured category order.
func categoriesInOrder(candidates []domain.ArticleCandidate) []string {
	seen := map[string]bool{}
	var order []string
	for _, cand := range candidates {
		if !seen[cand.Category] {
			seen[cand.Category] = true
			order = append(order, cand.Category)
		}
	}
	return order
}

func byCategory(candidates []domain.ArticleCandidate, category string) []domain.ArticleCandidate {
	var matched []domain.ArticleCandidate
	for _, cand := range candidates {
		if cand.Category == category {
			matched = append(matched, cand)
		}
	}
	return matched
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
