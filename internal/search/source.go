package search

import (
	"context"
	"fmt"
	"log/slog"

	"TrendsReporter/internal/config"
	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/ports"
)

// Source implements CandidateSource by fanning out configured
// categories to their registered providers.
type Source struct {
	registry   *Registry
	categories []config.CategoryConfig
	logger     *slog.Logger
}

var _ ports.CandidateSource = (*Source)(nil)

// NewSource wires the provider registry with config-defined categories.
func NewSource(reg *Registry, categories []config.CategoryConfig, log *slog.Logger) *Source {
	return &Source{
		registry:   reg,
		categories: categories,
		logger:     log,
	}
}

// FetchCandidates iterates over configured categories and executes their
// providers. Candidates keep the order the providers returned them in;
// later stages rely on that order for first-seen deduplication.
func (s *Source) FetchCandidates(ctx context.Context) ([]domain.ArticleCandidate, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("provider registry is not configured")
	}

	s.debug("fetch candidates", "categories", len(s.categories))

	var aggregated []domain.ArticleCandidate
	for _, category := range s.categories {
		s.debug("process category", "category", category.Name, "provider", category.Provider, "queries", len(category.Queries))
		provider, err := s.registry.Resolve(category.Provider)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category.Name, err)
		}

		req := Request{
			Category:   category.Name,
			Queries:    category.Queries,
			MaxResults: category.MaxResults,
		}

		results, err := provider.Search(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("search category %s: %w", category.Name, err)
		}

		for i := range results {
			if results[i].Category == "" {
				results[i].Category = category.Name
			}
		}
		s.debug("category produced candidates", "category", category.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("source done", "total_candidates", len(aggregated))
	return aggregated, nil
}

func (s *Source) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
