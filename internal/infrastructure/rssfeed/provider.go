package rssfeed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"TrendsReporter/internal/config"
	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/search"
)

// Provider sources candidates from configured RSS/Atom feeds. Feeds
// are grouped by category; a category request pulls every feed that
// belongs to it.
type Provider struct {
	feeds  []config.FeedConfig
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ search.Provider = (*Provider)(nil)

// NewProvider builds the feed provider for the configured feed list.
func NewProvider(feeds []config.FeedConfig, log *slog.Logger) *Provider {
	parser := gofeed.NewParser()
	parser.UserAgent = "TrendsReporter/1.0"
	return &Provider{feeds: feeds, parser: parser, logger: log}
}

// Name identifies the provider in the registry.
func (p *Provider) Name() string { return "rss" }

// Search fetches every feed assigned to the requested category. A
// single failing feed does not abort the whole category.
func (p *Provider) Search(ctx context.Context, req search.Request) ([]domain.ArticleCandidate, error) {
	var aggregated []domain.ArticleCandidate
	matched := 0
	for _, feed := range p.feeds {
		if feed.Category != req.Category {
			continue
		}
		matched++

		parsed, err := p.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			p.warn("feed fetch failed", "feed", feed.Name, "err", err)
			continue
		}

		for _, item := range parsed.Items {
			cand, ok := toCandidate(item, req.Category)
			if !ok {
				continue
			}
			aggregated = append(aggregated, cand)
			if req.MaxResults > 0 && len(aggregated) >= req.MaxResults {
				return aggregated, nil
			}
		}
	}

	if matched == 0 {
		return nil, fmt.Errorf("no feeds configured for category %s", req.Category)
	}
	return aggregated, nil
}

func toCandidate(item *gofeed.Item, category string) (domain.ArticleCandidate, bool) {
	if item == nil {
		return domain.ArticleCandidate{}, false
	}
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return domain.ArticleCandidate{}, false
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	return domain.ArticleCandidate{
		Title:        title,
		URL:          link,
		SourceDomain: hostOf(link),
		Snippet:      strings.TrimSpace(item.Description),
		PublishedAt:  published,
		Category:     category,
	}, true
}

func hostOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

func (p *Provider) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
