package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/ports"
	"TrendsReporter/internal/search"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Client queries the Google Custom Search JSON API.
type Client struct {
	baseURL         string
	apiKey          string
	engineID        string
	resultsPerQuery int
	daysBack        int
	http            *http.Client
	now             func() time.Time
}

var _ search.Provider = (*Client)(nil)
var _ ports.SiblingSearcher = (*Client)(nil)

// NewClient creates a reusable Custom Search client.
func NewClient(baseURL, apiKey, engineID string, resultsPerQuery, daysBack int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if resultsPerQuery <= 0 || resultsPerQuery > 10 {
		resultsPerQuery = 10
	}
	return &Client{
		baseURL:         baseURL,
		apiKey:          apiKey,
		engineID:        engineID,
		resultsPerQuery: resultsPerQuery,
		daysBack:        daysBack,
		http:            &http.Client{Timeout: 15 * time.Second},
		now:             time.Now,
	}
}

// Name identifies the provider in the registry.
func (c *Client) Name() string { return "googlecse" }

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
	Pagemap     struct {
		Metatags []map[string]string `json:"metatags"`
	} `json:"pagemap"`
}

// Search runs all category queries and returns candidates in API order.
func (c *Client) Search(ctx context.Context, req search.Request) ([]domain.ArticleCandidate, error) {
	var aggregated []domain.ArticleCandidate
	for _, query := range req.Queries {
		items, err := c.query(ctx, c.restrictToRecent(query))
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", query, err)
		}
		for _, item := range items {
			cand, ok := c.toCandidate(item, req.Category)
			if !ok {
				continue
			}
			aggregated = append(aggregated, cand)
			if req.MaxResults > 0 && len(aggregated) >= req.MaxResults {
				return aggregated, nil
			}
		}
	}
	return aggregated, nil
}

// FindAlternates re-queries the engine for sibling coverage of an
// already-seen story, scoped to its source domain.
func (c *Client) FindAlternates(ctx context.Context, title, sourceDomain string) ([]domain.ArticleCandidate, error) {
	query := fmt.Sprintf("%q site:%s", title, sourceDomain)
	items, err := c.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sibling query for %s: %w", sourceDomain, err)
	}

	candidates := make([]domain.ArticleCandidate, 0, len(items))
	for _, item := range items {
		if cand, ok := c.toCandidate(item, ""); ok {
			candidates = append(candidates, cand)
		}
	}
	return candidates, nil
}

func (c *Client) restrictToRecent(query string) string {
	if c.daysBack <= 0 {
		return query
	}
	cutoff := c.now().AddDate(0, 0, -c.daysBack)
	return query + " after:" + cutoff.Format("2006-01-02")
}

func (c *Client) query(ctx context.Context, q string) ([]searchItem, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", q)
	params.Set("num", strconv.Itoa(c.resultsPerQuery))
	params.Set("sort", "date")
	params.Set("gl", "us")
	params.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("custom search responded with status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Items, nil
}

func (c *Client) toCandidate(item searchItem, category string) (domain.ArticleCandidate, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return domain.ArticleCandidate{}, false
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return domain.ArticleCandidate{}, false
	}

	return domain.ArticleCandidate{
		Title:        title,
		URL:          link,
		SourceDomain: normalizeHost(item.DisplayLink, link),
		Snippet:      strings.TrimSpace(item.Snippet),
		PublishedAt:  publishedAt(item),
		Category:     category,
	}, true
}

// publishedAt digs through pagemap metatags for a publication date.
// The keys mirror what news CMSes actually emit.
func publishedAt(item searchItem) time.Time {
	keys := []string{"article:published_time", "datepublished", "publishdate", "date"}
	for _, tags := range item.Pagemap.Metatags {
		for _, key := range keys {
			value, ok := tags[key]
			if !ok || value == "" {
				continue
			}
			for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
				if ts, err := time.Parse(layout, value); err == nil {
					return ts
				}
			}
		}
	}
	return time.Time{}
}

func normalizeHost(displayLink, link string) string {
	host := strings.ToLower(strings.TrimSpace(displayLink))
	if host == "" {
		if parsed, err := url.Parse(link); err == nil {
			host = strings.ToLower(parsed.Hostname())
		}
	}
	return strings.TrimPrefix(host, "www.")
}
