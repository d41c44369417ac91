package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"TrendsReporter/internal/domain"
	"TrendsReporter/internal/ports"
)

const (
	userAgent   = "TrendsReporter/1.0"
	maxTextSize = 2000
)

// Extractor pulls readable article content from a page for the
// report's context snippets.
type Extractor struct {
	http *http.Client
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor creates an extractor with a bounded HTTP client.
func NewExtractor() *Extractor {
	return &Extractor{
		http: &http.Client{Timeout: 20 * time.Second},
	}
}

// Extract downloads the page and distills title, description and a
// truncated text body.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (domain.ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.ArticleContent{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.http.Do(req)
	if err != nil {
		return domain.ArticleContent{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return domain.ArticleContent{}, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.ArticleContent{}, fmt.Errorf("parse html: %w", err)
	}

	return distill(doc), nil
}

func distill(doc *goquery.Document) domain.ArticleContent {
	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())

	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	if description == "" {
		description, _ = doc.Find(`meta[property="og:description"]`).First().Attr("content")
	}

	text := collapseWhitespace(doc.Find("body").Text())
	if runes := []rune(text); len(runes) > maxTextSize {
		text = string(runes[:maxTextSize])
	}

	return domain.ArticleContent{
		Title:       title,
		Description: strings.TrimSpace(description),
		Text:        text,
		Length:      len([]rune(text)),
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
