package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articlePage = `<!doctype html>
<html>
<head>
  <title>  GPT-5 is here  </title>
  <meta name="description" content="OpenAI ships its new flagship model.">
  <script>console.log("tracking");</script>
  <style>body { color: red; }</style>
</head>
<body>
  <h1>GPT-5 is here</h1>
  <p>The   model   improves    reasoning.</p>
  <noscript>enable js</noscript>
</body>
</html>`

func TestExtractDistillsPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "TrendsReporter/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	content, err := NewExtractor().Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if content.Title != "GPT-5 is here" {
		t.Fatalf("unexpected title %q", content.Title)
	}
	if content.Description != "OpenAI ships its new flagship model." {
		t.Fatalf("unexpected description %q", content.Description)
	}
	if strings.Contains(content.Text, "tracking") || strings.Contains(content.Text, "color: red") {
		t.Fatalf("script/style text leaked into body: %q", content.Text)
	}
	if strings.Contains(content.Text, "enable js") {
		t.Fatalf("noscript text leaked into body: %q", content.Text)
	}
	if !strings.Contains(content.Text, "The model improves reasoning.") {
		t.Fatalf("expected collapsed whitespace in body text, got %q", content.Text)
	}
	if content.Length != len([]rune(content.Text)) {
		t.Fatalf("length mismatch: %d vs %d", content.Length, len([]rune(content.Text)))
	}
}

func TestExtractTruncatesLongBody(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 1000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + long + "</body></html>"))
	}))
	defer server.Close()

	content, err := NewExtractor().Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if content.Length > 2000 {
		t.Fatalf("expected truncation at 2000 runes, got %d", content.Length)
	}
}

func TestExtractNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewExtractor().Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error on 404 response")
	}
}
