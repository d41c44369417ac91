package report

import (
	"fmt"
	"strings"
	"time"

	"TrendsReporter/internal/domain"
)

// CategorySection bundles everything the renderer needs for one
// category block: the ranked groups, an optional narrative and any
// extracted page content keyed by URL.
type CategorySection struct {
	Name      string
	Narrative string
	Groups    []domain.ArticleGroup
	Contents  map[string]domain.ArticleContent
}

// Renderer produces the markdown report document.
type Renderer struct {
	title string
}

// NewRenderer sets the document title.
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Recent AI Trends and Advancements"
	}
	return &Renderer{title: title}
}

// Render assembles the full report: header, executive summary,
// per-category sections with source links, and a curation footer.
func (r *Renderer) Render(sections []CategorySection, stats domain.CurationStats, generatedAt time.Time, dateRange string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.title)
	fmt.Fprintf(&b, "*Generated: %s*\n", generatedAt.Format("2006-01-02 15:04 MST"))
	if dateRange != "" {
		fmt.Fprintf(&b, "*Coverage: %s*\n", dateRange)
	}
	b.WriteString("\n")

	r.renderSummary(&b, sections)

	for _, section := range sections {
		r.renderSection(&b, section)
	}

	r.renderFooter(&b, stats)

	return b.String()
}

func (r *Renderer) renderSummary(b *strings.Builder, sections []CategorySection) {
	b.WriteString("## Executive Summary\n\n")
	empty := true
	for _, section := range sections {
		if len(section.Groups) == 0 {
			continue
		}
		empty = false
		top := section.Groups[0]
		fmt.Fprintf(b, "- **%s**: %s", titleCase(section.Name), top.Title)
		if top.CrossSourceCount > 1 {
			fmt.Fprintf(b, " (covered by %d sources)", top.CrossSourceCount)
		}
		b.WriteString("\n")
	}
	if empty {
		b.WriteString("No notable developments were found for this period.\n")
	}
	b.WriteString("\n")
}

func (r *Renderer) renderSection(b *strings.Builder, section CategorySection) {
	fmt.Fprintf(b, "## %s\n\n", titleCase(section.Name))

	if section.Narrative != "" {
		b.WriteString(section.Narrative)
		b.WriteString("\n\n")
	}

	if len(section.Groups) == 0 {
		b.WriteString("No stories made the cut this period.\n\n")
		return
	}

	for _, group := range section.Groups {
		fmt.Fprintf(b, "### %s\n\n", group.Title)
		if group.Snippet != "" {
			fmt.Fprintf(b, "%s\n\n", group.Snippet)
		}
		if content, ok := section.Contents[group.URL]; ok && content.Description != "" {
			fmt.Fprintf(b, "> %s\n\n", content.Description)
		}
		// Source links always carry the exact curated URL.
		fmt.Fprintf(b, "- [%s](%s)\n", group.SourceDomain, group.URL)
		for _, member := range group.Members {
			if member.URL == group.URL || member.URL == "" {
				continue
			}
			fmt.Fprintf(b, "- [%s](%s)\n", member.SourceDomain, member.URL)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) renderFooter(b *strings.Builder, stats domain.CurationStats) {
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "*Curation: %d candidates in, %d kept", stats.Input, stats.Kept)
	if dropped := stats.DroppedNoTitle + stats.DroppedInvalidURL + stats.DroppedDuplicate + stats.DroppedDomainCap; dropped > 0 {
		fmt.Fprintf(b, ", %d dropped (%d duplicates, %d low-quality URLs, %d untitled, %d over domain limit)",
			dropped, stats.DroppedDuplicate, stats.DroppedInvalidURL, stats.DroppedNoTitle, stats.DroppedDomainCap)
	}
	if stats.Improved > 0 {
		fmt.Fprintf(b, ", %d URLs improved", stats.Improved)
	}
	b.WriteString(".*\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
