// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivConnector queries the arXiv API, most recent submissions first.
type ArxivConnector struct {
	Client *http.Client
}

// Name returns the connector identifier.
func (c *ArxivConnector) Name() string { return "arxiv" }

// Fetch queries the arXiv API and maps Atom entries to Documents.
func (c *ArxivConnector) Fetch(ctx context.Context, query string, limit int, cfg types.IngestConfig) ([]types.Document, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if limit <= 0 {
		limit = 10
	}

	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, q, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client(c.Client, cfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var docs []types.Document
	for _, entry := range feed.Entries {
		published := ""
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			published = t.Format("2006-01-02")
		}
		docs = append(docs, types.Document{
			Source:    "arXiv",
			Title:     strings.TrimSpace(entry.Title),
			URL:       strings.TrimSpace(entry.ID),
			Summary:   strings.TrimSpace(entry.Summary),
			Published: published,
			Type:      types.DocArxiv,
		})
	}
	return docs, nil
}

// buildArxivQuery constructs the search_query parameter from the free-text
// topic string. Comma-separated topics become OR-joined term groups.
func buildArxivQuery(query string) string {
	var parts []string
	for _, topic := range strings.Split(query, ",") {
		terms := strings.Fields(topic)
		if len(terms) == 0 {
			continue
		}
		parts = append(parts, "all:"+strings.Join(terms, "+"))
	}
	return strings.Join(parts, "+OR+")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
}
