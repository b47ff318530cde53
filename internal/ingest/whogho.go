// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/idea-engine/internal/httputil"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// ghoAPIBase is the WHO Global Health Observatory OData endpoint. Declared
// as a var so tests can substitute an httptest server.
var ghoAPIBase = "https://ghoapi.azureedge.net/ghoapi/api"

// GHOConnector lists WHO GHO indicators and filters them by keyword. The
// API has no server-side text search worth using, so the full indicator
// list is fetched and matched locally against code and title.
type GHOConnector struct {
	Client *http.Client
}

// Name returns the connector identifier.
func (c *GHOConnector) Name() string { return "who_gho" }

// Fetch filters the indicator list by each comma-separated topic keyword
// and maps matches to Documents.
func (c *GHOConnector) Fetch(ctx context.Context, query string, limit int, cfg types.IngestConfig) ([]types.Document, error) {
	if limit <= 0 {
		limit = 10
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ghoAPIBase+"/Indicator", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client(c.Client, cfg), req, 0)
	if err != nil {
		return nil, fmt.Errorf("GHO API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GHO API returned HTTP %d", resp.StatusCode)
	}

	var gr ghoResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing GHO response: %w", err)
	}

	var docs []types.Document
	for _, kw := range splitTopics(query) {
		docs = append(docs, matchIndicators(gr.Value, kw, limit)...)
	}
	return docs, nil
}

// matchIndicators returns up to limit indicators whose code or title
// contains the keyword, case-insensitively.
func matchIndicators(indicators []ghoIndicator, keyword string, limit int) []types.Document {
	kw := strings.ToLower(keyword)
	var docs []types.Document
	for _, ind := range indicators {
		if len(docs) >= limit {
			break
		}
		if !strings.Contains(strings.ToLower(ind.Code), kw) &&
			!strings.Contains(strings.ToLower(ind.Title), kw) {
			continue
		}
		docs = append(docs, types.Document{
			Source:    "WHO GHO",
			Title:     ind.Title,
			URL:       fmt.Sprintf("%s/Indicator?$filter=Code%%20eq%%20'%s'", ghoAPIBase, url.QueryEscape(ind.Code)),
			Summary:   "Indicator code: " + ind.Code,
			Published: "",
			Type:      types.DocWHOGHO,
		})
	}
	return docs
}

// splitTopics splits a comma-separated topic string into trimmed, non-empty
// keywords.
func splitTopics(query string) []string {
	var topics []string
	for _, t := range strings.Split(query, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// WHO GHO OData JSON structures.
type ghoResponse struct {
	Value []ghoIndicator `json:"value"`
}

type ghoIndicator struct {
	Code  string `json:"IndicatorCode"`
	Title string `json:"IndicatorName"`
}
