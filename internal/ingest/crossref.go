// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/idea-engine/internal/httputil"
	"github.com/pdiddy/idea-engine/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

const crossrefSelect = "title,DOI,URL,author,issued,type"

// CrossrefConnector queries the Crossref works API.
type CrossrefConnector struct {
	Client *http.Client
}

// Name returns the connector identifier.
func (c *CrossrefConnector) Name() string { return "crossref" }

// Fetch queries Crossref and maps work items to Documents. Crossref has no
// abstracts in the select set, so Summary stays empty and Published carries
// the issued year only.
func (c *CrossrefConnector) Fetch(ctx context.Context, query string, limit int, cfg types.IngestConfig) ([]types.Document, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"rows":   {strconv.Itoa(limit)},
		"select": {crossrefSelect},
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", crossrefUserAgent(cfg))

	resp, err := httputil.DoWithRetry(ctx, client(c.Client, cfg), req, 0)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	var docs []types.Document
	for _, item := range cr.Message.Items {
		title := ""
		if len(item.Title) > 0 {
			title = item.Title[0]
		}
		workURL := item.URL
		if workURL == "" && item.DOI != "" {
			workURL = "https://doi.org/" + item.DOI
		}
		docs = append(docs, types.Document{
			Source:    "Crossref",
			Title:     title,
			URL:       workURL,
			Summary:   "",
			Published: issuedYear(item.Issued),
			Type:      types.DocCrossref,
		})
	}
	return docs, nil
}

// crossrefUserAgent appends the polite-pool mailto when an email is configured.
func crossrefUserAgent(cfg types.IngestConfig) string {
	if cfg.CrossrefEmail != "" {
		return fmt.Sprintf("%s (mailto:%s)", cfg.UserAgent, cfg.CrossrefEmail)
	}
	return cfg.UserAgent
}

// issuedYear extracts the first year from a Crossref date-parts array.
func issuedYear(issued crossrefIssued) string {
	if len(issued.DateParts) > 0 && len(issued.DateParts[0]) > 0 {
		return strconv.Itoa(issued.DateParts[0][0])
	}
	return ""
}

// Crossref works API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	Title  []string       `json:"title"`
	DOI    string         `json:"DOI"`
	URL    string         `json:"URL"`
	Issued crossrefIssued `json:"issued"`
}

type crossrefIssued struct {
	DateParts [][]int `json:"date-parts"`
}
