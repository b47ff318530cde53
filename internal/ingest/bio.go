// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// bioAPIBase is the bioRxiv/medRxiv details endpoint. Declared as a var so
// tests can substitute an httptest server.
var bioAPIBase = "https://api.biorxiv.org/details"

// bioSearchWindow is the date range appended to detail queries. The API
// requires an interval; an open-ended future date keeps it effectively
// unbounded on the right.
const bioSearchWindow = "2023-01-01/3000-01-01"

// BioConnector queries the bioRxiv/medRxiv preprint API.
type BioConnector struct {
	Client *http.Client

	// Server selects the preprint server: "biorxiv" or "medrxiv".
	Server string
}

// Name returns the connector identifier.
func (c *BioConnector) Name() string { return c.Server }

// Fetch queries the preprint API and maps collection items to Documents.
func (c *BioConnector) Fetch(ctx context.Context, query string, limit int, cfg types.IngestConfig) ([]types.Document, error) {
	if c.Server != "biorxiv" && c.Server != "medrxiv" {
		return nil, fmt.Errorf("unknown preprint server %q", c.Server)
	}
	if limit <= 0 {
		limit = 10
	}

	reqURL := fmt.Sprintf("%s/%s/%s/%s", bioAPIBase, c.Server, bioSearchWindow, url.PathEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client(c.Client, cfg).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API request: %w", c.Server, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s API returned HTTP %d", c.Server, resp.StatusCode)
	}

	var br bioResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.Server, err)
	}

	docType := types.DocBiorxiv
	if c.Server == "medrxiv" {
		docType = types.DocMedrxiv
	}

	var docs []types.Document
	for _, item := range br.Collection {
		if len(docs) >= limit {
			break
		}
		docs = append(docs, types.Document{
			Source:    c.Server,
			Title:     item.Title,
			URL:       "https://www.biorxiv.org/content/" + item.DOI,
			Summary:   item.Abstract,
			Published: item.Date,
			Type:      docType,
		})
	}
	return docs, nil
}

// bioRxiv details API JSON structures.
type bioResponse struct {
	Collection []bioItem `json:"collection"`
}

type bioItem struct {
	Title    string `json:"title"`
	DOI      string `json:"doi"`
	Abstract string `json:"abstract"`
	Date     string `json:"date"`
}
