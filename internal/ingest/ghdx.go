// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// ghdxDownloadBase is the GHDx GBD results download endpoint. Declared as a
// var so tests can substitute an httptest server.
var ghdxDownloadBase = "https://ghdx.healthdata.org/gbd-results-tool/download.csv"

// gbdCandidateYears lists GBD release years to probe, newest first.
var gbdCandidateYears = []int{2021, 2019}

// minCSVBytes is the crude sanity threshold separating a real CSV from an
// error page.
const minCSVBytes = 100

// GBDConnector probes the GHDx results tool for a global all-cause DALYs
// CSV. It yields at most one document: a pointer at the CSV for the newest
// release year that responds.
type GBDConnector struct {
	Client *http.Client
}

// Name returns the connector identifier.
func (c *GBDConnector) Name() string { return "ghdx_gbd" }

// Fetch tries each candidate year and returns a single document for the
// first year whose CSV download responds. The query is unused: the probe
// is fixed to global all-cause DALYs.
func (c *GBDConnector) Fetch(ctx context.Context, _ string, _ int, cfg types.IngestConfig) ([]types.Document, error) {
	var lastErr error
	for _, year := range gbdCandidateYears {
		reqURL, err := gbdDownloadURL(year)
		if err != nil {
			return nil, err
		}

		ok, err := c.probe(ctx, reqURL, cfg)
		if err != nil {
			lastErr = err
			continue
		}
		if !ok {
			continue
		}

		return []types.Document{{
			Source:    "GHDx GBD",
			Title:     fmt.Sprintf("GBD Global DALYs (Number), %d", year),
			URL:       reqURL,
			Summary:   "Global DALYs across all causes, all ages, both sexes (CSV).",
			Published: fmt.Sprintf("%d", year),
			Type:      types.DocGHDxGBD,
		}}, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("no GBD release year responded: %w", lastErr)
	}
	return nil, nil
}

// probe checks that the CSV download responds with a plausible body.
func (c *GBDConnector) probe(ctx context.Context, url string, cfg types.IngestConfig) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client(c.Client, cfg).Do(req)
	if err != nil {
		return false, fmt.Errorf("GHDx download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, minCSVBytes+1))
	if err != nil {
		return false, fmt.Errorf("reading GHDx response: %w", err)
	}
	return len(body) > minCSVBytes, nil
}

// gbdDownloadURL builds the download URL for a release year. The results
// tool expects its selection encoded as base64url JSON in the params query
// parameter.
func gbdDownloadURL(year int) (string, error) {
	params := map[string][]string{
		"measure":  {"DALYs"},
		"metric":   {"Number"},
		"location": {"Global"},
		"age":      {"All Ages"},
		"sex":      {"Both"},
		"cause":    {"All causes"},
		"year":     {fmt.Sprintf("%d", year)},
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encoding GBD params: %w", err)
	}
	enc := base64.URLEncoding.EncodeToString(raw)
	return ghdxDownloadBase + "?params=" + enc, nil
}
