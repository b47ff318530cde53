// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/idea-engine/pkg/types"
)

const sampleArxivXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2401.01234v1</id>
    <title>Cost-Effectiveness of Malaria Chemoprevention</title>
    <summary>We estimate the cost per DALY averted of seasonal chemoprevention.</summary>
    <published>2024-01-05T12:00:00Z</published>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2312.09876v2</id>
    <title>Modeling Lead Exposure in LMICs</title>
    <summary>A model of blood lead levels and income effects.</summary>
    <published>2023-12-20T09:30:00Z</published>
  </entry>
</feed>`

func TestArxivConnectorFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sortBy"); got != "submittedDate" {
			t.Errorf("sortBy = %q, want submittedDate", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, sampleArxivXML)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	c := &ArxivConnector{Client: ts.Client()}
	docs, err := c.Fetch(context.Background(), "malaria", 10, testCfg())
	if err != nil {
		t.Fatalf("ArxivConnector.Fetch: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}

	d := docs[0]
	if d.Source != "arXiv" {
		t.Errorf("Source = %q, want %q", d.Source, "arXiv")
	}
	if d.Title != "Cost-Effectiveness of Malaria Chemoprevention" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.URL != "http://arxiv.org/abs/2401.01234v1" {
		t.Errorf("URL = %q", d.URL)
	}
	if d.Published != "2024-01-05" {
		t.Errorf("Published = %q, want 2024-01-05", d.Published)
	}
	if d.Type != types.DocArxiv {
		t.Errorf("Type = %q, want %q", d.Type, types.DocArxiv)
	}
}

func TestArxivConnectorHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	c := &ArxivConnector{Client: ts.Client()}
	if _, err := c.Fetch(context.Background(), "malaria", 10, testCfg()); err == nil {
		t.Error("expected error on HTTP 503")
	}
}

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "malaria", "all:malaria"},
		{"multi word", "lead exposure", "all:lead+exposure"},
		{"comma topics", "malaria, animal welfare", "all:malaria+OR+all:animal+welfare"},
		{"empty", "", ""},
		{"commas only", " , ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildArxivQuery(tt.query); got != tt.want {
				t.Errorf("buildArxivQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestArxivConnectorEmptyQuery(t *testing.T) {
	c := &ArxivConnector{}
	if _, err := c.Fetch(context.Background(), "", 10, testCfg()); err == nil {
		t.Error("expected error on empty query")
	}
}
