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

const sampleGHOJSON = `{
  "value": [
    {"IndicatorCode": "MALARIA_EST_DEATHS", "IndicatorName": "Estimated malaria deaths"},
    {"IndicatorCode": "MALARIA_EST_CASES", "IndicatorName": "Estimated malaria cases"},
    {"IndicatorCode": "TB_1", "IndicatorName": "Tuberculosis incidence"},
    {"IndicatorCode": "WHS4_100", "IndicatorName": "Measles immunization coverage"}
  ]
}`

func TestGHOConnectorFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Indicator" {
			t.Errorf("path = %q, want /Indicator", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleGHOJSON)
	}))
	defer ts.Close()

	old := ghoAPIBase
	ghoAPIBase = ts.URL
	defer func() { ghoAPIBase = old }()

	c := &GHOConnector{Client: ts.Client()}
	docs, err := c.Fetch(context.Background(), "malaria", 10, testCfg())
	if err != nil {
		t.Fatalf("GHOConnector.Fetch: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2 malaria indicators", len(docs))
	}

	d := docs[0]
	if d.Source != "WHO GHO" {
		t.Errorf("Source = %q, want WHO GHO", d.Source)
	}
	if d.Title != "Estimated malaria deaths" {
		t.Errorf("Title = %q", d.Title)
	}
	if d.Summary != "Indicator code: MALARIA_EST_DEATHS" {
		t.Errorf("Summary = %q", d.Summary)
	}
	if d.Type != types.DocWHOGHO {
		t.Errorf("Type = %q, want %q", d.Type, types.DocWHOGHO)
	}
}

func TestGHOConnectorMultipleTopics(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, sampleGHOJSON)
	}))
	defer ts.Close()

	old := ghoAPIBase
	ghoAPIBase = ts.URL
	defer func() { ghoAPIBase = old }()

	c := &GHOConnector{Client: ts.Client()}
	docs, err := c.Fetch(context.Background(), "malaria, tuberculosis", 10, testCfg())
	if err != nil {
		t.Fatalf("GHOConnector.Fetch: %v", err)
	}
	// 2 malaria matches + 1 tuberculosis match.
	if len(docs) != 3 {
		t.Errorf("len(docs) = %d, want 3", len(docs))
	}
}

func TestMatchIndicators(t *testing.T) {
	indicators := []ghoIndicator{
		{Code: "MALARIA_1", Title: "Malaria deaths"},
		{Code: "MALARIA_2", Title: "Malaria cases"},
		{Code: "TB_1", Title: "TB incidence"},
	}

	tests := []struct {
		name    string
		keyword string
		limit   int
		want    int
	}{
		{"case insensitive title match", "malaria", 10, 2},
		{"code match", "tb_1", 10, 1},
		{"limit respected", "malaria", 1, 1},
		{"no match", "measles", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchIndicators(indicators, tt.keyword, tt.limit)
			if len(got) != tt.want {
				t.Errorf("len(matchIndicators) = %d, want %d", len(got), tt.want)
			}
		})
	}
}
