package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// --- mock connector ---

type mockConnector struct {
	name string
	docs []types.Document
	err  error
}

func (m *mockConnector) Name() string { return m.name }

func (m *mockConnector) Fetch(_ context.Context, _ string, _ int, _ types.IngestConfig) ([]types.Document, error) {
	return m.docs, m.err
}

func testCfg() types.IngestConfig {
	return types.IngestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxItemsPerSource: 10,
	}
}

// --- Connector selection ---

func TestConnectorsEnabledSet(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.IngestConfig
		want []string
	}{
		{"none", types.IngestConfig{}, nil},
		{"rss only", types.IngestConfig{EnableRSS: true}, []string{"rss"}},
		{
			"defaults",
			types.IngestConfig{EnableRSS: true, EnableArxiv: true, EnableBiorxiv: true, EnableMedrxiv: true},
			[]string{"rss", "arxiv", "biorxiv", "medrxiv"},
		},
		{
			"all",
			types.IngestConfig{
				EnableRSS: true, EnableArxiv: true, EnableBiorxiv: true,
				EnableMedrxiv: true, EnableWHOGHO: true, EnableCrossref: true, EnableGBD: true,
			},
			[]string{"rss", "arxiv", "biorxiv", "medrxiv", "who_gho", "crossref", "ghdx_gbd"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := Connectors(tt.cfg)
			var got []string
			for _, c := range cs {
				got = append(got, c.Name())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("connectors = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("connectors[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// --- Aggregation ---

func TestAggregateMergesAllConnectors(t *testing.T) {
	c1 := &mockConnector{name: "a", docs: []types.Document{
		{Source: "a", Title: "Doc A1"},
		{Source: "a", Title: "Doc A2"},
	}}
	c2 := &mockConnector{name: "b", docs: []types.Document{
		{Source: "b", Title: "Doc B1"},
	}}

	var buf bytes.Buffer
	out := Aggregate(context.Background(), "test", []Connector{c1, c2}, testCfg(), &buf)

	if len(out.Documents) != 3 {
		t.Errorf("len(Documents) = %d, want 3", len(out.Documents))
	}
	if len(out.SourceErrors) != 0 {
		t.Errorf("SourceErrors = %v, want none", out.SourceErrors)
	}
}

func TestAggregateContinuesAfterConnectorFailure(t *testing.T) {
	failing := &mockConnector{name: "failing", err: fmt.Errorf("network error")}
	working := &mockConnector{name: "working", docs: []types.Document{
		{Source: "working", Title: "Doc 1"},
	}}

	var buf bytes.Buffer
	out := Aggregate(context.Background(), "test", []Connector{failing, working}, testCfg(), &buf)

	if len(out.Documents) != 1 {
		t.Errorf("len(Documents) = %d, want 1", len(out.Documents))
	}
	if len(out.SourceErrors) != 1 {
		t.Fatalf("len(SourceErrors) = %d, want 1", len(out.SourceErrors))
	}
	if !strings.Contains(out.SourceErrors[0], "failing") {
		t.Errorf("SourceErrors[0] = %q, should name the failed connector", out.SourceErrors[0])
	}
	if !strings.Contains(buf.String(), "warning:") {
		t.Error("output should contain warning about failed connector")
	}
}

func TestAggregateAllConnectorsFail(t *testing.T) {
	c1 := &mockConnector{name: "a", err: fmt.Errorf("down")}
	c2 := &mockConnector{name: "b", err: fmt.Errorf("also down")}

	var buf bytes.Buffer
	out := Aggregate(context.Background(), "test", []Connector{c1, c2}, testCfg(), &buf)

	if len(out.Documents) != 0 {
		t.Errorf("len(Documents) = %d, want 0", len(out.Documents))
	}
	if len(out.SourceErrors) != 2 {
		t.Errorf("len(SourceErrors) = %d, want 2", len(out.SourceErrors))
	}
}

func TestAggregateNoConnectors(t *testing.T) {
	var buf bytes.Buffer
	out := Aggregate(context.Background(), "test", nil, testCfg(), &buf)
	if len(out.Documents) != 0 || len(out.SourceErrors) != 0 {
		t.Errorf("empty connector set should yield empty output, got %+v", out)
	}
}

// --- Topic splitting ---

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"malaria", []string{"malaria"}},
		{"malaria, tuberculosis", []string{"malaria", "tuberculosis"}},
		{"  a ,, b  ", []string{"a", "b"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitTopics(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitTopics(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitTopics(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
