// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest fetches documents from public research and content feeds
// and merges them into one list for a synthesis run.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// Connector fetches documents from a single source. Each connector (RSS,
// arXiv, bioRxiv, Crossref, WHO GHO, GHDx) implements this interface per
// the Strategy pattern.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int, cfg types.IngestConfig) ([]types.Document, error)
}

// Output holds the aggregated documents and per-source diagnostics. A
// connector that failed contributes zero documents and one SourceErrors
// entry; aggregation itself never fails.
type Output struct {
	Documents    []types.Document
	SourceErrors []string
}

// Connectors returns the connector set enabled by cfg, in display order.
func Connectors(cfg types.IngestConfig) []Connector {
	var cs []Connector
	if cfg.EnableRSS {
		cs = append(cs, &RSSConnector{})
	}
	if cfg.EnableArxiv {
		cs = append(cs, &ArxivConnector{})
	}
	if cfg.EnableBiorxiv {
		cs = append(cs, &BioConnector{Server: "biorxiv"})
	}
	if cfg.EnableMedrxiv {
		cs = append(cs, &BioConnector{Server: "medrxiv"})
	}
	if cfg.EnableWHOGHO {
		cs = append(cs, &GHOConnector{})
	}
	if cfg.EnableCrossref {
		cs = append(cs, &CrossrefConnector{})
	}
	if cfg.EnableGBD {
		cs = append(cs, &GBDConnector{})
	}
	return cs
}

// Aggregate fans the query out to all connectors concurrently and
// concatenates whatever each returns. A failing connector is isolated: its
// error is recorded in Output.SourceErrors and warned on w, and the other
// connectors proceed unaffected. No ordering between connectors is part of
// the contract; ranking is imposed later by the context builder.
func Aggregate(ctx context.Context, query string, connectors []Connector, cfg types.IngestConfig, w io.Writer) Output {
	type fetchResult struct {
		docs []types.Document
		err  error
		name string
	}

	ch := make(chan fetchResult, len(connectors))
	var wg sync.WaitGroup

	for _, c := range connectors {
		wg.Add(1)
		go func(c Connector) {
			defer wg.Done()
			docs, err := c.Fetch(ctx, query, cfg.MaxItemsPerSource, cfg)
			ch <- fetchResult{docs: docs, err: err, name: c.Name()}
		}(c)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out Output
	for fr := range ch {
		if fr.err != nil {
			msg := fmt.Sprintf("%s: %v", fr.name, fr.err)
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: connector %s failed: %v\n", fr.name, fr.err)
			continue
		}
		out.Documents = append(out.Documents, fr.docs...)
	}
	return out
}

// client returns the connector's injected HTTP client or one built from the
// configured timeout.
func client(c *http.Client, cfg types.IngestConfig) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: cfg.Timeout}
}
