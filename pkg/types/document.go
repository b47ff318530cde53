// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the idea-engine pipeline.
package types

// DocType tags the kind of source a document came from.
type DocType string

const (
	DocRSS      DocType = "rss"
	DocArxiv    DocType = "arxiv"
	DocBiorxiv  DocType = "biorxiv"
	DocMedrxiv  DocType = "medrxiv"
	DocWHOGHO   DocType = "who_gho"
	DocGHDxGBD  DocType = "ghdx_gbd"
	DocCrossref DocType = "crossref"
)

// Document is one normalized unit of ingested evidence. Every field is a
// string; connectors use the empty string for absent data so consumers
// never branch on missing keys.
type Document struct {
	// Source is the display name of the origin (feed name, "arXiv", "Crossref").
	Source string `json:"source" yaml:"source"`

	// Title is the document title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL links back to the document.
	URL string `json:"url" yaml:"url"`

	// Summary is free text, possibly empty or truncated.
	Summary string `json:"summary" yaml:"summary"`

	// Published is a free-form date string, possibly empty.
	Published string `json:"published" yaml:"published"`

	// Type is the categorical tag of the origin kind.
	Type DocType `json:"type" yaml:"type"`
}
