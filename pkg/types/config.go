// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "idea-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// IngestConfig holds settings for the ingestion stage.
type IngestConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxItemsPerSource caps how many documents each connector returns (default 10).
	MaxItemsPerSource int `json:"max_items_per_source" yaml:"max_items_per_source"`

	// EnableRSS controls whether the RSS feed connector is used.
	EnableRSS bool `json:"enable_rss" yaml:"enable_rss"`

	// EnableArxiv controls whether the arXiv connector is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// EnableBiorxiv controls whether the bioRxiv connector is used.
	EnableBiorxiv bool `json:"enable_biorxiv" yaml:"enable_biorxiv"`

	// EnableMedrxiv controls whether the medRxiv connector is used.
	EnableMedrxiv bool `json:"enable_medrxiv" yaml:"enable_medrxiv"`

	// EnableWHOGHO controls whether the WHO GHO indicator connector is used.
	EnableWHOGHO bool `json:"enable_who_gho" yaml:"enable_who_gho"`

	// EnableCrossref controls whether the Crossref connector is used.
	EnableCrossref bool `json:"enable_crossref" yaml:"enable_crossref"`

	// EnableGBD controls whether the GHDx GBD CSV probe is used.
	EnableGBD bool `json:"enable_gbd" yaml:"enable_gbd"`

	// FeedsFile optionally points at a YAML file replacing the built-in
	// RSS source table.
	FeedsFile string `json:"feeds_file,omitempty" yaml:"feeds_file,omitempty"`

	// CrossrefEmail is included in the Crossref User-Agent for the polite pool.
	CrossrefEmail string `json:"crossref_email,omitempty" yaml:"crossref_email,omitempty"`
}

// SynthesisConfig holds settings for the synthesis stage.
type SynthesisConfig struct {
	// APIKey authenticates against the LLM provider. Synthesis fails fast
	// when it is empty; this is the single fatal precondition.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PreferredModel is consulted first in the gateway's fallback chain.
	// Empty means start directly at the default chain.
	PreferredModel string `json:"preferred_model,omitempty" yaml:"preferred_model,omitempty"`

	// BaseURL overrides the LLM endpoint. Tests point this at a local server.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxContextChars bounds the evidence context embedded in prompts (default 12000).
	MaxContextChars int `json:"max_context_chars" yaml:"max_context_chars"`

	// Timeout is the LLM transport timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
}
