// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/ingest"
	"github.com/pdiddy/idea-engine/internal/secrets"
	"github.com/pdiddy/idea-engine/pkg/types"
)

const (
	defaultConnectorTimeout = 30 * time.Second
	defaultUserAgent        = "idea-engine/0.1"
	defaultMaxItems         = 10
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch documents from the configured sources",
	Long: `Ingest fans a topic query out to the enabled source connectors (RSS
feeds, arXiv, bioRxiv, medRxiv, WHO GHO, Crossref, GHDx GBD) and prints the
merged document list as JSON. A connector that fails contributes zero
documents and a warning; ingestion itself never fails.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("topics", "", "comma-separated topic keywords for the search connectors")
	ingestCmd.Flags().Int("max-items", defaultMaxItems, "maximum documents per source")
	ingestCmd.Flags().Duration("timeout", 0, "HTTP request timeout per connector (default 30s)")
	ingestCmd.Flags().String("feeds", "", "YAML file replacing the built-in RSS source table")
	ingestCmd.Flags().String("out", "", "write documents JSON to a file instead of stdout")
	ingestCmd.Flags().Bool("no-rss", false, "disable the RSS connector")
	ingestCmd.Flags().Bool("no-arxiv", false, "disable the arXiv connector")
	ingestCmd.Flags().Bool("no-biorxiv", false, "disable the bioRxiv connector")
	ingestCmd.Flags().Bool("no-medrxiv", false, "disable the medRxiv connector")
	ingestCmd.Flags().Bool("who-gho", false, "enable the WHO GHO indicator connector")
	ingestCmd.Flags().Bool("crossref", false, "enable the Crossref connector")
	ingestCmd.Flags().Bool("gbd", false, "enable the GHDx GBD CSV probe")

	rootCmd.AddCommand(ingestCmd)
}

// ingestConfigFromFlags builds the ingestion config shared by the ingest and
// generate commands. Precedence per setting is flag, then config file, then
// the built-in default.
func ingestConfigFromFlags(cmd *cobra.Command) types.IngestConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = pipelineCfg.Ingest.Timeout
	}
	if timeout == 0 {
		timeout = defaultConnectorTimeout
	}
	maxItems, _ := cmd.Flags().GetInt("max-items")
	if !cmd.Flags().Changed("max-items") && pipelineCfg.Ingest.MaxItemsPerSource > 0 {
		maxItems = pipelineCfg.Ingest.MaxItemsPerSource
	}
	userAgent := pipelineCfg.Ingest.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	feedsFile, _ := cmd.Flags().GetString("feeds")
	if feedsFile == "" {
		feedsFile = pipelineCfg.Ingest.FeedsFile
	}
	noRSS, _ := cmd.Flags().GetBool("no-rss")
	noArxiv, _ := cmd.Flags().GetBool("no-arxiv")
	noBiorxiv, _ := cmd.Flags().GetBool("no-biorxiv")
	noMedrxiv, _ := cmd.Flags().GetBool("no-medrxiv")
	whoGHO, _ := cmd.Flags().GetBool("who-gho")
	crossref, _ := cmd.Flags().GetBool("crossref")
	gbd, _ := cmd.Flags().GetBool("gbd")

	return types.IngestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		MaxItemsPerSource: maxItems,
		EnableRSS:         !noRSS,
		EnableArxiv:       !noArxiv,
		EnableBiorxiv:     !noBiorxiv,
		EnableMedrxiv:     !noMedrxiv,
		EnableWHOGHO:      whoGHO,
		EnableCrossref:    crossref,
		EnableGBD:         gbd,
		FeedsFile:         feedsFile,
		CrossrefEmail:     secrets.Resolve(loadedSecrets, "crossref-email", "CROSSREF_EMAIL", pipelineCfg.Ingest.CrossrefEmail),
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetString("topics")
	outFile, _ := cmd.Flags().GetString("out")
	cfg := ingestConfigFromFlags(cmd)

	out := ingest.Aggregate(cmd.Context(), topics, ingest.Connectors(cfg), cfg, os.Stderr)
	fmt.Fprintf(os.Stderr, "Fetched %d documents (%d sources failed).\n", len(out.Documents), len(out.SourceErrors))

	data, err := json.MarshalIndent(out.Documents, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}
	if outFile != "" {
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outFile, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outFile)
		return nil
	}
	fmt.Println(string(data))
	return nil
}
