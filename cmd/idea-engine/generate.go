// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/ingest"
	"github.com/pdiddy/idea-engine/internal/secrets"
	"github.com/pdiddy/idea-engine/internal/synth"
	"github.com/pdiddy/idea-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize philanthropic ideas with BOTECs from ingested documents",
	Long: `Generate runs the synthesis pipeline: build a bounded evidence context
from the ingested documents, draft ideas with the LLM, refine them against
an editorial rubric, and normalize the result into the fixed idea schema.
Documents come from a prior "ingest --out" file or are fetched fresh.

The full idea set is exported as a JSON array with --out; that file is the
run's only persisted artifact.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topics", "", "comma-separated topic keywords")
	generateCmd.Flags().Int("num-ideas", 25, "how many ideas to generate")
	generateCmd.Flags().Bool("show-reasoning", false, "include the intermediate reasoning object per idea")
	generateCmd.Flags().Bool("deep-research", false, "use the reasoning model with a larger token budget")
	generateCmd.Flags().String("documents", "", "JSON file of previously ingested documents")
	generateCmd.Flags().String("model", "", "preferred model identifier (overrides OPENAI_MODEL)")
	generateCmd.Flags().String("out", "", "write the idea JSON array to a file")
	generateCmd.Flags().Bool("raw", false, "print the raw model output for debugging")

	// Ingestion flags, for when no documents file is given.
	generateCmd.Flags().Int("max-items", defaultMaxItems, "maximum documents per source")
	generateCmd.Flags().Duration("timeout", 0, "HTTP request timeout per connector (default 30s)")
	generateCmd.Flags().String("feeds", "", "YAML file replacing the built-in RSS source table")
	generateCmd.Flags().Bool("no-rss", false, "disable the RSS connector")
	generateCmd.Flags().Bool("no-arxiv", false, "disable the arXiv connector")
	generateCmd.Flags().Bool("no-biorxiv", false, "disable the bioRxiv connector")
	generateCmd.Flags().Bool("no-medrxiv", false, "disable the medRxiv connector")
	generateCmd.Flags().Bool("who-gho", false, "enable the WHO GHO indicator connector")
	generateCmd.Flags().Bool("crossref", false, "enable the Crossref connector")
	generateCmd.Flags().Bool("gbd", false, "enable the GHDx GBD CSV probe")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetString("topics")
	numIdeas, _ := cmd.Flags().GetInt("num-ideas")
	showReasoning, _ := cmd.Flags().GetBool("show-reasoning")
	deepResearch, _ := cmd.Flags().GetBool("deep-research")
	documentsFile, _ := cmd.Flags().GetString("documents")
	model, _ := cmd.Flags().GetString("model")
	outFile, _ := cmd.Flags().GetString("out")
	printRaw, _ := cmd.Flags().GetBool("raw")

	apiKey := secrets.Resolve(loadedSecrets, "openai-api-key", "OPENAI_API_KEY", pipelineCfg.Synthesis.APIKey)
	if model == "" {
		model = pipelineCfg.Synthesis.PreferredModel
	}
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
	}

	docs, err := loadOrIngest(cmd, topics, documentsFile)
	if err != nil {
		return err
	}

	baseURL := pipelineCfg.Synthesis.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_BASE_URL")
	}

	gw := synth.NewGateway(types.SynthesisConfig{
		APIKey:          apiKey,
		PreferredModel:  model,
		BaseURL:         baseURL,
		MaxContextChars: pipelineCfg.Synthesis.MaxContextChars,
		Timeout:         pipelineCfg.Synthesis.Timeout,
	}, os.Stderr)

	result, err := synth.Synthesize(cmd.Context(), gw, synth.Request{
		Topics:        topics,
		Documents:     docs,
		NumIdeas:      numIdeas,
		ShowReasoning: showReasoning,
		DeepResearch:  deepResearch,
	})
	if err != nil {
		if errors.Is(err, synth.ErrMissingAPIKey) {
			return fmt.Errorf("missing OPENAI_API_KEY: set it in the environment, .env, or .secrets/openai-api-key")
		}
		return fmt.Errorf("synthesis failed: %w", err)
	}

	synth.FormatTable(result, os.Stderr)
	if printRaw {
		fmt.Fprintln(os.Stderr, result.Raw)
	}

	data, err := json.MarshalIndent(result.Ideas, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ideas: %w", err)
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

// loadOrIngest reads a saved documents file when given, otherwise runs a
// fresh ingestion with the command's connector flags.
func loadOrIngest(cmd *cobra.Command, topics, documentsFile string) ([]types.Document, error) {
	if documentsFile != "" {
		data, err := os.ReadFile(documentsFile)
		if err != nil {
			return nil, fmt.Errorf("reading documents file: %w", err)
		}
		var docs []types.Document
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("parsing documents file: %w", err)
		}
		return docs, nil
	}

	cfg := ingestConfigFromFlags(cmd)
	out := ingest.Aggregate(cmd.Context(), topics, ingest.Connectors(cfg), cfg, os.Stderr)
	fmt.Fprintf(os.Stderr, "Fetched %d documents (%d sources failed).\n", len(out.Documents), len(out.SourceErrors))
	return out.Documents, nil
}
