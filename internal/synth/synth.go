// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// ErrMissingAPIKey is the single fatal precondition: no LLM credential is
// configured. It is reported before any network call and is distinct from
// generation failures, which degrade silently.
var ErrMissingAPIKey = errors.New("no LLM API key configured")

// defaultNumIdeas is used when the request does not say how many ideas to
// generate.
const defaultNumIdeas = 25

// Token budgets and temperatures per generation mode. Deep research pairs a
// reasoning model with low temperature and a large budget; normal runs use
// the general model with moderate temperature.
const (
	standardTemperature = 0.6
	standardMaxTokens   = 4000
	deepTemperature     = 0.2
	deepMaxTokens       = 16000
	rescueMaxTokens     = 2000
)

// Request carries one synthesis run's inputs.
type Request struct {
	// Topics is the operator's comma-separated topic string.
	Topics string

	// Documents is the aggregated evidence for this run.
	Documents []types.Document

	// NumIdeas caps how many ideas are refined and returned.
	NumIdeas int

	// ShowReasoning includes the intermediate reasoning object per idea.
	ShowReasoning bool

	// DeepResearch selects the reasoning model with a larger token budget.
	DeepResearch bool
}

// Result is one synthesis run's output: the normalized ideas, the raw text
// of whichever LLM pass produced usable content (the debug/audit channel),
// and how many documents were available as context input.
type Result struct {
	Ideas     []types.Idea `json:"ideas"`
	Raw       string       `json:"raw"`
	DocsCount int          `json:"docs_count"`
}

// Synthesize drives the multi-pass generation protocol: draft, a single
// rescue pass if the draft parses to nothing, rubric refinement, and
// normalization. Refinement is a quality pass, not a gate: when its output
// fails to parse the draft list is kept. All model failures degrade to
// fewer or zero ideas; the only error returned is the missing-credential
// precondition.
func Synthesize(ctx context.Context, g *Gateway, req Request) (Result, error) {
	if g.cfg.APIKey == "" {
		return Result{}, ErrMissingAPIKey
	}

	numIdeas := req.NumIdeas
	if numIdeas <= 0 {
		numIdeas = defaultNumIdeas
	}
	flags := detectTopics(req.Topics)
	evidence := BuildContext(req.Documents, DefaultPrioritySources, g.cfg.MaxContextChars)

	// DRAFTING
	userPrompt, err := renderTemplate(draftPromptTmpl, draftPromptData{
		NumIdeas:       numIdeas,
		Topics:         req.Topics,
		Context:        evidence,
		BenchmarkTable: benchmarkTable(),
		Schema:         ideaSchema,
		AnimalMode:     flags.animal,
		HealthMode:     flags.health,
		ShowReasoning:  req.ShowReasoning,
	})
	if err != nil {
		return Result{}, err
	}

	opts := CallOptions{Model: standardModel, Temperature: standardTemperature, MaxTokens: standardMaxTokens}
	if req.DeepResearch {
		opts = CallOptions{Model: deepResearchModel, Temperature: deepTemperature, MaxTokens: deepMaxTokens}
	}

	raw := g.CallModel(ctx, systemPrompt, userPrompt, opts)

	// PARSING_DRAFT
	drafts := ParseIdeas(raw)
	bestRaw := raw

	// RESCUING: exactly once, only when the draft pass parsed to nothing.
	if len(drafts) == 0 {
		rescuePrompt, err := renderTemplate(rescuePromptTmpl, rescuePromptData{
			NumIdeas: numIdeas,
			Topics:   req.Topics,
		})
		if err != nil {
			return Result{}, err
		}
		rescueRaw := g.CallModel(ctx, systemPrompt, rescuePrompt, CallOptions{
			Model:       standardModel,
			Temperature: standardTemperature,
			MaxTokens:   rescueMaxTokens,
		})
		if rescued := ParseIdeas(rescueRaw); len(rescued) > 0 {
			drafts = rescued
			bestRaw = rescueRaw
		}
	}

	if len(drafts) == 0 {
		return Result{Ideas: []types.Idea{}, Raw: bestRaw, DocsCount: len(req.Documents)}, nil
	}

	// REFINING: draft list capped before the rubric pass.
	if len(drafts) > numIdeas {
		drafts = drafts[:numIdeas]
	}
	if refined, refinedRaw := refine(ctx, g, req.Topics, flags, drafts, opts); len(refined) > 0 {
		drafts = refined
		bestRaw = refinedRaw
	}

	// NORMALIZING
	if len(drafts) > numIdeas {
		drafts = drafts[:numIdeas]
	}
	ideas := make([]types.Idea, 0, len(drafts))
	for _, d := range drafts {
		ideas = append(ideas, Normalize(d, flags, req.ShowReasoning))
	}

	return Result{Ideas: ideas, Raw: bestRaw, DocsCount: len(req.Documents)}, nil
}

// refine runs the rubric pass over the draft list. An unusable refinement
// result returns an empty list so the caller keeps the draft.
func refine(ctx context.Context, g *Gateway, topics string, flags topicFlags, drafts []Draft, opts CallOptions) ([]Draft, string) {
	draftJSON, err := json.Marshal(drafts)
	if err != nil {
		return nil, ""
	}
	userPrompt, err := renderTemplate(rubricPromptTmpl, rubricPromptData{
		Topics:     topics,
		DraftJSON:  string(draftJSON),
		AnimalMode: flags.animal,
		HealthMode: flags.health,
	})
	if err != nil {
		return nil, ""
	}
	refinedRaw := g.CallModel(ctx, rubricSystemPrompt, userPrompt, opts)
	return ParseIdeas(refinedRaw), refinedRaw
}
