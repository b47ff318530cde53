// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// fallbackModels is the fixed chain tried after the preferred model,
// progressively older and cheaper. The chain is the gateway's only retry
// mechanism: each model gets at most two attempts (with and without the
// JSON response mode), never repeated attempts against the same model.
var fallbackModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4o-mini-2024-07-18",
	"gpt-3.5-turbo-0125",
}

const (
	// standardModel handles normal draft generation.
	standardModel = "gpt-4o-mini"

	// deepResearchModel is the reasoning-oriented model selected by the
	// deep-research flag.
	deepResearchModel = "o3"

	defaultTimeout = 60 * time.Second
)

// emptyResult is returned when every candidate model fails, so downstream
// parsing degrades to an empty idea list instead of an error. The caller
// cannot distinguish "zero ideas" from "all models unreachable" except via
// the diagnostics writer; that trade is deliberate.
const emptyResult = "[]"

// CallOptions selects the model and sampling parameters for one call.
type CallOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int64
}

// Gateway sends system+user message pairs to the LLM endpoint, falling
// back across a prioritized model chain until one returns non-empty
// content.
type Gateway struct {
	cfg    types.SynthesisConfig
	client openai.Client
	w      io.Writer
}

// NewGateway builds a gateway from the synthesis config. Attempt
// diagnostics are written to w. Transport-level retries are disabled:
// fallback across models is the only recovery path.
func NewGateway(cfg types.SynthesisConfig, w io.Writer) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Gateway{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		w:      w,
	}
}

// CallModel tries each candidate model in priority order: the configured
// preferred model, then opts.Model, then the fixed fallback chain. Each
// candidate is first asked for a JSON-object response; if the endpoint
// rejects that mode the same candidate is retried without it. Any failure
// moves to the next candidate without surfacing the error. When every
// candidate fails, CallModel returns the literal "[]".
func (g *Gateway) CallModel(ctx context.Context, system, user string, opts CallOptions) string {
	for _, model := range g.modelChain(opts.Model) {
		content, err := g.attempt(ctx, model, system, user, opts, true)
		if err != nil {
			fmt.Fprintf(g.w, "warning: model %s (json mode) failed: %v\n", model, err)
			content, err = g.attempt(ctx, model, system, user, opts, false)
		}
		if err != nil {
			fmt.Fprintf(g.w, "warning: model %s failed: %v\n", model, err)
			continue
		}
		if content != "" {
			return content
		}
		fmt.Fprintf(g.w, "warning: model %s returned empty content\n", model)
	}
	fmt.Fprintf(g.w, "warning: all models failed, degrading to empty list\n")
	return emptyResult
}

// modelChain builds the ordered candidate list without duplicates.
func (g *Gateway) modelChain(requested string) []string {
	var chain []string
	seen := make(map[string]bool)
	add := func(m string) {
		if m != "" && !seen[m] {
			chain = append(chain, m)
			seen[m] = true
		}
	}
	add(g.cfg.PreferredModel)
	add(requested)
	for _, m := range fallbackModels {
		add(m)
	}
	return chain
}

// attempt performs one chat completion call against one model.
func (g *Gateway) attempt(ctx context.Context, model, system, user string, opts CallOptions, jsonMode bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(opts.MaxTokens)
	}
	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
