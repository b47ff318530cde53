// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth turns ingested documents into structured philanthropic idea
// records through a multi-pass LLM prompt pipeline.
package synth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/idea-engine/pkg/types"
)

const (
	// defaultMaxContextChars bounds the rendered evidence context.
	defaultMaxContextChars = 12000

	// maxContextDocs caps how many documents are considered for the context.
	maxContextDocs = 50

	// maxSummaryChars truncates each document summary inside its block.
	maxSummaryChars = 1000
)

// DefaultPrioritySources names the high-credibility sources whose documents
// are ranked ahead of everything else in the prompt context.
var DefaultPrioritySources = map[string]bool{
	"Open Philanthropy":         true,
	"Rethink Priorities":        true,
	"CGD":                       true,
	"Our World in Data":         true,
	"IHME":                      true,
	"WHO GHO":                   true,
	"GHDx GBD":                  true,
	"Crossref":                  true,
	"Animal Charity Evaluators": true,
	"Wild Animal Initiative":    true,
}

// BuildContext renders documents into a bounded textual context for prompt
// embedding. Documents from priority sources come first as a group; within
// each group the original order is preserved (stable partition). At most
// maxContextDocs documents are considered and accumulation stops before a
// block would push the total past maxChars, so the cap holds at block
// granularity. Pure function: no I/O, deterministic for a given input.
func BuildContext(docs []types.Document, priority map[string]bool, maxChars int) string {
	if maxChars <= 0 {
		maxChars = defaultMaxContextChars
	}

	ordered := make([]types.Document, 0, len(docs))
	for _, d := range docs {
		if priority[d.Source] {
			ordered = append(ordered, d)
		}
	}
	for _, d := range docs {
		if !priority[d.Source] {
			ordered = append(ordered, d)
		}
	}
	if len(ordered) > maxContextDocs {
		ordered = ordered[:maxContextDocs]
	}

	var parts []string
	used := 0
	for _, d := range ordered {
		summary := truncate(d.Summary, maxSummaryChars)
		block := fmt.Sprintf("- %s\n  %s\n  Source: %s\n", d.Title, summary, d.URL)
		if used+len(block) > maxChars {
			break
		}
		parts = append(parts, block)
		used += len(block)
	}
	return strings.Join(parts, "\n")
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence. The
// cut backs up to the nearest rune start, so the result may be shorter than n.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
