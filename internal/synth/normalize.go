// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"strings"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// topicFlags marks which domain framings the topic string matched.
type topicFlags struct {
	health bool
	animal bool
}

// healthKeywords and animalKeywords drive both the prompt mode clauses and
// metric-tag coercion. First match wins; a mixed-topic run takes the health
// framing when both match.
var (
	healthKeywords = []string{
		"health", "daly", "disease", "malaria", "tuberculosis", "tb ",
		"vaccine", "pandemic", "statin", "lead exposure", "respirator",
		"indoor air", "glp-1", "nutrition", "mortality", "maternal",
	}
	animalKeywords = []string{
		"animal", "waly", "broiler", "layer hen", "cage", "chicken",
		"fish", "shrimp", "livestock", "farmed", "wild animal",
	}
)

// detectTopics scans the topic string for domain keywords.
func detectTopics(topics string) topicFlags {
	t := strings.ToLower(topics)
	var f topicFlags
	for _, kw := range healthKeywords {
		if strings.Contains(t, kw) {
			f.health = true
			break
		}
	}
	for _, kw := range animalKeywords {
		if strings.Contains(t, kw) {
			f.animal = true
			break
		}
	}
	return f
}

// Normalize promotes a raw draft record to a fully populated Idea. It never
// fails: absent or wrong-typed fields degrade to empty strings, sequences,
// and mappings, and the metric tag always lands in the closed metric set.
// Normalizing an already-normalized record yields an identical record.
func Normalize(d Draft, flags topicFlags, showReasoning bool) types.Idea {
	idea := types.Idea{
		Title:         stringOr(string(d.Title), "Idea"),
		Description:   string(d.Description),
		Instrument:    string(d.Instrument),
		MetricTag:     coerceMetricTag(string(d.MetricTag), flags),
		TotalCost:     string(d.TotalCost),
		CEvsBenchmark: string(d.CEvsBenchmark),
		Candidates:    stringsOrEmpty(d.Candidates),
		Sources:       []types.SourceRef{},
		Doers:         []types.Doer{},
		DoerArchetype: string(d.DoerArchetype),
	}

	for _, s := range d.Sources {
		idea.Sources = append(idea.Sources, types.SourceRef{
			Title: string(s.Title),
			URL:   string(s.URL),
		})
	}

	idea.Botec = types.Botec{
		TargetQuestion: string(d.Botec.TargetQuestion),
		Decomposition:  stringsOrEmpty(d.Botec.Decomposition),
		Anchors:        []types.Anchor{},
		Assumptions:    mapOrEmpty(d.Botec.Assumptions),
		Formulas:       stringsOrEmpty(d.Botec.Formulas),
		Estimates:      normalizeEstimates(d.Botec.Estimates),
		Benchmark: types.BenchmarkRef{
			Name:  string(d.Botec.Benchmark.Name),
			Range: string(d.Botec.Benchmark.Range),
		},
		Comparison:  string(d.Botec.Comparison),
		Sensitivity: stringsOrEmpty(d.Botec.Sensitivity),
	}
	for _, a := range d.Botec.Anchors {
		idea.Botec.Anchors = append(idea.Botec.Anchors, types.Anchor{
			Ref: string(a.Ref),
			URL: string(a.URL),
		})
	}

	if showReasoning {
		r := types.Reasoning{}
		if d.Reasoning != nil {
			r = types.Reasoning{
				ProblemSizing:      string(d.Reasoning.ProblemSizing),
				Cruxes:             string(d.Reasoning.Cruxes),
				MechanismRationale: string(d.Reasoning.MechanismRationale),
				VerificationPlan:   string(d.Reasoning.VerificationPlan),
			}
		}
		idea.Reasoning = &r
	}

	for _, doer := range d.Doers {
		idea.Doers = append(idea.Doers, types.Doer{
			Name:        string(doer.Name),
			Link:        string(doer.Link),
			Affiliation: string(doer.Affiliation),
			Scores: types.DoerScores{
				Intelligence:    clampScore(int(doer.Scores.Intelligence)),
				Drive:           clampScore(int(doer.Scores.Drive)),
				TrackRecord:     clampScore(int(doer.Scores.TrackRecord)),
				Integrity:       clampScore(int(doer.Scores.Integrity)),
				DomainExpertise: clampScore(int(doer.Scores.DomainExpertise)),
			},
			AverageScore: string(doer.AverageScore),
			Rationale:    string(doer.Rationale),
		})
	}

	idea.Debate = types.Debate{
		Criticisms:         stringsOrEmpty(d.Debate.Criticisms),
		Rebuttals:          stringsOrEmpty(d.Debate.Rebuttals),
		RevisedAssumptions: mapOrEmpty(d.Debate.RevisedAssumptions),
		Recalc:             normalizeEstimates(d.Debate.Recalc),
		FinalConclusion:    string(d.Debate.FinalConclusion),
	}

	return idea
}

// coerceMetricTag maps the model-supplied tag onto the closed metric set.
// Recognized spellings are canonicalized; anything else falls back to the
// topic heuristic: health framing takes DALY, animal framing takes WALY,
// and with no framing at all DALY is the general default.
func coerceMetricTag(raw string, flags topicFlags) types.MetricTag {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daly", "dalys":
		return types.MetricDALY
	case "waly", "walys":
		return types.MetricWALY
	case "welby", "welbys":
		return types.MetricWELBY
	case "log income", "log_income", "log-income":
		return types.MetricLogIncome
	case "co2", "co2e", "tco2e":
		return types.MetricCO2
	}
	switch {
	case flags.health:
		return types.MetricDALY
	case flags.animal:
		return types.MetricWALY
	default:
		return types.MetricDALY
	}
}

func normalizeEstimates(e draftEstimates) types.Estimates {
	return types.Estimates{
		ImpactUnits:  string(e.ImpactUnits),
		TotalCostUSD: string(e.TotalCostUSD),
		CEValue:      string(e.CEValue),
		CEUnits:      string(e.CEUnits),
	}
}

// clampScore bounds a doer score to the 1-7 scale, leaving zero (absent) as-is.
func clampScore(v int) int {
	if v <= 0 {
		return 0
	}
	if v > 7 {
		return 7
	}
	return v
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func stringsOrEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func mapOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
