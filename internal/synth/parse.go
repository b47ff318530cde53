// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// canonicalIdeasKey is where compliant model output holds the idea list.
const canonicalIdeasKey = "ideas"

// alternateIdeasKeys are tried, in order, when the canonical key is absent.
// Models that ignore the schema instructions tend to invent one of these.
var alternateIdeasKeys = []string{"recommendations", "results", "items", "proposals", "output"}

// ParseIdeas extracts a list of draft idea records from free-form model
// output. It is total: any input, including empty strings, prose, fenced or
// truncated JSON, yields a (possibly empty) list and never an error.
//
// Steps, each attempted only when the previous produced nothing usable:
// strip a surrounding code fence; parse the whole text as JSON; parse the
// first-[ to last-] substring as an array; parse the first-{ to last-}
// substring as an object; within an object, look under the canonical key,
// then the alternate keys, then the first array-valued top-level key.
func ParseIdeas(raw string) []Draft {
	cleaned := stripFence(raw)

	if drafts, ok := parseAny([]byte(cleaned)); ok {
		return drafts
	}

	if start, end := strings.Index(cleaned, "["), strings.LastIndex(cleaned, "]"); start >= 0 && end > start {
		if drafts, ok := parseList([]byte(cleaned[start : end+1])); ok {
			return drafts
		}
	}

	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start >= 0 && end > start {
		if drafts, ok := parseObject([]byte(cleaned[start : end+1])); ok {
			return drafts
		}
	}

	return nil
}

// stripFence removes a surrounding Markdown code fence, with or without a
// language tag, when the response is wrapped in one.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the fence line.
	if nl := strings.Index(s, "\n"); nl >= 0 {
		first := strings.TrimSpace(s[:nl])
		if len(first) <= 10 && !strings.ContainsAny(first, "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseAny parses data as either a JSON array or a JSON object holding one.
func parseAny(data []byte) ([]Draft, bool) {
	if drafts, ok := parseList(data); ok {
		return drafts, true
	}
	return parseObject(data)
}

// parseList decodes a JSON array element-tolerantly: elements that fail to
// decode as idea records are skipped rather than failing the list. A JSON
// null is not a list: it leaves the slice nil without an error, and must not
// stop the caller from trying the remaining keys.
func parseList(data []byte) ([]Draft, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil || elems == nil {
		return nil, false
	}
	drafts := make([]Draft, 0, len(elems))
	for _, e := range elems {
		var d Draft
		if err := json.Unmarshal(e, &d); err != nil {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, true
}

// parseObject decodes a JSON object and locates the idea list under the
// canonical key, the alternate keys, or the first array-valued key in
// sorted-key order.
func parseObject(data []byte) ([]Draft, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false
	}

	if v, ok := obj[canonicalIdeasKey]; ok {
		if drafts, ok := parseList(v); ok {
			return drafts, true
		}
	}
	for _, key := range alternateIdeasKeys {
		if v, ok := obj[key]; ok {
			if drafts, ok := parseList(v); ok {
				return drafts, true
			}
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if drafts, ok := parseList(obj[k]); ok {
			return drafts, true
		}
	}
	return nil, false
}

// Draft is a raw idea record as parsed from model output: every field is
// optional and every scalar is decoded tolerantly. The normalizer promotes
// a Draft to a fully populated Idea.
type Draft struct {
	Title         flexString  `json:"title"`
	Description   flexString  `json:"description"`
	Instrument    flexString  `json:"instrument"`
	MetricTag     flexString  `json:"metric_tag"`
	TotalCost     flexString  `json:"total_cost"`
	CEvsBenchmark flexString  `json:"ce_vs_benchmark"`
	Candidates    flexStrings `json:"candidates"`
	Sources       []struct {
		Title flexString `json:"title"`
		URL   flexString `json:"url"`
	} `json:"sources"`
	Botec struct {
		TargetQuestion flexString  `json:"target_question"`
		Decomposition  flexStrings `json:"decomposition"`
		Anchors        []struct {
			Ref flexString `json:"ref"`
			URL flexString `json:"url"`
		} `json:"anchors"`
		Assumptions flexMap        `json:"assumptions"`
		Formulas    flexStrings    `json:"formulas"`
		Estimates   draftEstimates `json:"estimates"`
		Benchmark   struct {
			Name  flexString `json:"name"`
			Range flexString `json:"range"`
		} `json:"benchmark"`
		Comparison  flexString  `json:"comparison"`
		Sensitivity flexStrings `json:"sensitivity"`
	} `json:"botec"`
	Reasoning *struct {
		ProblemSizing      flexString `json:"problem_sizing"`
		Cruxes             flexString `json:"cruxes"`
		MechanismRationale flexString `json:"mechanism_rationale"`
		VerificationPlan   flexString `json:"verification_plan"`
	} `json:"reasoning"`
	Doers []struct {
		Name        flexString `json:"name"`
		Link        flexString `json:"link"`
		Affiliation flexString `json:"affiliation"`
		Scores      struct {
			Intelligence    flexInt `json:"intelligence"`
			Drive           flexInt `json:"drive"`
			TrackRecord     flexInt `json:"track_record"`
			Integrity       flexInt `json:"integrity"`
			DomainExpertise flexInt `json:"domain_expertise"`
		} `json:"scores"`
		AverageScore flexString `json:"average_score"`
		Rationale    flexString `json:"rationale"`
	} `json:"doers"`
	DoerArchetype flexString `json:"doer_archetype"`
	Debate        struct {
		Criticisms         flexStrings    `json:"criticisms"`
		Rebuttals          flexStrings    `json:"rebuttals"`
		RevisedAssumptions flexMap        `json:"revised_assumptions"`
		Recalc             draftEstimates `json:"recalc"`
		FinalConclusion    flexString     `json:"final_conclusion"`
	} `json:"debate"`
}

type draftEstimates struct {
	ImpactUnits  flexString `json:"impact_units"`
	TotalCostUSD flexString `json:"total_cost_usd"`
	CEValue      flexString `json:"ce_value"`
	CEUnits      flexString `json:"ce_units"`
}

// flexString decodes any JSON scalar into a string: numbers and booleans
// are formatted, null and composites become empty. Wrong-typed fields
// degrade to defaults instead of failing the record.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	*f = ""
	return nil
}

// flexInt decodes a JSON number (or numeric string) into an int; anything
// else becomes zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(int(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, convErr := strconv.Atoi(strings.TrimSpace(s)); convErr == nil {
			*f = flexInt(v)
			return nil
		}
	}
	*f = 0
	return nil
}

// flexStrings decodes a JSON array of scalars into strings, skipping
// composite elements. A bare scalar becomes a one-element list; anything
// else becomes empty.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err == nil {
		out := make([]string, 0, len(elems))
		for _, e := range elems {
			var s flexString
			if err := json.Unmarshal(e, &s); err == nil && s != "" {
				out = append(out, string(s))
			}
		}
		*f = out
		return nil
	}
	var s flexString
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		*f = []string{string(s)}
		return nil
	}
	*f = nil
	return nil
}

// flexMap decodes a JSON object into a string-to-string map with tolerant
// values; anything that is not an object becomes empty.
type flexMap map[string]string

func (f *flexMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = nil
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var s flexString
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = string(s)
		}
	}
	*f = out
	return nil
}
