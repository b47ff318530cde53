// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MetricTag is the closed set of native cost-effectiveness metrics. No
// conversion between metrics is ever performed; ideas compare against the
// benchmark for their own metric only.
type MetricTag string

const (
	MetricDALY      MetricTag = "DALY"
	MetricWALY      MetricTag = "WALY"
	MetricWELBY     MetricTag = "WELBY"
	MetricLogIncome MetricTag = "log income"
	MetricCO2       MetricTag = "CO2"
)

// ValidMetricTag reports whether tag is a member of the closed metric set.
func ValidMetricTag(tag MetricTag) bool {
	switch tag {
	case MetricDALY, MetricWALY, MetricWELBY, MetricLogIncome, MetricCO2:
		return true
	}
	return false
}

// SourceRef is one evidence reference attached to an idea.
type SourceRef struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Anchor is a quantitative reference point used inside a BOTEC.
type Anchor struct {
	Ref string `json:"ref" yaml:"ref"`
	URL string `json:"url" yaml:"url"`
}

// Estimates holds the headline numbers of a BOTEC. Values are free text so
// ranges like "100-500" survive untouched.
type Estimates struct {
	ImpactUnits  string `json:"impact_units" yaml:"impact_units"`
	TotalCostUSD string `json:"total_cost_usd" yaml:"total_cost_usd"`
	CEValue      string `json:"ce_value" yaml:"ce_value"`
	CEUnits      string `json:"ce_units" yaml:"ce_units"`
}

// BenchmarkRef names the comparator benchmark an idea is measured against.
type BenchmarkRef struct {
	Name  string `json:"name" yaml:"name"`
	Range string `json:"range" yaml:"range"`
}

// Botec is a structured back-of-the-envelope calculation with explicit
// assumptions and formulas, auditable end to end.
type Botec struct {
	TargetQuestion string            `json:"target_question" yaml:"target_question"`
	Decomposition  []string          `json:"decomposition" yaml:"decomposition"`
	Anchors        []Anchor          `json:"anchors" yaml:"anchors"`
	Assumptions    map[string]string `json:"assumptions" yaml:"assumptions"`
	Formulas       []string          `json:"formulas" yaml:"formulas"`
	Estimates      Estimates         `json:"estimates" yaml:"estimates"`
	Benchmark      BenchmarkRef      `json:"benchmark" yaml:"benchmark"`
	Comparison     string            `json:"comparison" yaml:"comparison"`
	Sensitivity    []string          `json:"sensitivity" yaml:"sensitivity"`
}

// Reasoning records the intermediate reasoning behind an idea. Present only
// when reasoning display was requested.
type Reasoning struct {
	ProblemSizing      string `json:"problem_sizing" yaml:"problem_sizing"`
	Cruxes             string `json:"cruxes" yaml:"cruxes"`
	MechanismRationale string `json:"mechanism_rationale" yaml:"mechanism_rationale"`
	VerificationPlan   string `json:"verification_plan" yaml:"verification_plan"`
}

// DoerScores rates a candidate doer on five axes, each 1-7.
type DoerScores struct {
	Intelligence    int `json:"intelligence" yaml:"intelligence"`
	Drive           int `json:"drive" yaml:"drive"`
	TrackRecord     int `json:"track_record" yaml:"track_record"`
	Integrity       int `json:"integrity" yaml:"integrity"`
	DomainExpertise int `json:"domain_expertise" yaml:"domain_expertise"`
}

// Doer is a named individual or organization who could execute the idea.
type Doer struct {
	Name         string     `json:"name" yaml:"name"`
	Link         string     `json:"link" yaml:"link"`
	Affiliation  string     `json:"affiliation" yaml:"affiliation"`
	Scores       DoerScores `json:"scores" yaml:"scores"`
	AverageScore string     `json:"average_score" yaml:"average_score"`
	Rationale    string     `json:"rationale" yaml:"rationale"`
}

// Debate is the adversarial-review pass over an idea: criticisms, rebuttals,
// revised assumptions, and a recalculated estimate.
type Debate struct {
	Criticisms         []string          `json:"criticisms" yaml:"criticisms"`
	Rebuttals          []string          `json:"rebuttals" yaml:"rebuttals"`
	RevisedAssumptions map[string]string `json:"revised_assumptions" yaml:"revised_assumptions"`
	Recalc             Estimates         `json:"recalc" yaml:"recalc"`
	FinalConclusion    string            `json:"final_conclusion" yaml:"final_conclusion"`
}

// Idea is one synthesized philanthropic proposal, the pipeline's deliverable
// unit. A normalized Idea always has every field populated: strings default
// to "", sequences to empty slices, mappings to empty maps, and MetricTag is
// always a member of the closed metric set.
type Idea struct {
	Title         string      `json:"title" yaml:"title"`
	Description   string      `json:"description" yaml:"description"`
	Instrument    string      `json:"instrument" yaml:"instrument"`
	MetricTag     MetricTag   `json:"metric_tag" yaml:"metric_tag"`
	TotalCost     string      `json:"total_cost" yaml:"total_cost"`
	CEvsBenchmark string      `json:"ce_vs_benchmark" yaml:"ce_vs_benchmark"`
	Candidates    []string    `json:"candidates" yaml:"candidates"`
	Sources       []SourceRef `json:"sources" yaml:"sources"`
	Botec         Botec       `json:"botec" yaml:"botec"`
	Reasoning     *Reasoning  `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Doers         []Doer      `json:"doers" yaml:"doers"`
	DoerArchetype string      `json:"doer_archetype,omitempty" yaml:"doer_archetype,omitempty"`
	Debate        Debate      `json:"debate" yaml:"debate"`
}
