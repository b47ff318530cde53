// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"bytes"
	"fmt"
	"text/template"
)

// systemPrompt frames every draft generation call. It fixes the reasoning
// pipeline the model must follow per topic and forbids cross-metric
// conversion.
const systemPrompt = `You are an idea generator optimizing for the wellbeing of all sentient beings. ` +
	`Follow this reasoning pipeline per topic: ` +
	`(1) Problem sizing: quantify the biggest problems (orders of magnitude, e.g., animals affected, DALYs, tCO2e). ` +
	`(2) Leading solutions: scan authoritative sources (e.g., WAI, Open Phil, RP, DCP, peer-reviewed). ` +
	`(3) Cruxes: identify the binding constraints on development/adoption (technical, regulatory, buyer fragmentation, CapEx, ops). ` +
	`(4) Mechanism design: propose specific levers (AMCs, prizes, milestones, purchase guarantees, pooled procurement, verification). ` +
	`(5) Ideal-solution backcasting: consider what would make the problem go away; scan literature for enabling tech and what's newly possible. ` +
	`(6) Verification: define binary, independent measures of success. ` +
	`(7) Light BOTEC: native metric CE vs benchmark; no cross-metric conversions; 0% discount <=50y, 2% thereafter. ` +
	`Return concise ideas in the exact format requested by the user.`

// ideaSchema spells out the idea object the model must emit. The botec,
// doers, and debate blocks mirror the normalized Idea record field for field.
const ideaSchema = `Each idea object must contain:
- title
- description (single paragraph in the exact template: what to fund, the mechanism, expected impact and cost, and cost-effectiveness vs. the named benchmark)
- instrument (e.g., AMC, prize, milestone, purchase guarantee, direct grant)
- metric_tag (one of DALY, WALY, WELBY, log income, CO2)
- total_cost (USD range ok)
- ce_vs_benchmark (short comparison text)
- candidates (1-3 names or orgs)
- sources (list of {title, url})
- botec: {target_question, decomposition (list of steps), anchors (list of {ref, url}), assumptions (map of name to value/range), formulas (list), estimates {impact_units, total_cost_usd, ce_value, ce_units}, benchmark {name, range}, comparison, sensitivity (list)}
- doers: list of {name, link, affiliation, scores {intelligence, drive, track_record, integrity, domain_expertise} each 1-7, average_score, rationale}; if no individuals can be identified, give a doer_archetype string instead
- debate: {criticisms (list), rebuttals (list), revised_assumptions (map), recalc {impact_units, total_cost_usd, ce_value, ce_units}, final_conclusion}`

// draftPromptTmpl is the user prompt for the draft generation pass.
var draftPromptTmpl = template.Must(template.New("draft").Parse(`Generate {{.NumIdeas}} ideas. Constraints:
- 3/4 human wellbeing (incl. pandemics) and 1/4 animals.
- No cross-metric conversion. Compare to relevant benchmarks only.
- Discount: 0% up to 50y, 2% thereafter.
- Prefer market-shaping mechanisms where appropriate (AMCs, prizes, milestones, purchase guarantees).
{{- if .AnimalMode}}
- Animal welfare mode: size problems in animal-years affected, use WALY as the native metric, and benchmark against corporate-campaign cost-effectiveness.
{{- end}}
{{- if .HealthMode}}
- Global health mode: size problems in DALYs, cite burden-of-disease figures from the evidence where possible, and benchmark against GiveWell top charities.
{{- end}}

Benchmarks (fixed, for comparison only):
{{.BenchmarkTable}}

Topics: {{.Topics}}

Evidence snippets (non-exhaustive):
{{.Context}}

Return a JSON object with an "ideas" array. {{.Schema}}
{{- if .ShowReasoning}}
- reasoning: {problem_sizing, cruxes, mechanism_rationale, verification_plan}
{{- end}}
Ensure novelty by addressing adoption barriers/cruxes with a concrete mechanism. Return JSON only, no other text.`))

// rescuePrompt is the maximally constrained retry used when the draft pass
// yields zero parseable ideas. It asks for a bare JSON array of a simplified
// idea shape and nothing else.
var rescuePromptTmpl = template.Must(template.New("rescue").Parse(`Return ONLY a JSON array, no prose, no code fences. ` +
	`The array must contain {{.NumIdeas}} objects, each with exactly these string fields: ` +
	`"title", "description", "instrument", "metric_tag" (one of DALY, WALY, WELBY, log income, CO2), "total_cost", "ce_vs_benchmark". ` +
	`Topic focus: {{.Topics}}. Begin your response with [ and end it with ].`))

// rubricSystemPrompt frames the refinement pass: a strict editor enforcing
// the output contract on already-drafted ideas.
const rubricSystemPrompt = `You are a strict editor of philanthropic funding ideas. You revise draft ideas against this rubric and return the revised set:
1. Template sentence: the description is a single paragraph naming the funding target, the mechanism, the expected impact and cost, and the cost-effectiveness versus the named benchmark.
2. Benchmark citation: every idea cites the benchmark for its own metric; never convert between metrics.
3. BOTEC completeness: target_question, decomposition, anchors, assumptions, formulas, estimates, benchmark, comparison, and sensitivity are all filled with auditable content.
4. Doer identification: name real organizations or individuals with links where possible; score each on intelligence, drive, track_record, integrity, domain_expertise (1-7); fall back to a doer_archetype only when no one can be named.
5. Adversarial debate: criticisms must attack the weakest assumptions; rebuttals must concede what cannot be defended; recalc reflects the revised assumptions.
6. Novelty: reject or rework any idea isomorphic to a well-known existing program (e.g., bednet distribution, standard GiveDirectly transfers, generic corporate cage-free campaigns); each idea must address a concrete adoption barrier with a concrete mechanism.
Return a JSON object with an "ideas" array holding the revised ideas in the same schema you received. Return JSON only.`

// rubricPromptTmpl is the user prompt for the refinement pass, carrying the
// draft ideas as JSON plus any topic-mode clauses.
var rubricPromptTmpl = template.Must(template.New("rubric").Parse(`Topics: {{.Topics}}
{{- if .AnimalMode}}
Domain rubric: animal-welfare framing. WALY is the native metric; anchor pain-intensity and duration assumptions in welfare-science sources; prefer mechanisms that shift producer incentives.
{{- end}}
{{- if .HealthMode}}
Domain rubric: global-health framing. DALY is the native metric; anchor burden estimates in GBD or WHO figures from the evidence; prefer mechanisms with independent verification of delivery.
{{- end}}

Draft ideas (JSON):
{{.DraftJSON}}

Revise every idea against the rubric and return the full revised set.`))

type draftPromptData struct {
	NumIdeas       int
	Topics         string
	Context        string
	BenchmarkTable string
	Schema         string
	AnimalMode     bool
	HealthMode     bool
	ShowReasoning  bool
}

type rescuePromptData struct {
	NumIdeas int
	Topics   string
}

type rubricPromptData struct {
	Topics     string
	DraftJSON  string
	AnimalMode bool
	HealthMode bool
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
