// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"fmt"
	"strings"

	"github.com/pdiddy/idea-engine/pkg/types"
)

// Benchmark is one row of the fixed cost-effectiveness reference table:
// a comparator program and its indicative USD-per-unit range. Benchmarks
// feed prompt construction only; code never converts between metrics.
type Benchmark struct {
	Name string
	Unit string
	Low  float64
	High float64
}

// Benchmarks is the static reference table, one row per metric. Ranges are
// indicative and used for comparison only.
var Benchmarks = map[types.MetricTag]Benchmark{
	types.MetricDALY:      {Name: "GiveWell top charities", Unit: "USD per DALY", Low: 100, High: 500},
	types.MetricLogIncome: {Name: "GiveDirectly", Unit: "relative effect vs unconditional cash", Low: 1.0, High: 1.0},
	types.MetricWELBY:     {Name: "StrongMinds-like", Unit: "USD per WELBY", Low: 50, High: 1000},
	types.MetricWALY:      {Name: "Humane League / ACE", Unit: "USD per animal-year", Low: 0.01, High: 1.0},
	types.MetricCO2:       {Name: "Frontier climate", Unit: "USD per tCO2e", Low: 5, High: 100},
}

// DiscountSchedule is the fixed time-discounting rule quoted in prompts:
// 0% up to 50 years out, 2% per year beyond.
type DiscountSchedule struct {
	UpTo50Years  float64
	Beyond50Year float64
}

// Discounting is the schedule applied by the reasoning pipeline.
var Discounting = DiscountSchedule{UpTo50Years: 0.0, Beyond50Year: 0.02}

// benchmarkTable renders the reference table as prompt text, one line per
// metric in a fixed order.
func benchmarkTable() string {
	order := []types.MetricTag{
		types.MetricDALY,
		types.MetricWALY,
		types.MetricWELBY,
		types.MetricLogIncome,
		types.MetricCO2,
	}
	var b strings.Builder
	for _, tag := range order {
		bm := Benchmarks[tag]
		if bm.Low == bm.High {
			fmt.Fprintf(&b, "- %s: %s (%s ~%g)\n", tag, bm.Name, bm.Unit, bm.Low)
			continue
		}
		fmt.Fprintf(&b, "- %s: %s (%s %g-%g)\n", tag, bm.Name, bm.Unit, bm.Low, bm.High)
	}
	return strings.TrimRight(b.String(), "\n")
}
