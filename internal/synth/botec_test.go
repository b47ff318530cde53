// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"strings"
	"testing"

	"github.com/pdiddy/idea-engine/pkg/types"
)

func TestBenchmarksCoverAllMetrics(t *testing.T) {
	for _, tag := range []types.MetricTag{
		types.MetricDALY, types.MetricWALY, types.MetricWELBY, types.MetricLogIncome, types.MetricCO2,
	} {
		bm, ok := Benchmarks[tag]
		if !ok {
			t.Errorf("no benchmark for %s", tag)
			continue
		}
		if bm.Name == "" || bm.Unit == "" {
			t.Errorf("benchmark for %s incomplete: %+v", tag, bm)
		}
		if bm.Low > bm.High {
			t.Errorf("benchmark for %s has inverted range: %g > %g", tag, bm.Low, bm.High)
		}
	}
}

func TestBenchmarkTable(t *testing.T) {
	table := benchmarkTable()
	lines := strings.Split(table, "\n")
	if len(lines) != len(Benchmarks) {
		t.Fatalf("table has %d lines, want %d", len(lines), len(Benchmarks))
	}

	// Fixed row order, DALY first.
	if !strings.HasPrefix(lines[0], "- DALY: GiveWell top charities") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[0], "100-500") {
		t.Errorf("DALY line missing range: %q", lines[0])
	}

	// Degenerate range renders as a single value.
	found := false
	for _, l := range lines {
		if strings.Contains(l, "GiveDirectly") {
			found = true
			if !strings.Contains(l, "~1") || strings.Contains(l, "1-1") {
				t.Errorf("GiveDirectly line should render a point value: %q", l)
			}
		}
	}
	if !found {
		t.Error("table missing GiveDirectly row")
	}

	if strings.HasSuffix(table, "\n") {
		t.Error("table should not end with a newline")
	}
}

func TestDiscounting(t *testing.T) {
	if Discounting.UpTo50Years != 0.0 {
		t.Errorf("UpTo50Years = %g, want 0", Discounting.UpTo50Years)
	}
	if Discounting.Beyond50Year != 0.02 {
		t.Errorf("Beyond50Year = %g, want 0.02", Discounting.Beyond50Year)
	}
}
