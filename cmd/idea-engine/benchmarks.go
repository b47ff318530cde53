// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-engine/internal/synth"
	"github.com/pdiddy/idea-engine/pkg/types"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Print the fixed cost-effectiveness benchmark table",
	Long: `Benchmarks prints the static reference table quoted in every prompt:
one comparator per metric with its indicative USD-per-unit range, plus the
discount schedule. Benchmarks are for comparison within a metric only;
no conversion between metrics is ever performed.`,
	Run: func(cmd *cobra.Command, args []string) {
		order := []types.MetricTag{
			types.MetricDALY,
			types.MetricWALY,
			types.MetricWELBY,
			types.MetricLogIncome,
			types.MetricCO2,
		}
		fmt.Printf("%-12s  %-26s  %-38s  %s\n", "Metric", "Comparator", "Unit", "Range")
		for _, tag := range order {
			bm := synth.Benchmarks[tag]
			fmt.Printf("%-12s  %-26s  %-38s  %g-%g\n", tag, bm.Name, bm.Unit, bm.Low, bm.High)
		}
		fmt.Printf("\nDiscounting: %.0f%% up to 50 years, %.0f%% beyond.\n",
			synth.Discounting.UpTo50Years*100, synth.Discounting.Beyond50Year*100)
	},
}

func init() {
	rootCmd.AddCommand(benchmarksCmd)
}
