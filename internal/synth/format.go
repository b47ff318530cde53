// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"fmt"
	"io"
	"strings"
)

// FormatTable writes a fixed-width summary of a synthesis result to w, one
// row per idea. The table is a human-readable digest; the JSON export is the
// canonical output.
func FormatTable(res Result, w io.Writer) {
	if len(res.Ideas) == 0 {
		fmt.Fprintln(w, "No ideas generated.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-10s  %-18s  %s\n",
		"#", "Title", "Metric", "Total cost", "Instrument")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, idea := range res.Ideas {
		title := idea.Title
		if len(title) > 60 {
			title = truncate(title, 57) + "..."
		}
		cost := idea.TotalCost
		if len(cost) > 18 {
			cost = truncate(cost, 15) + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-10s  %-18s  %s\n",
			i+1, title, idea.MetricTag, cost, idea.Instrument)
	}

	fmt.Fprintf(w, "\n%d ideas from %d documents\n", len(res.Ideas), res.DocsCount)
}
