// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/idea-engine/pkg/types"
)

func TestFormatTable(t *testing.T) {
	res := Result{
		Ideas: []types.Idea{
			{Title: "Idea A", MetricTag: types.MetricDALY, TotalCost: "$5M", Instrument: "AMC"},
			{Title: strings.Repeat("x", 70), MetricTag: types.MetricWALY, TotalCost: "$100k-1M", Instrument: "prize"},
		},
		DocsCount: 12,
	}

	var buf bytes.Buffer
	FormatTable(res, &buf)
	s := buf.String()

	if !strings.Contains(s, "Idea A") {
		t.Error("table should contain 'Idea A'")
	}
	if !strings.Contains(s, "...") {
		t.Error("long title should be truncated")
	}
	if !strings.Contains(s, "2 ideas from 12 documents") {
		t.Error("table should summarize counts")
	}
}

func TestFormatTableMultibyteTruncation(t *testing.T) {
	// 57 bytes falls inside a two-byte rune of this title; the truncated
	// row must still be valid UTF-8.
	res := Result{
		Ideas: []types.Idea{{
			Title:      strings.Repeat("é", 40),
			MetricTag:  types.MetricDALY,
			TotalCost:  strings.Repeat("€", 10),
			Instrument: "grant",
		}},
		DocsCount: 1,
	}

	var buf bytes.Buffer
	FormatTable(res, &buf)
	s := buf.String()

	if !utf8.ValidString(s) {
		t.Error("table contains an invalid UTF-8 sequence")
	}
	if !strings.Contains(s, "...") {
		t.Error("long title should be truncated")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Result{}, &buf)
	if !strings.Contains(buf.String(), "No ideas") {
		t.Error("empty result should say no ideas were generated")
	}
}
