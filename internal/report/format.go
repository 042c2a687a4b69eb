// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats summaries for the terminal and saves them to
// files that can be reloaded without re-querying arXiv.
package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

const (
	keyWidth = 50
	barWidth = 40
)

// FormatHistogram writes a histogram as a two-column table, largest
// counts first. Ties keep first-occurrence order.
func FormatHistogram(h types.Histogram, field string, w io.Writer) {
	if len(h) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}

	rows := sortedByCount(h)
	fmt.Fprintf(w, "%-*s  %s\n", keyWidth, field, "Count")
	fmt.Fprintln(w, strings.Repeat("-", keyWidth+8))
	for _, c := range rows {
		fmt.Fprintf(w, "%-*s  %5d\n", keyWidth, truncate(c.Key, keyWidth), c.Count)
	}
	fmt.Fprintf(w, "\n%d distinct values, %d entries\n", len(h), h.Total())
}

// FormatTrend writes one row per bucket with a bar scaled to the
// largest bucket.
func FormatTrend(tr types.Trend, w io.Writer) {
	if len(tr.Buckets) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}

	peak := 0
	for _, b := range tr.Buckets {
		peak = max(peak, b.Count)
	}

	fmt.Fprintf(w, "%-10s  %5s  %s\n", "Bucket", "Count", "")
	fmt.Fprintln(w, strings.Repeat("-", 10+2+5+2+barWidth))
	for _, b := range tr.Buckets {
		fmt.Fprintf(w, "%-10s  %5d  %s\n", b.Key, b.Count, bar(b.Count, peak))
	}
	fmt.Fprintf(w, "\n%s buckets over %d days, %d entries\n", tr.Granularity, tr.SpanDays, tr.Buckets.Total())
}

// FormatCollection writes one value per line.
func FormatCollection(values []string, w io.Writer) {
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
}

// FormatReport writes a saved or freshly computed report.
func FormatReport(r types.Report, w io.Writer) {
	fmt.Fprintf(w, "Query:   %s\n", r.Query)
	fmt.Fprintf(w, "Entries: %d\n", r.Entries)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(w, "Date:    %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(w)
	FormatHistogram(r.Histogram, r.Field, w)
	fmt.Fprintln(w)
	FormatTrend(r.Trend, w)
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes v as YAML to w.
func FormatYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func sortedByCount(h types.Histogram) types.Histogram {
	rows := slices.Clone(h)
	slices.SortStableFunc(rows, func(a, b types.Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return rows
}

func bar(n, peak int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	width := n * barWidth / peak
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}

// truncate shortens s to at most limit runes, ending in "...".
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}
