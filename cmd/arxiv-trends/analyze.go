// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-trends/internal/analyze"
	"github.com/pdiddy/arxiv-trends/internal/report"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// --- collect ---

var collectCmd = &cobra.Command{
	Use:   "collect [words...]",
	Short: "Print one field of every result",
	Long: `Collect fetches the query results and prints the chosen field of each
entry, one per line, with newlines removed and double spaces collapsed.

` + queryArgsHelp,
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	_, entries, err := fetchEntries(cmd, args)
	if err != nil {
		return err
	}

	values, err := analyze.Collect(entries, field)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON(values, cmd.OutOrStdout())
	}
	report.FormatCollection(values, cmd.OutOrStdout())
	return nil
}

// --- histogram ---

var histogramCmd = &cobra.Command{
	Use:   "histogram [words...]",
	Short: "Count the distinct values of a field across results",
	Long: `Histogram fetches the query results and counts how often each value of
the chosen field occurs (for example, the first category of each paper).

` + queryArgsHelp,
	RunE: runHistogram,
}

func runHistogram(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	_, entries, err := fetchEntries(cmd, args)
	if err != nil {
		return err
	}

	hist, err := analyze.Histogram(entries, field)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON(hist, cmd.OutOrStdout())
	}
	report.FormatHistogram(hist, field, cmd.OutOrStdout())
	return nil
}

// --- trend ---

var trendCmd = &cobra.Command{
	Use:   "trend [words...]",
	Short: "Count results per publication-date bucket",
	Long: `Trend fetches the query results and counts papers per publication-date
bucket. Buckets are daily when the results span less than 61 days, 30-day
periods labelled by month below 731 days, and 365-day periods labelled by
year beyond. Empty buckets inside the range are reported with count 0.

` + queryArgsHelp,
	RunE: runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	_, entries, err := fetchEntries(cmd, args)
	if err != nil {
		return err
	}

	trend, err := analyze.Trend(entries)
	if err != nil {
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON(trend, cmd.OutOrStdout())
	}
	report.FormatTrend(trend, cmd.OutOrStdout())
	return nil
}

// --- words ---

var wordsCmd = &cobra.Command{
	Use:   "words [words...]",
	Short: "Produce word-frequency text for a word-cloud renderer",
	Long: `Words fetches the query results and joins the chosen field of every
entry into lower-cased text with periods, commas and stop-words removed.

With --out the text is written together with the configured render options
(background color, width, height) as YAML input for a word-cloud renderer.

` + queryArgsHelp,
	RunE: runWords,
}

func runWords(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	out, _ := cmd.Flags().GetString("out")

	var stopWords []string
	if cmd.Flags().Changed("stop-words") {
		stopWords, _ = cmd.Flags().GetStringSlice("stop-words")
	}

	_, entries, err := fetchEntries(cmd, args)
	if err != nil {
		return err
	}

	text, err := analyze.WordFrequencyText(entries, field, stopWords)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	if err := report.WriteWordCloudInput(out, text, cfg.WordCloud); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote word cloud input to %s\n", out)
	return nil
}

func init() {
	collectCmd.Flags().String("field", types.FieldTitle, "entry field to collect")
	collectCmd.Flags().Bool("json", false, "output values as JSON")

	histogramCmd.Flags().String("field", types.FieldCategory, "entry field to count")
	histogramCmd.Flags().Bool("json", false, "output the histogram as JSON")

	trendCmd.Flags().Bool("json", false, "output the trend as JSON")

	wordsCmd.Flags().String("field", types.FieldSummary, "entry field to take text from")
	wordsCmd.Flags().StringSlice("stop-words", nil, "words to drop (comma-separated; replaces the built-in list)")
	wordsCmd.Flags().String("out", "", "write renderer input YAML to this file")

	for _, c := range []*cobra.Command{collectCmd, histogramCmd, trendCmd, wordsCmd} {
		addQueryFlags(c)
		rootCmd.AddCommand(c)
	}
}
