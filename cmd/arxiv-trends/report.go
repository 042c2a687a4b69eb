// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-trends/internal/analyze"
	"github.com/pdiddy/arxiv-trends/internal/report"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [words...]",
	Short: "Fetch once and print a histogram and a publication trend",
	Long: `Report fetches the query results once and prints both a histogram over
--field and the publication trend. Use --save to keep the report as YAML
and print it again later with "arxiv-trends show".

` + queryArgsHelp,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	field, _ := cmd.Flags().GetString("field")
	savePath, _ := cmd.Flags().GetString("save")

	url, entries, err := fetchEntries(cmd, args)
	if err != nil {
		return err
	}

	hist, err := analyze.Histogram(entries, field)
	if err != nil {
		return err
	}
	trend, err := analyze.Trend(entries)
	if err != nil {
		return err
	}
	r := report.New(url, field, len(entries), hist, trend)

	if savePath != "" {
		if err := report.WriteFile(savePath, r); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved report to %s\n", savePath)
	}
	return printReport(cmd, r)
}

var showCmd = &cobra.Command{
	Use:   "show <report.yaml>",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := report.ReadFile(args[0])
		if err != nil {
			return err
		}
		return printReport(cmd, *r)
	},
}

func printReport(cmd *cobra.Command, r types.Report) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return report.FormatJSON(r, cmd.OutOrStdout())
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return report.FormatYAML(r, cmd.OutOrStdout())
	}
	report.FormatReport(r, cmd.OutOrStdout())
	return nil
}

func init() {
	reportCmd.Flags().String("field", types.FieldCategory, "entry field for the histogram")
	reportCmd.Flags().String("save", "", "save the report as YAML to this file")
	reportCmd.Flags().Bool("json", false, "output the report as JSON")
	reportCmd.Flags().Bool("yaml", false, "output the report as YAML")
	addQueryFlags(reportCmd)

	showCmd.Flags().Bool("json", false, "output the report as JSON")
	showCmd.Flags().Bool("yaml", false, "output the report as YAML")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(showCmd)
}
