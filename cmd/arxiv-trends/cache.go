// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-trends/internal/cache"
	"github.com/pdiddy/arxiv-trends/internal/report"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk feed cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(cfg.Cache, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return report.FormatJSON(rows, cmd.OutOrStdout())
		}

		w := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(w, "Cache is empty.")
			return nil
		}
		fmt.Fprintf(w, "%-20s  %-7s  %s\n", "Fetched", "Entries", "URL")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, r := range rows {
			fmt.Fprintf(w, "%-20s  %7d  %s\n", r.FetchedAt.Local().Format("2006-01-02 15:04:05"), r.EntryCount, r.URL)
		}
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached feeds",
	Long: `Purge deletes cached feeds. With --older-than only feeds fetched
longer ago than the given duration are removed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		store, err := cache.NewStore(cfg.Cache, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		var cutoff time.Time
		if olderThan > 0 {
			cutoff = time.Now().Add(-olderThan)
		}
		n, err := store.Purge(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached feed(s)\n", n)
		return nil
	},
}

func init() {
	cacheListCmd.Flags().Bool("json", false, "output as JSON")
	cachePurgeCmd.Flags().Duration("older-than", 0, "only remove feeds older than this (e.g. 72h)")

	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
