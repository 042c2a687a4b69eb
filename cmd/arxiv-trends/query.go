// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-trends/internal/cache"
	"github.com/pdiddy/arxiv-trends/internal/feed"
	"github.com/pdiddy/arxiv-trends/internal/query"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

const queryArgsHelp = `Query words: AND, OR, ANDNOT (upper case; lower-case "and", "or" and
"andnot" are searched as words), "(" and ")", and field:text terms where
field is one of ti|title, au|author, abs|abstract, co|comment, jr|journal,
cat|category, rn|report-number, all, id|raw-id. A word with no field
searches all fields. Quote multi-word phrases: "abs:deep learning".`

var queryCmd = &cobra.Command{
	Use:   "query [words...]",
	Short: "Print the arXiv API URL for a query",
	Long: `Query validates the boolean expression and prints the request URL
without contacting arXiv.

` + queryArgsHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := serializeQuery(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	},
}

func init() {
	addQueryFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}

// addQueryFlags registers the request parameters shared by every command
// that builds a query.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("id", nil, "arXiv identifier to add to id_list (repeatable)")
	cmd.Flags().Int("start", 0, "index of the first result")
	cmd.Flags().Int("max-results", 10, "maximum number of results (1-30000)")
	cmd.Flags().String("sort-by", "", "sort field: "+strings.Join(query.SortByValues, ", "))
	cmd.Flags().String("sort-order", "", "sort order: "+strings.Join(query.SortOrderValues, ", "))
	cmd.Flags().Bool("plain-parens", false, "write ( and ) instead of %28 and %29")
}

// builderFromFlags turns positional query words and flags into a builder.
func builderFromFlags(cmd *cobra.Command, args []string) (*query.Builder, error) {
	style := query.ParensEncoded
	if plain, _ := cmd.Flags().GetBool("plain-parens"); plain {
		style = query.ParensPlain
	}
	b := query.NewBuilder(query.WithEndpoint(cfg.Fetch.Endpoint), query.WithParenStyle(style))

	if err := query.ParseArgs(b, args); err != nil {
		return nil, err
	}

	ids, _ := cmd.Flags().GetStringArray("id")
	for _, id := range ids {
		b.AddID(id)
	}

	start, _ := cmd.Flags().GetInt("start")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	b.SetStart(start).SetMaxResults(maxResults)

	if v, _ := cmd.Flags().GetString("sort-by"); v != "" {
		b.SetSortBy(v)
	}
	if v, _ := cmd.Flags().GetString("sort-order"); v != "" {
		b.SetSortOrder(v)
	}
	return b, b.Err()
}

func serializeQuery(cmd *cobra.Command, args []string) (string, error) {
	b, err := builderFromFlags(cmd, args)
	if err != nil {
		return "", err
	}
	return b.Serialize()
}

// fetchEntries serializes the query and retrieves its entries, through
// the cache unless it is disabled.
func fetchEntries(cmd *cobra.Command, args []string) (string, []types.Entry, error) {
	url, err := serializeQuery(cmd, args)
	if err != nil {
		return "", nil, err
	}

	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	var src feed.Source = feed.NewClient(cfg.Fetch)
	if !cfg.Cache.Disabled {
		store, err := cache.NewStore(cfg.Cache, src)
		if err != nil {
			return "", nil, err
		}
		defer store.Close()
		src = store
	}

	log.Info().Str("url", url).Msg("querying arXiv")
	entries, err := src.Fetch(ctx, url)
	if err != nil {
		return "", nil, err
	}
	log.Info().Int("entries", len(entries)).Msg("retrieved feed")
	return url, entries, nil
}
