// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-trends CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-trends/internal/secrets"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the configuration resolved before any subcommand runs.
var cfg = types.DefaultConfig()

// rootCmd is the base command for the arxiv-trends CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-trends",
	Short: "Query arXiv and summarize the results",
	Long: `arxiv-trends builds an arXiv API query from search terms and boolean
operators, fetches the result feed, and summarizes it: field collections,
histograms over any entry field, publication trends bucketed by day, month
or year, and word-frequency text for a word-cloud renderer.

Query words are given as positional arguments, for example:

  arxiv-trends trend cat:cs.LG AND "abs:deep learning" --max-results 500

Fetched feeds are cached on disk so repeated analyses do not hit the API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).
			With().Timestamp().Logger()
		ctx := logger.WithContext(cmd.Context())
		cmd.SetContext(ctx)

		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("decoding configuration: %w", err)
		}

		s, err := secrets.Load(ctx, ".secrets/")
		if err != nil {
			return err
		}
		s.Apply(&cfg.Fetch)
		if len(s) > 0 {
			logger.Debug().Int("count", len(s)).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-trends.yaml or ~/.config/arxiv-trends/arxiv-trends.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the on-disk feed cache")

	setDefaults(types.DefaultConfig())
	viper.BindPFlag("cache.disabled", rootCmd.PersistentFlags().Lookup("no-cache"))
}

// setDefaults registers every configuration key with viper so that
// environment variables can override keys absent from the config file.
func setDefaults(d types.Config) {
	viper.SetDefault("fetch.endpoint", d.Fetch.Endpoint)
	viper.SetDefault("fetch.timeout", d.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	viper.SetDefault("fetch.min_interval", d.Fetch.MinInterval)
	viper.SetDefault("fetch.max_retries", d.Fetch.MaxRetries)
	viper.SetDefault("fetch.contact_email", d.Fetch.ContactEmail)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.disabled", d.Cache.Disabled)
	viper.SetDefault("wordcloud.background_color", d.WordCloud.BackgroundColor)
	viper.SetDefault("wordcloud.width", d.WordCloud.Width)
	viper.SetDefault("wordcloud.height", d.WordCloud.Height)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-trends")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-trends"))
		}
	}

	viper.SetEnvPrefix("ARXIV_TRENDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
