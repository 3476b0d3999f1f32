// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fundwatch/internal/crawl"
	"github.com/pdiddy/fundwatch/internal/httputil"
	"github.com/pdiddy/fundwatch/internal/ledger"
	"github.com/pdiddy/fundwatch/pkg/types"
)

const (
	defaultBaseURL      = "https://www.finsmes.com/"
	defaultSaveDir      = "articles"
	defaultRequestDelay = 2 * time.Second
	defaultTimeout      = 15 * time.Second
	defaultMaxRetries   = 3
	defaultBackoff      = 1 * time.Second
	defaultMultiplier   = 2.0
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the listing page and save article artifacts",
	Long: `Crawl fetches the configured listing page, discovers article links,
and saves each article as a text artifact with a metadata header.
Already-crawled URLs recorded in the ledger are skipped. A failed
listing fetch aborts the run; individual article failures are logged
and the run continues.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().String("base-url", "", "article listing page to crawl (default "+defaultBaseURL+")")
	crawlCmd.Flags().String("save-dir", "", "directory for article artifacts (default "+defaultSaveDir+")")
	crawlCmd.Flags().Duration("delay", 0, "politeness delay before each article fetch (default 2s)")
	crawlCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 15s)")
	crawlCmd.Flags().Int("max-retries", 0, "fetch attempts per URL (default 3)")
	crawlCmd.Flags().Int("max-articles", 0, "cap on articles per run (0 = unlimited)")
	crawlCmd.Flags().Bool("no-ledger", false, "disable the crawl ledger (re-crawl everything)")

	rootCmd.AddCommand(crawlCmd)
}

// crawlConfig merges flags over config-file values over defaults.
func crawlConfig(cmd *cobra.Command) types.CrawlConfig {
	cfg := types.CrawlConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:           viper.GetDuration("crawl.timeout"),
			UserAgent:         viper.GetString("crawl.user_agent"),
			MaxRetries:        viper.GetInt("crawl.max_retries"),
			InitialBackoff:    viper.GetDuration("crawl.initial_backoff"),
			BackoffMultiplier: viper.GetFloat64("crawl.backoff_multiplier"),
		},
		BaseURL:      viper.GetString("crawl.base_url"),
		SaveDir:      viper.GetString("crawl.save_dir"),
		RequestDelay: viper.GetDuration("crawl.request_delay"),
		MaxArticles:  viper.GetInt("crawl.max_articles"),
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("save-dir"); v != "" {
		cfg.SaveDir = v
	}
	if v, _ := cmd.Flags().GetDuration("delay"); v > 0 {
		cfg.RequestDelay = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := cmd.Flags().GetInt("max-retries"); v > 0 {
		cfg.MaxRetries = v
	}
	if v, _ := cmd.Flags().GetInt("max-articles"); v > 0 {
		cfg.MaxArticles = v
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = defaultSaveDir
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = defaultRequestDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultBackoff
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = defaultMultiplier
	}
	return cfg
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg := crawlConfig(cmd)

	var store crawl.Ledger
	if noLedger, _ := cmd.Flags().GetBool("no-ledger"); !noLedger {
		s, err := ledger.NewStore(cfg.SaveDir)
		if err != nil {
			return fmt.Errorf("opening crawl ledger: %w", err)
		}
		defer s.Close()
		store = s
	}

	client := httputil.NewClient(cfg.HTTPConfig)
	crawler := crawl.NewCrawler(client, store, cfg, os.Stdout)

	result, err := crawler.Run(cmd.Context())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed", result.Failed)
	}
	return nil
}
