// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fundwatch/internal/dataset"
	"github.com/pdiddy/fundwatch/pkg/types"
)

const (
	defaultSourceDir = "articles"
	defaultOutputCSV = "extracted_funding_data.csv"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract funding fields from saved artifacts into a CSV",
	Long: `Extract reads every article artifact in the source directory, applies
the funding-field heuristics (company name, amount, round type, dates,
source URL), and writes one CSV row per artifact. Fields with no match
hold the value "undefined".`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("source-dir", "", "directory of article artifacts (default "+defaultSourceDir+")")
	extractCmd.Flags().String("output", "", "output CSV path (default "+defaultOutputCSV+")")

	rootCmd.AddCommand(extractCmd)
}

func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	cfg := types.ExtractionConfig{
		SourceDir: viper.GetString("extraction.source_dir"),
		OutputCSV: viper.GetString("extraction.output_csv"),
	}
	if v, _ := cmd.Flags().GetString("source-dir"); v != "" {
		cfg.SourceDir = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputCSV = v
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = defaultSourceDir
	}
	if cfg.OutputCSV == "" {
		cfg.OutputCSV = defaultOutputCSV
	}
	return cfg
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(cmd)

	fmt.Fprintln(os.Stdout, "[START] Extracting funding info from articles...")

	records, err := dataset.Build(cfg.SourceDir, os.Stdout)
	if err != nil {
		return err
	}
	return dataset.WriteCSV(records, cfg.OutputCSV, os.Stdout)
}
