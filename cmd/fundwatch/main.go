// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fundwatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fundwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "fundwatch",
	Short: "Crawl funding-news articles and extract structured funding data",
	Long: `fundwatch is a two-stage content pipeline. The crawl stage discovers
article links on a funding-news listing page, fetches each article with
retry and a politeness delay, and saves it as a self-describing text
artifact. The extract stage reads those artifacts, applies pattern
heuristics for company name, amount, round type, and dates, and writes
the results as a CSV dataset.

Each stage is a subcommand: crawl and extract.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fundwatch.yaml or ~/.config/fundwatch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fundwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fundwatch"))
		}
	}

	viper.SetEnvPrefix("FUNDWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
