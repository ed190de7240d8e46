// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the warn-extract CLI: extract a
// layoff-notice table from a PDF, reconcile its per-page fragments into one
// typed table, and export it.
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

// rootCmd is the base command for the warn-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "warn-extract",
	Short: "Extract layoff-notice tables from PDFs into typed CSV",
	Long: `warn-extract reads a WARN layoff-notice listing from a PDF (local file
or URL), stitches the per-page table fragments into a single flat table,
coerces the date and head-count columns, and writes the result as CSV,
JSON, or YAML. Runs can be archived to a local SQLite database and
summarized later.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./warn-extract.yaml or ~/.config/warn-extract/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("warn-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "warn-extract"))
		}
	}

	viper.SetEnvPrefix("WARN_EXTRACT")
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
