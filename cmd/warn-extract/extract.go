// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/warn-extract/internal/export"
	"github.com/pdiddy/warn-extract/internal/pdfext"
	"github.com/pdiddy/warn-extract/internal/pipeline"
	"github.com/pdiddy/warn-extract/internal/store"
	"github.com/pdiddy/warn-extract/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "warn-extract/0.1"
	defaultDBPath    = "warn-extract.db"
)

var extractCmd = &cobra.Command{
	Use:   "extract <source>",
	Short: "Extract a notice table from a PDF and export it",
	Long: `Extract pulls the layoff-notice table out of a PDF source (local path
or http(s) URL), reconciles the per-page fragments against the header
resolved from page one, coerces the designated date and numeric columns,
and writes the table in the chosen format. A shape mismatch on any page
aborts the run before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("out", "", "output file (default: derived from the source name)")
	extractCmd.Flags().String("format", "csv", "output format: csv, json, or yaml")
	extractCmd.Flags().String("date-layout", "", `source date layout in Go time format (default "01/02/2006")`)
	extractCmd.Flags().StringSlice("date-columns", nil, "cleaned names of date columns (default notice_date,effective_date,received_date)")
	extractCmd.Flags().StringSlice("numeric-columns", nil, "cleaned names of numeric columns (default no_of_employees)")
	extractCmd.Flags().Duration("timeout", 0, "HTTP request timeout for remote sources (default 60s)")
	extractCmd.Flags().String("work-dir", "", "directory for downloaded PDFs (default: system temp)")
	extractCmd.Flags().Bool("keep-download", false, "keep the downloaded PDF after extraction")
	extractCmd.Flags().Bool("archive", false, "save the run to the SQLite archive")
	extractCmd.Flags().String("db", "", "archive database path (default warn-extract.db)")
	extractCmd.Flags().String("manifest", "", "write a YAML run manifest to this path")

	rootCmd.AddCommand(extractCmd)
}

// coerceConfigFromFlags builds the coercion settings, starting from the
// WARN defaults and overriding from flags.
func coerceConfigFromFlags(cmd *cobra.Command) types.CoerceConfig {
	cfg := types.DefaultCoerceConfig()
	if cols, _ := cmd.Flags().GetStringSlice("date-columns"); len(cols) > 0 {
		cfg.DateColumns = cols
	}
	if cols, _ := cmd.Flags().GetStringSlice("numeric-columns"); len(cols) > 0 {
		cfg.NumericColumns = cols
	}
	if layout, _ := cmd.Flags().GetString("date-layout"); layout != "" {
		cfg.DateLayout = layout
	}
	return cfg
}

func extractConfigFromFlags(cmd *cobra.Command) types.ExtractConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	workDir, _ := cmd.Flags().GetString("work-dir")
	keep, _ := cmd.Flags().GetBool("keep-download")

	return types.ExtractConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		WorkDir:      workDir,
		KeepDownload: keep,
	}
}

func dbPathFromFlags(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		return path
	}
	if path := viper.GetString("db_path"); path != "" {
		return path
	}
	return defaultDBPath
}

func runExtract(cmd *cobra.Command, args []string) error {
	source := args[0]

	extractCfg := extractConfigFromFlags(cmd)
	coerceCfg := coerceConfigFromFlags(cmd)

	outPath, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	archive, _ := cmd.Flags().GetBool("archive")

	client := &http.Client{Timeout: extractCfg.Timeout}
	extractor := &pdfext.TabulaExtractor{Warnings: os.Stderr}

	result, err := pdfext.ExtractSource(cmd.Context(), extractor, client, source, extractCfg, os.Stderr)
	if err != nil {
		return err
	}

	typed, err := pipeline.Run(result.Fragments, coerceCfg)
	if err != nil {
		return err
	}

	dest, err := export.Write(typed, source, types.ExportConfig{
		Format:  format,
		OutPath: outPath,
	})
	if err != nil {
		return err
	}

	run := types.Run{
		Source:      source,
		PageCount:   result.PageCount,
		Fragments:   result.Shapes,
		RowCount:    typed.RowCount(),
		ExtractedAt: time.Now().UTC(),
	}

	if manifestPath != "" {
		if err := export.WriteManifest(run, manifestPath); err != nil {
			return err
		}
	}

	if archive {
		s, err := store.NewStore(types.StoreConfig{DBPath: dbPathFromFlags(cmd)})
		if err != nil {
			return err
		}
		defer s.Close()

		runID, err := s.SaveRun(cmd.Context(), run, typed)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archived as run %d\n", runID)
	}

	fmt.Printf("wrote %d record(s) to %s\n", typed.RowCount(), dest)
	return nil
}
