// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/warn-extract/internal/pdfext"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <source>",
	Short: "Show the per-page table fragments detected in a PDF",
	Long: `Pages runs extraction only and prints the shape of every detected
table fragment, without assembling or exporting anything. Use it to check
whether a source will pass the uniform-column-count requirement before
running a full extract.`,
	Args: cobra.ExactArgs(1),
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().Duration("timeout", 0, "HTTP request timeout for remote sources (default 60s)")
	pagesCmd.Flags().String("work-dir", "", "directory for downloaded PDFs (default: system temp)")
	pagesCmd.Flags().Bool("keep-download", false, "keep the downloaded PDF after extraction")

	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	source := args[0]
	cfg := extractConfigFromFlags(cmd)

	client := &http.Client{Timeout: cfg.Timeout}
	extractor := &pdfext.TabulaExtractor{Warnings: os.Stderr}

	result, err := pdfext.ExtractSource(cmd.Context(), extractor, client, source, cfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d page(s), %d table fragment(s)\n\n", source, result.PageCount, len(result.Shapes))
	fmt.Printf("%-10s %8s %8s\n", "FRAGMENT", "ROWS", "COLUMNS")
	for _, shape := range result.Shapes {
		fmt.Printf("%-10d %8d %8d\n", shape.Page, shape.Rows, shape.Columns)
	}
	return nil
}
