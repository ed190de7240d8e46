// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfext

import (
	"fmt"
	"io"

	"github.com/tsawler/tabula"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// TabulaExtractor detects and extracts tables with the tabula library.
// Each detected table becomes one fragment; fragments are numbered in
// document order across pages, matching the 0-based page index the
// pipeline reports in shape-mismatch errors.
type TabulaExtractor struct {
	// Warnings, when non-nil, receives non-fatal extraction warnings.
	Warnings io.Writer
}

// ExtractPages runs full-document layout analysis and collects every
// detected table as a grid of cell text.
func (e *TabulaExtractor) ExtractPages(path string) ([]types.PageFragment, error) {
	doc, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if len(warnings) > 0 && e.Warnings != nil {
		fmt.Fprintln(e.Warnings, tabula.FormatWarnings(warnings))
	}

	var fragments []types.PageFragment
	for _, page := range doc.Pages {
		for _, table := range page.ExtractTables() {
			cells := make([][]string, len(table.Rows))
			for i, row := range table.Rows {
				cells[i] = make([]string, len(row))
				for j, cell := range row {
					cells[i][j] = cell.Text
				}
			}
			fragments = append(fragments, types.PageFragment{
				Page:  len(fragments),
				Cells: cells,
			})
		}
	}
	return fragments, nil
}
