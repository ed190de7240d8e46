// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfext

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfPreflight validates the document structure and reports its page count.
// Running this before table extraction turns a corrupt or truncated file
// into a named failure instead of an opaque one from deep inside the
// extraction library.
func pdfPreflight(path string) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading page count: %w", err)
	}
	return pages, nil
}
