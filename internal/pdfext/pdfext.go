// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfext turns a PDF source (local path or URL) into per-page table
// fragments. Table detection itself is delegated to an extraction library
// behind the Extractor interface; this package handles source resolution,
// download, document preflight, and the error boundary in front of the
// reconciliation pipeline.
package pdfext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// Extractor returns one fragment per table region detected in the document,
// in page order. Cell extraction quality is entirely the implementation's
// responsibility.
type Extractor interface {
	ExtractPages(path string) ([]types.PageFragment, error)
}

// ExtractionError wraps any failure between the source argument and the
// fragment list: unreachable URL, corrupt file, unsupported PDF, or a
// document with no detectable tables. It aborts the run before the
// reconciliation pipeline starts.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Result is the extraction outcome handed to the pipeline: the fragments
// plus the diagnostics recorded in run manifests.
type Result struct {
	Fragments []types.PageFragment
	PageCount int
	Shapes    []types.FragmentShape
}

// preflightFile validates the document and reports its page count before
// table extraction runs. Tests override this to avoid needing real PDFs.
var preflightFile = pdfPreflight

// isRemote reports whether the source is an http(s) URL rather than a
// local path.
func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ExtractSource resolves a source to a local PDF (downloading when remote),
// validates it, and runs table extraction. Progress goes to w. All failures
// come back as an *ExtractionError naming the original source.
func ExtractSource(ctx context.Context, ex Extractor, client *http.Client, source string, cfg types.ExtractConfig, w io.Writer) (*Result, error) {
	path := source

	if isRemote(source) {
		fmt.Fprintf(w, "downloading: %s\n", source)
		local, err := fetchPDF(ctx, client, source, cfg)
		if err != nil {
			return nil, &ExtractionError{Source: source, Err: err}
		}
		if !cfg.KeepDownload {
			defer os.Remove(local)
		}
		path = local
	} else if _, err := os.Stat(path); err != nil {
		return nil, &ExtractionError{Source: source, Err: err}
	}

	pages, err := preflightFile(path)
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: err}
	}

	fragments, err := ex.ExtractPages(path)
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: err}
	}
	if len(fragments) == 0 {
		return nil, &ExtractionError{Source: source, Err: errors.New("no table fragments detected")}
	}

	shapes := make([]types.FragmentShape, len(fragments))
	for i, f := range fragments {
		shapes[i] = types.FragmentShape{
			Page:    f.Page,
			Rows:    f.RowCount(),
			Columns: f.ColumnCount(),
		}
	}

	fmt.Fprintf(w, "extracted %d table fragment(s) from %d page(s)\n", len(fragments), pages)

	return &Result{
		Fragments: fragments,
		PageCount: pages,
		Shapes:    shapes,
	}, nil
}
