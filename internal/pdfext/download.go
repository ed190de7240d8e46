// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/warn-extract/internal/httputil"
	"github.com/pdiddy/warn-extract/pkg/types"
)

// fetchPDF downloads url into cfg.WorkDir (or the system temp directory)
// and returns the local path. The body is written to a temporary file and
// renamed on success, so a partial download never looks like a PDF.
func fetchPDF(ctx context.Context, client *http.Client, url string, cfg types.ExtractConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	dir := cfg.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating work directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".warn-extract-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing download: %w", err)
	}

	dest := filepath.Join(dir, downloadName(url))
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming download: %w", err)
	}
	return dest, nil
}

// downloadName derives a .pdf filename from the last URL path segment,
// falling back to a fixed name for opaque URLs.
func downloadName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	base := filepath.Base(url)
	if base == "." || base == "/" || base == "" {
		base = "download"
	}
	if filepath.Ext(base) != ".pdf" {
		base += ".pdf"
	}
	return base
}
