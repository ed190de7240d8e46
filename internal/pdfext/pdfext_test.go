// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfext

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// fakeExtractor implements Extractor with canned fragments or an error.
type fakeExtractor struct {
	fragments []types.PageFragment
	err       error
	gotPath   string
}

func (f *fakeExtractor) ExtractPages(path string) ([]types.PageFragment, error) {
	f.gotPath = path
	if f.err != nil {
		return nil, f.err
	}
	return f.fragments, nil
}

// stubPreflight replaces the pdfcpu preflight for the duration of a test.
func stubPreflight(t *testing.T, pages int, err error) {
	t.Helper()
	orig := preflightFile
	preflightFile = func(string) (int, error) { return pages, err }
	t.Cleanup(func() { preflightFile = orig })
}

func writeFakePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notices.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleFragments() []types.PageFragment {
	return []types.PageFragment{
		{Page: 0, Cells: [][]string{{"Company", "Notice Date"}, {"Acme", "07/15/2017"}}},
		{Page: 1, Cells: [][]string{{"Bolt", "08/01/2017"}}},
	}
}

func TestExtractSource_LocalFile(t *testing.T) {
	stubPreflight(t, 2, nil)
	path := writeFakePDF(t)
	ex := &fakeExtractor{fragments: sampleFragments()}

	var log bytes.Buffer
	result, err := ExtractSource(context.Background(), ex, http.DefaultClient, path, types.ExtractConfig{}, &log)
	if err != nil {
		t.Fatalf("ExtractSource: %v", err)
	}

	if ex.gotPath != path {
		t.Errorf("extractor path = %q, want %q", ex.gotPath, path)
	}
	if result.PageCount != 2 {
		t.Errorf("page count = %d, want 2", result.PageCount)
	}
	if len(result.Fragments) != 2 {
		t.Fatalf("fragments = %d, want 2", len(result.Fragments))
	}
	wantShapes := []types.FragmentShape{
		{Page: 0, Rows: 2, Columns: 2},
		{Page: 1, Rows: 1, Columns: 2},
	}
	for i, want := range wantShapes {
		if result.Shapes[i] != want {
			t.Errorf("shape %d = %+v, want %+v", i, result.Shapes[i], want)
		}
	}
	if !strings.Contains(log.String(), "2 table fragment(s)") {
		t.Errorf("log = %q, want fragment count", log.String())
	}
}

func TestExtractSource_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (Extractor, string)
		contains string
	}{
		{
			name: "missing local file",
			setup: func(t *testing.T) (Extractor, string) {
				stubPreflight(t, 0, nil)
				return &fakeExtractor{}, filepath.Join(t.TempDir(), "absent.pdf")
			},
			contains: "absent.pdf",
		},
		{
			name: "preflight failure",
			setup: func(t *testing.T) (Extractor, string) {
				stubPreflight(t, 0, errors.New("invalid PDF: bad xref"))
				return &fakeExtractor{}, writeFakePDF(t)
			},
			contains: "invalid PDF",
		},
		{
			name: "extractor failure",
			setup: func(t *testing.T) (Extractor, string) {
				stubPreflight(t, 1, nil)
				return &fakeExtractor{err: errors.New("unsupported encoding")}, writeFakePDF(t)
			},
			contains: "unsupported encoding",
		},
		{
			name: "no tables detected",
			setup: func(t *testing.T) (Extractor, string) {
				stubPreflight(t, 1, nil)
				return &fakeExtractor{}, writeFakePDF(t)
			},
			contains: "no table fragments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, source := tt.setup(t)

			var log bytes.Buffer
			_, err := ExtractSource(context.Background(), ex, http.DefaultClient, source, types.ExtractConfig{}, &log)

			var extractErr *ExtractionError
			if !errors.As(err, &extractErr) {
				t.Fatalf("error = %v, want ExtractionError", err)
			}
			if extractErr.Source != source {
				t.Errorf("error source = %q, want %q", extractErr.Source, source)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestExtractSource_RemoteDownload(t *testing.T) {
	stubPreflight(t, 1, nil)

	const body = "%PDF-1.4 remote"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/pdf" {
			t.Errorf("Accept = %q, want application/pdf", got)
		}
		if got := r.Header.Get("User-Agent"); got != "warn-extract/test" {
			t.Errorf("User-Agent = %q, want warn-extract/test", got)
		}
		w.Write([]byte(body))
	}))
	defer ts.Close()

	workDir := t.TempDir()
	cfg := types.ExtractConfig{
		HTTPConfig:   types.HTTPConfig{UserAgent: "warn-extract/test"},
		WorkDir:      workDir,
		KeepDownload: true,
	}
	ex := &fakeExtractor{fragments: sampleFragments()}

	var log bytes.Buffer
	result, err := ExtractSource(context.Background(), ex, ts.Client(), ts.URL+"/data/notices.pdf", cfg, &log)
	if err != nil {
		t.Fatalf("ExtractSource: %v", err)
	}
	if len(result.Fragments) != 2 {
		t.Errorf("fragments = %d, want 2", len(result.Fragments))
	}

	// KeepDownload leaves the fetched PDF in the work directory.
	saved := filepath.Join(workDir, "notices.pdf")
	data, err := os.ReadFile(saved)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != body {
		t.Errorf("download content = %q, want %q", data, body)
	}
	if !strings.Contains(log.String(), "downloading:") {
		t.Errorf("log = %q, want download notice", log.String())
	}
}

func TestExtractSource_RemoteHTTPError(t *testing.T) {
	stubPreflight(t, 1, nil)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	var log bytes.Buffer
	_, err := ExtractSource(context.Background(), &fakeExtractor{}, ts.Client(), ts.URL+"/gone.pdf", types.ExtractConfig{WorkDir: t.TempDir()}, &log)

	var extractErr *ExtractionError
	if !errors.As(err, &extractErr) {
		t.Fatalf("error = %v, want ExtractionError", err)
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error = %q, want HTTP 404", err.Error())
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/WARN-notices.pdf", "WARN-notices.pdf"},
		{"https://example.com/files/report", "report.pdf"},
		{"https://example.com/doc.pdf?version=2", "doc.pdf"},
		{"https://example.com/reports/", "reports.pdf"},
	}
	for _, tt := range tests {
		if got := downloadName(tt.url); got != tt.want {
			t.Errorf("downloadName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
