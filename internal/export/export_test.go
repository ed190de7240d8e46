// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/warn-extract/pkg/types"
)

func sampleTable() types.TypedTable {
	notice := time.Date(2017, 7, 15, 0, 0, 0, 0, time.UTC)
	return types.TypedTable{
		Columns: []string{"company", "no_of_employees", "notice_date"},
		Rows: [][]types.Value{
			{types.StringValue("Acme, Inc."), types.NumberValue(120), types.DateValue(notice)},
			{types.StringValue("Bolt"), types.Missing(), types.Missing()},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(sampleTable(), dest); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("lines = %d, want 3", len(rows))
	}

	want := [][]string{
		{"company", "no_of_employees", "notice_date"},
		{"Acme, Inc.", "120", "2017-07-15"},
		{"Bolt", "", ""},
	}
	for i, wantRow := range want {
		for j, cell := range wantRow {
			if rows[i][j] != cell {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], cell)
			}
		}
	}
}

func TestWriteJSON(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(sampleTable(), dest); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var recs []map[string]any
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0]["company"] != "Acme, Inc." {
		t.Errorf("company = %v", recs[0]["company"])
	}
	if recs[0]["no_of_employees"] != float64(120) {
		t.Errorf("no_of_employees = %v, want 120", recs[0]["no_of_employees"])
	}
	if recs[0]["notice_date"] != "2017-07-15" {
		t.Errorf("notice_date = %v, want 2017-07-15", recs[0]["notice_date"])
	}
	if v, ok := recs[1]["notice_date"]; !ok || v != nil {
		t.Errorf("missing date = %v, want explicit null", v)
	}
}

func TestWriteYAML(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.yaml")
	if err := WriteYAML(sampleTable(), dest); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var recs []map[string]any
	if err := yaml.Unmarshal(data, &recs); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[1]["company"] != "Bolt" {
		t.Errorf("company = %v, want Bolt", recs[1]["company"])
	}
}

func TestWrite_Dispatch(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name    string
		cfg     types.ExportConfig
		want    string
		wantErr bool
	}{
		{"explicit csv", types.ExportConfig{Format: "csv", OutPath: filepath.Join(tmp, "a.csv")}, filepath.Join(tmp, "a.csv"), false},
		{"default format", types.ExportConfig{OutPath: filepath.Join(tmp, "b.csv")}, filepath.Join(tmp, "b.csv"), false},
		{"json", types.ExportConfig{Format: "json", OutPath: filepath.Join(tmp, "c.json")}, filepath.Join(tmp, "c.json"), false},
		{"yaml", types.ExportConfig{Format: "yaml", OutPath: filepath.Join(tmp, "d.yaml")}, filepath.Join(tmp, "d.yaml"), false},
		{"unsupported", types.ExportConfig{Format: "xlsx", OutPath: filepath.Join(tmp, "e.xlsx")}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, err := Write(sampleTable(), "notices.pdf", tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if dest != tt.want {
				t.Errorf("dest = %q, want %q", dest, tt.want)
			}
			if _, err := os.Stat(dest); err != nil {
				t.Errorf("output not written: %v", err)
			}
		})
	}
}

func TestDefaultOutPath(t *testing.T) {
	tests := []struct {
		source string
		format string
		want   string
	}{
		{"/data/warn-notices.pdf", "csv", "warn-notices.csv"},
		{"https://example.com/files/2017.pdf?rev=3", "json", "2017.json"},
		{"notices.pdf", "yaml", "notices.yaml"},
	}
	for _, tt := range tests {
		if got := DefaultOutPath(tt.source, tt.format); got != tt.want {
			t.Errorf("DefaultOutPath(%q, %q) = %q, want %q", tt.source, tt.format, got, tt.want)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.yaml")
	run := types.Run{
		Source:    "notices.pdf",
		PageCount: 3,
		Fragments: []types.FragmentShape{
			{Page: 0, Rows: 5, Columns: 8},
			{Page: 1, Rows: 48, Columns: 8},
			{Page: 2, Rows: 10, Columns: 8},
		},
		RowCount:    62,
		ExtractedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}

	if err := WriteManifest(run, dest); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var got types.Run
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}
	if got.RowCount != 62 || got.PageCount != 3 || len(got.Fragments) != 3 {
		t.Errorf("manifest round trip = %+v", got)
	}
}
