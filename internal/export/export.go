// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes the final typed table. CSV is the primary
// format; JSON and YAML exports mirror it for downstream tooling, and each
// run can leave a YAML manifest describing what was extracted.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// Write serializes the table in the configured format and returns the
// destination path. An empty OutPath derives a filename from source in the
// working directory; an empty Format means CSV.
func Write(t types.TypedTable, source string, cfg types.ExportConfig) (string, error) {
	format := cfg.Format
	if format == "" {
		format = "csv"
	}

	dest := cfg.OutPath
	if dest == "" {
		dest = DefaultOutPath(source, format)
	}

	var err error
	switch format {
	case "csv":
		err = WriteCSV(t, dest)
	case "json":
		err = WriteJSON(t, dest)
	case "yaml":
		err = WriteYAML(t, dest)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return dest, nil
}

// DefaultOutPath derives an output filename from the source's base name,
// in the process working directory.
func DefaultOutPath(source, format string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." || base == "/" {
		base = "table"
	}
	return base + "." + format
}

// WriteCSV writes the table as standard CSV: a header row of column names,
// one line per record. Dates render as 2006-01-02, numbers in minimal
// decimal form, missing values as empty fields; quoting follows
// encoding/csv rules.
func WriteCSV(t types.TypedTable, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, v := range row {
			record[j] = v.Render()
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

// WriteJSON writes the table as an indented JSON array of records, one
// object per row, with nulls for missing values.
func WriteJSON(t types.TypedTable, dest string) error {
	data, err := json.MarshalIndent(records(t), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(dest, append(data, '\n'), 0o644)
}

// WriteYAML writes the table as a YAML sequence of records.
func WriteYAML(t types.TypedTable, dest string) error {
	data, err := yaml.Marshal(records(t))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(dest, data, 0o644)
}

// records converts rows into column→value maps. Dates become ISO strings,
// numbers stay numeric, missing values become nil.
func records(t types.TypedTable) []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for j, col := range t.Columns {
			v := row[j]
			switch v.Kind {
			case types.ValueDate:
				rec[col] = v.Date.Format("2006-01-02")
			case types.ValueNumber:
				rec[col] = v.Num
			case types.ValueMissing:
				rec[col] = nil
			default:
				rec[col] = v.Str
			}
		}
		out[i] = rec
	}
	return out
}

// WriteManifest writes the YAML run manifest describing the extraction:
// source, page count, fragment shapes, and final row count.
func WriteManifest(run types.Run, dest string) error {
	data, err := yaml.Marshal(&run)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(dest, data, 0o644)
}
