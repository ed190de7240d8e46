// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that fetch remote sources.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "warn-extract/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ExtractConfig holds settings for the PDF extraction stage.
type ExtractConfig struct {
	HTTPConfig `yaml:",inline"`

	// WorkDir is where remote PDFs are downloaded before extraction.
	// Empty means the system temp directory.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// KeepDownload leaves the downloaded PDF on disk after extraction
	// instead of removing it.
	KeepDownload bool `json:"keep_download" yaml:"keep_download"`
}

// CoerceConfig designates which columns the coercion stage converts and how
// dates are laid out in the source document. Column names are the cleaned
// (lowercase, underscored) forms.
type CoerceConfig struct {
	// DateColumns are coerced from string to calendar date.
	DateColumns []string `json:"date_columns" yaml:"date_columns"`

	// NumericColumns are coerced from string to number.
	NumericColumns []string `json:"numeric_columns" yaml:"numeric_columns"`

	// DateLayout is the Go time layout the source dates use
	// (default "01/02/2006", i.e. month/day/4-digit year).
	DateLayout string `json:"date_layout" yaml:"date_layout"`
}

// DefaultCoerceConfig returns the column designations for WARN notice
// tables: three date columns and one head-count column.
func DefaultCoerceConfig() CoerceConfig {
	return CoerceConfig{
		DateColumns:    []string{"notice_date", "effective_date", "received_date"},
		NumericColumns: []string{"no_of_employees"},
		DateLayout:     "01/02/2006",
	}
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Format selects the output encoding: csv, json, or yaml.
	Format string `json:"format" yaml:"format"`

	// OutPath is the destination file. Empty means a name derived from
	// the source, in the working directory.
	OutPath string `json:"out_path" yaml:"out_path"`

	// ManifestPath, when set, is where the YAML run manifest is written.
	ManifestPath string `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
}

// StoreConfig holds settings for the run archive.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "warn-extract.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Coerce  CoerceConfig  `json:"coerce" yaml:"coerce"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
