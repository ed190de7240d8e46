// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FragmentShape records the dimensions of one extracted page fragment,
// for diagnostics and run manifests.
type FragmentShape struct {
	Page    int `json:"page" yaml:"page"`
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

// Run describes a single completed extraction run: where the table came
// from, what the extractor saw, and what the pipeline produced.
type Run struct {
	// Source is the original path or URL the PDF was read from.
	Source string `json:"source" yaml:"source"`

	// PageCount is the document page count reported by preflight.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Fragments lists the shape of each extracted table fragment.
	Fragments []FragmentShape `json:"fragments" yaml:"fragments"`

	// RowCount is the number of records in the final table.
	RowCount int `json:"row_count" yaml:"row_count"`

	// ExtractedAt is when the run completed.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}

// RunInfo is a stored run as listed from the archive.
type RunInfo struct {
	ID          int64     `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	RowCount    int       `json:"row_count" yaml:"row_count"`
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}

// RunSummary aggregates a stored run's records: how many notices, how many
// employees affected, how many distinct companies, and the notice-date span.
// Date bounds are nil when the run has no parseable notice dates.
type RunSummary struct {
	RunID          int64      `json:"run_id" yaml:"run_id"`
	Records        int        `json:"records" yaml:"records"`
	TotalEmployees float64    `json:"total_employees" yaml:"total_employees"`
	Companies      int        `json:"companies" yaml:"companies"`
	EarliestNotice *time.Time `json:"earliest_notice,omitempty" yaml:"earliest_notice,omitempty"`
	LatestNotice   *time.Time `json:"latest_notice,omitempty" yaml:"latest_notice,omitempty"`
}
