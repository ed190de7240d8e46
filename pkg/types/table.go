// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the warn-extract pipeline:
// page fragments as returned by PDF extraction, the all-string intermediate
// table, the typed output table, and the configuration structs.
package types

import (
	"strconv"
	"time"
)

// PageFragment is the raw table content extracted from one page of a source
// document: an ordered grid of string cells. Fragments are immutable after
// extraction; every cell is a string because the extraction layer is typeless.
type PageFragment struct {
	// Page is the 0-based index of the fragment in extraction order.
	Page int `json:"page" yaml:"page"`

	// Cells holds the grid, outer slice rows, inner slice columns.
	Cells [][]string `json:"cells" yaml:"cells"`
}

// RowCount returns the number of rows in the fragment.
func (f PageFragment) RowCount() int {
	return len(f.Cells)
}

// ColumnCount returns the width of the fragment's first row, or 0 for an
// empty fragment. Rows deviating from this width are caught during
// normalization, not here.
func (f PageFragment) ColumnCount() int {
	if len(f.Cells) == 0 {
		return 0
	}
	return len(f.Cells[0])
}

// ColumnHeader is the ordered list of column names for the final table.
// It is resolved once, from the first row of the first fragment.
type ColumnHeader []string

// NamedFragment is a PageFragment with the resolved header attached. Cell
// values are unchanged; the first fragment still carries its header row as
// data at this stage.
type NamedFragment struct {
	Page   int          `json:"page" yaml:"page"`
	Header ColumnHeader `json:"header" yaml:"header"`
	Cells  [][]string   `json:"cells" yaml:"cells"`
}

// Table is the assembled, all-string table: cleaned column names plus every
// data row from every page in reading order. No type coercion has happened.
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// RowCount returns the number of data rows.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1 if absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ValueKind discriminates the variants of a typed cell value.
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueDate    ValueKind = "date"
	ValueNumber  ValueKind = "number"
	ValueMissing ValueKind = "missing"
)

// Value is one typed cell: a string, a calendar date, a number, or an
// explicit missing marker. Missing is distinct from the empty string; it
// records that a designated column held a value that did not parse.
type Value struct {
	Kind ValueKind `json:"kind" yaml:"kind"`
	Str  string    `json:"str,omitempty" yaml:"str,omitempty"`
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Num  float64   `json:"num,omitempty" yaml:"num,omitempty"`
}

// StringValue wraps a plain string cell.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// DateValue wraps a parsed calendar date.
func DateValue(t time.Time) Value {
	return Value{Kind: ValueDate, Date: t}
}

// NumberValue wraps a parsed number.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// Missing returns the missing-value marker.
func Missing() Value {
	return Value{Kind: ValueMissing}
}

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// Render returns the value in export form: dates as 2006-01-02, numbers in
// minimal decimal notation, missing as the empty string.
func (v Value) Render() string {
	switch v.Kind {
	case ValueDate:
		return v.Date.Format("2006-01-02")
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueMissing:
		return ""
	default:
		return v.Str
	}
}

// TypedTable is the final pipeline output: the assembled table with
// designated columns coerced to dates or numbers and everything else left
// as strings. Same row count and column set as the Table it came from.
type TypedTable struct {
	Columns []string  `json:"columns" yaml:"columns"`
	Rows    [][]Value `json:"rows" yaml:"rows"`
}

// RowCount returns the number of records.
func (t TypedTable) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1 if absent.
func (t TypedTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
