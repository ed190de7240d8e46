// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline reconciles per-page table fragments into a single typed
// table. The stages run in a strict linear order: resolve the header from
// page one, normalize every fragment against it, concatenate the fragments
// into one all-string table (dropping the embedded header row), and coerce
// the designated columns to dates and numbers. The first structural error
// aborts the run; per-value parse failures never do.
package pipeline

import (
	"github.com/pdiddy/warn-extract/pkg/types"
)

// ResolveHeader derives the canonical column names from the first row of
// the first fragment, cell for cell. It performs no cleansing; raw names
// keep their whitespace and punctuation until assembly cleans them.
func ResolveHeader(fragments []types.PageFragment) (types.ColumnHeader, error) {
	if len(fragments) == 0 {
		return nil, ErrEmptyInput
	}
	first := fragments[0]
	if first.RowCount() == 0 {
		return nil, ErrEmptyFragment
	}

	header := make(types.ColumnHeader, len(first.Cells[0]))
	copy(header, first.Cells[0])
	return header, nil
}

// Normalize attaches the resolved header to one fragment. Every row of the
// fragment must have exactly len(header) cells; any deviation, including a
// ragged row inside an otherwise well-shaped fragment, fails the run with a
// ColumnCountMismatchError carrying the fragment's page index. Cell values
// are unchanged, and the first fragment still carries its header-as-data
// row after this stage.
func Normalize(f types.PageFragment, header types.ColumnHeader) (types.NamedFragment, error) {
	for _, row := range f.Cells {
		if len(row) != len(header) {
			return types.NamedFragment{}, &ColumnCountMismatchError{
				Page:     f.Page,
				Expected: len(header),
				Actual:   len(row),
			}
		}
	}

	return types.NamedFragment{
		Page:   f.Page,
		Header: header,
		Cells:  f.Cells,
	}, nil
}

// Assemble concatenates the fragments' rows in page order, preserving
// intra-page row order, and drops exactly one row: row 0 of the concatenated
// table, where page one's header masquerades as data. Column names are
// cleaned into machine-friendly form. Rows are copied, so the output does
// not alias the fragments.
func Assemble(fragments []types.NamedFragment) (types.Table, error) {
	if len(fragments) == 0 {
		return types.Table{}, ErrEmptyAssembly
	}

	header := fragments[0].Header
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = CleanName(name)
	}

	var rows [][]string
	for _, f := range fragments {
		for _, row := range f.Cells {
			rows = append(rows, append([]string(nil), row...))
		}
	}

	// Row 0 of the concatenated table is the header row from page one.
	// Dropping it here, after concatenation, keeps the removal correct
	// even if fragment boundaries shift.
	if len(rows) > 0 {
		rows = rows[1:]
	}

	return types.Table{Columns: columns, Rows: rows}, nil
}

// Run executes the full reconciliation: header resolution, per-fragment
// normalization, assembly, and type coercion. The first error aborts and is
// returned with the failing stage's context attached.
func Run(fragments []types.PageFragment, cfg types.CoerceConfig) (types.TypedTable, error) {
	header, err := ResolveHeader(fragments)
	if err != nil {
		return types.TypedTable{}, err
	}

	named := make([]types.NamedFragment, 0, len(fragments))
	for _, f := range fragments {
		nf, err := Normalize(f, header)
		if err != nil {
			return types.TypedTable{}, err
		}
		named = append(named, nf)
	}

	table, err := Assemble(named)
	if err != nil {
		return types.TypedTable{}, err
	}

	return Coerce(table, cfg)
}
