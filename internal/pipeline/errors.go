// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means the extractor returned no fragments at all,
	// so there is nothing to resolve a header from.
	ErrEmptyInput = errors.New("no page fragments to process")

	// ErrEmptyFragment means the first fragment has zero rows, so no
	// header row exists.
	ErrEmptyFragment = errors.New("first page fragment has no rows")

	// ErrEmptyAssembly means assembly was asked to concatenate zero
	// fragments.
	ErrEmptyAssembly = errors.New("no fragments to assemble")
)

// ColumnCountMismatchError reports a page fragment whose shape disagrees
// with the resolved header. The run aborts rather than padding or
// truncating: silent reconciliation would misalign data into the wrong
// named column.
type ColumnCountMismatchError struct {
	// Page is the 0-based index of the offending fragment.
	Page int

	Expected int
	Actual   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("page %d: column count %d does not match header length %d",
		e.Page, e.Actual, e.Expected)
}

// UnknownColumnError reports a coercion request for a column that is not in
// the assembled table. This is a configuration error, not a data error, and
// is fatal.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q in coercion config", e.Column)
}
