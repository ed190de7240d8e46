// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// defaultDateLayout is month/day/4-digit-year, the layout WARN notice
// listings use (e.g. "07/15/2017").
const defaultDateLayout = "01/02/2006"

// Coerce converts the designated columns of an all-string table to dates
// and numbers. It is total over cell values: a value that does not parse
// becomes the missing marker, never an error, because one bad date in 400
// rows should not discard the other 399. The only failure mode is
// structural: a designated column absent from the table returns an
// UnknownColumnError.
func Coerce(table types.Table, cfg types.CoerceConfig) (types.TypedTable, error) {
	layout := cfg.DateLayout
	if layout == "" {
		layout = defaultDateLayout
	}

	dateIdx, err := columnIndexes(table, cfg.DateColumns)
	if err != nil {
		return types.TypedTable{}, err
	}
	numIdx, err := columnIndexes(table, cfg.NumericColumns)
	if err != nil {
		return types.TypedTable{}, err
	}

	rows := make([][]types.Value, len(table.Rows))
	for i, row := range table.Rows {
		typed := make([]types.Value, len(row))
		for j, cell := range row {
			switch {
			case dateIdx[j]:
				typed[j] = coerceDate(cell, layout)
			case numIdx[j]:
				typed[j] = coerceNumber(cell)
			default:
				typed[j] = types.StringValue(cell)
			}
		}
		rows[i] = typed
	}

	return types.TypedTable{
		Columns: append([]string(nil), table.Columns...),
		Rows:    rows,
	}, nil
}

// columnIndexes maps the named columns onto table positions. A name with
// no matching column is a configuration error.
func columnIndexes(table types.Table, names []string) (map[int]bool, error) {
	idx := make(map[int]bool, len(names))
	for _, name := range names {
		i := table.ColumnIndex(name)
		if i < 0 {
			return nil, &UnknownColumnError{Column: name}
		}
		idx[i] = true
	}
	return idx, nil
}

func coerceDate(cell, layout string) types.Value {
	t, err := time.Parse(layout, strings.TrimSpace(cell))
	if err != nil {
		return types.Missing()
	}
	return types.DateValue(t)
}

func coerceNumber(cell string) types.Value {
	// Head counts sometimes carry thousands separators.
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return types.Missing()
	}
	return types.NumberValue(n)
}
