package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

func asRecord(v any) (map[string]any, bool) {
	rec, ok := v.(map[string]any)
	return rec, ok
}

// HasSeries reports whether col is a declared column.
func (d *DataFrame) HasSeries(col string) bool {
	for _, c := range d.cols() {
		if c == col {
			return true
		}
	}
	return false
}

// ExpectSeries errors with ErrUnknownColumn if col isn't declared.
func (d *DataFrame) ExpectSeries(col string) error {
	if !d.HasSeries(col) {
		return fmt.Errorf("%w: %s", pipeline.ErrUnknownColumn, col)
	}
	return nil
}

// GetSeries returns a Series of record[col] values, non-absent fields only
// being guaranteed present; a record missing col yields pipeline.Absent.
func (d *DataFrame) GetSeries(col string) *Series {
	return newSeries(pipeline.SelectValue(d.it, func(value, index any) any {
		rec, ok := asRecord(value)
		if !ok {
			return pipeline.Absent
		}
		v, ok := rec[col]
		if !ok {
			return pipeline.Absent
		}
		return v
	}))
}

// ColumnSeries pairs each declared column with its Series, in declared order.
type ColumnSeries struct {
	Name   string
	Series *Series
}

// GetColumns returns {name, series} for every declared column, in order.
func (d *DataFrame) GetColumns() []ColumnSeries {
	columns := d.cols()
	out := make([]ColumnSeries, len(columns))
	for i, name := range columns {
		out[i] = ColumnSeries{Name: name, Series: d.GetSeries(name)}
	}
	return out
}

// SeriesData is the setSeries payload: an array (positional), a *Series
// (re-indexed to the frame's index), or a function of (row, index).
type SeriesData any

// SetSeries replaces or appends col. data may be []any, a *Series, or a
// func(row, index any) any evaluated per record. The payload shape is
// validated here; the row rewrite itself is deferred to consumption.
func (d *DataFrame) SetSeries(col string, data SeriesData) (*DataFrame, error) {
	switch data.(type) {
	case []any, *Series, func(row map[string]any, index any) any:
	default:
		return nil, fmt.Errorf("%w: SetSeries data must be []any, *Series, or func(row, index any) any, got %T", pipeline.ErrInvalidArgument, data)
	}

	src := d.it
	it := pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		var valueAt func(i int, row map[string]any, index any) any
		switch v := data.(type) {
		case []any:
			valueAt = func(i int, row map[string]any, index any) any {
				if i < len(v) {
					return v[i]
				}
				return pipeline.Absent
			}
		case *Series:
			seriesPairs, serr := pipeline.Drain(v.it)
			if serr != nil {
				return nil, serr
			}
			byIndex := make(map[any]any, len(seriesPairs))
			for _, sp := range seriesPairs {
				byIndex[sp.Index] = sp.Value
			}
			valueAt = func(i int, row map[string]any, index any) any {
				if val, ok := byIndex[index]; ok {
					return val
				}
				return pipeline.Absent
			}
		case func(row map[string]any, index any) any:
			valueAt = func(i int, row map[string]any, index any) any {
				return v(row, index)
			}
		}
		out := make([]pipeline.Pair, len(pairs))
		for i, p := range pairs {
			rec, _ := asRecord(p.Value)
			newRec := make(map[string]any, len(rec)+1)
			for k, val := range rec {
				newRec[k] = val
			}
			newRec[col] = valueAt(i, rec, p.Index)
			out[i] = pipeline.Pair{Index: p.Index, Value: newRec}
		}
		return out, nil
	})

	columns := d.cols()
	if !d.HasSeries(col) {
		columns = append(append([]string{}, columns...), col)
	}
	return d.wrapColumns(it, columns), nil
}

func removeAll(names []string, remove map[string]bool) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !remove[n] {
			out = append(out, n)
		}
	}
	return out
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// DropSeries removes cols, preserving the relative order of the rest.
func (d *DataFrame) DropSeries(cols []string) *DataFrame {
	return d.wrapColumns(d.it, removeAll(d.cols(), toSet(cols)))
}

// KeepSeries keeps only cols, in the frame's existing column order.
func (d *DataFrame) KeepSeries(cols []string) *DataFrame {
	keep := toSet(cols)
	out := make([]string, 0, len(cols))
	for _, c := range d.cols() {
		if keep[c] {
			out = append(out, c)
		}
	}
	return d.wrapColumns(d.it, out)
}

// RenameSeries renames columns per the old->new mapping; columns not
// mentioned are left as-is. Record fields are rewritten to match, lazily.
func (d *DataFrame) RenameSeries(rename map[string]string) *DataFrame {
	src := d.it
	it := pipeline.SelectValue(src, func(value, index any) any {
		rec, _ := asRecord(value)
		newRec := make(map[string]any, len(rec))
		for k, v := range rec {
			if nk, ok := rename[k]; ok {
				newRec[nk] = v
			} else {
				newRec[k] = v
			}
		}
		return newRec
	})
	old := d.cols()
	columns := make([]string, len(old))
	for i, c := range old {
		if nc, ok := rename[c]; ok {
			columns[i] = nc
		} else {
			columns[i] = c
		}
	}
	return d.wrapColumns(it, columns)
}

// RenameSeriesPositional renames every column positionally: names must have
// exactly one entry per declared column.
func (d *DataFrame) RenameSeriesPositional(names []string) (*DataFrame, error) {
	old := d.cols()
	if len(names) != len(old) {
		return nil, fmt.Errorf("%w: RenameSeriesPositional needs %d names, got %d", pipeline.ErrInvalidArgument, len(old), len(names))
	}
	rename := make(map[string]string, len(names))
	for i, c := range old {
		rename[c] = names[i]
	}
	return d.RenameSeries(rename), nil
}

// RemapColumns reorders to cols exactly, pruning columns not listed and
// adding any listed-but-undeclared column as all-absent.
func (d *DataFrame) RemapColumns(cols []string) *DataFrame {
	return d.wrapColumns(d.it, append([]string{}, cols...))
}

func moveToFront(columns []string, cols []string) []string {
	move := toSet(cols)
	out := make([]string, 0, len(columns))
	out = append(out, cols...)
	for _, c := range columns {
		if !move[c] {
			out = append(out, c)
		}
	}
	return out
}

// BringToFront moves cols to the start of the column order.
func (d *DataFrame) BringToFront(cols []string) *DataFrame {
	return d.wrapColumns(d.it, moveToFront(d.cols(), cols))
}

// BringToBack moves cols to the end of the column order.
func (d *DataFrame) BringToBack(cols []string) *DataFrame {
	move := toSet(cols)
	declared := d.cols()
	out := make([]string, 0, len(declared))
	for _, c := range declared {
		if !move[c] {
			out = append(out, c)
		}
	}
	out = append(out, cols...)
	return d.wrapColumns(d.it, out)
}
