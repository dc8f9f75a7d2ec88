package table

import "tabpipe/pkg/pipeline"

// TransformSeries applies, per declared column present in transforms, fn(value,
// index) -> newValue to every row's field in place of the original.
func (d *DataFrame) TransformSeries(transforms map[string]func(value, index any) any) *DataFrame {
	return d.wrap(pipeline.SelectValue(d.it, func(value, index any) any {
		rec, _ := asRecord(value)
		out := make(map[string]any, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		for col, fn := range transforms {
			if v, ok := rec[col]; ok {
				out[col] = fn(v, index)
			}
		}
		return out
	}))
}

// GenerateSeries adds or replaces column(s) computed from the whole row.
// genFns maps column name to a function of (row, index); an existing field of
// the same name is overwritten.
func (d *DataFrame) GenerateSeries(genFns map[string]func(row map[string]any, index any) any) *DataFrame {
	newColumns := append([]string{}, d.cols()...)
	existing := toSet(newColumns)
	for col := range genFns {
		if !existing[col] {
			newColumns = append(newColumns, col)
			existing[col] = true
		}
	}
	it := pipeline.SelectValue(d.it, func(value, index any) any {
		rec, _ := asRecord(value)
		out := make(map[string]any, len(rec)+len(genFns))
		for k, v := range rec {
			out[k] = v
		}
		for col, fn := range genFns {
			out[col] = fn(rec, index)
		}
		return out
	})
	return d.wrapColumns(it, newColumns)
}

// GenerateSeriesFromRow is the single-function form of GenerateSeries: fn
// returns the fields to merge onto each row, and the new column names are
// discovered from the union of every produced field set, appended after the
// existing columns in name order.
func (d *DataFrame) GenerateSeriesFromRow(fn func(row map[string]any, index any) map[string]any) *DataFrame {
	src := d.it
	merged := pipeline.SelectValue(src, func(value, index any) any {
		rec, _ := asRecord(value)
		out := make(map[string]any, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		for k, v := range fn(rec, index) {
			out[k] = v
		}
		return out
	})
	var (
		done    bool
		pairs   []pipeline.Pair
		columns []string
		err     error
	)
	materialize := func() ([]pipeline.Pair, error) {
		if !done {
			done = true
			pairs, err = pipeline.Drain(merged)
			if err != nil {
				return nil, err
			}
			columns = append([]string{}, d.cols()...)
			existing := toSet(columns)
			for _, c := range inferColumns(pairs, true) {
				if !existing[c] {
					columns = append(columns, c)
					existing[c] = true
				}
			}
		}
		return pairs, err
	}
	return &DataFrame{
		it: pipeline.FromPairsErr(materialize),
		columnsFn: func() []string {
			materialize()
			return columns
		},
	}
}

// Deflate collapses each row to a single value via fn(row, index), producing
// a Series.
func (d *DataFrame) Deflate(fn func(record map[string]any, index any) any) *Series {
	return newSeries(pipeline.SelectValue(d.it, func(value, index any) any {
		rec, _ := asRecord(value)
		return fn(rec, index)
	}))
}

// Inflate expands a Series of values into a DataFrame; fn, if non-nil, maps
// (value, index) to a record, otherwise the value itself must already be a
// map[string]any.
func Inflate(s *Series, fn func(value, index any) map[string]any) *DataFrame {
	it := pipeline.SelectValue(s.it, func(value, index any) any {
		if fn != nil {
			return fn(value, index)
		}
		rec, _ := asRecord(value)
		return rec
	})
	return newDataFrameFromRecordsIterable(it)
}

// InflateColumn expands a single column's value into additional fields
// merged onto each row; fn maps (columnValue, index) to the fields to merge.
func (d *DataFrame) InflateColumn(col string, fn func(columnValue, index any) map[string]any) *DataFrame {
	return newDataFrameFromRecordsIterable(pipeline.SelectValue(d.it, func(value, index any) any {
		rec, _ := asRecord(value)
		out := make(map[string]any, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		extra := fn(rec[col], index)
		for k, v := range extra {
			out[k] = v
		}
		return out
	}))
}
