package table

import (
	"fmt"
	"sort"

	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/sortutil"
)

// DataFrame holds one iterable whose cursor yields (index, record) pairs,
// plus the ordered column-name vector that is authoritative for iteration
// and serialization order. Records may carry extra fields; only declared
// columns are ever serialized, and a missing field serializes as
// pipeline.Absent.
type DataFrame struct {
	it      pipeline.Iterable
	columns []string
	// columnsFn, when columns is nil, computes the column vector on first
	// use. Operators whose output columns depend on the data (pivot, joins,
	// GenerateSeriesFromRow) set it to a memoized closure shared with their
	// pair iterable, so the first consumer performs the one materializing
	// pass and every later consumer replays it.
	columnsFn func() []string

	sortSpec *sortutil.Spec
	sortSrc  pipeline.Iterable
}

// cols returns the column vector, forcing a deferred computation if one is
// pending.
func (d *DataFrame) cols() []string {
	if d.columns == nil && d.columnsFn != nil {
		return d.columnsFn()
	}
	return d.columns
}

// DataFrameOptions is the constructor shape for DataFrame: exactly one of
// Iterable, Rows, Records, or Columns may be supplied alongside ColumnNames/
// Index; mixing incompatible payload forms fails at construction.
type DataFrameOptions struct {
	// ColumnNames, if non-nil, is authoritative; otherwise columns are
	// inferred from Records (see ConsiderAllRows) or from the keys of
	// Columns, sorted by name.
	ColumnNames []string
	// Rows is an array-of-arrays payload aligned positionally to
	// ColumnNames, the inverse of ToRows; it requires ColumnNames.
	Rows [][]any
	// Records is an array-of-records payload, the inverse of ToRecords;
	// columns are inferred from the records when ColumnNames is nil.
	Records []map[string]any
	// Columns is a column-name -> parallel value slice payload (as produced
	// by a CSV/columnar reader).
	Columns map[string][]any
	// Index is nil, a []any of equal length, or a *Series whose values
	// become the new index.
	Index any
	// Iterable, if non-nil, is used as-is; ColumnNames is still honored if
	// given, otherwise it must be inferrable from the first Iterable pair.
	Iterable pipeline.Iterable
	// ConsiderAllRows, when true, infers columns from the distinct union of
	// every record's field names instead of only the first record.
	ConsiderAllRows bool
}

func countPayloads(opts DataFrameOptions) int {
	n := 0
	if opts.Iterable != nil {
		n++
	}
	if opts.Rows != nil {
		n++
	}
	if opts.Records != nil {
		n++
	}
	if opts.Columns != nil {
		n++
	}
	return n
}

// NewDataFrame validates opts and builds a DataFrame.
func NewDataFrame(opts DataFrameOptions) (*DataFrame, error) {
	if countPayloads(opts) > 1 {
		return nil, fmt.Errorf("%w: only one of Iterable, Rows, Records, Columns may be supplied", pipeline.ErrInvalidArgument)
	}

	var recordPairs []pipeline.Pair
	columns := opts.ColumnNames

	switch {
	case opts.Iterable != nil:
		pairs, err := pipeline.Drain(opts.Iterable)
		if err != nil {
			return nil, err
		}
		recordPairs = pairs
		if columns == nil {
			columns = inferColumns(pairs, opts.ConsiderAllRows)
		}
	case opts.Rows != nil:
		if columns == nil {
			return nil, fmt.Errorf("%w: Rows requires ColumnNames", pipeline.ErrInvalidArgument)
		}
		recordPairs = make([]pipeline.Pair, len(opts.Rows))
		for i, row := range opts.Rows {
			rec := make(map[string]any, len(columns))
			for j, name := range columns {
				if j < len(row) {
					rec[name] = row[j]
				} else {
					rec[name] = pipeline.Absent
				}
			}
			recordPairs[i] = pipeline.Pair{Index: i, Value: rec}
		}
	case opts.Records != nil:
		recordPairs = make([]pipeline.Pair, len(opts.Records))
		for i, r := range opts.Records {
			recordPairs[i] = pipeline.Pair{Index: i, Value: r}
		}
		if columns == nil {
			columns = inferColumns(recordPairs, opts.ConsiderAllRows)
		}
	case opts.Columns != nil:
		if columns == nil {
			columns = make([]string, 0, len(opts.Columns))
			for name := range opts.Columns {
				columns = append(columns, name)
			}
			sort.Strings(columns)
		}
		n := 0
		for _, col := range opts.Columns {
			if len(col) > n {
				n = len(col)
			}
		}
		recordPairs = make([]pipeline.Pair, n)
		for i := 0; i < n; i++ {
			rec := make(map[string]any, len(columns))
			for _, name := range columns {
				vals := opts.Columns[name]
				if i < len(vals) {
					rec[name] = vals[i]
				} else {
					rec[name] = pipeline.Absent
				}
			}
			recordPairs[i] = pipeline.Pair{Index: i, Value: rec}
		}
	default:
		recordPairs = nil
		if columns == nil {
			columns = []string{}
		}
	}

	it := pipeline.FromPairs(recordPairs)
	if opts.Index != nil {
		var idxIter pipeline.Iterable
		switch idx := opts.Index.(type) {
		case []any:
			idxIter = pipeline.FromValues(idx)
		case *Series:
			idxIter = idx.it
		default:
			return nil, fmt.Errorf("%w: Index must be []any or *Series, got %T", pipeline.ErrInvalidArgument, opts.Index)
		}
		it = pipeline.Zip2(idxIter, pipeline.Extract(it, pipeline.SlotValue))
	}

	return &DataFrame{it: it, columns: columns}, nil
}

func inferColumns(pairs []pipeline.Pair, considerAllRows bool) []string {
	if len(pairs) == 0 {
		return []string{}
	}
	if !considerAllRows {
		rec, _ := pairs[0].Value.(map[string]any)
		cols := make([]string, 0, len(rec))
		for k := range rec {
			cols = append(cols, k)
		}
		sort.Strings(cols)
		return cols
	}
	seen := map[string]bool{}
	var cols []string
	for _, p := range pairs {
		rec, ok := p.Value.(map[string]any)
		if !ok {
			continue
		}
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// newDataFrameFromRecordsIterable wraps an iterable of record pairs whose
// column set is only knowable from the data (joins may produce records with
// heterogeneous field sets branch-to-branch). The drain and column inference
// run once, on first consumption, and are cached for replay.
func newDataFrameFromRecordsIterable(it pipeline.Iterable) *DataFrame {
	var (
		done    bool
		pairs   []pipeline.Pair
		columns []string
		err     error
	)
	materialize := func() ([]pipeline.Pair, error) {
		if !done {
			done = true
			pairs, err = pipeline.Drain(it)
			columns = inferColumns(pairs, true)
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

// PairIterable satisfies pipeline.PairSource.
func (d *DataFrame) PairIterable() pipeline.Iterable { return d.it }

// ColumnNames returns the frame's declared column order.
func (d *DataFrame) ColumnNames() []string {
	columns := d.cols()
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

func (d *DataFrame) wrap(it pipeline.Iterable) *DataFrame {
	return &DataFrame{it: it, columns: d.columns, columnsFn: d.columnsFn}
}

func (d *DataFrame) wrapColumns(it pipeline.Iterable, columns []string) *DataFrame {
	return &DataFrame{it: it, columns: columns}
}

// Cursor is a convenience for callers driving the pipeline directly.
func (d *DataFrame) Cursor() pipeline.Cursor { return d.it.Cursor() }

// AsSeries views the frame as a Series of records (the same pair stream,
// without the column-name vector). Used internally by operations that behave
// identically for Series and DataFrame (select, where, sort, ...).
func (d *DataFrame) AsSeries() *Series { return newSeries(d.it) }
