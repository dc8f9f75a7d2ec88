package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/sortutil"
)

// columnKeyFunc resolves a sort key per row; arg is a column name, a
// positional column index, or a func(record, index any) any.
func columnKeyFunc(columns []string, arg any) (KeyFunc, error) {
	switch k := arg.(type) {
	case string:
		return func(value, index any) any {
			rec, _ := asRecord(value)
			return rec[k]
		}, nil
	case int:
		if k < 0 || k >= len(columns) {
			return nil, fmt.Errorf("%w: sort column position %d out of range", pipeline.ErrInvalidArgument, k)
		}
		col := columns[k]
		return func(value, index any) any {
			rec, _ := asRecord(value)
			return rec[col]
		}, nil
	case func(record map[string]any, index any) any:
		return func(value, index any) any {
			rec, _ := asRecord(value)
			return k(rec, index)
		}, nil
	default:
		return nil, fmt.Errorf("%w: sort column must be a name, position, or function, got %T", pipeline.ErrInvalidArgument, arg)
	}
}

// OrderBy sorts ascending on col (name, position, or func(record, index)).
func (d *DataFrame) OrderBy(col any) (*DataFrame, error) {
	if err := needRestartable("OrderBy", d.it); err != nil {
		return d.wrap(pipeline.Fail(err)), nil
	}
	key, err := columnKeyFunc(d.cols(), col)
	if err != nil {
		return nil, err
	}
	return d.applySort(d.it, sortutil.OrderBy(adaptKey(key))), nil
}

// OrderByDescending sorts descending on col.
func (d *DataFrame) OrderByDescending(col any) (*DataFrame, error) {
	if err := needRestartable("OrderByDescending", d.it); err != nil {
		return d.wrap(pipeline.Fail(err)), nil
	}
	key, err := columnKeyFunc(d.cols(), col)
	if err != nil {
		return nil, err
	}
	return d.applySort(d.it, sortutil.OrderByDescending(adaptKey(key))), nil
}

// ThenBy appends an ascending tie-breaker; on a frame not produced by
// OrderBy/OrderByDescending it behaves like OrderBy.
func (d *DataFrame) ThenBy(col any) (*DataFrame, error) {
	key, err := columnKeyFunc(d.cols(), col)
	if err != nil {
		return nil, err
	}
	if d.sortSpec == nil {
		return d.applySort(d.it, sortutil.OrderBy(adaptKey(key))), nil
	}
	return d.applySort(d.sortSrc, d.sortSpec.ThenBy(adaptKey(key))), nil
}

// ThenByDescending appends a descending tie-breaker.
func (d *DataFrame) ThenByDescending(col any) (*DataFrame, error) {
	key, err := columnKeyFunc(d.cols(), col)
	if err != nil {
		return nil, err
	}
	if d.sortSpec == nil {
		return d.applySort(d.it, sortutil.OrderByDescending(adaptKey(key))), nil
	}
	return d.applySort(d.sortSrc, d.sortSpec.ThenByDescending(adaptKey(key))), nil
}

func (d *DataFrame) applySort(src pipeline.Iterable, spec sortutil.Spec) *DataFrame {
	out := d.wrap(spec.Apply(src))
	out.sortSpec = &spec
	out.sortSrc = src
	return out
}
