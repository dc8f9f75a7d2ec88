package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// At returns the record paired with indexValue, or pipeline.Absent on miss.
func (d *DataFrame) At(indexValue any) (any, error) {
	return d.AsSeries().At(indexValue)
}

// First returns the first row's record; errors with ErrEmptySequence on an
// empty frame.
func (d *DataFrame) First() (map[string]any, error) {
	cur := d.it.Cursor()
	if !cur.Advance() {
		if e, ok := cur.(pipeline.Errer); ok {
			if err := e.Err(); err != nil {
				return nil, err
			}
		}
		return nil, fmt.Errorf("%w: First on empty frame", pipeline.ErrEmptySequence)
	}
	rec, _ := asRecord(cur.Current().Value)
	return rec, nil
}

// Last forces a full pass; errors with ErrEmptySequence on an empty frame.
func (d *DataFrame) Last() (map[string]any, error) {
	if err := needRestartable("Last", d.it); err != nil {
		return nil, err
	}
	pairs, err := pipeline.Drain(d.it)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: Last on empty frame", pipeline.ErrEmptySequence)
	}
	rec, _ := asRecord(pairs[len(pairs)-1].Value)
	return rec, nil
}

// ToPairs returns [index, record] tuples with absent-valued pairs dropped.
func (d *DataFrame) ToPairs() ([]pipeline.Pair, error) {
	return d.AsSeries().ToPairs()
}

// ForEach drives the pipeline once, calling fn per row in emission order.
// Returning false from fn stops the walk early.
func (d *DataFrame) ForEach(fn func(record map[string]any, index any) bool) error {
	return d.AsSeries().ForEach(func(value, index any) bool {
		rec, _ := asRecord(value)
		return fn(rec, index)
	})
}

// Bake forces a single pass and replaces the pipeline with an array-backed
// iterable; the column-name vector is carried over unchanged.
func (d *DataFrame) Bake() (*DataFrame, error) {
	pairs, err := pipeline.Drain(d.it)
	if err != nil {
		return nil, err
	}
	return d.wrap(pipeline.FromPairs(pairs)), nil
}
