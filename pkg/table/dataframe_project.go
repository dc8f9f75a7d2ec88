package table

import "tabpipe/pkg/pipeline"

// Where is a pass-through row filter; identical semantics to Series.Where.
func (d *DataFrame) Where(pred func(record map[string]any, index any) bool) *DataFrame {
	return d.wrap(pipeline.Where(d.it, func(p pipeline.Pair) bool {
		rec, _ := asRecord(p.Value)
		return pred(rec, p.Index)
	}))
}

// Select replaces each record with fn(record, index); columns are unchanged
// unless the caller also reassigns them via RemapColumns/SetSeries.
func (d *DataFrame) Select(fn func(record map[string]any, index any) map[string]any) *DataFrame {
	return d.wrap(pipeline.SelectValue(d.it, func(value, index any) any {
		rec, _ := asRecord(value)
		return fn(rec, index)
	}))
}

// SelectPairs replaces each (index, record) with fn's result.
func (d *DataFrame) SelectPairs(fn func(record map[string]any, index any) (newIndex any, newRecord map[string]any)) *DataFrame {
	return d.wrap(pipeline.SelectPair(d.it, func(value, index any) pipeline.Pair {
		rec, _ := asRecord(value)
		ni, nr := fn(rec, index)
		return pipeline.Pair{Index: ni, Value: nr}
	}))
}

// SelectMany flattens fn's per-row collection, carrying the parent index.
func (d *DataFrame) SelectMany(fn func(record map[string]any, index any) any) *DataFrame {
	return d.wrap(pipeline.SelectMany(d.it, func(value, index any) (pipeline.Iterable, error) {
		rec, _ := asRecord(value)
		return producerToIterable(fn(rec, index))
	}))
}

// SelectManyPairs is like SelectMany but fn returns pairs directly.
func (d *DataFrame) SelectManyPairs(fn func(record map[string]any, index any) any) *DataFrame {
	return d.wrap(pipeline.SelectManyPairs(d.it, func(value, index any) (pipeline.Iterable, error) {
		rec, _ := asRecord(value)
		return pairsProducerToIterable(fn(rec, index))
	}))
}
