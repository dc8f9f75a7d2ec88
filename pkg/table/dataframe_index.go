package table

import "tabpipe/pkg/pipeline"

// GetIndex returns a Series of the frame's original indexes.
func (d *DataFrame) GetIndex() *Series {
	return newSeries(pipeline.Extract(d.it, pipeline.SlotIndex))
}

// SetIndex promotes col's values to be the index; the column stays present
// in the record. Errors with ErrUnknownColumn if col isn't declared.
func (d *DataFrame) SetIndex(col string) (*DataFrame, error) {
	if err := d.ExpectSeries(col); err != nil {
		return nil, err
	}
	return d.wrap(pipeline.SelectPair(d.it, func(value, index any) pipeline.Pair {
		rec, _ := asRecord(value)
		return pipeline.Pair{Index: rec[col], Value: value}
	})), nil
}

// ResetIndex reassigns 0..n-1.
func (d *DataFrame) ResetIndex() *DataFrame {
	return d.wrap(pipeline.Zip2(pipeline.Count(), pipeline.Extract(d.it, pipeline.SlotValue)))
}
