package table

import "tabpipe/pkg/pipeline"

// Count drains the pipeline and returns the row count.
func (d *DataFrame) Count() (int, error) {
	if err := needRestartable("Count", d.it); err != nil {
		return 0, err
	}
	pairs, err := pipeline.Drain(d.it)
	return len(pairs), err
}

// ColumnSum sums col across all rows; delegates to Series.Sum.
func (d *DataFrame) ColumnSum(col string) (float64, error) { return d.GetSeries(col).Sum() }

// ColumnAverage averages col across all rows; delegates to Series.Average.
func (d *DataFrame) ColumnAverage(col string) (float64, error) { return d.GetSeries(col).Average() }

// ColumnMin delegates to Series.Min.
func (d *DataFrame) ColumnMin(col string) (any, error) { return d.GetSeries(col).Min() }

// ColumnMax delegates to Series.Max.
func (d *DataFrame) ColumnMax(col string) (any, error) { return d.GetSeries(col).Max() }

// Aggregate folds every row with reduce(accumulator, record, index), seeded
// with seed.
func (d *DataFrame) Aggregate(seed any, reduce func(acc any, record map[string]any, index any) any) (any, error) {
	pairs, err := pipeline.Drain(d.it)
	if err != nil {
		return nil, err
	}
	acc := seed
	for _, p := range pairs {
		rec, _ := asRecord(p.Value)
		acc = reduce(acc, rec, p.Index)
	}
	return acc, nil
}
