package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// Pivot turns distinct values of keyCol into new column names; each row
// contributes row[valueCol] to the column matching row[keyCol], leaving every
// other column absent for that row. Row indexes are preserved from the
// source; the row count is unchanged (this is not a group-and-aggregate
// pivot, only the widen step). Column checks are eager; the widen itself
// runs once, on first consumption, and is cached for replay.
func (d *DataFrame) Pivot(keyCol, valueCol string) (*DataFrame, error) {
	if err := needRestartable("Pivot", d.it); err != nil {
		return failedFrame(err), nil
	}
	if err := d.ExpectSeries(keyCol); err != nil {
		return nil, err
	}
	if err := d.ExpectSeries(valueCol); err != nil {
		return nil, err
	}

	src := d.it
	var (
		done    bool
		widened []pipeline.Pair
		columns []string
		err     error
	)
	materialize := func() ([]pipeline.Pair, error) {
		if done {
			return widened, err
		}
		done = true
		var pairs []pipeline.Pair
		pairs, err = pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		seen := map[any]bool{}
		keys := make([]any, len(pairs))
		for i, p := range pairs {
			rec, _ := asRecord(p.Value)
			k := rec[keyCol]
			keys[i] = k
			if !seen[k] {
				seen[k] = true
				columns = append(columns, toComparableKeyString(k))
			}
		}
		widened = make([]pipeline.Pair, len(pairs))
		for i, p := range pairs {
			rec, _ := asRecord(p.Value)
			row := make(map[string]any, len(columns))
			for _, c := range columns {
				row[c] = pipeline.Absent
			}
			row[toComparableKeyString(keys[i])] = rec[valueCol]
			widened[i] = pipeline.Pair{Index: p.Index, Value: row}
		}
		return widened, nil
	}
	return &DataFrame{
		it: pipeline.FromPairsErr(materialize),
		columnsFn: func() []string {
			materialize()
			return columns
		},
	}, nil
}

func toComparableKeyString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
