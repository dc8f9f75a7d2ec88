package table

import "tabpipe/pkg/pipeline"

// Merge joins d with other on col (an index-by-column join when col is
// non-empty, else an index-by-index join), taking the union of fields per
// matched pair; other's fields win on overlap. The row join runs on first
// consumption and a successful result is cached for replay.
func (d *DataFrame) Merge(other *DataFrame, col string) (*DataFrame, error) {
	if err := needRestartable("Merge", d.it, other.it); err != nil {
		return failedFrame(err), nil
	}

	keyOf := func(p pipeline.Pair) any { return p.Index }
	if col != "" {
		keyOf = func(p pipeline.Pair) any {
			rec, _ := asRecord(p.Value)
			return rec[col]
		}
	}

	src, otherSrc := d.it, other.it
	var (
		done   bool
		cached []pipeline.Pair
	)
	it := pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		if done {
			return cached, nil
		}
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		otherPairs, err := pipeline.Drain(otherSrc)
		if err != nil {
			return nil, err
		}
		out := make([]pipeline.Pair, 0, len(pairs))
		idx := 0
		for _, p := range pairs {
			k := keyOf(p)
			rec, _ := asRecord(p.Value)
			merged := make(map[string]any, len(rec))
			for f, v := range rec {
				merged[f] = v
			}
			for _, op := range otherPairs {
				if keyOf(op) != k {
					continue
				}
				orec, _ := asRecord(op.Value)
				for f, v := range orec {
					merged[f] = v
				}
			}
			out = append(out, pipeline.Pair{Index: idx, Value: merged})
			idx++
		}
		done, cached = true, out
		return out, nil
	})

	return &DataFrame{
		it: it,
		columnsFn: func() []string {
			columns := append([]string{}, d.cols()...)
			existing := toSet(columns)
			for _, c := range other.cols() {
				if !existing[c] {
					columns = append(columns, c)
					existing[c] = true
				}
			}
			return columns
		},
	}, nil
}
