package table

import "tabpipe/pkg/pipeline"

func recordPredicate(pred func(record map[string]any, index any) bool) func(pipeline.Pair) bool {
	return func(p pipeline.Pair) bool {
		rec, _ := asRecord(p.Value)
		return pred(rec, p.Index)
	}
}

// Skip discards the first n rows.
func (d *DataFrame) Skip(n int) *DataFrame { return d.wrap(pipeline.Skip(d.it, n)) }

// Take passes through only the first n rows.
func (d *DataFrame) Take(n int) *DataFrame { return d.wrap(pipeline.Take(d.it, n)) }

// Head is Take(n).
func (d *DataFrame) Head(n int) *DataFrame { return d.Take(n) }

// Tail forces a first pass to count the frame, then skips count-n.
func (d *DataFrame) Tail(n int) *DataFrame {
	src := d.it
	return d.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		all, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		skip := len(all) - n
		if skip < 0 {
			skip = 0
		}
		return all[skip:], nil
	}))
}

// SkipWhile discards rows while pred holds.
func (d *DataFrame) SkipWhile(pred func(record map[string]any, index any) bool) *DataFrame {
	return d.wrap(pipeline.SkipWhile(d.it, recordPredicate(pred)))
}

// SkipUntil is SkipWhile(!pred).
func (d *DataFrame) SkipUntil(pred func(record map[string]any, index any) bool) *DataFrame {
	return d.SkipWhile(func(r map[string]any, i any) bool { return !pred(r, i) })
}

// TakeWhile passes through while pred holds.
func (d *DataFrame) TakeWhile(pred func(record map[string]any, index any) bool) *DataFrame {
	return d.wrap(pipeline.TakeWhile(d.it, recordPredicate(pred)))
}

// TakeUntil is TakeWhile(!pred).
func (d *DataFrame) TakeUntil(pred func(record map[string]any, index any) bool) *DataFrame {
	return d.TakeWhile(func(r map[string]any, i any) bool { return !pred(r, i) })
}

// Reverse materializes the frame and replays its rows back to front.
func (d *DataFrame) Reverse() *DataFrame {
	src := d.it
	return d.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		out := make([]pipeline.Pair, len(pairs))
		for i, p := range pairs {
			out[len(pairs)-1-i] = p
		}
		return out, nil
	}))
}
