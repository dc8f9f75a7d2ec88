package table

import (
	"tabpipe/pkg/joinset"
	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/window"
)

func adaptGroupKey(keyFn func(value, index any) any) joinset.KeyFunc {
	if keyFn == nil {
		return nil
	}
	return func(p pipeline.Pair) any { return keyFn(p.Value, p.Index) }
}

// Distinct keeps the first occurrence per key (identity key if keyFn is nil).
func (s *Series) Distinct(keyFn func(value, index any) any) *Series {
	return s.wrap(joinset.Distinct(s.it, adaptGroupKey(keyFn)))
}

// SequentialDistinct collapses only adjacent duplicates: each maximal run of
// equal keys contributes its first pair.
func (s *Series) SequentialDistinct(keyFn func(value, index any) any) *Series {
	key := keyFn
	if key == nil {
		key = func(v, _ any) any { return v }
	}
	src := s.it
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		boundaries := window.Variable(pipeline.FromPairs(pairs), func(a, b pipeline.Pair) bool {
			return key(a.Value, a.Index) == key(b.Value, b.Index)
		})
		out := make([]pipeline.Pair, 0, len(boundaries))
		for _, b := range boundaries {
			out = append(out, pairs[b.Skip])
		}
		return out, nil
	}))
}

// GroupBy returns a series whose index is the group key and whose value is
// a sub-Series of original pairs, stable by first occurrence of the key.
func (s *Series) GroupBy(keyFn func(value, index any) any) *Series {
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(s.it)
		if err != nil {
			return nil, err
		}
		var keysInOrder []any
		seen := map[any]bool{}
		for _, p := range pairs {
			k := keyFn(p.Value, p.Index)
			if !seen[k] {
				seen[k] = true
				keysInOrder = append(keysInOrder, k)
			}
		}
		out := make([]pipeline.Pair, len(keysInOrder))
		for i, k := range keysInOrder {
			k := k
			members := make([]pipeline.Pair, 0)
			for _, p := range pairs {
				if keyFn(p.Value, p.Index) == k {
					members = append(members, p)
				}
			}
			out[i] = pipeline.Pair{Index: k, Value: s.wrap(pipeline.FromPairs(members))}
		}
		return out, nil
	}))
}

// GroupSequentialBy is variableWindow(eq on keyFn): it produces a series of
// sub-Series, one per maximal run of equal keys, in source order.
func (s *Series) GroupSequentialBy(keyFn func(value, index any) any) *Series {
	key := keyFn
	if key == nil {
		key = func(v, _ any) any { return v }
	}
	boundaries := window.Variable(s.it, func(a, b pipeline.Pair) bool {
		return key(a.Value, a.Index) == key(b.Value, b.Index)
	})
	return s.boundariesToSeries(boundaries)
}
