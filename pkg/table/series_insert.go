package table

import "tabpipe/pkg/pipeline"

// InsertPair returns a new series with (index, value) prepended.
func (s *Series) InsertPair(index, value any) *Series {
	head := pipeline.FromPairs([]pipeline.Pair{{Index: index, Value: value}})
	return s.wrap(joinTwo(head, s.it))
}

// AppendPair returns a new series with (index, value) appended.
func (s *Series) AppendPair(index, value any) *Series {
	tail := pipeline.FromPairs([]pipeline.Pair{{Index: index, Value: value}})
	return s.wrap(joinTwo(s.it, tail))
}

func joinTwo(a, b pipeline.Iterable) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		var out []pipeline.Pair
		for _, it := range []pipeline.Iterable{a, b} {
			pairs, err := pipeline.Drain(it)
			if err != nil {
				return nil, err
			}
			out = append(out, pairs...)
		}
		return out, nil
	})
}
