package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// At returns the value paired with indexValue, or pipeline.Absent on miss.
// Linear scan: index lookup is not assumed to be hashable/sorted.
func (s *Series) At(indexValue any) (any, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if compareValues(p.Index, indexValue) == 0 {
			return p.Value, nil
		}
	}
	return pipeline.Absent, nil
}

// Contains reports whether v appears among the series' values, by structural
// equality scan.
func (s *Series) Contains(v any) (bool, error) {
	if err := needRestartable("Contains", s.it); err != nil {
		return false, err
	}
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return false, err
	}
	for _, p := range pairs {
		if p.Value == v {
			return true, nil
		}
	}
	return false, nil
}

// All reports false for an empty series.
func (s *Series) All(pred func(value, index any) bool) (bool, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return false, err
	}
	if len(pairs) == 0 {
		return false, nil
	}
	for _, p := range pairs {
		if !pred(p.Value, p.Index) {
			return false, nil
		}
	}
	return true, nil
}

// Any with no predicate reports whether the series has any pairs at all; with
// a predicate, whether any pair satisfies it.
func (s *Series) Any(pred func(value, index any) bool) (bool, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return false, err
	}
	if pred == nil {
		return len(pairs) > 0, nil
	}
	for _, p := range pairs {
		if pred(p.Value, p.Index) {
			return true, nil
		}
	}
	return false, nil
}

// None is the dual of Any.
func (s *Series) None(pred func(value, index any) bool) (bool, error) {
	ok, err := s.Any(pred)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// First errors with ErrEmptySequence on an empty series.
func (s *Series) First() (any, error) {
	p, err := s.FirstPair()
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// Last forces a full pass; errors with ErrEmptySequence on an empty series.
func (s *Series) Last() (any, error) {
	p, err := s.LastPair()
	if err != nil {
		return nil, err
	}
	return p.Value, nil
}

// FirstPair errors with ErrEmptySequence on an empty series.
func (s *Series) FirstPair() (pipeline.Pair, error) {
	cur := s.it.Cursor()
	if !cur.Advance() {
		if e, ok := cur.(pipeline.Errer); ok {
			if err := e.Err(); err != nil {
				return pipeline.Pair{}, err
			}
		}
		return pipeline.Pair{}, fmt.Errorf("%w: First on empty series", pipeline.ErrEmptySequence)
	}
	return cur.Current(), nil
}

// LastPair forces a full pass; errors with ErrEmptySequence on an empty series.
func (s *Series) LastPair() (pipeline.Pair, error) {
	if err := needRestartable("Last", s.it); err != nil {
		return pipeline.Pair{}, err
	}
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return pipeline.Pair{}, err
	}
	if len(pairs) == 0 {
		return pipeline.Pair{}, fmt.Errorf("%w: Last on empty series", pipeline.ErrEmptySequence)
	}
	return pairs[len(pairs)-1], nil
}

// ForEach drives the pipeline once, calling fn per pair in emission order.
// Returning false from fn stops the walk early; an evaluation-time error
// from the pipeline is returned after the walk ends.
func (s *Series) ForEach(fn func(value, index any) bool) error {
	cur := s.it.Cursor()
	for cur.Advance() {
		p := cur.Current()
		if !fn(p.Value, p.Index) {
			return nil
		}
	}
	if e, ok := cur.(pipeline.Errer); ok {
		return e.Err()
	}
	return nil
}

// Reverse materializes the series and replays it back to front; involutive
// (Reverse(Reverse(s)) reproduces s pair-wise).
func (s *Series) Reverse() *Series {
	src := s.it
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
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

// PercentChange emits, for each consecutive pair (a, b), (b.Value-a.Value)/
// a.Value at b's index; the series is one element shorter than the source
// (or empty, for a source of length ≤ 1).
func (s *Series) PercentChange() *Series {
	src := s.it
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		if len(pairs) < 2 {
			return nil, nil
		}
		out := make([]pipeline.Pair, 0, len(pairs)-1)
		for i := 1; i < len(pairs); i++ {
			prev, _ := toFloat(pairs[i-1].Value)
			cur, _ := toFloat(pairs[i].Value)
			out = append(out, pipeline.Pair{Index: pairs[i].Index, Value: (cur - prev) / prev})
		}
		return out, nil
	}))
}
