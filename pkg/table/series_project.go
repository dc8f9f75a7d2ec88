package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// Where is a pass-through filter.
func (s *Series) Where(pred func(value, index any) bool) *Series {
	return s.wrap(pipeline.Where(s.it, pairPredicate(pred)))
}

// Select replaces each value with fn(value, index); index is unchanged.
func (s *Series) Select(fn func(value, index any) any) *Series {
	return s.wrap(pipeline.SelectValue(s.it, fn))
}

// SelectPairs replaces each pair with fn(value, index) -> (newIndex, newValue).
func (s *Series) SelectPairs(fn func(value, index any) (newIndex, newValue any)) *Series {
	return s.wrap(pipeline.SelectPair(s.it, func(value, index any) pipeline.Pair {
		ni, nv := fn(value, index)
		return pipeline.Pair{Index: ni, Value: nv}
	}))
}

// producerToIterable accepts the collection shapes a SelectMany producer may
// return: []any, a Series, or a DataFrame (both satisfy pipeline.PairSource),
// or a raw pipeline.Iterable. Anything else is ErrProducerShape.
func producerToIterable(v any) (pipeline.Iterable, error) {
	switch t := v.(type) {
	case nil:
		return pipeline.Empty(), nil
	case []any:
		return pipeline.FromValues(t), nil
	case pipeline.PairSource:
		return t.PairIterable(), nil
	case pipeline.Iterable:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: selectMany producer must be []any, Series, or DataFrame, got %T", pipeline.ErrProducerShape, v)
	}
}

// SelectMany calls fn(value, index) for each pair; fn must return a finite
// collection (array, Series, or DataFrame flattened to records). Each
// produced element carries the parent index.
func (s *Series) SelectMany(fn func(value, index any) any) *Series {
	return s.wrap(pipeline.SelectMany(s.it, func(value, index any) (pipeline.Iterable, error) {
		return producerToIterable(fn(value, index))
	}))
}

// pairsProducerToIterable accepts the shapes SelectManyPairs allows: a
// []pipeline.Pair, or anything pipeline.Iterable already yielding pairs.
func pairsProducerToIterable(v any) (pipeline.Iterable, error) {
	switch t := v.(type) {
	case nil:
		return pipeline.Empty(), nil
	case []pipeline.Pair:
		return pipeline.FromPairs(t), nil
	case pipeline.PairSource:
		return t.PairIterable(), nil
	case pipeline.Iterable:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: selectManyPairs producer must be []pipeline.Pair, Series, or DataFrame, got %T", pipeline.ErrProducerShape, v)
	}
}

// SelectManyPairs is like SelectMany but fn returns pairs directly.
func (s *Series) SelectManyPairs(fn func(value, index any) any) *Series {
	return s.wrap(pipeline.SelectManyPairs(s.it, func(value, index any) (pipeline.Iterable, error) {
		return pairsProducerToIterable(fn(value, index))
	}))
}
