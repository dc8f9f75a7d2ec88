package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// Count drains the pipeline and returns how many pairs it produced.
func (s *Series) Count() (int, error) {
	if err := needRestartable("Count", s.it); err != nil {
		return 0, err
	}
	pairs, err := pipeline.Drain(s.it)
	return len(pairs), err
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// numericValues drains the series into a typed float slice, skipping absent
// values; a non-numeric value is ErrTypeMismatch.
func (s *Series) numericValues(op string) ([]float64, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if pipeline.IsAbsent(p.Value) {
			continue
		}
		f, ok := toFloat(p.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %s over non-numeric value %v", pipeline.ErrTypeMismatch, op, p.Value)
		}
		values = append(values, f)
	}
	return values, nil
}

// Sum returns 0 for an empty series.
func (s *Series) Sum() (float64, error) {
	values, err := s.numericValues("Sum")
	if err != nil {
		return 0, err
	}
	return SumOf(values), nil
}

// Average returns 0 (not NaN) for an empty series.
func (s *Series) Average() (float64, error) {
	values, err := s.numericValues("Average")
	if err != nil {
		return 0, err
	}
	return AverageOf(values), nil
}

// minmax orders element values with compareValues, the same ordering sort
// keys use, so a series of strings or times can be aggregated, not just
// numbers.
func (s *Series) minmax(wantMax bool) (any, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: Min/Max over empty series", pipeline.ErrEmptySequence)
	}
	best := pairs[0].Value
	for _, p := range pairs[1:] {
		c := compareValues(p.Value, best)
		if (wantMax && c > 0) || (!wantMax && c < 0) {
			best = p.Value
		}
	}
	return best, nil
}

// Min errors with ErrEmptySequence on an empty series.
func (s *Series) Min() (any, error) { return s.minmax(false) }

// Max errors with ErrEmptySequence on an empty series.
func (s *Series) Max() (any, error) { return s.minmax(true) }

// Aggregate folds the series with reduce(accumulator, value, index), seeded
// with seed.
func (s *Series) Aggregate(seed any, reduce func(acc, value any, index any) any) (any, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	acc := seed
	for _, p := range pairs {
		acc = reduce(acc, p.Value, p.Index)
	}
	return acc, nil
}

// AggregateNoSeed folds with reduce(accumulator, value, index), using the
// first pair's value as the seed and starting the reduction from the second.
func (s *Series) AggregateNoSeed(reduce func(acc, value any, index any) any) (any, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: Aggregate over empty series with no seed", pipeline.ErrEmptySequence)
	}
	acc := pairs[0].Value
	for _, p := range pairs[1:] {
		acc = reduce(acc, p.Value, p.Index)
	}
	return acc, nil
}
