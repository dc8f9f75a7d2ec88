package table

import (
	"tabpipe/pkg/joinset"
	"tabpipe/pkg/pipeline"
)

// EqualFunc reports structural equality between two element values.
type EqualFunc func(a, b any) bool

func adaptEqual(eq EqualFunc) joinset.EqualFunc {
	if eq == nil {
		return nil
	}
	return joinset.EqualFunc(eq)
}

// Concat emits all of s's pairs, then all of other's, preserving both orders.
func (s *Series) Concat(other *Series) *Series {
	return s.wrap(joinset.Concat(s.it, other.it))
}

// Union is Concat(other).Distinct(keyFn).
func (s *Series) Union(other *Series, keyFn func(value, index any) any) *Series {
	if err := needRestartable("Union", s.it, other.it); err != nil {
		return s.wrap(pipeline.Fail(err))
	}
	return s.wrap(joinset.Union(s.it, other.it, adaptGroupKey(keyFn)))
}

// Intersection keeps values of s that also appear in other, using eq
// (defaults to structural equality) over O(n·m) nested comparison.
func (s *Series) Intersection(other *Series, eq EqualFunc) *Series {
	if err := needRestartable("Intersection", s.it, other.it); err != nil {
		return s.wrap(pipeline.Fail(err))
	}
	return s.wrap(joinset.Intersection(s.it, other.it, adaptEqual(eq)))
}

// Except keeps values of s that do not appear in other.
func (s *Series) Except(other *Series, eq EqualFunc) *Series {
	if err := needRestartable("Except", s.it, other.it); err != nil {
		return s.wrap(pipeline.Fail(err))
	}
	return s.wrap(joinset.Except(s.it, other.it, adaptEqual(eq)))
}
