package table

import (
	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/sortutil"
)

// Skip discards the first n pairs.
func (s *Series) Skip(n int) *Series { return s.wrap(pipeline.Skip(s.it, n)) }

// Take passes through only the first n pairs.
func (s *Series) Take(n int) *Series { return s.wrap(pipeline.Take(s.it, n)) }

// Head is Take(n).
func (s *Series) Head(n int) *Series { return s.Take(n) }

// Tail forces a first pass to count the series, then skips count-n.
func (s *Series) Tail(n int) *Series {
	src := s.it
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
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

// SkipWhile discards pairs while pred holds.
func (s *Series) SkipWhile(pred func(value, index any) bool) *Series {
	return s.wrap(pipeline.SkipWhile(s.it, pairPredicate(pred)))
}

// SkipUntil is SkipWhile(!pred).
func (s *Series) SkipUntil(pred func(value, index any) bool) *Series {
	return s.SkipWhile(func(v, i any) bool { return !pred(v, i) })
}

// TakeWhile passes through while pred holds.
func (s *Series) TakeWhile(pred func(value, index any) bool) *Series {
	return s.wrap(pipeline.TakeWhile(s.it, pairPredicate(pred)))
}

// TakeUntil is TakeWhile(!pred).
func (s *Series) TakeUntil(pred func(value, index any) bool) *Series {
	return s.TakeWhile(func(v, i any) bool { return !pred(v, i) })
}

// CompareFunc reports whether indexValue logically precedes endpoint, the
// same sense as the default "<" comparison Slice uses when cmp is nil.
type CompareFunc func(indexValue, endpoint any) bool

// Slice emits pairs with index in [start, end). start/end may be nil to
// leave that boundary open. cmp defaults to sortutil.Compare < 0.
func (s *Series) Slice(start, end any, cmp CompareFunc) *Series {
	if cmp == nil {
		cmp = func(a, b any) bool { return sortutil.Compare(a, b) < 0 }
	}
	return s.wrap(pipeline.Where(s.it, func(p pipeline.Pair) bool {
		if start != nil && cmp(p.Index, start) {
			return false
		}
		if end != nil && !cmp(p.Index, end) {
			return false
		}
		return true
	}))
}
