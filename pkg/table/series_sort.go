package table

import (
	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/sortutil"
)

// KeyFunc extracts a sort key from a (value, index) pair.
type KeyFunc func(value, index any) any

func adaptKey(fn KeyFunc) sortutil.KeyFunc {
	return func(p pipeline.Pair) any { return fn(p.Value, p.Index) }
}

// OrderBy starts a stable ascending sort; the result exposes ThenBy/
// ThenByDescending to extend the composite key.
func (s *Series) OrderBy(key KeyFunc) *Series {
	if err := needRestartable("OrderBy", s.it); err != nil {
		return s.wrap(pipeline.Fail(err))
	}
	return s.applySort(s.it, sortutil.OrderBy(adaptKey(key)))
}

// OrderByDescending starts a stable descending sort.
func (s *Series) OrderByDescending(key KeyFunc) *Series {
	if err := needRestartable("OrderByDescending", s.it); err != nil {
		return s.wrap(pipeline.Fail(err))
	}
	return s.applySort(s.it, sortutil.OrderByDescending(adaptKey(key)))
}

// ThenBy appends an ascending tie-breaker. Called on a Series that wasn't
// produced by OrderBy/OrderByDescending, it behaves like OrderBy.
func (s *Series) ThenBy(key KeyFunc) *Series {
	if s.sortSpec == nil {
		return s.OrderBy(key)
	}
	return s.applySort(s.sortSrc, s.sortSpec.ThenBy(adaptKey(key)))
}

// ThenByDescending appends a descending tie-breaker.
func (s *Series) ThenByDescending(key KeyFunc) *Series {
	if s.sortSpec == nil {
		return s.OrderByDescending(key)
	}
	return s.applySort(s.sortSrc, s.sortSpec.ThenByDescending(adaptKey(key)))
}

func (s *Series) applySort(src pipeline.Iterable, spec sortutil.Spec) *Series {
	out := s.wrap(spec.Apply(src))
	out.sortSpec = &spec
	out.sortSrc = src
	return out
}
