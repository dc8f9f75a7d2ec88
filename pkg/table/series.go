// Package table implements the Series and DataFrame pipeline cores in one
// package: the two share a PairIterable trait and DataFrame methods build
// Series (GetSeries) while Series.Join/JoinOuter* build DataFrames, so
// keeping them together avoids a cyclic import rather than fighting it with
// registration indirection.
package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/sortutil"
)

// Series holds one iterable whose cursor yields (index, value) pairs, plus
// a factory used to preserve the concrete constructor on derived
// operations (e.g. a caller that embeds Series and overrides newFn gets its
// own type back from Select/Where/... instead of a bare *Series).
type Series struct {
	it    pipeline.Iterable
	newFn func(pipeline.Iterable) *Series

	// sortSpec/sortSrc are only set on a Series returned by OrderBy*/ThenBy*,
	// so ThenBy can extend the same accumulated key batch instead of
	// re-sorting an already-sorted pipeline.
	sortSpec *sortutil.Spec
	sortSrc  pipeline.Iterable
}

// SeriesOptions is the constructor shape for Series: exactly one of
// Iterable, or {Values, Index}, may be supplied; supplying an Iterable
// alongside Values/Index fails at construction.
type SeriesOptions struct {
	// Values, when Iterable is nil, seeds the series; Index, if nil,
	// defaults to the 0.. Count sequence.
	Values []any
	// Index is nil, a []any of equal intended length, or a *Series whose
	// VALUES become the new index stream.
	Index any
	// Iterable, if non-nil, is used as-is and Values/Index must be unset.
	Iterable pipeline.Iterable
}

// NewSeries validates opts and builds a Series. Shape errors surface here,
// eagerly; everything else waits for evaluation.
func NewSeries(opts SeriesOptions) (*Series, error) {
	if opts.Iterable != nil {
		if opts.Values != nil || opts.Index != nil {
			return nil, fmt.Errorf("%w: Iterable cannot be combined with Values/Index", pipeline.ErrInvalidArgument)
		}
		return newSeries(opts.Iterable), nil
	}
	if opts.Values == nil {
		if opts.Index != nil {
			return nil, fmt.Errorf("%w: Index without Values", pipeline.ErrInvalidArgument)
		}
		return newSeries(pipeline.Empty()), nil
	}
	if opts.Index == nil {
		return newSeries(pipeline.FromValues(opts.Values)), nil
	}
	switch idx := opts.Index.(type) {
	case []any:
		it := pipeline.Zip2(pipeline.FromValues(idx), pipeline.FromValues(opts.Values))
		return newSeries(it), nil
	case *Series:
		it := pipeline.Zip2(idx.it, pipeline.FromValues(opts.Values))
		return newSeries(it), nil
	default:
		return nil, fmt.Errorf("%w: Index must be []any or *Series, got %T", pipeline.ErrInvalidArgument, opts.Index)
	}
}

func newSeries(it pipeline.Iterable) *Series {
	return &Series{it: it, newFn: newSeries}
}

// FromValues is shorthand for NewSeries(SeriesOptions{Values: values}).
func FromValues(values []any) *Series { return newSeries(pipeline.FromValues(values)) }

// EmptySeries returns a Series with no pairs.
func EmptySeries() *Series { return newSeries(pipeline.Empty()) }

// PairIterable satisfies pipeline.PairSource.
func (s *Series) PairIterable() pipeline.Iterable { return s.it }

func (s *Series) wrap(it pipeline.Iterable) *Series {
	factory := s.newFn
	if factory == nil {
		factory = newSeries
	}
	return factory(it)
}

// Cursor is a convenience for callers driving the pipeline directly.
func (s *Series) Cursor() pipeline.Cursor { return s.it.Cursor() }

func pairPredicate(fn func(value, index any) bool) func(pipeline.Pair) bool {
	return func(p pipeline.Pair) bool { return fn(p.Value, p.Index) }
}
