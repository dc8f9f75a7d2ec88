package table

import (
	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/window"
)

func (s *Series) subSeries(b window.Boundary) *Series {
	return s.wrap(pipeline.Take(pipeline.Skip(s.it, b.Skip), b.Take))
}

func (s *Series) boundariesToSeries(boundaries []window.Boundary) *Series {
	pairs := make([]pipeline.Pair, len(boundaries))
	for i, b := range boundaries {
		pairs[i] = pipeline.Pair{Index: i, Value: s.subSeries(b)}
	}
	return s.wrap(pipeline.FromPairs(pairs))
}

// Window emits non-overlapping windows of exactly period elements plus a
// final short window if any remain. Each emitted window is itself a Series
// over the original source restricted by skip+take, indexed by emission order.
func (s *Series) Window(period int) *Series {
	return s.boundariesToSeries(window.Fixed(s.it, period))
}

// RollingWindow emits every period-sized contiguous window; emits nothing if
// the input has fewer than period elements.
func (s *Series) RollingWindow(period int) *Series {
	return s.boundariesToSeries(window.Rolling(s.it, period))
}

// VariableWindow accumulates while eq(prev, cur) holds, with a boundary on
// the first false.
func (s *Series) VariableWindow(eq func(prev, cur any) bool) *Series {
	boundaries := window.Variable(s.it, func(a, b pipeline.Pair) bool { return eq(a.Value, b.Value) })
	return s.boundariesToSeries(boundaries)
}
