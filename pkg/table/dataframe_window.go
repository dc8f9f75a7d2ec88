package table

import (
	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/window"
)

func (d *DataFrame) subFrame(b window.Boundary) *DataFrame {
	return d.wrap(pipeline.Take(pipeline.Skip(d.it, b.Skip), b.Take))
}

func (d *DataFrame) boundariesToFrames(boundaries []window.Boundary) *Series {
	pairs := make([]pipeline.Pair, len(boundaries))
	for i, b := range boundaries {
		pairs[i] = pipeline.Pair{Index: i, Value: d.subFrame(b)}
	}
	return newSeries(pipeline.FromPairs(pairs))
}

// Window emits non-overlapping row windows of exactly period rows plus a
// final short window if any remain, as a Series of sub-DataFrames.
func (d *DataFrame) Window(period int) *Series {
	return d.boundariesToFrames(window.Fixed(d.it, period))
}

// RollingWindow emits every period-sized contiguous row window.
func (d *DataFrame) RollingWindow(period int) *Series {
	return d.boundariesToFrames(window.Rolling(d.it, period))
}

// VariableWindow accumulates rows while eq(prev, cur) holds over records.
func (d *DataFrame) VariableWindow(eq func(prev, cur map[string]any) bool) *Series {
	boundaries := window.Variable(d.it, func(a, b pipeline.Pair) bool {
		ra, _ := asRecord(a.Value)
		rb, _ := asRecord(b.Value)
		return eq(ra, rb)
	})
	return d.boundariesToFrames(boundaries)
}
