package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// GetIndex returns a new Series whose values are the original indexes,
// themselves indexed 0...
func (s *Series) GetIndex() *Series {
	return s.wrap(pipeline.Extract(s.it, pipeline.SlotIndex))
}

func (s *Series) valuesOnly() pipeline.Iterable {
	return pipeline.Extract(s.it, pipeline.SlotValue)
}

// WithIndex re-pairs the current values with a new index stream of equal
// length; from a Series, the index stream is its value channel.
func (s *Series) WithIndex(newIndex *Series) *Series {
	return s.wrap(pipeline.Zip2(newIndex.it, s.valuesOnly()))
}

// ResetIndex reassigns 0..n-1.
func (s *Series) ResetIndex() *Series {
	return s.wrap(pipeline.Zip2(pipeline.Count(), s.valuesOnly()))
}

// Reindex is a left-join on newIndex: values missing from the source become
// pipeline.Absent, and a duplicate index value in the source surfaces
// ErrDuplicateIndex at evaluation time, not here.
func (s *Series) Reindex(newIndex *Series) *Series {
	return s.wrap(pipeline.FromCursorFactory(func() pipeline.Cursor {
		return &reindexCursor{src: s.it, newIndex: newIndex.it.Cursor()}
	}))
}

type reindexCursor struct {
	src      pipeline.Iterable
	newIndex pipeline.Cursor
	lookup   map[any]any
	built    bool
	err      error
}

func (c *reindexCursor) ensureLookup() {
	if c.built {
		return
	}
	c.built = true
	c.lookup = make(map[any]any)
	cur := c.src.Cursor()
	for cur.Advance() {
		p := cur.Current()
		if _, dup := c.lookup[p.Index]; dup {
			c.err = fmt.Errorf("%w: %v", pipeline.ErrDuplicateIndex, p.Index)
			return
		}
		c.lookup[p.Index] = p.Value
	}
}

func (c *reindexCursor) Advance() bool {
	c.ensureLookup()
	if c.err != nil {
		return false
	}
	return c.newIndex.Advance()
}

func (c *reindexCursor) Current() pipeline.Pair {
	idxPair := c.newIndex.Current()
	idx := idxPair.Value
	v, ok := c.lookup[idx]
	if !ok {
		v = pipeline.Absent
	}
	return pipeline.Pair{Index: idx, Value: v}
}

func (c *reindexCursor) Err() error { return c.err }
