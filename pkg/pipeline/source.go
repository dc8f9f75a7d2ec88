package pipeline

// Empty returns an iterable whose first Advance returns false.
func Empty() Iterable {
	return newIterable(func() Cursor {
		return &emptyCursor{}
	})
}

type emptyCursor struct{}

func (c *emptyCursor) Advance() bool { return false }
func (c *emptyCursor) Current() Pair { return Pair{} }

// FromPairs steps through an indexable buffer of already-built pairs.
func FromPairs(pairs []Pair) Iterable {
	return newIterable(func() Cursor {
		return &arrayCursor{pairs: pairs, pos: -1}
	})
}

// FromPairsErr is like FromPairs but the backing slice is produced by
// materialize on each Cursor() call. Materializing operators (sort, reverse,
// joins) use it two ways: a closure over a "done" flag lets the first call
// compute and cache while later calls replay the cached slice, and when
// materialize errors the cursor yields nothing and surfaces the error via
// Err, so a driving terminal sees it instead of a silently empty pipeline.
func FromPairsErr(materialize func() ([]Pair, error)) Iterable {
	return newIterable(func() Cursor {
		pairs, err := materialize()
		if err != nil {
			return &failCursor{err: err}
		}
		return &arrayCursor{pairs: pairs, pos: -1}
	})
}

type arrayCursor struct {
	pairs []Pair
	pos   int
}

func (c *arrayCursor) Advance() bool {
	if c.pos+1 >= len(c.pairs) {
		c.pos = len(c.pairs)
		return false
	}
	c.pos++
	return true
}

func (c *arrayCursor) Current() Pair { return c.pairs[c.pos] }

// FromValues pairs each value with an auto-filled Count index (0, 1, 2, …).
func FromValues(values []any) Iterable {
	return newIterable(func() Cursor {
		return &sliceValuesCursor{values: values, pos: -1}
	})
}

type sliceValuesCursor struct {
	values []any
	pos    int
}

func (c *sliceValuesCursor) Advance() bool {
	if c.pos+1 >= len(c.values) {
		c.pos = len(c.values)
		return false
	}
	c.pos++
	return true
}

func (c *sliceValuesCursor) Current() Pair {
	return Pair{Index: c.pos, Value: c.values[c.pos]}
}

// Count is the infinite sequence 0, 1, 2, … used as the default auto-index
// source. Both Index and Value of each emitted pair equal the position.
func Count() Iterable {
	return newIterable(func() Cursor {
		return &countCursor{pos: -1}
	})
}

type countCursor struct{ pos int }

func (c *countCursor) Advance() bool { c.pos++; return true }
func (c *countCursor) Current() Pair { return Pair{Index: c.pos, Value: c.pos} }

// Slot selects which half of a Pair Extract projects.
type Slot int

const (
	SlotIndex Slot = iota
	SlotValue
)

// Extract maps each input pair to pair[slot], re-paired with a fresh 0..
// position index. It is used to derive the index-only or value-only
// sub-streams that back Series.GetIndex and Series.ToValues-like internals.
func Extract(src Iterable, slot Slot) Iterable {
	return newIterable(func() Cursor {
		return &extractCursor{inner: src.Cursor(), slot: slot, pos: -1}
	})
}

type extractCursor struct {
	inner Cursor
	slot  Slot
	pos   int
}

func (c *extractCursor) Advance() bool {
	if !c.inner.Advance() {
		return false
	}
	c.pos++
	return true
}

func (c *extractCursor) Current() Pair {
	p := c.inner.Current()
	v := p.Index
	if c.slot == SlotValue {
		v = p.Value
	}
	return Pair{Index: c.pos, Value: v}
}

// Zip2 zips two parallel cursors into pairs: the index stream's Value
// becomes the new Index, the values stream's Value becomes the new Value.
// It terminates as soon as either side exhausts.
func Zip2(indexIter, valuesIter Iterable) Iterable {
	return newIterable(func() Cursor {
		return &zip2Cursor{idx: indexIter.Cursor(), val: valuesIter.Cursor()}
	})
}

type zip2Cursor struct {
	idx, val Cursor
}

func (c *zip2Cursor) Advance() bool {
	if !c.idx.Advance() {
		return false
	}
	if !c.val.Advance() {
		return false
	}
	return true
}

func (c *zip2Cursor) Current() Pair {
	return Pair{Index: c.idx.Current().Value, Value: c.val.Current().Value}
}

// Multi zips an arbitrary number of cursors' value channels into a []any
// tuple, indexed by Count. It is used to build row-records from parallel
// column arrays: each emitted Value is a []any of length len(iters).
func Multi(iters []Iterable) Iterable {
	return newIterable(func() Cursor {
		cursors := make([]Cursor, len(iters))
		for i, it := range iters {
			cursors[i] = it.Cursor()
		}
		return &multiCursor{cursors: cursors, pos: -1}
	})
}

type multiCursor struct {
	cursors []Cursor
	pos     int
}

func (c *multiCursor) Advance() bool {
	for _, cur := range c.cursors {
		if !cur.Advance() {
			return false
		}
	}
	c.pos++
	return true
}

func (c *multiCursor) Current() Pair {
	tuple := make([]any, len(c.cursors))
	for i, cur := range c.cursors {
		tuple[i] = cur.Current().Value
	}
	return Pair{Index: c.pos, Value: tuple}
}
