package pipeline

// Skip discards the first n pairs, then passes the rest through unchanged.
func Skip(src Iterable, n int) Iterable {
	return newIterable(func() Cursor {
		return &skipCursor{inner: src.Cursor(), remaining: n}
	})
}

type skipCursor struct {
	inner     Cursor
	remaining int
}

func (c *skipCursor) Advance() bool {
	for c.remaining > 0 {
		if !c.inner.Advance() {
			c.remaining = 0
			return false
		}
		c.remaining--
	}
	return c.inner.Advance()
}

func (c *skipCursor) Current() Pair { return c.inner.Current() }

// Take passes through only the first n pairs.
func Take(src Iterable, n int) Iterable {
	return newIterable(func() Cursor {
		return &takeCursor{inner: src.Cursor(), remaining: n}
	})
}

type takeCursor struct {
	inner     Cursor
	remaining int
}

func (c *takeCursor) Advance() bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.inner.Advance()
}

func (c *takeCursor) Current() Pair { return c.inner.Current() }

// SkipWhile discards pairs while pred holds, then passes through
// unconditionally after the first false (pred is not re-evaluated).
func SkipWhile(src Iterable, pred func(Pair) bool) Iterable {
	return newIterable(func() Cursor {
		return &skipWhileCursor{inner: src.Cursor(), pred: pred}
	})
}

type skipWhileCursor struct {
	inner    Cursor
	pred     func(Pair) bool
	skipping bool
	started  bool
}

func (c *skipWhileCursor) Advance() bool {
	if !c.started {
		c.started = true
		c.skipping = true
	}
	if c.skipping {
		for c.inner.Advance() {
			if !c.pred(c.inner.Current()) {
				c.skipping = false
				return true
			}
		}
		return false
	}
	return c.inner.Advance()
}

func (c *skipWhileCursor) Current() Pair { return c.inner.Current() }

// TakeWhile passes through while pred holds and terminates at the first
// false, consuming (but not emitting) the pair that failed the predicate.
func TakeWhile(src Iterable, pred func(Pair) bool) Iterable {
	return newIterable(func() Cursor {
		return &takeWhileCursor{inner: src.Cursor(), pred: pred}
	})
}

type takeWhileCursor struct {
	inner Cursor
	pred  func(Pair) bool
	done  bool
}

func (c *takeWhileCursor) Advance() bool {
	if c.done {
		return false
	}
	if !c.inner.Advance() {
		c.done = true
		return false
	}
	if !c.pred(c.inner.Current()) {
		c.done = true
		return false
	}
	return true
}

func (c *takeWhileCursor) Current() Pair { return c.inner.Current() }

// Where is a pass-through filter.
func Where(src Iterable, pred func(Pair) bool) Iterable {
	return newIterable(func() Cursor {
		return &whereCursor{inner: src.Cursor(), pred: pred}
	})
}

type whereCursor struct {
	inner Cursor
	pred  func(Pair) bool
}

func (c *whereCursor) Advance() bool {
	for c.inner.Advance() {
		if c.pred(c.inner.Current()) {
			return true
		}
	}
	return false
}

func (c *whereCursor) Current() Pair { return c.inner.Current() }

// SelectValue replaces value with fn(value, index); index is unchanged.
func SelectValue(src Iterable, fn func(value, index any) any) Iterable {
	return newIterable(func() Cursor {
		return &selectValueCursor{inner: src.Cursor(), fn: fn}
	})
}

type selectValueCursor struct {
	inner Cursor
	fn    func(value, index any) any
}

func (c *selectValueCursor) Advance() bool { return c.inner.Advance() }

func (c *selectValueCursor) Current() Pair {
	p := c.inner.Current()
	return Pair{Index: p.Index, Value: c.fn(p.Value, p.Index)}
}

// SelectPair replaces the entire pair with fn(value, index).
func SelectPair(src Iterable, fn func(value, index any) Pair) Iterable {
	return newIterable(func() Cursor {
		return &selectPairCursor{inner: src.Cursor(), fn: fn}
	})
}

type selectPairCursor struct {
	inner Cursor
	fn    func(value, index any) Pair
}

func (c *selectPairCursor) Advance() bool { return c.inner.Advance() }

func (c *selectPairCursor) Current() Pair {
	p := c.inner.Current()
	return c.fn(p.Value, p.Index)
}

// SelectMany calls fn(value, index) for each input pair, expecting it to
// return a finite Iterable of values; every produced element carries the
// parent index. An error returned by fn (e.g. ErrProducerShape from a caller
// that rejects an unrecognized collection) stops the walk and is surfaced
// through Err.
func SelectMany(src Iterable, fn func(value, index any) (Iterable, error)) Iterable {
	return newIterable(func() Cursor {
		return &selectManyCursor{inner: src.Cursor(), fn: fn}
	})
}

type selectManyCursor struct {
	inner Cursor
	fn    func(value, index any) (Iterable, error)
	cur   Cursor
	outer Pair
	err   error
}

func (c *selectManyCursor) Advance() bool {
	if c.err != nil {
		return false
	}
	for {
		if c.cur != nil && c.cur.Advance() {
			return true
		}
		if !c.inner.Advance() {
			return false
		}
		c.outer = c.inner.Current()
		produced, err := c.fn(c.outer.Value, c.outer.Index)
		if err != nil {
			c.err = err
			return false
		}
		c.cur = produced.Cursor()
	}
}

func (c *selectManyCursor) Current() Pair {
	return Pair{Index: c.outer.Index, Value: c.cur.Current().Value}
}

// Err returns the producer error, if any, surfaced by the last Advance.
func (c *selectManyCursor) Err() error { return c.err }

// SelectManyPairs is like SelectMany but fn returns [index, value] pairs
// directly instead of the parent index being re-attached.
func SelectManyPairs(src Iterable, fn func(value, index any) (Iterable, error)) Iterable {
	return newIterable(func() Cursor {
		return &selectManyPairsCursor{inner: src.Cursor(), fn: fn}
	})
}

type selectManyPairsCursor struct {
	inner Cursor
	fn    func(value, index any) (Iterable, error)
	cur   Cursor
	err   error
}

func (c *selectManyPairsCursor) Advance() bool {
	if c.err != nil {
		return false
	}
	for {
		if c.cur != nil && c.cur.Advance() {
			return true
		}
		if !c.inner.Advance() {
			return false
		}
		outer := c.inner.Current()
		produced, err := c.fn(outer.Value, outer.Index)
		if err != nil {
			c.err = err
			return false
		}
		c.cur = produced.Cursor()
	}
}

func (c *selectManyPairsCursor) Current() Pair { return c.cur.Current() }

func (c *selectManyPairsCursor) Err() error { return c.err }

// PairZip advances all inner cursors in lockstep and combines their current
// pairs with combine; the result adopts the first input's index.
func PairZip(srcs []Iterable, combine func(pairs []Pair) any) Iterable {
	return newIterable(func() Cursor {
		cursors := make([]Cursor, len(srcs))
		for i, s := range srcs {
			cursors[i] = s.Cursor()
		}
		return &pairZipCursor{cursors: cursors, combine: combine}
	})
}

type pairZipCursor struct {
	cursors []Cursor
	combine func(pairs []Pair) any
	cur     []Pair
}

func (c *pairZipCursor) Advance() bool {
	pairs := make([]Pair, len(c.cursors))
	for i, cur := range c.cursors {
		if !cur.Advance() {
			return false
		}
		pairs[i] = cur.Current()
	}
	c.cur = pairs
	return true
}

func (c *pairZipCursor) Current() Pair {
	return Pair{Index: c.cur[0].Index, Value: c.combine(c.cur)}
}

// ValueZip is PairZip specialized to combine just the Values.
func ValueZip(srcs []Iterable, combine func(values []any) any) Iterable {
	return PairZip(srcs, func(pairs []Pair) any {
		values := make([]any, len(pairs))
		for i, p := range pairs {
			values[i] = p.Value
		}
		return combine(values)
	})
}
