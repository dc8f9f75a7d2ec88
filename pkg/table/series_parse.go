package table

import (
	"fmt"
	"strconv"
	"time"

	"tabpipe/pkg/dateutil"
	"tabpipe/pkg/pipeline"
)

// parseFn converts a non-empty string value to the target type, returning
// ErrTypeMismatch on malformed input.
type parseFn func(s string) (any, error)

// parseCursor implements the shared absent/empty-string/non-string handling
// every parse-family operator follows: absent values pass through unchanged,
// empty strings become absent, and a non-string input surfaces
// ErrTypeMismatch at evaluation time via Err(), the same pattern
// reindexCursor uses for its duplicate-index failure.
type parseCursor struct {
	inner pipeline.Cursor
	parse parseFn
	err   error
}

func (c *parseCursor) Advance() bool {
	if c.err != nil {
		return false
	}
	return c.inner.Advance()
}

func (c *parseCursor) Current() pipeline.Pair {
	p := c.inner.Current()
	if pipeline.IsAbsent(p.Value) {
		return p
	}
	str, ok := p.Value.(string)
	if !ok {
		c.err = fmt.Errorf("%w: expected string, got %T", pipeline.ErrTypeMismatch, p.Value)
		return pipeline.Pair{Index: p.Index, Value: pipeline.Absent}
	}
	if str == "" {
		return pipeline.Pair{Index: p.Index, Value: pipeline.Absent}
	}
	v, err := c.parse(str)
	if err != nil {
		c.err = err
		return pipeline.Pair{Index: p.Index, Value: pipeline.Absent}
	}
	return pipeline.Pair{Index: p.Index, Value: v}
}

func (c *parseCursor) Err() error { return c.err }

// parsed wraps the series in a lazy element-wise parse: nothing is consumed
// until a terminal drives the result, and a bad input surfaces there, not
// here.
func (s *Series) parsed(parse parseFn) *Series {
	src := s.it
	return s.wrap(pipeline.FromCursorFactory(func() pipeline.Cursor {
		return &parseCursor{inner: src.Cursor(), parse: parse}
	}))
}

// ParseInts parses every string value as a base-10 integer.
func (s *Series) ParseInts() *Series {
	return s.parsed(func(str string) (any, error) {
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parseInts %q: %v", pipeline.ErrTypeMismatch, str, err)
		}
		return n, nil
	})
}

// ParseFloats parses every string value as a float64.
func (s *Series) ParseFloats() *Series {
	return s.parsed(func(str string) (any, error) {
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parseFloats %q: %v", pipeline.ErrTypeMismatch, str, err)
		}
		return f, nil
	})
}

// ParseDates parses every string value as a time.Time. layout is an explicit
// Go time layout; empty uses dateutil's heuristic fallback parser.
func (s *Series) ParseDates(layout string) *Series {
	return s.parsed(func(str string) (any, error) {
		t, err := dateutil.Parse(str, layout)
		if err != nil {
			return nil, fmt.Errorf("%w: parseDates %q: %v", pipeline.ErrTypeMismatch, str, err)
		}
		return t, nil
	})
}

// ToStrings formats every value with layout; time.Time values go through
// dateutil.Format, everything else through fmt.Sprint. Absent values pass
// through unchanged.
func (s *Series) ToStrings(layout string) *Series {
	src := s.it
	return s.wrap(pipeline.FromCursorFactory(func() pipeline.Cursor {
		return &toStringsCursor{inner: src.Cursor(), layout: layout}
	}))
}

type toStringsCursor struct {
	inner  pipeline.Cursor
	layout string
	err    error
}

func (c *toStringsCursor) Advance() bool {
	if c.err != nil {
		return false
	}
	return c.inner.Advance()
}

func (c *toStringsCursor) Current() pipeline.Pair {
	p := c.inner.Current()
	if pipeline.IsAbsent(p.Value) {
		return p
	}
	if t, ok := p.Value.(time.Time); ok {
		out, err := dateutil.Format(t, c.layout)
		if err != nil {
			c.err = err
			return pipeline.Pair{Index: p.Index, Value: pipeline.Absent}
		}
		return pipeline.Pair{Index: p.Index, Value: out}
	}
	return pipeline.Pair{Index: p.Index, Value: fmt.Sprint(p.Value)}
}

func (c *toStringsCursor) Err() error { return c.err }
