// Package sortutil implements the multi-key stable order-by/then-by chain
// shared by series and dataframe. A Spec accumulates
// (keyFn, direction) entries via OrderBy/OrderByDescending and subsequent
// ThenBy/ThenByDescending; sorting itself is deferred until the first
// Cursor() call on the pipeline built from it, then cached so later cursors
// replay the same materialized, sorted array.
package sortutil

import (
	"fmt"
	"sort"
	"time"

	"tabpipe/pkg/pipeline"
)

// KeyFunc extracts a sort key from a pair.
type KeyFunc func(pipeline.Pair) any

type entry struct {
	key  KeyFunc
	desc bool
}

// Spec is an immutable, appendable batch of sort keys. Each ThenBy* returns a
// new Spec with an extended batch; the receiver is untouched, mirroring how
// every other pipeline operator never mutates its source.
type Spec struct {
	entries []entry
}

// OrderBy starts a new ascending sort batch.
func OrderBy(key KeyFunc) Spec { return Spec{entries: []entry{{key: key}}} }

// OrderByDescending starts a new descending sort batch.
func OrderByDescending(key KeyFunc) Spec { return Spec{entries: []entry{{key: key, desc: true}}} }

// ThenBy appends an ascending tie-breaker key.
func (s Spec) ThenBy(key KeyFunc) Spec {
	return s.extend(entry{key: key})
}

// ThenByDescending appends a descending tie-breaker key.
func (s Spec) ThenByDescending(key KeyFunc) Spec {
	return s.extend(entry{key: key, desc: true})
}

func (s Spec) extend(e entry) Spec {
	next := make([]entry, len(s.entries)+1)
	copy(next, s.entries)
	next[len(s.entries)] = e
	return Spec{entries: next}
}

// Apply returns a pipeline.Iterable that, on first Cursor(), materializes
// src fully, stably sorts it by the composite comparator, and caches the
// result in the closure; every later Cursor() replays the cached array.
// Sorting forces restartability: src must support more than one logical
// pass only in the sense that Apply itself only ever calls src.Cursor()
// once (on first use), so a non-restartable src is fine here, but the
// *sorted output* is then always restartable regardless of src.
func (s Spec) Apply(src pipeline.Iterable) pipeline.Iterable {
	var (
		sorted []pipeline.Pair
		srcErr error
		done   bool
	)
	materialize := func() ([]pipeline.Pair, error) {
		if done {
			return sorted, srcErr
		}
		done = true
		pairs, err := pipeline.Drain(src)
		if err != nil {
			srcErr = err
			return nil, srcErr
		}
		sort.SliceStable(pairs, func(i, j int) bool {
			return s.less(pairs[i], pairs[j])
		})
		sorted = pairs
		return sorted, nil
	}
	return pipeline.FromPairsErr(materialize)
}

func (s Spec) less(a, b pipeline.Pair) bool {
	for _, e := range s.entries {
		ka, kb := e.key(a), e.key(b)
		c := Compare(ka, kb)
		if e.desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	return false
}

// Compare orders two arbitrary comparable keys. It recognizes the common
// scalar kinds a tabular index or sort key takes on (integers, floats,
// strings, bools, time.Time) and falls back to comparing their string
// representation so a composite sort never panics on an unrecognized type.
func Compare(a, b any) int {
	switch av := a.(type) {
	case int:
		return compareOrdered(av, toInt(b))
	case int64:
		return compareOrdered(av, toInt64(b))
	case float64:
		return compareOrdered(av, toFloat64(b))
	case string:
		bs, _ := b.(string)
		return compareOrdered(av, bs)
	case bool:
		bb, _ := b.(bool)
		return compareOrdered(boolToInt(av), boolToInt(bb))
	case time.Time:
		bt, ok := b.(time.Time)
		if !ok {
			break
		}
		switch {
		case av.Before(bt):
			return -1
		case av.After(bt):
			return 1
		default:
			return 0
		}
	}
	as, bs := toComparableString(a), toComparableString(b)
	return compareOrdered(as, bs)
}

func compareOrdered[T int | int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func toComparableString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
