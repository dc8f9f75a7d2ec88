// Package window computes window boundaries. It never
// builds the windows themselves; that is left to series/dataframe, which
// turn each Boundary into a lazy sub-pipeline via Skip(boundary.Skip).Take
// (boundary.Take) over the *original* source, so a consumer that
// re-iterates a window gets the same pairs every time.
package window

import "tabpipe/pkg/pipeline"

// Boundary describes one emitted window as an offset and length into the
// original source.
type Boundary struct {
	Skip, Take int
}

// Fixed steps by period: non-overlapping windows of exactly period elements,
// plus one final short window holding whatever remains.
func Fixed(src pipeline.Iterable, period int) []Boundary {
	n := count(src)
	var out []Boundary
	for skip := 0; skip < n; skip += period {
		take := period
		if skip+take > n {
			take = n - skip
		}
		out = append(out, Boundary{Skip: skip, Take: take})
	}
	return out
}

// Rolling steps by 1: every contiguous period-sized window. Emits nothing
// if the source has fewer than period elements.
func Rolling(src pipeline.Iterable, period int) []Boundary {
	n := count(src)
	if n < period {
		return nil
	}
	out := make([]Boundary, 0, n-period+1)
	for skip := 0; skip+period <= n; skip++ {
		out = append(out, Boundary{Skip: skip, Take: period})
	}
	return out
}

// Variable accumulates while eq(prev, cur) holds and starts a new window on
// the first false (groupSequentialBy's boundary rule).
func Variable(src pipeline.Iterable, eq func(prev, cur pipeline.Pair) bool) []Boundary {
	cur := src.Cursor()
	var out []Boundary
	if !cur.Advance() {
		return nil
	}
	prev := cur.Current()
	skip := 0
	length := 1
	pos := 1
	for cur.Advance() {
		c := cur.Current()
		if eq(prev, c) {
			length++
		} else {
			out = append(out, Boundary{Skip: skip, Take: length})
			skip = pos
			length = 1
		}
		prev = c
		pos++
	}
	out = append(out, Boundary{Skip: skip, Take: length})
	return out
}

func count(src pipeline.Iterable) int {
	cur := src.Cursor()
	n := 0
	for cur.Advance() {
		n++
	}
	return n
}
