// Package joinset implements the join and set operators:
// inner/left-outer/right-outer/full-outer join, union, intersection, and
// except. Everything here operates on pipeline.Pair and pipeline.Iterable so
// series and dataframe can both build on it without an import cycle; join's
// combine callback is what lets a caller turn the result into DataFrame
// records.
package joinset

import "tabpipe/pkg/pipeline"

// KeyFunc extracts an equality/grouping key from a pair.
type KeyFunc func(pipeline.Pair) any

// EqualFunc reports structural equality between two values; nil defaults to
// Go's == where the dynamic types allow it (comparable built-ins).
type EqualFunc func(a, b any) bool

func defaultEqual(a, b any) bool {
	defer func() { recover() }()
	return a == b
}

// Concat emits all of a's pairs, then all of b's, preserving both orders,
// the identity every other set operation here is built from.
func Concat(a, b pipeline.Iterable) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		var out []pipeline.Pair
		for _, it := range []pipeline.Iterable{a, b} {
			pairs, err := pipeline.Drain(it)
			if err != nil {
				return nil, err
			}
			out = append(out, pairs...)
		}
		return out, nil
	})
}

// Distinct keeps the first occurrence per key. O(n²) by design: no hashing
// is required because keys are arbitrary and only need ==/eq comparability,
// not hashability.
func Distinct(src pipeline.Iterable, key KeyFunc) pipeline.Iterable {
	if key == nil {
		key = func(p pipeline.Pair) any { return p.Value }
	}
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		var seen []any
		var out []pipeline.Pair
		for _, p := range pairs {
			k := key(p)
			dup := false
			for _, s := range seen {
				if defaultEqual(s, k) {
					dup = true
					break
				}
			}
			if !dup {
				seen = append(seen, k)
				out = append(out, p)
			}
		}
		return out, nil
	})
}

// Union is Concat(a, b) followed by Distinct(key).
func Union(a, b pipeline.Iterable, key KeyFunc) pipeline.Iterable {
	return Distinct(Concat(a, b), key)
}

// Intersection keeps pairs of a whose value matches some pair of b, using
// O(n·m) nested comparison.
func Intersection(a, b pipeline.Iterable, eq EqualFunc) pipeline.Iterable {
	if eq == nil {
		eq = defaultEqual
	}
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		bPairs, err := pipeline.Drain(b)
		if err != nil {
			return nil, err
		}
		aPairs, err := pipeline.Drain(a)
		if err != nil {
			return nil, err
		}
		var out []pipeline.Pair
		for _, p := range aPairs {
			for _, bp := range bPairs {
				if eq(p.Value, bp.Value) {
					out = append(out, p)
					break
				}
			}
		}
		return out, nil
	})
}

// Except keeps pairs of a whose value matches no pair of b.
func Except(a, b pipeline.Iterable, eq EqualFunc) pipeline.Iterable {
	if eq == nil {
		eq = defaultEqual
	}
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		bPairs, err := pipeline.Drain(b)
		if err != nil {
			return nil, err
		}
		aPairs, err := pipeline.Drain(a)
		if err != nil {
			return nil, err
		}
		var out []pipeline.Pair
		for _, p := range aPairs {
			matched := false
			for _, bp := range bPairs {
				if eq(p.Value, bp.Value) {
					matched = true
					break
				}
			}
			if !matched {
				out = append(out, p)
			}
		}
		return out, nil
	})
}

// Combine builds the value (typically a DataFrame record) for one matched
// (outer, inner) pair. Either side may be pipeline.Absent for outer joins.
type Combine func(outer, inner pipeline.Pair) any

// Inner emits combine(outer, inner) for every outer/inner pair whose keys
// are equal, using a straightforward nested loop (a nested loop is
// sufficient since the contract only requires the same multiset of results
// a hash join would produce). Output index is reset to 0..n-1.
func Inner(outer, inner pipeline.Iterable, outerKey, innerKey KeyFunc, combine Combine) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		return innerJoinPairs(outer, inner, outerKey, innerKey, combine)
	})
}

func innerJoinPairs(outer, inner pipeline.Iterable, outerKey, innerKey KeyFunc, combine Combine) ([]pipeline.Pair, error) {
	innerPairs, err := pipeline.Drain(inner)
	if err != nil {
		return nil, err
	}
	outerPairs, err := pipeline.Drain(outer)
	if err != nil {
		return nil, err
	}
	var out []pipeline.Pair
	idx := 0
	for _, op := range outerPairs {
		ok := outerKey(op)
		for _, ip := range innerPairs {
			if defaultEqual(ok, innerKey(ip)) {
				out = append(out, pipeline.Pair{Index: idx, Value: combine(op, ip)})
				idx++
			}
		}
	}
	return out, nil
}

// unmatchedOuter returns outer pairs with no matching inner key.
func unmatchedOuter(outer, inner pipeline.Iterable, outerKey, innerKey KeyFunc) ([]pipeline.Pair, error) {
	innerPairs, err := pipeline.Drain(inner)
	if err != nil {
		return nil, err
	}
	innerKeys := make([]any, len(innerPairs))
	for i, ip := range innerPairs {
		innerKeys[i] = innerKey(ip)
	}
	outerPairs, err := pipeline.Drain(outer)
	if err != nil {
		return nil, err
	}
	var out []pipeline.Pair
	for _, op := range outerPairs {
		ok := outerKey(op)
		matched := false
		for _, ik := range innerKeys {
			if defaultEqual(ok, ik) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, op)
		}
	}
	return out, nil
}

// OuterLeft = (left except matches) ∪ join ∪ (∅), each unmatched left pair
// combined with an absent right side. Relative order of each branch is
// preserved; the final index is reset to 0..n-1.
func OuterLeft(left, right pipeline.Iterable, leftKey, rightKey KeyFunc, combine Combine) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		unmatched, err := unmatchedOuter(left, right, leftKey, rightKey)
		if err != nil {
			return nil, err
		}
		joined, err := innerJoinPairs(left, right, leftKey, rightKey, combine)
		if err != nil {
			return nil, err
		}
		out := make([]pipeline.Pair, 0, len(unmatched)+len(joined))
		idx := 0
		for _, p := range unmatched {
			out = append(out, pipeline.Pair{Index: idx, Value: combine(p, pipeline.Pair{Index: pipeline.Absent, Value: pipeline.Absent})})
			idx++
		}
		for _, p := range joined {
			out = append(out, pipeline.Pair{Index: idx, Value: p.Value})
			idx++
		}
		return out, nil
	})
}

// OuterRight is the mirror of OuterLeft: unmatched right pairs are combined
// with an absent left side and appended after the inner join.
func OuterRight(left, right pipeline.Iterable, leftKey, rightKey KeyFunc, combine Combine) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		unmatched, err := unmatchedOuter(right, left, rightKey, leftKey)
		if err != nil {
			return nil, err
		}
		joined, err := innerJoinPairs(left, right, leftKey, rightKey, combine)
		if err != nil {
			return nil, err
		}
		out := make([]pipeline.Pair, 0, len(joined)+len(unmatched))
		idx := 0
		for _, p := range joined {
			out = append(out, pipeline.Pair{Index: idx, Value: p.Value})
			idx++
		}
		for _, p := range unmatched {
			out = append(out, pipeline.Pair{Index: idx, Value: combine(pipeline.Pair{Index: pipeline.Absent, Value: pipeline.Absent}, p)})
			idx++
		}
		return out, nil
	})
}

// Full = (left except matches) ∪ join ∪ (right except matches), each
// unmatched branch passing Absent to the side it lacks.
func Full(left, right pipeline.Iterable, leftKey, rightKey KeyFunc, combine Combine) pipeline.Iterable {
	return pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		unmatchedLeft, err := unmatchedOuter(left, right, leftKey, rightKey)
		if err != nil {
			return nil, err
		}
		joined, err := innerJoinPairs(left, right, leftKey, rightKey, combine)
		if err != nil {
			return nil, err
		}
		unmatchedRight, err := unmatchedOuter(right, left, rightKey, leftKey)
		if err != nil {
			return nil, err
		}
		out := make([]pipeline.Pair, 0, len(unmatchedLeft)+len(joined)+len(unmatchedRight))
		idx := 0
		for _, p := range unmatchedLeft {
			out = append(out, pipeline.Pair{Index: idx, Value: combine(p, pipeline.Pair{Index: pipeline.Absent, Value: pipeline.Absent})})
			idx++
		}
		for _, p := range joined {
			out = append(out, pipeline.Pair{Index: idx, Value: p.Value})
			idx++
		}
		for _, p := range unmatchedRight {
			out = append(out, pipeline.Pair{Index: idx, Value: combine(pipeline.Pair{Index: pipeline.Absent, Value: pipeline.Absent}, p)})
			idx++
		}
		return out, nil
	})
}
