package table

import (
	"tabpipe/pkg/joinset"
	"tabpipe/pkg/pipeline"
)

// CombineFunc builds one output record from a matched (outer, inner) pair.
// On the unmatched side of an outer join both that side's value and index
// are pipeline.Absent.
type CombineFunc func(outerValue, outerIndex, innerValue, innerIndex any) map[string]any

func adaptCombine(combine CombineFunc) joinset.Combine {
	return func(outer, inner pipeline.Pair) any {
		return combine(outer.Value, outer.Index, inner.Value, inner.Index)
	}
}

// failedFrame carries err so the join call itself stays infallible and the
// failure surfaces at whatever terminal drives the frame.
func failedFrame(err error) *DataFrame {
	return &DataFrame{it: pipeline.Fail(err), columns: []string{}}
}

// Join performs an inner join on equal keys, producing a DataFrame whose
// records are the combine results.
func (s *Series) Join(inner *Series, outerKey, innerKey KeyFunc, combine CombineFunc) *DataFrame {
	if err := needRestartable("Join", s.it, inner.it); err != nil {
		return failedFrame(err)
	}
	it := joinset.Inner(s.it, inner.it, adaptGroupKey(outerKey), adaptGroupKey(innerKey), adaptCombine(combine))
	return newDataFrameFromRecordsIterable(it)
}

// JoinOuterLeft = (left except matches) ∪ join ∪ ∅, with every unmatched
// left record's right side passed as pipeline.Absent.
func (s *Series) JoinOuterLeft(inner *Series, outerKey, innerKey KeyFunc, combine CombineFunc) *DataFrame {
	if err := needRestartable("JoinOuterLeft", s.it, inner.it); err != nil {
		return failedFrame(err)
	}
	it := joinset.OuterLeft(s.it, inner.it, adaptGroupKey(outerKey), adaptGroupKey(innerKey), adaptCombine(combine))
	return newDataFrameFromRecordsIterable(it)
}

// JoinOuterRight is the mirror of JoinOuterLeft.
func (s *Series) JoinOuterRight(inner *Series, outerKey, innerKey KeyFunc, combine CombineFunc) *DataFrame {
	if err := needRestartable("JoinOuterRight", s.it, inner.it); err != nil {
		return failedFrame(err)
	}
	it := joinset.OuterRight(s.it, inner.it, adaptGroupKey(outerKey), adaptGroupKey(innerKey), adaptCombine(combine))
	return newDataFrameFromRecordsIterable(it)
}

// JoinOuter is (left except matches) ∪ join ∪ (right except matches).
func (s *Series) JoinOuter(inner *Series, outerKey, innerKey KeyFunc, combine CombineFunc) *DataFrame {
	if err := needRestartable("JoinOuter", s.it, inner.it); err != nil {
		return failedFrame(err)
	}
	it := joinset.Full(s.it, inner.it, adaptGroupKey(outerKey), adaptGroupKey(innerKey), adaptCombine(combine))
	return newDataFrameFromRecordsIterable(it)
}
