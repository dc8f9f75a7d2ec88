package joinset

import (
	"testing"

	"tabpipe/pkg/pipeline"
)

func values(t *testing.T, it pipeline.Iterable) []any {
	t.Helper()
	pairs, err := pipeline.Drain(it)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value
	}
	return out
}

func TestConcatPreservesBothOrders(t *testing.T) {
	a := pipeline.FromValues([]any{1, 2})
	b := pipeline.FromValues([]any{3, 4})
	got := values(t, Concat(a, b))
	want := []any{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestConcatAssociativity(t *testing.T) {
	a := pipeline.FromValues([]any{1})
	b := pipeline.FromValues([]any{2})
	c := pipeline.FromValues([]any{3})
	left := values(t, Concat(Concat(a, b), c))
	right := values(t, Concat(a, Concat(b, c)))
	if len(left) != len(right) {
		t.Fatalf("length mismatch: %v vs %v", left, right)
	}
	for i := range left {
		if left[i] != right[i] {
			t.Errorf("not associative at %d: %v vs %v", i, left[i], right[i])
		}
	}
}

func TestDistinctKeepsFirstOccurrence(t *testing.T) {
	src := pipeline.FromValues([]any{1, 2, 1, 3, 2})
	got := values(t, Distinct(src, nil))
	want := []any{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestUnionIsConcatThenDistinct(t *testing.T) {
	a := pipeline.FromValues([]any{1, 2})
	b := pipeline.FromValues([]any{2, 3})
	got := values(t, Union(a, b, nil))
	want := []any{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIntersectionNestedComparison(t *testing.T) {
	a := pipeline.FromValues([]any{1, 2, 3})
	b := pipeline.FromValues([]any{2, 3, 4})
	got := values(t, Intersection(a, b, nil))
	want := []any{2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExceptNestedComparison(t *testing.T) {
	a := pipeline.FromValues([]any{1, 2, 3})
	b := pipeline.FromValues([]any{2, 3})
	got := values(t, Except(a, b, nil))
	want := []any{1}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

type person struct {
	id   int
	name string
}

type order struct {
	personID int
	amount   int
}

func keyPerson(p pipeline.Pair) any { return p.Value.(person).id }
func keyOrder(p pipeline.Pair) any  { return p.Value.(order).personID }

func combineRecord(outer, inner pipeline.Pair) any {
	rec := map[string]any{}
	if !pipeline.IsAbsent(outer.Value) {
		p := outer.Value.(person)
		rec["name"] = p.name
	} else {
		rec["name"] = pipeline.Absent
	}
	if !pipeline.IsAbsent(inner.Value) {
		o := inner.Value.(order)
		rec["amount"] = o.amount
	} else {
		rec["amount"] = pipeline.Absent
	}
	return rec
}

func TestInnerJoinEmitsEveryMatchingPair(t *testing.T) {
	people := pipeline.FromValues([]any{person{1, "alice"}, person{2, "bob"}})
	orders := pipeline.FromValues([]any{order{1, 10}, order{1, 20}, order{2, 5}})
	pairs, err := pipeline.Drain(Inner(people, orders, keyPerson, keyOrder, combineRecord))
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 matches (alice has 2 orders, bob has 1), got %d: %+v", len(pairs), pairs)
	}
	for i, p := range pairs {
		if p.Index != i {
			t.Errorf("join output index not reset: pairs[%d].Index = %v", i, p.Index)
		}
	}
}

func TestOuterLeftKeepsUnmatchedLeftWithAbsentRight(t *testing.T) {
	people := pipeline.FromValues([]any{person{1, "alice"}, person{2, "bob"}})
	orders := pipeline.FromValues([]any{order{1, 10}})
	pairs, err := pipeline.Drain(OuterLeft(people, orders, keyPerson, keyOrder, combineRecord))
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected unmatched bob + joined alice, got %d: %+v", len(pairs), pairs)
	}
	bobRec := pairs[0].Value.(map[string]any)
	if bobRec["name"] != "bob" || !pipeline.IsAbsent(bobRec["amount"]) {
		t.Errorf("unmatched left record wrong: %+v", bobRec)
	}
}

func TestFullOuterJoinBothUnmatchedSides(t *testing.T) {
	people := pipeline.FromValues([]any{person{1, "alice"}, person{2, "bob"}})
	orders := pipeline.FromValues([]any{order{1, 10}, order{3, 99}})
	pairs, err := pipeline.Drain(Full(people, orders, keyPerson, keyOrder, combineRecord))
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	// unmatched-left(bob) + joined(alice/10) + unmatched-right(order 3) = 3
	if len(pairs) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(pairs), pairs)
	}
}
