package window

import (
	"testing"

	"tabpipe/pkg/pipeline"
)

func TestFixedExactMultiple(t *testing.T) {
	src := pipeline.FromValues([]any{1, 2, 3, 4})
	b := Fixed(src, 2)
	want := []Boundary{{Skip: 0, Take: 2}, {Skip: 2, Take: 2}}
	if len(b) != len(want) {
		t.Fatalf("got %+v, want %+v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("boundary %d = %+v, want %+v", i, b[i], want[i])
		}
	}
}

func TestFixedTrailingShortWindow(t *testing.T) {
	src := pipeline.FromValues([]any{1, 2, 3, 4, 5})
	b := Fixed(src, 2)
	want := []Boundary{{Skip: 0, Take: 2}, {Skip: 2, Take: 2}, {Skip: 4, Take: 1}}
	if len(b) != len(want) {
		t.Fatalf("got %+v, want %+v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("boundary %d = %+v, want %+v", i, b[i], want[i])
		}
	}
}

func TestRollingEmitsEveryContiguousWindow(t *testing.T) {
	src := pipeline.FromValues([]any{1, 2, 3, 4})
	b := Rolling(src, 2)
	want := []Boundary{{0, 2}, {1, 2}, {2, 2}}
	if len(b) != len(want) {
		t.Fatalf("got %+v, want %+v", b, want)
	}
}

func TestRollingEmitsNothingWhenShorterThanPeriod(t *testing.T) {
	src := pipeline.FromValues([]any{1, 2})
	b := Rolling(src, 5)
	if b != nil {
		t.Fatalf("expected no boundaries, got %+v", b)
	}
}

func TestVariableBoundariesOnFirstFalse(t *testing.T) {
	src := pipeline.FromValues([]any{1, 1, 2, 2, 2, 3})
	b := Variable(src, func(prev, cur pipeline.Pair) bool { return prev.Value == cur.Value })
	want := []Boundary{{Skip: 0, Take: 2}, {Skip: 2, Take: 3}, {Skip: 5, Take: 1}}
	if len(b) != len(want) {
		t.Fatalf("got %+v, want %+v", b, want)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Errorf("boundary %d = %+v, want %+v", i, b[i], want[i])
		}
	}
}

func TestVariableEmptySource(t *testing.T) {
	b := Variable(pipeline.Empty(), func(a, c pipeline.Pair) bool { return true })
	if b != nil {
		t.Fatalf("expected nil boundaries for empty source, got %+v", b)
	}
}
