package table

import (
	"golang.org/x/exp/constraints"

	"tabpipe/pkg/sortutil"
)

// compareValues orders two arbitrary element values; used by Min/Max so
// aggregation works over strings and times, not only numbers.
func compareValues(a, b any) int { return sortutil.Compare(a, b) }

// Numeric bounds the generic reducers below to values that support +.
// Series.Sum/Average coerce their dynamic elements to float64 once, then
// fold through these; Min/Max stay on compareValues since they also order
// strings and times.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// SumOf adds a typed slice of numeric values; 0 for an empty slice.
func SumOf[T Numeric](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// AverageOf returns the mean of a typed slice of numeric values; 0 (not NaN)
// for an empty slice, matching Series.Average's empty-sequence behavior.
func AverageOf[T Numeric](values []T) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(SumOf(values)) / float64(len(values))
}
