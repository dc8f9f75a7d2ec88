package table

import (
	"fmt"
	"sort"

	"tabpipe/pkg/pipeline"
)

func typeName(v any) string {
	if pipeline.IsAbsent(v) {
		return "absent"
	}
	switch v.(type) {
	case nil:
		return "nil"
	case int, int32, int64:
		return "int"
	case float32, float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// DetectTypes returns a DataFrame of (Type, Frequency%) pairs describing the
// distribution of dynamic value types in the series.
func (s *Series) DetectTypes() (*DataFrame, error) {
	return s.frequencyFrame("Type", func(v any) any { return typeName(v) })
}

// DetectValues returns a DataFrame of (Value, Frequency%) pairs describing
// the distribution of distinct values in the series.
func (s *Series) DetectValues() (*DataFrame, error) {
	return s.frequencyFrame("Value", func(v any) any { return v })
}

func (s *Series) frequencyFrame(column string, key func(any) any) (*DataFrame, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	type bucket struct {
		key   any
		label any
		count int
	}
	var order []*bucket
	index := map[string]*bucket{}
	for _, p := range pairs {
		k := key(p.Value)
		label := fmt.Sprint(k)
		b, ok := index[label]
		if !ok {
			b = &bucket{key: k, label: k, count: 0}
			index[label] = b
			order = append(order, b)
		}
		b.count++
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].count > order[j].count })
	total := float64(len(pairs))
	rows := make([]map[string]any, len(order))
	for i, b := range order {
		pct := 0.0
		if total > 0 {
			pct = float64(b.count) / total * 100
		}
		rows[i] = map[string]any{column: b.label, "Frequency": pct}
	}
	return NewDataFrame(DataFrameOptions{ColumnNames: []string{column, "Frequency"}, Records: rows})
}
