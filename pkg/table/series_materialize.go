package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// ToPairs returns [index, value] tuples with absent-valued pairs dropped.
func (s *Series) ToPairs() ([]pipeline.Pair, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	out := pairs[:0:0]
	for _, p := range pairs {
		if pipeline.IsAbsent(p.Value) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ToValues drops absent-valued pairs and returns just the values.
func (s *Series) ToValues() ([]any, error) {
	pairs, err := s.ToPairs()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value
	}
	return out, nil
}

// ToRecords asserts every value is a map[string]any and returns them in order.
func (s *Series) ToRecords() ([]map[string]any, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(pairs))
	for i, p := range pairs {
		rec, ok := p.Value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: ToRecords requires map[string]any values, got %T", pipeline.ErrInvalidArgument, p.Value)
		}
		out[i] = rec
	}
	return out, nil
}

// ToRows asserts every value is a map[string]any and projects it to columns,
// in the given order, producing one []any per row.
func (s *Series) ToRows(columns []string) ([][]any, error) {
	records, err := s.ToRecords()
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			if v, ok := rec[col]; ok {
				row[j] = v
			} else {
				row[j] = pipeline.Absent
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Bake forces a single pass and replaces the pipeline with an array-backed
// iterable. Idempotent: baking an already-baked Series just re-reads the
// same cached array.
func (s *Series) Bake() (*Series, error) {
	pairs, err := pipeline.Drain(s.it)
	if err != nil {
		return nil, err
	}
	return s.wrap(pipeline.FromPairs(pairs)), nil
}
