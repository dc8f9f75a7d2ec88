package table

import "tabpipe/pkg/pipeline"

// FillGaps applies a rolling comparison over consecutive pairs (a, b): when
// isGap(a, b) holds, fill(a, b) supplies the pairs to splice in between them.
// The final original pair is always appended at the end.
func (s *Series) FillGaps(isGap func(a, b pipeline.Pair) bool, fill func(a, b pipeline.Pair) []pipeline.Pair) *Series {
	src := s.it
	return s.wrap(pipeline.FromPairsErr(func() ([]pipeline.Pair, error) {
		pairs, err := pipeline.Drain(src)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, nil
		}
		out := make([]pipeline.Pair, 0, len(pairs))
		for i := 0; i < len(pairs)-1; i++ {
			a, b := pairs[i], pairs[i+1]
			out = append(out, a)
			if isGap(a, b) {
				out = append(out, fill(a, b)...)
			}
		}
		out = append(out, pairs[len(pairs)-1])
		return out, nil
	}))
}
