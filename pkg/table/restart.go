package table

import (
	"fmt"

	"tabpipe/pkg/pipeline"
)

// needRestartable rejects non-restartable inputs to the operations the
// restart contract reserves for replayable pipelines: count, last, sorting,
// joins, pivots, contains, and set operations. A single-shot generator
// silently yields nothing on its second cursor, so running one of these
// against it would return a wrong answer instead of an error.
func needRestartable(op string, its ...pipeline.Iterable) error {
	for _, it := range its {
		if !pipeline.IsRestartable(it) {
			return fmt.Errorf("%w: %s requires a restartable pipeline", pipeline.ErrInvalidArgument, op)
		}
	}
	return nil
}
