// Package dateutil implements the stateless string<->date functions backing
// the parse and format coercions in the table package. It is built on
// github.com/oarkflow/date, which accepts heterogeneous date strings
// without the caller supplying an exact layout.
package dateutil

import (
	"fmt"
	"time"

	fuzzydate "github.com/oarkflow/date"
)

// Parse converts s to a time.Time. When layout is non-empty it is used with
// time.Parse (explicit format requested by the caller); when layout is
// empty, Parse falls back to oarkflow/date's heuristic parser instead of a
// locale-sensitive default.
func Parse(s, layout string) (time.Time, error) {
	if layout != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("dateutil: parse %q with layout %q: %w", s, layout, err)
		}
		return t, nil
	}
	t, err := fuzzydate.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: parse %q: %w", s, err)
	}
	return t, nil
}

// Format renders t with layout. Unlike Parse, Format always requires an
// explicit layout: there is no ambiguity to resolve on the way out, only on
// the way in, so no heuristic fallback is offered here.
func Format(t time.Time, layout string) (string, error) {
	if layout == "" {
		return "", fmt.Errorf("dateutil: Format requires an explicit layout")
	}
	return t.Format(layout), nil
}
