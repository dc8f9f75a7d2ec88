package pipeline

import "errors"

// Error kinds are stable identifiers surfaced at the Series/DataFrame
// boundary. Messages built with fmt.Errorf wrap one of these so callers can
// match with errors.Is regardless of the added context.
var (
	// ErrInvalidArgument signals a wrong shape/type passed to a constructor
	// or operator (non-array pair, missing required field, unknown method).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownColumn signals a DataFrame column reference that doesn't exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateIndex signals a reindex encountering repeated source index
	// values at evaluation time.
	ErrDuplicateIndex = errors.New("duplicate index")
	// ErrEmptySequence signals first/last/min/max called on an empty pipeline.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrTypeMismatch signals a parse-family operator given a non-string input.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrProducerShape signals a selectMany/selectManyPairs producer that
	// returned something other than a recognized collection, or pairs of the
	// wrong shape.
	ErrProducerShape = errors.New("producer shape")
)

// Cursor is the single-pass pull protocol every operator drives: Advance
// attempts to move to the next pair and reports whether one is available;
// Current is only valid immediately after an Advance that returned true.
// Once Advance has returned false the cursor is terminal: further calls to
// Advance keep returning false, and Current is no longer valid.
type Cursor interface {
	Advance() bool
	Current() Pair
}

// Iterable is a restartable producer of cursors. Two calls to Cursor must be
// independent: advancing one must never affect the other, and (absent a
// single-shot user generator, see Restartable) both must replay the same
// sequence of pairs.
type Iterable interface {
	Cursor() Cursor
}

// Restartable is implemented by iterables that know whether a second Cursor
// call replays the same sequence. Iterables built from in-memory data or
// from other Iterables are always restartable; an iterable wrapping a
// single-shot user generator is not, and operations that require more than
// one pass (Count, Last, sorting, joins, pivots, Contains, set operations)
// must fail with ErrInvalidArgument against it instead of silently consuming
// it once and returning wrong answers on replay.
type Restartable interface {
	Restartable() bool
}

// IsRestartable reports whether it is safe to take more than one Cursor from
// it. Iterables that don't implement Restartable are assumed restartable,
// matching every source and operator iterable defined in this package.
func IsRestartable(it Iterable) bool {
	if r, ok := it.(Restartable); ok {
		return r.Restartable()
	}
	return true
}

// Errer is implemented by cursors that can surface an evaluation-time error
// discovered mid-iteration (e.g. SelectMany's producer call, or a Reindex
// that found a duplicate index). Terminal operations must check for it
// after the driving loop exits with Advance() == false.
type Errer interface {
	Err() error
}

// DrainErr walks cur to completion, appending every pair it yields, and
// returns the error any Errer-implementing cursor surfaced once exhausted.
func DrainErr(cur Cursor) ([]Pair, error) {
	var out []Pair
	for cur.Advance() {
		out = append(out, cur.Current())
	}
	if e, ok := cur.(Errer); ok {
		if err := e.Err(); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Drain is a convenience for Iterable sources: Cursor() then DrainErr.
func Drain(it Iterable) ([]Pair, error) {
	return DrainErr(it.Cursor())
}

// Fail returns an iterable whose cursor yields nothing and surfaces err via
// Err. Lazy operators that must reject their input (e.g. a multi-pass
// operation handed a non-restartable source) return it so the failure
// surfaces at the driving terminal call, per the lazy error contract, while
// the operator call itself stays O(1).
func Fail(err error) Iterable {
	return newIterable(func() Cursor {
		return &failCursor{err: err}
	})
}

type failCursor struct{ err error }

func (c *failCursor) Advance() bool { return false }
func (c *failCursor) Current() Pair { return Pair{} }
func (c *failCursor) Err() error    { return c.err }

// PairSource is implemented by any entity that can hand out its pair
// iterable directly; Series and DataFrame both satisfy it. It is declared
// here, at the bottom of the dependency graph, so operators like SelectMany
// can accept "a Series or a DataFrame" as a producer without series and
// dataframe needing to import each other.
type PairSource interface {
	PairIterable() Iterable
}

// iterableFunc adapts a cursor factory to Iterable.
type iterableFunc struct {
	cursor      func() Cursor
	restartable bool
}

func (f iterableFunc) Cursor() Cursor    { return f.cursor() }
func (f iterableFunc) Restartable() bool { return f.restartable }

// newIterable builds a restartable Iterable from a cursor factory. Every
// source and operator in this package goes through it, so "asking an
// iterable for a cursor yields a fresh cursor" holds by construction: the
// factory is called anew each time.
func newIterable(cursor func() Cursor) Iterable {
	return iterableFunc{cursor: cursor, restartable: true}
}

// FromCursorFactory exposes newIterable to other packages in this module
// that need a custom restartable Cursor implementation (e.g. table's
// reindex, which tracks evaluation-time duplicate-index errors).
func FromCursorFactory(cursor func() Cursor) Iterable {
	return newIterable(cursor)
}

// FromGenerator wraps a single-shot, user-supplied cursor factory. The
// resulting Iterable is explicitly non-restartable: a second Cursor call
// still invokes gen, but the caller is responsible for gen's single-shot
// semantics (e.g. it reads from an already-consumed channel or file on the
// second call). Use this only to adapt foreign one-pass sources; every
// built-in source is restartable.
func FromGenerator(gen func() Cursor) Iterable {
	return iterableFunc{cursor: gen, restartable: false}
}
