package parser

import "pobsd/game"

// ResultKind tells whether a load went through without error.
type ResultKind int

const (
	WithoutError ResultKind = iota
	WithError
)

// Result is the outcome of a load.
//
// Games holds the records in database order. ErrorLines holds the 1-based
// numbers of the lines that broke the field cycle; in strict mode it has at
// most one element. Skipped holds the lines discarded in relaxed mode while
// looking for the next record.
type Result struct {
	Games      []*game.Game
	ErrorLines []int
	Skipped    []int
}

// Kind returns WithError when at least one parsing error was recorded.
func (r Result) Kind() ResultKind {
	if len(r.ErrorLines) > 0 {
		return WithError
	}
	return WithoutError
}

// HasErrors reports whether at least one parsing error was recorded.
func (r Result) HasErrors() bool { return r.Kind() == WithError }
