// Package indicator provides streaming technical indicator calculations.
//
// Every indicator consumes one input per call to Next, updates a bounded
// amount of internal state, and returns the output for that input. History
// is never re-scanned, so a series of any length runs in constant memory.
// Operators such as Map, Composition, Together and Diff build new
// indicators out of existing ones while preserving that contract.
package indicator

// Indicator is a streaming calculator over a series of inputs.
//
// Next advances the indicator by exactly one input and returns the output
// for it. Current peeks at the output of the most recent advance without
// consuming anything. Reset returns the indicator to its freshly
// constructed state.
//
// Implementations are not safe for concurrent use; callers that share an
// indicator across goroutines must serialize access themselves.
type Indicator[In, Out any] interface {
	// Next consumes the next input of the series and returns its output.
	Next(in In) Out
	// Current returns the output of the most recent Next call. The bool
	// reports whether a value is available; it is false until the first
	// advance and again after Reset.
	Current() (Out, bool)
	// Reset restores the initial state.
	Reset()
}

// Pair carries the two inputs of a binary operator such as Diff, or the
// two outputs of Together.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Maybe is an output that may be withheld, such as the ones Mature
// produces while its child warms up.
type Maybe[T any] struct {
	Value T
	Valid bool
}

// Get returns the contained value and whether it is valid.
func (m Maybe[T]) Get() (T, bool) {
	return m.Value, m.Valid
}

// PriceVolume is the input consumed by volume-weighted indicators such as
// VWAP and VWMA.
type PriceVolume struct {
	Price  float64
	Volume float64
}

// HLC is the input consumed by bar-range indicators such as ATR.
type HLC struct {
	High  float64
	Low   float64
	Close float64
}
