// Package ac defines the interfaces the arithmetic coding algorithm requires.
// See its subpackages for particular finite precision realizations of the algorithm.
package ac

import (
	"github.com/pkg/errors"
)

// ErrDecodeInsufficientBits is returned when there are insufficient bits sent to Decode to reconstruct the original data.
var ErrDecodeInsufficientBits = errors.New("insufficient bits sent to decoder")

// ErrDecodeCorrupt is returned when the code value read by the decoder falls outside the current interval.
// This can only happen if the bits were not produced by the encoder under the same model.
var ErrDecodeCorrupt = errors.New("code value outside of coding interval")

// ErrPrecisionOverflow is returned when narrowing the interval for a symbol would leave low > high.
// It means the symbol probabilities are too skewed for the precision of the coder.
var ErrPrecisionOverflow = errors.New("interval narrowed below coder precision")

// ErrSymbolNotModeled is returned when a symbol absent from the model is sent to the encoder.
var ErrSymbolNotModeled = errors.New("symbol not in model")

// A Model is a static probabilistic model on a sequence of bytes,
// as expected by the arithmetic coding algorithm.
//
// The model is a table of symbols with positive counts.
// The probability of a symbol is its count divided by Total,
// and its cumulative count is the sum of the counts of the symbols before it in table order.
type Model interface {
	// Total returns the sum of all counts in the table.
	Total() uint64

	// Len returns the number of entries in the table.
	Len() int

	// At returns the symbol, cumulative count and count of the i-th entry.
	At(i int) (sym byte, cum, count uint64)

	// Index returns the position of sym in the table, or -1 if sym is not in the table.
	Index(sym byte) int
}
