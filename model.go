package order0

import (
	"math"

	"github.com/pkg/errors"
)

// An Entry is a symbol together with the number of times it occurs in a message.
type Entry struct {
	Symbol byte
	Count  uint32
}

// A FrequencyTable holds the symbol counts of a message,
// in the order the symbols are first observed in the message.
// A FrequencyTable is immutable.
type FrequencyTable struct {
	entries []Entry
	total   uint64
}

// NewFrequencyTable counts the symbols of data.
func NewFrequencyTable(data []byte) (*FrequencyTable, error) {
	if len(data) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrInputTooLarge, "%d bytes", len(data))
	}

	var counts [256]uint32
	order := make([]byte, 0, 256)
	for _, b := range data {
		if counts[b] == 0 {
			order = append(order, b)
		}
		counts[b]++
	}

	t := &FrequencyTable{}
	t.entries = make([]Entry, 0, len(order))
	for _, b := range order {
		t.entries = append(t.entries, Entry{Symbol: b, Count: counts[b]})
	}
	t.total = uint64(len(data))
	return t, nil
}

// FrequencyTableFromEntries rebuilds a FrequencyTable from its entries, for example after reading them from a container.
// The entries must have distinct symbols and positive counts.
func FrequencyTableFromEntries(entries []Entry) (*FrequencyTable, error) {
	if len(entries) == 0 {
		return nil, errors.Wrap(ErrMalformedContainer, "empty frequency table")
	}
	if len(entries) > 256 {
		return nil, errors.Wrapf(ErrMalformedContainer, "%d table entries", len(entries))
	}

	var seen [256]bool
	t := &FrequencyTable{}
	t.entries = make([]Entry, len(entries))
	for i, e := range entries {
		if e.Count == 0 {
			return nil, errors.Wrapf(ErrMalformedContainer, "zero count for symbol %d", e.Symbol)
		}
		if seen[e.Symbol] {
			return nil, errors.Wrapf(ErrMalformedContainer, "duplicate symbol %d", e.Symbol)
		}
		seen[e.Symbol] = true
		t.entries[i] = e
		t.total += uint64(e.Count)
	}
	return t, nil
}

// Entries returns a copy of the table entries.
func (t *FrequencyTable) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of distinct symbols.
func (t *FrequencyTable) Len() int {
	return len(t.entries)
}

// Total returns the sum of all counts, which is the length of the message.
func (t *FrequencyTable) Total() uint64 {
	return t.total
}

// A Model is the order-0 probability model of a message.
// The probability of a symbol is its count divided by the message length,
// and its cumulative probability is the sum of the probabilities of the symbols before it in table order.
//
// Model implements ac.Model with integer counts, so that the coder never divides floating point numbers.
type Model struct {
	entries []Entry
	cum     []uint64
	index   [256]int
	total   uint64
}

// NewModel derives the probability model of a message of length total from its frequency table.
// On the decoding side total is the transmitted message length, which must agree with the transmitted counts.
func NewModel(table *FrequencyTable, total uint64) (*Model, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.Wrap(ErrMalformedContainer, "empty frequency table")
	}
	if table.Total() != total {
		return nil, errors.Wrapf(ErrMalformedContainer, "counts sum to %d, message length %d", table.Total(), total)
	}

	m := &Model{}
	m.entries = table.entries
	m.total = total
	for i := range m.index {
		m.index[i] = -1
	}
	m.cum = make([]uint64, len(m.entries))
	var cum uint64
	for i, e := range m.entries {
		m.cum[i] = cum
		m.index[e.Symbol] = i
		cum += uint64(e.Count)
	}
	return m, nil
}

// Total returns the message length.
func (m *Model) Total() uint64 {
	return m.total
}

// Len returns the number of distinct symbols.
func (m *Model) Len() int {
	return len(m.entries)
}

// At returns the symbol, cumulative count and count of the i-th entry.
func (m *Model) At(i int) (byte, uint64, uint64) {
	e := m.entries[i]
	return e.Symbol, m.cum[i], uint64(e.Count)
}

// Index returns the table position of sym, or -1.
func (m *Model) Index(sym byte) int {
	return m.index[sym]
}

// Probability returns the probability of sym, which is zero for symbols not in the message.
func (m *Model) Probability(sym byte) float64 {
	i := m.index[sym]
	if i < 0 {
		return 0
	}
	return float64(m.entries[i].Count) / float64(m.total)
}

// Cumulative returns the cumulative probability of sym.
// The second return value is false if sym is not in the message.
func (m *Model) Cumulative(sym byte) (float64, bool) {
	i := m.index[sym]
	if i < 0 {
		return 0, false
	}
	return float64(m.cum[i]) / float64(m.total), true
}
