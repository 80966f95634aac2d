// Package witten implements the arithmetic coding algorithm described in
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
//
// The coder works on a static byte model with 32 bit integer intervals.
// Bits are represented as bytes holding either 0 or 1.
package witten

import (
	"sort"

	"github.com/fumin/order0/ac"
	"github.com/pkg/errors"
)

const (
	codeValueBits = 32
	topValue      = (uint64(1) << codeValueBits) - 1
	firstQtr      = topValue/4 + 1
	half          = 2 * firstQtr
	thirdQtr      = 3 * firstQtr
)

// A step is the renormalization rule that applies to an interval.
type step int

const (
	// stepNone means no leading bit of the interval is determined yet.
	stepNone step = iota

	// stepLower means the interval lies below half, so the next bit is 0.
	stepLower

	// stepUpper means the interval lies at or above half, so the next bit is 1.
	stepUpper

	// stepStraddle means the interval straddles half inside the middle two quarters.
	// The next bit is not known, only that the bit after it is the opposite.
	stepStraddle
)

// classify returns the renormalization rule for [low, high].
// The tests are tried in order and the first match wins.
func classify(low, high uint64) step {
	switch {
	case high < half:
		return stepLower
	case low >= half:
		return stepUpper
	case low >= firstQtr && high < thirdQtr:
		return stepStraddle
	default:
		return stepNone
	}
}

// offset is subtracted from the interval, and the code value, before it is doubled.
func (s step) offset() uint64 {
	switch s {
	case stepUpper:
		return half
	case stepStraddle:
		return firstQtr
	default:
		return 0
	}
}

// narrow returns the subinterval of [low, high] belonging to a symbol whose
// entry covers [cum, cum+count) out of total.
// The new high is measured from the new low.
func narrow(low, high, cum, count, total uint64) (uint64, uint64, error) {
	arange := (high - low) + 1
	low += (arange*cum + total - 1) / total
	width := arange * count / total
	if width == 0 {
		return 0, 0, errors.Wrapf(ac.ErrPrecisionOverflow, "range %d, count %d, total %d", arange, count, total)
	}
	return low, low + width - 1, nil
}

// An Encoder carries the state required by an encoder.
type Encoder struct {
	low   uint64
	high  uint64
	fbits uint64
	bits  []byte
}

// NewEncoder returns an Encoder over the full interval.
func NewEncoder() *Encoder {
	ae := &Encoder{}
	ae.high = topValue
	return ae
}

// bitPlusFollow emits bit followed by the pending opposite bits.
func (ae *Encoder) bitPlusFollow(bit byte) {
	ae.bits = append(ae.bits, bit)
	for ae.fbits > 0 {
		ae.bits = append(ae.bits, 1-bit)
		ae.fbits -= 1
	}
}

// renormalize applies a single renormalization rule, reporting false if none applies.
func (ae *Encoder) renormalize() bool {
	s := classify(ae.low, ae.high)
	switch s {
	case stepNone:
		return false
	case stepLower:
		ae.bitPlusFollow(0)
	case stepUpper:
		ae.bitPlusFollow(1)
	case stepStraddle:
		ae.fbits += 1
	}

	o := s.offset()
	ae.low = 2 * (ae.low - o)
	ae.high = 2*(ae.high-o) + 1
	return true
}

// Encode narrows the interval to sym and emits the bits that become determined.
func (ae *Encoder) Encode(sym byte, model ac.Model) error {
	i := model.Index(sym)
	if i < 0 {
		return errors.Wrapf(ac.ErrSymbolNotModeled, "symbol %d", sym)
	}
	_, cum, count := model.At(i)
	low, high, err := narrow(ae.low, ae.high, cum, count, model.Total())
	if err != nil {
		return errors.Wrapf(err, "symbol %d", sym)
	}
	ae.low, ae.high = low, high

	for ae.renormalize() {
	}
	return nil
}

// Finish emits the bits that select a code value inside the final interval, and returns all bits emitted.
// The Encoder must not be used after Finish.
func (ae *Encoder) Finish() []byte {
	ae.fbits += 1
	if ae.low < firstQtr {
		ae.bitPlusFollow(0)
	} else {
		ae.bitPlusFollow(1)
	}
	return ae.bits
}

// Encode performs arithmetic coding on src given a static model of its bytes.
func Encode(src []byte, model ac.Model) ([]byte, error) {
	ae := NewEncoder()
	for i, b := range src {
		if err := ae.Encode(b, model); err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
	}
	return ae.Finish(), nil
}

// A Decoder carries the state required by a decoder.
type Decoder struct {
	low   uint64
	high  uint64
	value uint64

	bits []byte
	pos  int
}

// NewDecoder returns a Decoder reading from bits.
// The bits are followed by codeValueBits zeros so that the decoder can read ahead of the encoded data.
func NewDecoder(bits []byte) *Decoder {
	padded := make([]byte, len(bits)+codeValueBits)
	copy(padded, bits)

	ad := &Decoder{}
	ad.high = topValue
	ad.bits = padded
	for ad.pos < codeValueBits {
		ad.value = 2*ad.value + uint64(ad.bits[ad.pos]&1)
		ad.pos++
	}
	return ad
}

// Decode returns the next symbol.
func (ad *Decoder) Decode(model ac.Model) (byte, error) {
	n := model.Len()
	if n == 0 {
		return 0, errors.Wrap(ac.ErrSymbolNotModeled, "empty model")
	}

	// The symbol is the one before the first entry whose cumulative count exceeds the scaled code value.
	arange := (ad.high - ad.low) + 1
	scaled := (ad.value - ad.low) * model.Total()
	i := sort.Search(n, func(i int) bool {
		_, cum, _ := model.At(i)
		return cum*arange > scaled
	}) - 1
	sym, cum, count := model.At(i)

	low, high, err := narrow(ad.low, ad.high, cum, count, model.Total())
	if err != nil {
		return 0, errors.Wrapf(err, "symbol %d", sym)
	}
	if ad.value < low || ad.value > high {
		return 0, errors.Wrapf(ac.ErrDecodeCorrupt, "value %d, interval [%d, %d]", ad.value, low, high)
	}
	ad.low, ad.high = low, high

	// rescale interval
	for {
		s := classify(ad.low, ad.high)
		if s == stepNone {
			break
		}
		if ad.pos >= len(ad.bits) {
			return 0, errors.Wrapf(ac.ErrDecodeInsufficientBits, "read %d bits", ad.pos)
		}

		o := s.offset()
		ad.low = 2 * (ad.low - o)
		ad.high = 2*(ad.high-o) + 1
		ad.value = 2*(ad.value-o) + uint64(ad.bits[ad.pos]&1)
		ad.pos++
	}
	return sym, nil
}

// Decode decodes bits encoded by Encode.
// Completion of the decoding is determined by originalSize, which is the number of bytes of the original data.
// Decode expects that model is the exact same model used in Encode.
func Decode(bits []byte, model ac.Model, originalSize int64) ([]byte, error) {
	if originalSize < 0 {
		return nil, errors.Errorf("negative size %d", originalSize)
	}
	ad := NewDecoder(bits)
	dst := make([]byte, 0, originalSize)
	for i := int64(0); i < originalSize; i++ {
		sym, err := ad.Decode(model)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		dst = append(dst, sym)
	}
	return dst, nil
}
