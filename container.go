package order0

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// headerSize is the size of the length, table size and pad count fields.
	headerSize = 4 + 1 + 1

	// entrySize is the size of a table entry, a symbol followed by its big endian count.
	entrySize = 1 + 4
)

// A Container is the compressed form of a message.
//
// Its binary layout is:
//
//	length      4 bytes, little endian
//	table size  1 byte, 0 stands for 256
//	pad count   1 byte, zero bits appended to the bit stream, 0 to 7
//	table       table size entries of 1 byte symbol and 4 byte big endian count
//	bit stream  packed most significant bit first
//	last        1 byte
//
// Last is the final byte of the message stored verbatim.
// An order-0 model carries no end of message symbol, so the decoder overwrites the byte it decoded last with Last.
type Container struct {
	Length uint32
	Table  *FrequencyTable
	Bits   []byte
	Last   byte
}

// MarshalBinary encodes c in the container layout.
func (c *Container) MarshalBinary() ([]byte, error) {
	if c.Table == nil || c.Table.Len() == 0 {
		return nil, errors.Wrap(ErrMalformedContainer, "empty frequency table")
	}
	if c.Table.Total() != uint64(c.Length) {
		return nil, errors.Wrapf(ErrMalformedContainer, "counts sum to %d, message length %d", c.Table.Total(), c.Length)
	}

	packed, pad := packBits(c.Bits)
	n := c.Table.Len()
	blob := make([]byte, headerSize, headerSize+n*entrySize+len(packed)+1)
	binary.LittleEndian.PutUint32(blob[0:4], c.Length)
	// 256 entries wrap around to 0.
	blob[4] = byte(n)
	blob[5] = byte(pad)

	var entry [entrySize]byte
	for _, e := range c.Table.entries {
		entry[0] = e.Symbol
		binary.BigEndian.PutUint32(entry[1:], e.Count)
		blob = append(blob, entry[:]...)
	}
	blob = append(blob, packed...)
	blob = append(blob, c.Last)
	return blob, nil
}

// UnmarshalContainer decodes a container produced by MarshalBinary.
func UnmarshalContainer(blob []byte) (*Container, error) {
	if len(blob) < headerSize+entrySize+1 {
		return nil, errors.Wrapf(ErrMalformedContainer, "%d bytes is shorter than the smallest container", len(blob))
	}

	c := &Container{}
	c.Length = binary.LittleEndian.Uint32(blob[0:4])
	if c.Length == 0 {
		return nil, errors.Wrap(ErrMalformedContainer, "zero message length")
	}
	n := int(blob[4])
	if n == 0 {
		n = 256
	}
	pad := int(blob[5])
	if pad > 7 {
		return nil, errors.Wrapf(ErrMalformedContainer, "pad count %d", pad)
	}

	tableEnd := headerSize + n*entrySize
	if len(blob) < tableEnd+1 {
		return nil, errors.Wrapf(ErrMalformedContainer, "table size %d exceeds %d bytes", n, len(blob))
	}
	entries := make([]Entry, n)
	for i := range entries {
		off := headerSize + i*entrySize
		entries[i].Symbol = blob[off]
		entries[i].Count = binary.BigEndian.Uint32(blob[off+1 : off+entrySize])
	}
	table, err := FrequencyTableFromEntries(entries)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if table.Total() != uint64(c.Length) {
		return nil, errors.Wrapf(ErrMalformedContainer, "counts sum to %d, message length %d", table.Total(), c.Length)
	}
	c.Table = table

	packed := blob[tableEnd : len(blob)-1]
	if pad > 0 && len(packed) == 0 {
		return nil, errors.Wrapf(ErrMalformedContainer, "pad count %d without bit stream", pad)
	}
	c.Bits = unpackBits(packed, pad)
	// The encoder always flushes at least two bits.
	if len(c.Bits) < 2 {
		return nil, errors.Wrapf(ErrMalformedContainer, "%d bits", len(c.Bits))
	}
	c.Last = blob[len(blob)-1]
	return c, nil
}

// packBits packs bits into bytes, the first bit becoming the most significant bit of the first byte.
// The last byte is filled up with pad zero bits.
func packBits(bits []byte) ([]byte, int) {
	packed := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			packed[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return packed, len(packed)*8 - len(bits)
}

// unpackBits is the inverse of packBits.
func unpackBits(packed []byte, pad int) []byte {
	bits := make([]byte, 0, len(packed)*8)
	for _, p := range packed {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (p>>uint(i))&1)
		}
	}
	return bits[:len(bits)-pad]
}
