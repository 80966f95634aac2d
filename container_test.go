package order0

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

func TestContainerLiteral(t *testing.T) {
	blob, err := Compress([]byte{65, 65, 66})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := []byte{
		3, 0, 0, 0, // length
		2,          // table size
		4,          // pad count
		65, 0, 0, 0, 2,
		66, 0, 0, 0, 1,
		0x50, // bits 0101
		66,   // last byte
	}
	if !bytes.Equal(blob, want) {
		t.Errorf("% x, want % x", blob, want)
	}

	data, err := Decompress(blob)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !bytes.Equal(data, []byte{65, 65, 66}) {
		t.Errorf("%v", data)
	}
}

func TestContainerRoundTrip(t *testing.T) {
	table, err := NewFrequencyTable([]byte("mississippi"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	rng := rand.New(rand.NewSource(3))
	for n := 2; n < 40; n++ {
		c := &Container{Length: 11, Table: table, Last: 'i'}
		c.Bits = make([]byte, n)
		for i := range c.Bits {
			c.Bits[i] = byte(rng.Intn(2))
		}

		blob, err := c.MarshalBinary()
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if pad := int(blob[5]); (n+pad)%8 != 0 || pad > 7 {
			t.Errorf("%d bits, pad %d", n, pad)
		}
		got, err := UnmarshalContainer(blob)
		if err != nil {
			t.Fatalf("%d: %+v", n, err)
		}
		if diff := pretty.Diff(c.Table.Entries(), got.Table.Entries()); len(diff) > 0 {
			t.Errorf("%d: %v", n, diff)
		}
		if got.Length != c.Length || got.Last != c.Last || !bytes.Equal(got.Bits, c.Bits) {
			t.Errorf("%d: %# v", n, pretty.Formatter(got))
		}
	}
}

func TestPackBits(t *testing.T) {
	tests := []struct {
		bits   []byte
		packed []byte
		pad    int
	}{
		{nil, []byte{}, 0},
		{[]byte{1, 0, 1}, []byte{0xa0}, 5},
		{[]byte{1, 1, 1, 1, 0, 0, 0, 1}, []byte{0xf1}, 0},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 1, 1}, []byte{0x01, 0x80}, 7},
	}
	for _, test := range tests {
		packed, pad := packBits(test.bits)
		if !bytes.Equal(packed, test.packed) || pad != test.pad {
			t.Errorf("%v: % x %d, want % x %d", test.bits, packed, pad, test.packed, test.pad)
		}
		if bits := unpackBits(packed, pad); !bytes.Equal(bits, test.bits) {
			t.Errorf("%v: unpacked %v", test.bits, bits)
		}
	}
}

func TestUnmarshalContainerMalformed(t *testing.T) {
	valid, err := Compress([]byte("hello, world"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	mutate := func(f func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return f(b)
	}

	tests := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"short", valid[:headerSize+entrySize]},
		{"zero length", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b, 0)
			return b
		})},
		{"length mismatch", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b, 13)
			return b
		})},
		{"pad count", mutate(func(b []byte) []byte {
			b[5] = 8
			return b
		})},
		{"table size exceeds blob", mutate(func(b []byte) []byte {
			b[4] = 200
			return b
		})},
		{"duplicate symbol", mutate(func(b []byte) []byte {
			b[headerSize+entrySize] = b[headerSize]
			return b
		})},
		{"zero count", mutate(func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[headerSize+1:], 0)
			return b
		})},
		{"truncated bit stream", mutate(func(b []byte) []byte {
			n := int(b[4])
			return append(b[:headerSize+n*entrySize], b[len(b)-1])
		})},
	}
	for _, test := range tests {
		_, err := Decompress(test.blob)
		if errors.Cause(err) != ErrMalformedContainer {
			t.Errorf("%s: %+v", test.name, err)
		}
	}
}

func TestMarshalBinaryInconsistent(t *testing.T) {
	table, err := NewFrequencyTable([]byte("aab"))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	c := &Container{Length: 4, Table: table, Bits: []byte{0, 1}}
	if _, err := c.MarshalBinary(); errors.Cause(err) != ErrMalformedContainer {
		t.Fatalf("%+v", err)
	}
	c = &Container{Length: 3, Bits: []byte{0, 1}}
	if _, err := c.MarshalBinary(); errors.Cause(err) != ErrMalformedContainer {
		t.Fatalf("%+v", err)
	}
}
