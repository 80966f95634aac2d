// Package order0 provides a lossless compressor built on finite precision arithmetic coding with a static order-0 model.
// The model is the symbol frequency table of the whole message, which is stored alongside the coded bits.
//
// Below is an example of using this package to compress Lincoln's Gettysburg address:
//
//	go run compress/main.go testdata/gettysburg.txt > gettys.ac0
//	cat gettys.ac0 | go run decompress/main.go > gettys.dac0
//	diff testdata/gettysburg.txt gettys.dac0
//
// Reference:
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
package order0

import (
	"io"
	"io/ioutil"

	"github.com/fumin/order0/ac/witten"
	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when compressing a message of zero length.
var ErrEmptyInput = errors.New("empty input")

// ErrInputTooLarge is returned when a message is too long for the 4 byte length field of a container.
var ErrInputTooLarge = errors.New("input too large")

// ErrMalformedContainer is returned when a container is inconsistent, or its bits do not decode to the declared length.
var ErrMalformedContainer = errors.New("malformed container")

// Compress compresses data into a container.
func Compress(data []byte) ([]byte, error) {
	table, err := NewFrequencyTable(data)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	model, err := NewModel(table, table.Total())
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	bits, err := witten.Encode(data, model)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	c := &Container{}
	c.Length = uint32(len(data))
	c.Table = table
	c.Bits = bits
	c.Last = data[len(data)-1]
	blob, err := c.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return blob, nil
}

// Decompress reconstructs the message compressed in blob.
func Decompress(blob []byte) ([]byte, error) {
	c, err := UnmarshalContainer(blob)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	model, err := NewModel(c.Table, uint64(c.Length))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	data, err := witten.Decode(c.Bits, model, int64(c.Length))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedContainer, "%v", err)
	}
	data[len(data)-1] = c.Last
	return data, nil
}

// CompressFile compresses the file name and writes the container to w.
func CompressFile(w io.Writer, name string) error {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	blob, err := Compress(data)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if _, err := w.Write(blob); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// DecompressReader reads a whole container from r and writes the decompressed message to w.
func DecompressReader(w io.Writer, r io.Reader) error {
	blob, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	data, err := Decompress(blob)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
