// Package cli holds the plumbing shared by the commands.
package cli

import (
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var format = logging.MustStringFormatter(`%{time:15:04:05.000} %{shortfile} %{level:.4s} %{message}`)

// NewLogger returns a logger named name that writes to standard error.
// Messages below INFO are dropped unless verbose is set.
func NewLogger(name string, verbose bool) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	level := logging.INFO
	if verbose {
		level = logging.DEBUG
	}
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return logging.MustGetLogger(name)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Create creates the file path for writing, or returns standard output if path is empty.
func Create(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return f, nil
}

// Open opens the file path for reading, or returns standard input if path is empty.
func Open(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return f, nil
}

// A CountingWriter counts the bytes written through it.
type CountingWriter struct {
	W io.Writer
	N int64
}

func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	cw.N += int64(n)
	return n, err
}

// Ratio returns compressed as a percentage of original.
func Ratio(compressed, original int64) float64 {
	if original == 0 {
		return 0
	}
	return 100 * float64(compressed) / float64(original)
}
