package main

import (
	"flag"
	"log"

	"github.com/fumin/order0"
	"github.com/fumin/order0/internal/cli"
	"github.com/pkg/errors"
)

var verbose = flag.Bool("verbose", false, "verbosity")
var output = flag.String("o", "", "output file, standard output if empty")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(flag.Arg(0), *output, *verbose); err != nil {
		log.Fatalf("%+v", err)
	}
}

// run reads the container from the file input, or from standard input if input is empty.
func run(input, output string, verbose bool) error {
	logger := cli.NewLogger("decompress", verbose)
	r, err := cli.Open(input)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer r.Close()
	w, err := cli.Create(output)
	if err != nil {
		return errors.Wrap(err, "")
	}

	cw := &cli.CountingWriter{W: w}
	if err := order0.DecompressReader(cw, r); err != nil {
		w.Close()
		return errors.Wrap(err, "")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "")
	}
	logger.Debugf("decompressed %d bytes", cw.N)
	return nil
}
