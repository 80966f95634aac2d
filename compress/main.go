package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/order0"
	"github.com/fumin/order0/internal/cli"
	"github.com/pkg/errors"
)

var verbose = flag.Bool("verbose", false, "verbosity")
var output = flag.String("o", "", "output file, standard output if empty")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(name, *output, *verbose); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(name, output string, verbose bool) error {
	logger := cli.NewLogger("compress", verbose)
	info, err := os.Stat(name)
	if err != nil {
		return errors.Wrap(err, "")
	}

	w, err := cli.Create(output)
	if err != nil {
		return errors.Wrap(err, "")
	}
	cw := &cli.CountingWriter{W: w}
	if err := order0.CompressFile(cw, name); err != nil {
		w.Close()
		return errors.Wrap(err, "")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "")
	}

	logger.Debugf("%s: %d bytes -> %d bytes (%.1f%%)", name, info.Size(), cw.N, cli.Ratio(cw.N, info.Size()))
	return nil
}
