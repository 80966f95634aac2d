// Command inspect prints the header and frequency table of a container,
// read from the file named by the first argument or from standard input.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"strings"

	"github.com/fumin/order0"
	"github.com/fumin/order0/internal/cli"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

var showBits = flag.Bool("bits", false, "print the coded bit stream")

type summary struct {
	Length    uint32
	TableSize int
	Bits      int
	Last      byte

	// Entropy is the order-0 entropy of the message in bits per symbol.
	Entropy float64
	Entries []order0.Entry
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	if err := run(flag.Arg(0), *showBits); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(input string, showBits bool) error {
	r, err := cli.Open(input)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer r.Close()
	blob, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	c, err := order0.UnmarshalContainer(blob)
	if err != nil {
		return errors.Wrap(err, "")
	}

	s := summary{}
	s.Length = c.Length
	s.TableSize = c.Table.Len()
	s.Bits = len(c.Bits)
	s.Last = c.Last
	s.Entries = c.Table.Entries()
	for _, e := range s.Entries {
		p := float64(e.Count) / float64(c.Length)
		s.Entropy -= p * math.Log2(p)
	}
	pretty.Println(s)

	if showBits {
		var b strings.Builder
		for _, bit := range c.Bits {
			b.WriteByte('0' + bit)
		}
		fmt.Println(b.String())
	}
	return nil
}
