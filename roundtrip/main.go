// Command roundtrip builds a frequency model from each input file, runs the
// bytes through the rANS encoder and decoder, and reports the compression
// ratio. The model is built from the same bytes it then compresses, which
// makes this a codec demonstration rather than a file format: a real
// consumer has to ship the model and the original length out of band.
//
// Files are processed concurrently; every pass owns its own state register
// and output buffer, only the per-file model is shared.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/egonelbre/exp-rans-compression/rans"
)

var verbose = flag.Bool("verbose", false, "print content digests")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var g errgroup.Group
	for _, name := range flag.Args() {
		name := name
		g.Go(func() error {
			return roundtrip(name)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("%v", err)
	}
}

func roundtrip(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.Errorf("%s: empty file", name)
	}

	model := rans.BuildModel(data)
	comp, err := rans.Compress(model, data)
	if err != nil {
		return errors.Wrapf(err, "%s: compress", name)
	}
	out, err := rans.Decompress(model, comp, len(data))
	if err != nil {
		return errors.Wrapf(err, "%s: decompress", name)
	}

	want, got := xxhash.Sum64(data), xxhash.Sum64(out)
	if got != want {
		return errors.Errorf("%s: roundtrip mismatch: digest %016x, expected %016x", name, got, want)
	}

	p := message.NewPrinter(language.English) // commas between thousands
	p.Printf("%s: %d -> %d bytes, 1:%.3f (%.2f%% of original)\n",
		name, len(data), len(comp),
		float64(len(data))/float64(len(comp)),
		100*float64(len(comp))/float64(len(data)))
	if *verbose {
		p.Printf("%s: xxhash %016x\n", name, want)
	}
	return nil
}
