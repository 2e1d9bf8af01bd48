// Command kfst loads a transducer and runs an interactive lookup REPL,
// the Go counterpart of the reference fst.py driver: read a transducer
// file, then repeatedly read a line from stdin and print every
// accepting output with its weight.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/fergusq/kfst-go"
	"github.com/fergusq/kfst-go/format/att"
	"github.com/fergusq/kfst-go/format/binary"
)

func main() {
	debug := flag.Bool("d", false, "enable transition tracing to stderr")
	printSymbols := flag.Bool("s", false, "print the transducer's sorted symbol texts, one per line, and exit")
	start := flag.Uint("start", 0, "start state for lookup")
	formatFlag := flag.String("f", "auto", "transducer file format: textual, binary, or auto")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-d] [-s] [-start state] [-f textual|binary|auto] <transducer-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	tr, err := loadTransducer(path, *formatFlag, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if *printSymbols {
		printSortedSymbols(tr)
		os.Exit(0)
	}

	repl(tr, uint32(*start))
}

// loadTransducer picks the decoder by the -f flag; auto selects binary
// iff path ends in ".kfst", else textual, matching the reference
// driver's `args.fst_file.suffix == ".kfst"` check.
func loadTransducer(path, kind string, debug bool) (*kfst.Transducer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if (kind == "auto" && strings.HasSuffix(path, ".kfst")) || kind == "binary" {
		return binary.Decode(data, debug)
	}
	if kind == "auto" || kind == "textual" {
		return att.Decode(data, debug)
	}
	return nil, fmt.Errorf("unknown format %q: want textual, binary, or auto", kind)
}

// printSortedSymbols implements the -s flag: print the transducer's
// symbol texts in sorted order, one per line.
func printSortedSymbols(tr *kfst.Transducer) {
	symbols := tr.Symbols()
	texts := make([]string, len(symbols))
	for i, sym := range symbols {
		texts[i] = sym.Text()
	}
	sort.Strings(texts)
	for _, text := range texts {
		fmt.Println(text)
	}
}

// repl mirrors fst.py's `while True: text = input("> ")` loop: read a
// line, print every accepting output and its weight, blank line between
// queries, and exit cleanly on EOF.
func repl(tr *kfst.Transducer, start uint32) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		text := scanner.Text()

		results, err := tr.Lookup(text, start, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		for _, r := range results {
			fmt.Printf("%s\t%g\n", r.Output, r.Weight)
		}
		fmt.Println()
	}
}

