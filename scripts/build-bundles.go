//go:build ignore

// Convert BPEmb multilingual vocabularies into default vocabulary bundles.
// Reads <in>/multi.wiki.bpe.vs{100000,320000,1000000}.vocab and writes
// <out>/<name>.pb.lz4 for every file present.
// Usage: go run ./scripts/build-bundles.go [-in vocab] [-out bundles]
package main

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/jamesainslie/go-bpe/bundle"
	"github.com/jamesainslie/go-bpe/tokenizer"
)

func main() {
	inDir := flag.String("in", "vocab", "Directory containing BPEmb .vocab files")
	outDir := flag.String("out", "bundles", "Directory to write bundles to")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	built := 0
	for _, size := range bundle.Sizes() {
		inPath := filepath.Join(*inDir, size.VocabName())
		if _, err := os.Stat(inPath); errors.Is(err, os.ErrNotExist) {
			fmt.Printf("Skipping %s: %s not found\n", size, inPath)
			continue
		}

		outPath := filepath.Join(*outDir, size.FileName())
		fmt.Printf("Building %s...\n", size)
		n, err := build(inPath, outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s: %v\n", size, err)
			os.Exit(1)
		}
		if n != size.Entries() {
			fmt.Printf("  warning: %d entries, expected %d\n", n, size.Entries())
		}
		fmt.Printf("  -> %s (%d entries)\n", outPath, n)
		built++
	}

	if built == 0 {
		fmt.Println("No vocabularies found. Download them from https://bpemb.h-its.org/multi/ first.")
		os.Exit(1)
	}
}

func build(inPath, outPath string) (n int, err error) {
	v, err := tokenizer.LoadVocab(inPath)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	if err := bundle.Encode(out, maps.Collect(v.All())); err != nil {
		return 0, err
	}
	return v.Len(), nil
}
