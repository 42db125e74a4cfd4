package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-bpe/bundle"
	"github.com/jamesainslie/go-bpe/tokenizer"
)

func newBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle <vocab> <out>",
		Short: "Convert a vocabulary text file into a compressed bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeBundle(args[0], args[1])
		},
	}
}

func writeBundle(vocabPath, outPath string) (err error) {
	v, err := tokenizer.LoadVocab(vocabPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := bundle.Encode(f, maps.Collect(v.All())); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}

	slog.Info("bundle written", "vocab", vocabPath, "out", outPath, "entries", v.Len())
	return nil
}
