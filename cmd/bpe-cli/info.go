package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-bpe/bundle"
	"github.com/jamesainslie/go-bpe/internal/config"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured vocabulary and the registered default bundles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			enc, err := openEncoder()
			switch {
			case errors.Is(err, config.ErrNoVocab):
				if _, err := fmt.Fprintln(out, "vocabulary: none configured"); err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				v := enc.Vocab()
				if _, err := fmt.Fprintf(out, "vocabulary: %d entries, longest token %d runes\n", v.Len(), v.MaxTokenLen()); err != nil {
					return err
				}
			}

			var names []string
			for _, size := range bundle.Available() {
				names = append(names, fmt.Sprintf("%s (%s)", size, size.VocabName()))
			}
			if len(names) == 0 {
				names = append(names, "none")
			}
			_, err = fmt.Fprintf(out, "bundles: %s\n", strings.Join(names, ", "))
			return err
		},
	}
}
