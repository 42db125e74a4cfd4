package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <word>",
		Short: "Tokenize a single pre-processed word without segmentation or lower-casing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := openEncoder()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(enc.TokenizeWord(args[0]), " "))
			return err
		},
	}
}
