package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newTokenizeCmd() *cobra.Command {
	var (
		sentences bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Tokenize text (read from stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			enc, err := openEncoder()
			if err != nil {
				return err
			}

			// Empty text renders as an empty list, not null.
			var result any = []string{}
			if sentences {
				if s := enc.TokenizeSentences(text); s != nil {
					result = s
				} else {
					result = [][]string{}
				}
			} else if tokens := enc.Tokenize(text); tokens != nil {
				result = tokens
			}
			return writeTokens(cmd.OutOrStdout(), output, result)
		},
	}

	cmd.Flags().BoolVar(&sentences, "sentences", false, "Group tokens by sentence")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|json|yaml)")

	return cmd
}

func inputText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// writeTokens renders a []string or [][]string. Text output puts one
// sentence per line with tokens separated by spaces.
func writeTokens(w io.Writer, format string, result any) error {
	switch format {
	case outputText:
		switch v := result.(type) {
		case []string:
			_, err := fmt.Fprintln(w, strings.Join(v, " "))
			return err
		case [][]string:
			for _, sentence := range v {
				if _, err := fmt.Fprintln(w, strings.Join(sentence, " ")); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("unsupported result type %T", result)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
