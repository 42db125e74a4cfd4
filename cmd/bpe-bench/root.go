package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-bpe/internal/bench"
	"github.com/jamesainslie/go-bpe/internal/config"
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	var (
		cfgFile string
		compare string
		perDoc  bool
		noBar   bool
	)

	cmd := &cobra.Command{
		Use:           "bpe-bench",
		Short:         "Measure tokens per word and unknown rate over a corpus",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			setupLogger(cfg.Log.Level)

			docs, err := bench.LoadCorpus(cfg.Bench.Corpus, cfg.Bench.Glob)
			if err != nil {
				return fmt.Errorf("loading corpus: %w", err)
			}
			slog.Info("corpus loaded", "dir", cfg.Bench.Corpus, "documents", len(docs))

			candidates, err := openCandidates(cfg, compare)
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			opts := bench.RunOptions{Workers: cfg.Bench.Workers}
			if !noBar {
				bar = newProgressBar(len(docs)*len(candidates), cmd.ErrOrStderr())
				opts.Progress = func(bench.DocumentResult) { _ = bar.Add(1) }
			}

			reports, err := bench.Compare(cmd.Context(), candidates, docs, opts)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			return printReports(cmd.OutOrStdout(), reports, perDoc)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.Flags().StringVar(&compare, "compare", "", "Comma-separated vocabulary paths to compare")
	cmd.Flags().BoolVar(&perDoc, "per-document", false, "Print statistics for every document")
	cmd.Flags().BoolVar(&noBar, "no-progress", false, "Disable the progress bar")
	config.RegisterFlags(cmd.Flags(), defaults)
	config.RegisterBenchFlags(cmd.Flags(), defaults)

	return cmd
}

// openCandidates returns the configured encoder, or one encoder per path in
// compare when it is set.
func openCandidates(cfg config.Config, compare string) ([]bench.Candidate, error) {
	if compare == "" {
		enc, err := config.Open(cfg, slog.Default())
		if err != nil {
			return nil, err
		}
		name := cfg.Vocab.Path
		if name == "" {
			name = cfg.Vocab.Default
		}
		return []bench.Candidate{{Name: name, Encoder: enc}}, nil
	}

	var candidates []bench.Candidate
	for _, path := range strings.Split(compare, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		c := cfg
		c.Vocab.Path = path
		enc, err := config.Open(c, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		candidates = append(candidates, bench.Candidate{Name: filepath.Base(path), Encoder: enc})
	}
	return candidates, nil
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Tokenizing[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func printReports(w io.Writer, reports []bench.Report, perDoc bool) error {
	line := strings.Repeat("-", 72)
	if _, err := fmt.Fprintf(w, "%-32s %8s %8s %8s %8s %8s\n", "Vocabulary", "Docs", "Words", "Tokens", "Tok/Word", "Unk%"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, r := range reports {
		if err := printRow(w, r.Name, r.Total); err != nil {
			return err
		}
		if !perDoc {
			continue
		}
		for _, d := range r.Documents {
			if err := printRow(w, "  "+d.ID, d.Stats); err != nil {
				return err
			}
		}
	}
	return nil
}

func printRow(w io.Writer, name string, s bench.Stats) error {
	_, err := fmt.Fprintf(w, "%-32s %8d %8d %8d %8.3f %8.2f\n",
		name, s.Documents, s.Words, s.Tokens, s.Fertility(), 100*s.UnknownRate())
	return err
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}
