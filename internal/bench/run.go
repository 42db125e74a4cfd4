package bench

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	bpe "github.com/jamesainslie/go-bpe"
)

// DocumentResult holds the statistics of one document.
type DocumentResult struct {
	ID    string
	Stats Stats
}

// Report aggregates a run over a corpus.
type Report struct {
	Name      string
	Documents []DocumentResult
	Total     Stats
}

// RunOptions controls a run.
type RunOptions struct {
	// Workers bounds the documents tokenized concurrently. Values below 1 mean 1.
	Workers int

	// Progress, if set, is called once per finished document.
	// Calls may come from several goroutines.
	Progress func(DocumentResult)
}

// Run tokenizes every document with enc and aggregates the statistics.
// Per-document results keep corpus order.
func Run(ctx context.Context, name string, enc *bpe.Encoder, docs []*Document, opts RunOptions) (Report, error) {
	results := make([]DocumentResult, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats := Measure(enc, doc.Text)
			stats.Documents = 1
			results[i] = DocumentResult{ID: doc.ID, Stats: stats}
			if opts.Progress != nil {
				opts.Progress(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Name: name, Documents: results}
	for _, r := range results {
		report.Total.Add(r.Stats)
	}
	return report, nil
}

// Candidate is a named encoder to compare.
type Candidate struct {
	Name    string
	Encoder *bpe.Encoder
}

// Compare runs every candidate over docs and returns the reports ordered by
// fertility, lowest first. Ties keep candidate order.
func Compare(ctx context.Context, candidates []Candidate, docs []*Document, opts RunOptions) ([]Report, error) {
	reports := make([]Report, 0, len(candidates))
	for _, c := range candidates {
		r, err := Run(ctx, c.Name, c.Encoder, docs, opts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	slices.SortStableFunc(reports, func(a, b Report) int {
		fa, fb := a.Total.Fertility(), b.Total.Fertility()
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	})
	return reports, nil
}
