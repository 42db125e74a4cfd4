package bench

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	bpe "github.com/jamesainslie/go-bpe"
)

func testEncoder(t *testing.T, vocab string) *bpe.Encoder {
	t.Helper()
	enc, err := bpe.NewFromString(vocab)
	if err != nil {
		t.Fatalf("NewFromString() error = %v", err)
	}
	return enc
}

func TestMeasure(t *testing.T) {
	enc := testEncoder(t, "hello\t1\nworld\t2\n▁\t3")

	got := Measure(enc, "Hello, world! How are you?")
	want := Stats{Sentences: 2, Words: 5, Tokens: 10, Unknown: 3}
	if got != want {
		t.Errorf("Measure() = %+v, want %+v", got, want)
	}
}

func TestMeasure_Empty(t *testing.T) {
	enc := testEncoder(t, "a\t1")
	if got := Measure(enc, " ... "); got != (Stats{}) {
		t.Errorf("Measure() = %+v, want zero", got)
	}
}

func TestStats_Ratios(t *testing.T) {
	tests := []struct {
		name        string
		stats       Stats
		fertility   float64
		unknownRate float64
	}{
		{"zero", Stats{}, 0, 0},
		{"whole words", Stats{Words: 4, Tokens: 4}, 1, 0},
		{"split words", Stats{Words: 2, Tokens: 5, Unknown: 1}, 2.5, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Fertility(); math.Abs(got-tt.fertility) > 1e-9 {
				t.Errorf("Fertility() = %v, want %v", got, tt.fertility)
			}
			if got := tt.stats.UnknownRate(); math.Abs(got-tt.unknownRate) > 1e-9 {
				t.Errorf("UnknownRate() = %v, want %v", got, tt.unknownRate)
			}
		})
	}
}

func TestStats_Add(t *testing.T) {
	s := Stats{Documents: 1, Sentences: 2, Words: 3, Tokens: 4, Unknown: 5}
	s.Add(Stats{Documents: 1, Sentences: 1, Words: 1, Tokens: 1, Unknown: 1})

	want := Stats{Documents: 2, Sentences: 3, Words: 4, Tokens: 5, Unknown: 6}
	if s != want {
		t.Errorf("Add() = %+v, want %+v", s, want)
	}
}

func testDocs() []*Document {
	return []*Document{
		{ID: "one", Text: "Hello world."},
		{ID: "two", Text: "Hello there. World again."},
		{ID: "three", Text: "!!!"},
	}
}

func TestRun(t *testing.T) {
	enc := testEncoder(t, "▁hello\t1\n▁world\t2")

	var calls atomic.Int32
	report, err := Run(context.Background(), "tiny", enc, testDocs(), RunOptions{
		Workers:  2,
		Progress: func(DocumentResult) { calls.Add(1) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Name != "tiny" {
		t.Errorf("Name = %q", report.Name)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("progress called %d times, want 3", got)
	}
	for i, id := range []string{"one", "two", "three"} {
		if report.Documents[i].ID != id {
			t.Errorf("Documents[%d].ID = %q, want %q", i, report.Documents[i].ID, id)
		}
	}

	want := Stats{Documents: 3, Sentences: 3, Words: 6, Tokens: 6, Unknown: 2}
	if report.Total != want {
		t.Errorf("Total = %+v, want %+v", report.Total, want)
	}
}

func TestRun_Cancelled(t *testing.T) {
	enc := testEncoder(t, "a\t1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, "x", enc, testDocs(), RunOptions{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestCompare(t *testing.T) {
	coarse := testEncoder(t, "▁hello\t1\n▁world\t2\n▁there\t3\n▁again\t4")
	fine := testEncoder(t, "▁\t1\nh\t2\ne\t3\nl\t4\no\t5\nw\t6\nr\t7\nd\t8\nt\t9\na\t10\ng\t11\ni\t12\nn\t13")

	reports, err := Compare(context.Background(), []Candidate{
		{Name: "fine", Encoder: fine},
		{Name: "coarse", Encoder: coarse},
	}, testDocs(), RunOptions{Workers: 4})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Name != "coarse" || reports[1].Name != "fine" {
		t.Errorf("order = %s, %s; want coarse, fine", reports[0].Name, reports[1].Name)
	}
	if reports[0].Total.Fertility() != 1 {
		t.Errorf("coarse fertility = %v, want 1", reports[0].Total.Fertility())
	}
}
