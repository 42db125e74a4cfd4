// Package tokenizer implements greedy longest-match subword tokenization
// against a scored vocabulary, in the style of BPEmb vocabularies.
package tokenizer

import (
	"iter"

	"golang.org/x/text/unicode/norm"
)

// Structural tokens.
const (
	// WordBreak is prepended to every word before lookup, so word-initial
	// subwords ("▁the") and word-internal ones ("the") are distinct entries.
	WordBreak = "▁" // ▁ LOWER ONE EIGHTH BLOCK

	SentenceStart = "<s>"
	SentenceEnd   = "</s>"
	Unknown       = "<unk>"
)

// Tokenizer splits text into vocabulary tokens.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	vocab *Vocab

	normalize bool
	form      norm.Form
}

// New creates a Tokenizer over v.
func New(v *Vocab) *Tokenizer {
	if v == nil {
		v = newVocab(map[string]int{})
	}
	return &Tokenizer{vocab: v}
}

// NewNormalized creates a Tokenizer that applies the Unicode normalization
// form to input text before segmentation.
func NewNormalized(v *Vocab, form norm.Form) *Tokenizer {
	t := New(v)
	t.normalize = true
	t.form = form
	return t
}

// Vocab returns the underlying vocabulary.
func (t *Tokenizer) Vocab() *Vocab {
	return t.vocab
}

// Sentences yields one token sequence per sentence of text.
// Text without any alphanumeric content yields nothing.
func (t *Tokenizer) Sentences(text string) iter.Seq[iter.Seq[string]] {
	if t.normalize {
		text = t.form.String(text)
	}
	return func(yield func(iter.Seq[string]) bool) {
		for sentence := range SplitSentences(text) {
			if !yield(t.Sentence(sentence)) {
				return
			}
		}
	}
}

// Tokens yields the tokens of every sentence of text in order.
func (t *Tokenizer) Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for sentence := range t.Sentences(text) {
			for token := range sentence {
				if !yield(token) {
					return
				}
			}
		}
	}
}

// Sentence yields <s>, the tokens of each lower-cased, word-break-prefixed
// word of sentence, and </s>.
func (t *Tokenizer) Sentence(sentence string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(SentenceStart) {
			return
		}
		lower := newLowerCaser()
		for word := range SplitWords(sentence) {
			for _, token := range t.TokenizeWord(WordBreak + lower.String(word)) {
				if !yield(token) {
					return
				}
			}
		}
		yield(SentenceEnd)
	}
}
