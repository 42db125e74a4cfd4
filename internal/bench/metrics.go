package bench

import (
	bpe "github.com/jamesainslie/go-bpe"
	"github.com/jamesainslie/go-bpe/tokenizer"
)

// Stats holds tokenization counts for some amount of text.
// Tokens excludes the <s> and </s> markers.
type Stats struct {
	Documents int
	Sentences int
	Words     int
	Tokens    int
	Unknown   int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Documents += o.Documents
	s.Sentences += o.Sentences
	s.Words += o.Words
	s.Tokens += o.Tokens
	s.Unknown += o.Unknown
}

// Fertility is the mean number of tokens per word, word breaks included.
func (s Stats) Fertility() float64 {
	if s.Words == 0 {
		return 0
	}
	return float64(s.Tokens) / float64(s.Words)
}

// UnknownRate is the fraction of tokens that are <unk>.
func (s Stats) UnknownRate() float64 {
	if s.Tokens == 0 {
		return 0
	}
	return float64(s.Unknown) / float64(s.Tokens)
}

// Measure tokenizes text with enc and counts the result.
func Measure(enc *bpe.Encoder, text string) Stats {
	var s Stats
	for sentence := range tokenizer.SplitSentences(text) {
		s.Sentences++
		for range tokenizer.SplitWords(sentence) {
			s.Words++
		}
	}

	for token := range enc.TokenizeIter(text) {
		switch token {
		case tokenizer.SentenceStart, tokenizer.SentenceEnd:
		case tokenizer.Unknown:
			s.Tokens++
			s.Unknown++
		default:
			s.Tokens++
		}
	}
	return s
}
