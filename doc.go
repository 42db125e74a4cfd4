// Package bpe provides greedy longest-match subword tokenization against a
// pre-trained BPEmb style vocabulary.
//
// # Quick Start
//
//	enc, err := bpe.New("en.wiki.bpe.vs10000.vocab")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens := enc.Tokenize("This is a test sentence.")
//
// # Algorithm
//
// Text is split into Unicode sentences and each sentence into Unicode words
// (UAX #29). Every word is lower-cased and prefixed with the word-break
// character ▁ before being matched against the vocabulary:
//
//  1. Try substring lengths from longest to shortest.
//  2. At the first length with any vocabulary match, take the match with the
//     highest score (the leftmost one on equal scores).
//  3. Tokenize the text before and after the match the same way.
//  4. A span with no match at any length becomes <unk>.
//
// Each sentence is wrapped in <s> and </s>.
//
// # Default Vocabularies
//
// The multilingual BPEmb vocabularies are distributed as compressed bundles
// (see package bundle). A program that registers a bundle can then use
// NewDefaultSmall, NewDefaultMedium or NewDefaultLarge; otherwise those
// return ErrNoDefaultVocab.
//
// # Thread Safety
//
// An Encoder is immutable once constructed and is safe for concurrent use.
//
// # Vocabulary Files
//
// MIT-licensed vocabularies for 275 languages are available from BPEmb:
//   - https://github.com/bheinzerling/bpemb
package bpe
