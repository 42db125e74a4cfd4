package bpe

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/jamesainslie/go-bpe/bundle"
	"github.com/jamesainslie/go-bpe/tokenizer"
)

// Encoder tokenizes text against a fixed vocabulary.
// It is safe for concurrent use.
type Encoder struct {
	tokenizer *tokenizer.Tokenizer
}

// New creates an Encoder from a vocabulary text file of "<token>\t<score>"
// lines.
func New(vocabPath string, opts ...Option) (*Encoder, error) {
	v, err := tokenizer.LoadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return newEncoder(v, vocabPath, opts), nil
}

// NewFromString creates an Encoder from vocabulary text held in memory.
func NewFromString(vocab string, opts ...Option) (*Encoder, error) {
	v, err := tokenizer.ParseVocabString(vocab)
	if err != nil {
		return nil, err
	}
	return newEncoder(v, "string", opts), nil
}

// NewFromMap creates an Encoder from an already-loaded token to score
// mapping. The map is copied.
func NewFromMap(tokens map[string]int, opts ...Option) *Encoder {
	return newEncoder(tokenizer.NewVocab(tokens), "map", opts)
}

// NewFromVocab creates an Encoder sharing an existing vocabulary.
func NewFromVocab(v *tokenizer.Vocab, opts ...Option) *Encoder {
	return newEncoder(v, "vocab", opts)
}

// NewFromSentencePiece creates an Encoder from a SentencePiece .model file,
// such as the ones BPEmb publishes next to its .vocab files.
func NewFromSentencePiece(modelPath string, opts ...Option) (*Encoder, error) {
	v, err := tokenizer.LoadSentencePiece(modelPath)
	if err != nil {
		return nil, err
	}
	return newEncoder(v, modelPath, opts), nil
}

// NewDefault creates an Encoder from a registered default vocabulary.
// It returns ErrNoDefaultVocab if that size was not bundled.
func NewDefault(size bundle.Size, opts ...Option) (*Encoder, error) {
	tokens, err := bundle.Load(size)
	if err != nil {
		return nil, err
	}
	return newEncoder(tokenizer.NewVocab(tokens), "default "+size.String(), opts), nil
}

// NewDefaultSmall uses the 100k entry multilingual vocabulary.
func NewDefaultSmall(opts ...Option) (*Encoder, error) {
	return NewDefault(bundle.Small, opts...)
}

// NewDefaultMedium uses the 320k entry multilingual vocabulary.
func NewDefaultMedium(opts ...Option) (*Encoder, error) {
	return NewDefault(bundle.Medium, opts...)
}

// NewDefaultLarge uses the 1M entry multilingual vocabulary.
func NewDefaultLarge(opts ...Option) (*Encoder, error) {
	return NewDefault(bundle.Large, opts...)
}

func newEncoder(v *tokenizer.Vocab, source string, opts []Option) *Encoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tok := tokenizer.New(v)
	if cfg.normalize {
		tok = tokenizer.NewNormalized(v, cfg.form)
	}

	cfg.logger.Debug("vocabulary loaded",
		slog.String("source", source),
		slog.Int("entries", tok.Vocab().Len()),
		slog.Int("max_token_runes", tok.Vocab().MaxTokenLen()),
	)

	return &Encoder{tokenizer: tok}
}

// Vocab returns the encoder's vocabulary.
func (e *Encoder) Vocab() *tokenizer.Vocab {
	return e.tokenizer.Vocab()
}

// TokenizeSentencesIter lazily tokenizes text one sentence at a time.
func (e *Encoder) TokenizeSentencesIter(text string) iter.Seq[iter.Seq[string]] {
	return e.tokenizer.Sentences(text)
}

// TokenizeIter lazily tokenizes text, concatenating all sentences.
func (e *Encoder) TokenizeIter(text string) iter.Seq[string] {
	return e.tokenizer.Tokens(text)
}

// TokenizeSentences tokenizes text into one token slice per sentence.
// Text with no sentences yields an empty result.
func (e *Encoder) TokenizeSentences(text string) [][]string {
	var out [][]string
	for sentence := range e.TokenizeSentencesIter(text) {
		out = append(out, slices.Collect(sentence))
	}
	return out
}

// Tokenize tokenizes text into a flat token slice.
func (e *Encoder) Tokenize(text string) []string {
	return slices.Collect(e.TokenizeIter(text))
}

// TokenizeWord tokenizes a single pre-segmented word. No lower-casing or
// word-break prefix is applied; callers wanting word-initial tokens pass
// tokenizer.WordBreak + word.
func (e *Encoder) TokenizeWord(word string) []string {
	return e.tokenizer.TokenizeWord(word)
}
