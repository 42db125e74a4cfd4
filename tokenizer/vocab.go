package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrSourceUnavailable indicates the vocabulary source could not be read.
	ErrSourceUnavailable = errors.New("tokenizer: vocabulary source unavailable")

	// ErrMalformedVocab indicates the vocabulary data could not be parsed.
	ErrMalformedVocab = errors.New("tokenizer: malformed vocabulary input")
)

// maxLineSize bounds a single vocabulary line. BPEmb lines are short; this
// only guards against reading a binary file as text.
const maxLineSize = 1 << 20

// Vocab is an immutable mapping from token text to score.
// A Vocab is safe for concurrent use.
type Vocab struct {
	tokens      map[string]int
	maxTokenLen int // in runes
}

// NewVocab builds a Vocab from an already-loaded mapping. The map is copied.
func NewVocab(m map[string]int) *Vocab {
	tokens := make(map[string]int, len(m))
	for token, score := range m {
		tokens[token] = score
	}
	return newVocab(tokens)
}

func newVocab(tokens map[string]int) *Vocab {
	v := &Vocab{tokens: tokens}
	for token := range tokens {
		if n := utf8.RuneCountInString(token); n > v.maxTokenLen {
			v.maxTokenLen = n
		}
	}
	return v
}

// ParseVocab reads "<token>\t<score>" lines. The first malformed line aborts
// parsing and no vocabulary is returned.
func ParseVocab(r io.Reader) (*Vocab, error) {
	tokens := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		token, scoreText, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing tab delimiter", ErrMalformedVocab, lineNo)
		}
		score, err := strconv.Atoi(scoreText)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid score %q", ErrMalformedVocab, lineNo, scoreText)
		}
		tokens[token] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedVocab, lineNo+1, err)
	}

	return newVocab(tokens), nil
}

// ParseVocabString is ParseVocab over an in-memory string.
func ParseVocabString(s string) (*Vocab, error) {
	return ParseVocab(strings.NewReader(s))
}

// LoadVocab parses a vocabulary text file.
func LoadVocab(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	defer func() { _ = f.Close() }() // Read-only; close error carries nothing useful

	return ParseVocab(f)
}

// Lookup returns the score of token and whether it is present.
func (v *Vocab) Lookup(token string) (score int, ok bool) {
	score, ok = v.tokens[token]
	return score, ok
}

// Contains reports whether token is in the vocabulary.
func (v *Vocab) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// Len returns the number of entries.
func (v *Vocab) Len() int {
	return len(v.tokens)
}

// MaxTokenLen returns the length in runes of the longest token.
func (v *Vocab) MaxTokenLen() int {
	return v.maxTokenLen
}

// All iterates over every entry in unspecified order.
func (v *Vocab) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for token, score := range v.tokens {
			if !yield(token, score) {
				return
			}
		}
	}
}
