package tokenizer

import (
	"iter"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SplitSentences yields the UAX #29 sentences of text that contain at least one
// alphanumeric rune.
func SplitSentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest, state := text, -1
		var sentence string
		for len(rest) > 0 {
			sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
			if !hasAlphanumeric(sentence) {
				continue
			}
			if !yield(sentence) {
				return
			}
		}
	}
}

// SplitWords yields the UAX #29 words of sentence that contain at least one
// alphanumeric rune. Punctuation and whitespace segments are dropped.
func SplitWords(sentence string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest, state := sentence, -1
		var word string
		for len(rest) > 0 {
			word, rest, state = uniseg.FirstWordInString(rest, state)
			if !hasAlphanumeric(word) {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r) {
			return true
		}
	}
	return false
}

// newLowerCaser returns a full Unicode lower-case mapper. A Caser keeps
// state between calls, so each sentence gets its own.
func newLowerCaser() cases.Caser {
	return cases.Lower(language.Und)
}
