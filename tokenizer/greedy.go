package tokenizer

// runeString is a word indexed by rune. offsets[i] is the byte offset of
// rune i; the final entry is len(s).
type runeString struct {
	s       string
	offsets []int
}

func newRuneString(s string) runeString {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))
	return runeString{s: s, offsets: offsets}
}

func (w runeString) len() int {
	return len(w.offsets) - 1
}

func (w runeString) slice(i, j int) string {
	return w.s[w.offsets[i]:w.offsets[j]]
}

// TokenizeWord splits a single word, already carrying its WordBreak prefix,
// into vocabulary tokens.
//
// The longest matching substring wins regardless of score. Among matches of
// that length the highest score wins, and equal scores go to the leftmost
// match. The text before and after the match is tokenized the same way. A
// span with no matching substring at all becomes a single Unknown token.
func (t *Tokenizer) TokenizeWord(word string) []string {
	if word == "" {
		return nil
	}
	w := newRuneString(word)
	return t.appendSpan(nil, w, 0, w.len())
}

func (t *Tokenizer) appendSpan(dst []string, w runeString, start, end int) []string {
	n := end - start
	if n == 0 {
		return dst
	}

	for length := min(n, t.vocab.maxTokenLen); length > 0; length-- {
		best := -1
		var bestScore int
		for i := start; i+length <= end; i++ {
			score, ok := t.vocab.Lookup(w.slice(i, i+length))
			if !ok {
				continue
			}
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			continue
		}

		dst = t.appendSpan(dst, w, start, best)
		dst = append(dst, w.slice(best, best+length))
		return t.appendSpan(dst, w, best+length, end)
	}

	return append(dst, Unknown)
}
