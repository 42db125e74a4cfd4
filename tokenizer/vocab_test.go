package tokenizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVocabString(t *testing.T) {
	v, err := ParseVocabString("hello\t1\nworld\t2\ntest\t3")
	require.NoError(t, err)

	assert.Equal(t, 3, v.Len())
	for token, want := range map[string]int{"hello": 1, "world": 2, "test": 3} {
		score, ok := v.Lookup(token)
		require.True(t, ok, "missing %q", token)
		assert.Equal(t, want, score, "score of %q", token)
	}
}

func TestParseVocabString_Empty(t *testing.T) {
	v, err := ParseVocabString("")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.MaxTokenLen())
}

func TestParseVocabString_Scores(t *testing.T) {
	v, err := ParseVocabString("▁the\t-0\n▁a\t-12\nb\t+7\nc\t0\r\n")
	require.NoError(t, err)

	tests := []struct {
		token string
		want  int
	}{
		{"▁the", 0},
		{"▁a", -12},
		{"b", 7},
		{"c", 0},
	}
	for _, tt := range tests {
		score, ok := v.Lookup(tt.token)
		require.True(t, ok, "missing %q", tt.token)
		assert.Equal(t, tt.want, score, "score of %q", tt.token)
	}
}

func TestParseVocabString_SplitsOnFirstTab(t *testing.T) {
	// The score part keeps everything after the first tab, so a second tab
	// makes it non-numeric.
	_, err := ParseVocabString("a\tb\t1")
	require.ErrorIs(t, err, ErrMalformedVocab)
}

func TestParseVocabString_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"space instead of tab", "hello 1\nworld\t2"},
		{"non-numeric score", "hello\t1\nworld\tabc"},
		{"float score", "hello\t1.5"},
		{"overflow", "hello\t99999999999999999999999"},
		{"empty score", "hello\t"},
		{"blank line", "hello\t1\n\nworld\t2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVocabString(tt.input)
			require.ErrorIs(t, err, ErrMalformedVocab)
			assert.Nil(t, v)
		})
	}
}

func TestParseVocabString_Deterministic(t *testing.T) {
	input := "▁the\t-1\nthe\t-2\n▁a\t-3\nz\t-4"

	a, err := ParseVocabString(input)
	require.NoError(t, err)
	b, err := ParseVocabString(input)
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for token, score := range a.All() {
		got, ok := b.Lookup(token)
		require.True(t, ok)
		assert.Equal(t, score, got)
	}
}

func TestVocab_LookupAbsentVersusLowScore(t *testing.T) {
	v := NewVocab(map[string]int{"low": -1 << 62})

	score, ok := v.Lookup("low")
	assert.True(t, ok)
	assert.Equal(t, -1<<62, score)

	score, ok = v.Lookup("missing")
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestNewVocab_CopiesMap(t *testing.T) {
	m := map[string]int{"a": 1}
	v := NewVocab(m)
	m["b"] = 2

	assert.Equal(t, 1, v.Len())
	assert.False(t, v.Contains("b"))
}

func TestVocab_MaxTokenLenCountsRunes(t *testing.T) {
	v := NewVocab(map[string]int{"▁": 1, "こんにちは": 2, "ab": 3})
	assert.Equal(t, 5, v.MaxTokenLen())
}

func TestLoadVocab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.vocab")
	require.NoError(t, os.WriteFile(path, []byte("hello\t1\nworld\t2"), 0o644))

	v, err := LoadVocab(path)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Contains("hello"))
	assert.True(t, v.Contains("world"))
}

func TestLoadVocab_FileNotFound(t *testing.T) {
	_, err := LoadVocab(filepath.Join(t.TempDir(), "nonexistent.vocab"))
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "nonexistent.vocab")
}
