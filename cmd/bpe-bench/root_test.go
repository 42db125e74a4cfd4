package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-bpe/internal/bench"
	"github.com/jamesainslie/go-bpe/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setup(t *testing.T) (corpus, coarse, fine string) {
	t.Helper()
	dir := t.TempDir()
	corpus = filepath.Join(dir, "corpus")
	writeFile(t, filepath.Join(corpus, "a.txt"), "# Title: A\n\nHello world.")
	writeFile(t, filepath.Join(corpus, "sub", "b.txt"), "Hello again.")

	coarse = filepath.Join(dir, "coarse.vocab")
	writeFile(t, coarse, "▁hello\t1\n▁world\t2\n▁again\t3\n")
	fine = filepath.Join(dir, "fine.vocab")
	writeFile(t, fine, "▁hello\t1\n▁\t2\n")
	return corpus, coarse, fine
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_Single(t *testing.T) {
	corpus, coarse, _ := setup(t)

	out, err := execute(t, "--corpus", corpus, "--vocab-path", coarse, "--no-progress")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Tok/Word")
	assert.True(t, strings.HasPrefix(lines[2], coarse), lines[2])
	assert.Contains(t, lines[2], "1.000")
}

func TestRun_Compare(t *testing.T) {
	corpus, coarse, fine := setup(t)

	out, err := execute(t, "--corpus", corpus, "--compare", fine+","+coarse, "--per-document", "--workers", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2+2*3)
	assert.True(t, strings.HasPrefix(lines[2], "coarse.vocab"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "  a"), lines[3])
	assert.True(t, strings.HasPrefix(lines[5], "fine.vocab"), lines[5])
}

func TestRun_MissingCorpus(t *testing.T) {
	_, coarse, _ := setup(t)

	_, err := execute(t, "--corpus", filepath.Join(t.TempDir(), "missing"), "--vocab-path", coarse)
	require.ErrorContains(t, err, "loading corpus")
}

func TestOpenCandidates_SkipsBlankPaths(t *testing.T) {
	_, coarse, fine := setup(t)

	cands, err := openCandidates(configWith(coarse), " , "+fine+", ")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "fine.vocab", cands[0].Name)
}

func TestPrintRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRow(&buf, "x", bench.Stats{Documents: 1, Words: 2, Tokens: 4, Unknown: 1}))
	assert.Equal(t, "x                                       1        2        4    2.000    25.00\n", buf.String())
}

func configWith(path string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Vocab.Path = path
	return cfg
}
