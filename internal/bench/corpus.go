// Package bench measures how well a vocabulary covers a text corpus.
package bench

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Header contains metadata parsed from a corpus file's comment header.
type Header struct {
	Source   string
	Title    string
	Language string
}

// ParseHeader extracts metadata from leading "# Key: value" comment lines.
// Returns the header and the remaining text. Text without a header is
// returned unchanged with a zero Header.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	bodyStart := len(text)
	offset := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineStart := offset
		offset += len(line) + 1

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineStart
			break
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Language:"); ok {
			h.Language = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if bodyStart > len(text) {
		bodyStart = len(text)
	}
	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// Document is one loaded corpus file.
type Document struct {
	ID     string // path relative to the corpus root, without extension
	Header Header
	Text   string
}

// LoadDocument parses a document from raw file contents.
func LoadDocument(id string, data []byte) (*Document, error) {
	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	return &Document{ID: id, Header: header, Text: body}, nil
}

// LoadCorpus loads every file under dir matching the doublestar pattern,
// in lexical path order.
func LoadCorpus(dir, pattern string) ([]*Document, error) {
	return LoadCorpusFS(os.DirFS(dir), pattern)
}

// LoadCorpusFS is LoadCorpus over an fs.FS.
func LoadCorpusFS(fsys fs.FS, pattern string) ([]*Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var matches []string
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return err
		}
		if matched {
			matches = append(matches, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}

	docs := make([]*Document, 0, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		doc, err := LoadDocument(strings.TrimSuffix(name, path.Ext(name)), data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
