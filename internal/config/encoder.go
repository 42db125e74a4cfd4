package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	bpe "github.com/jamesainslie/go-bpe"
	"github.com/jamesainslie/go-bpe/bundle"
)

// Vocabulary file formats.
const (
	FormatText          = "text"
	FormatSentencePiece = "sentencepiece"
)

// ErrNoVocab is returned when neither a vocabulary path nor a default size is configured.
var ErrNoVocab = errors.New("no vocabulary configured: set vocab.path or vocab.default")

// ParseNormalization maps a normalization name to a form.
// "none" and "" report ok=false.
func ParseNormalization(name string) (form norm.Form, ok bool, err error) {
	switch strings.ToLower(name) {
	case "", "none":
		return 0, false, nil
	case "nfc":
		return norm.NFC, true, nil
	case "nfd":
		return norm.NFD, true, nil
	case "nfkc":
		return norm.NFKC, true, nil
	case "nfkd":
		return norm.NFKD, true, nil
	}
	return 0, false, fmt.Errorf("unknown normalization %q", name)
}

// ParseLogLevel maps a level name to a slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Open builds an encoder from the vocabulary and text settings.
// A configured path takes precedence over a default size.
func Open(cfg Config, logger *slog.Logger) (*bpe.Encoder, error) {
	opts := []bpe.Option{bpe.WithLogger(logger)}

	form, ok, err := ParseNormalization(cfg.Text.Normalize)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, bpe.WithNormalization(form))
	}

	if cfg.Vocab.BundleDir != "" {
		found, err := bundle.RegisterDir(cfg.Vocab.BundleDir)
		if err != nil {
			return nil, fmt.Errorf("register bundles: %w", err)
		}
		if logger != nil {
			logger.Debug("bundles registered", "dir", cfg.Vocab.BundleDir, "count", len(found))
		}
	}

	if cfg.Vocab.Path != "" {
		switch strings.ToLower(cfg.Vocab.Format) {
		case "", FormatText:
			return bpe.New(cfg.Vocab.Path, opts...)
		case FormatSentencePiece:
			return bpe.NewFromSentencePiece(cfg.Vocab.Path, opts...)
		default:
			return nil, fmt.Errorf("unknown vocabulary format %q", cfg.Vocab.Format)
		}
	}

	if cfg.Vocab.Default != "" {
		size, err := bundle.ParseSize(cfg.Vocab.Default)
		if err != nil {
			return nil, err
		}
		return bpe.NewDefault(size, opts...)
	}

	return nil, ErrNoVocab
}
