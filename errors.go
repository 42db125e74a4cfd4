package bpe

import (
	"github.com/jamesainslie/go-bpe/bundle"
	"github.com/jamesainslie/go-bpe/tokenizer"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidFile indicates the vocabulary file could not be read.
	ErrInvalidFile = tokenizer.ErrSourceUnavailable

	// ErrInvalidVocabulary indicates the vocabulary input is malformed.
	ErrInvalidVocabulary = tokenizer.ErrMalformedVocab

	// ErrDecompression indicates a bundled vocabulary could not be decompressed.
	ErrDecompression = bundle.ErrDecompress

	// ErrDeserialization indicates a bundled vocabulary could not be decoded.
	ErrDeserialization = bundle.ErrDeserialize

	// ErrNoDefaultVocab indicates the requested default vocabulary is not
	// bundled with this program.
	ErrNoDefaultVocab = bundle.ErrNotBundled
)
