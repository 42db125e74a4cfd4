// Package bundle encodes, decodes and registers the precomputed default
// vocabularies.
//
// A bundle is the protobuf wire encoding of the token/score entries,
// compressed as a single LZ4 frame. Programs make a bundle available by
// registering its bytes, typically from an embedded file:
//
//	//go:embed multi.wiki.bpe.vs100000.vocab.pb.lz4
//	var small []byte
//
//	func init() { bundle.Register(bundle.Small, small) }
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pierrec/lz4/v4"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrNotBundled indicates the requested default vocabulary was not
	// registered in this program.
	ErrNotBundled = errors.New("bundle: default vocabulary not bundled")

	// ErrDecompress indicates the LZ4 frame could not be decoded.
	ErrDecompress = errors.New("bundle: decompressing vocabulary data")

	// ErrDeserialize indicates the decompressed entries are malformed.
	ErrDeserialize = errors.New("bundle: deserializing vocabulary data")
)

// Size selects one of the default multilingual BPEmb vocabularies.
type Size int

const (
	Small Size = iota
	Medium
	Large
)

var sizes = [...]struct {
	name    string
	vocab   string
	entries int
}{
	Small:  {"small", "multi.wiki.bpe.vs100000.vocab", 100_000},
	Medium: {"medium", "multi.wiki.bpe.vs320000.vocab", 320_000},
	Large:  {"large", "multi.wiki.bpe.vs1000000.vocab", 1_000_000},
}

// Sizes lists every Size.
func Sizes() []Size {
	return []Size{Small, Medium, Large}
}

// ParseSize parses "small", "medium" or "large".
func ParseSize(s string) (Size, error) {
	for i, sz := range sizes {
		if strings.EqualFold(s, sz.name) {
			return Size(i), nil
		}
	}
	return 0, fmt.Errorf("bundle: unknown size %q", s)
}

func (s Size) valid() bool {
	return s >= 0 && int(s) < len(sizes)
}

func (s Size) String() string {
	if !s.valid() {
		return fmt.Sprintf("Size(%d)", int(s))
	}
	return sizes[s].name
}

// VocabName is the BPEmb vocabulary file the bundle is built from.
func (s Size) VocabName() string {
	if !s.valid() {
		return ""
	}
	return sizes[s].vocab
}

// FileName is the bundle resource name.
func (s Size) FileName() string {
	if !s.valid() {
		return ""
	}
	return sizes[s].vocab + ".pb.lz4"
}

// Entries is the nominal number of vocabulary entries.
func (s Size) Entries() int {
	if !s.valid() {
		return 0
	}
	return sizes[s].entries
}

// Entry field numbers.
const (
	entryField = 1

	entryTokenField = 1
	entryScoreField = 2
)

// Encode writes entries to w as a compressed bundle. Entries are written
// in token order so identical maps produce identical bundles.
func Encode(w io.Writer, entries map[string]int) error {
	tokens := slices.Sorted(maps.Keys(entries))

	var raw []byte
	var msg []byte
	for _, token := range tokens {
		msg = msg[:0]
		msg = protowire.AppendTag(msg, entryTokenField, protowire.BytesType)
		msg = protowire.AppendString(msg, token)
		msg = protowire.AppendTag(msg, entryScoreField, protowire.VarintType)
		msg = protowire.AppendVarint(msg, protowire.EncodeZigZag(int64(entries[token])))

		raw = protowire.AppendTag(raw, entryField, protowire.BytesType)
		raw = protowire.AppendBytes(raw, msg)
	}

	zw := lz4.NewWriter(w)
	if _, err := zw.Write(raw); err != nil {
		return fmt.Errorf("compressing bundle: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing bundle: %w", err)
	}
	return nil
}

// Decode decompresses and deserializes a bundle.
func Decode(data []byte) (map[string]int, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty bundle", ErrDecompress)
	}
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}

	entries := make(map[string]int)
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrDeserialize, protowire.ParseError(n))
		}
		raw = raw[n:]
		if num != entryField || typ != protowire.BytesType {
			return nil, fmt.Errorf("%w: unexpected field %d", ErrDeserialize, num)
		}

		msg, n := protowire.ConsumeBytes(raw)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrDeserialize, protowire.ParseError(n))
		}
		raw = raw[n:]

		token, score, err := decodeEntry(msg)
		if err != nil {
			return nil, err
		}
		entries[token] = score
	}

	return entries, nil
}

func decodeEntry(b []byte) (token string, score int, err error) {
	var haveToken bool
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", 0, fmt.Errorf("%w: entry: %w", ErrDeserialize, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == entryTokenField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", 0, fmt.Errorf("%w: entry token: %w", ErrDeserialize, protowire.ParseError(n))
			}
			token, haveToken = string(v), true
			b = b[n:]
		case num == entryScoreField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", 0, fmt.Errorf("%w: entry score: %w", ErrDeserialize, protowire.ParseError(n))
			}
			score = int(protowire.DecodeZigZag(v))
			b = b[n:]
		default:
			return "", 0, fmt.Errorf("%w: entry: unexpected field %d", ErrDeserialize, num)
		}
	}
	if !haveToken {
		return "", 0, fmt.Errorf("%w: entry without token", ErrDeserialize)
	}
	return token, score, nil
}

var (
	mu      sync.RWMutex
	bundles = map[Size][]byte{}
)

// Register makes data available as the default vocabulary of the given
// size. Data is decoded lazily by Load; a later registration replaces an
// earlier one.
func Register(size Size, data []byte) {
	mu.Lock()
	defer mu.Unlock()
	bundles[size] = data
}

// Unregister removes the bundle of the given size.
func Unregister(size Size) {
	mu.Lock()
	defer mu.Unlock()
	delete(bundles, size)
}

// RegisterFile reads a bundle file and registers it.
func RegisterFile(size Size, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading bundle %s: %w", path, err)
	}
	Register(size, data)
	return nil
}

// RegisterDir registers every bundle found in dir under its standard file
// name and returns the sizes registered. Missing files are not an error.
func RegisterDir(dir string) ([]Size, error) {
	var found []Size
	for _, size := range Sizes() {
		path := filepath.Join(dir, size.FileName())
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return found, fmt.Errorf("checking bundle %s: %w", path, err)
		}
		if err := RegisterFile(size, path); err != nil {
			return found, err
		}
		found = append(found, size)
	}
	return found, nil
}

// Available returns the registered sizes in ascending order.
func Available() []Size {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Size, 0, len(bundles))
	for size := range bundles {
		out = append(out, size)
	}
	slices.Sort(out)
	return out
}

// Load decodes the registered bundle of the given size.
func Load(size Size) (map[string]int, error) {
	mu.RLock()
	data, ok := bundles[size]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBundled, size)
	}
	return Decode(data)
}
