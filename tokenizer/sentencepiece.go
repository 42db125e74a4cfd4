package tokenizer

import (
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// SentencePiece ModelProto field numbers.
const (
	modelPiecesField = 1

	pieceTextField  = 1
	pieceScoreField = 2
	pieceTypeField  = 3
)

// PieceType mirrors ModelProto.SentencePiece.Type.
type PieceType int32

const (
	PieceNormal      PieceType = 1
	PieceUnknown     PieceType = 2
	PieceControl     PieceType = 3
	PieceUserDefined PieceType = 4
	PieceUnused      PieceType = 5
	PieceByte        PieceType = 6
)

// LoadSentencePiece builds a Vocab from a SentencePiece .model file.
func LoadSentencePiece(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return ParseSentencePiece(data)
}

// ParseSentencePiece decodes a serialized SentencePiece ModelProto.
//
// Only NORMAL and USER_DEFINED pieces become vocabulary entries; control and
// unknown pieces such as <s> would otherwise match literal text. Float scores
// are rounded to the nearest integer, which is exact for BPEmb models.
func ParseSentencePiece(data []byte) (*Vocab, error) {
	tokens := make(map[string]int)

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: model: %w", ErrMalformedVocab, protowire.ParseError(n))
		}
		data = data[n:]

		if num != modelPiecesField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("%w: model field %d: %w", ErrMalformedVocab, num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		msg, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("%w: piece: %w", ErrMalformedVocab, protowire.ParseError(n))
		}
		data = data[n:]

		text, score, pieceType, err := parsePiece(msg)
		if err != nil {
			return nil, err
		}
		if pieceType == PieceNormal || pieceType == PieceUserDefined {
			tokens[text] = int(math.Round(float64(score)))
		}
	}

	return newVocab(tokens), nil
}

func parsePiece(b []byte) (text string, score float32, pieceType PieceType, err error) {
	pieceType = PieceNormal

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", 0, 0, fmt.Errorf("%w: piece: %w", ErrMalformedVocab, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == pieceTextField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return "", 0, 0, fmt.Errorf("%w: piece text: %w", ErrMalformedVocab, protowire.ParseError(n))
			}
			text = string(v)
			b = b[n:]
		case num == pieceScoreField && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return "", 0, 0, fmt.Errorf("%w: piece score: %w", ErrMalformedVocab, protowire.ParseError(n))
			}
			score = math.Float32frombits(v)
			b = b[n:]
		case num == pieceTypeField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return "", 0, 0, fmt.Errorf("%w: piece type: %w", ErrMalformedVocab, protowire.ParseError(n))
			}
			pieceType = PieceType(int32(v))
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", 0, 0, fmt.Errorf("%w: piece field %d: %w", ErrMalformedVocab, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return text, score, pieceType, nil
}
