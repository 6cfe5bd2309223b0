package text

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/storage"
)

const (
	tokenEncoderExt = ".tokens"

	// UnknownToken is the text produced when decoding the out-of-vocabulary id.
	UnknownToken = "<unk>"
)

// TokenEncoder maps whitespace-separated tokens to ids from a fixed vocabulary.
//
// Ids are assigned in vocabulary order starting at 1. The id following the
// last vocabulary entry is used for out-of-vocabulary tokens.
type TokenEncoder struct {
	vocab []string
	ids   map[string]int64
}

var _ Encoder = (*TokenEncoder)(nil)

// NewTokenEncoder creates an encoder for vocab.
// Tokens must be non-empty, unique and free of whitespace.
func NewTokenEncoder(vocab []string) (*TokenEncoder, error) {
	e := &TokenEncoder{
		vocab: make([]string, len(vocab)),
		ids:   make(map[string]int64, len(vocab)),
	}
	copy(e.vocab, vocab)

	for i, tok := range vocab {
		if tok == "" || strings.IndexFunc(tok, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: token %q at index %d", errs.ErrInvalidValue, tok, i)
		}
		if _, dup := e.ids[tok]; dup {
			return nil, fmt.Errorf("%w: duplicate token %q", errs.ErrInvalidValue, tok)
		}
		e.ids[tok] = int64(i) + 1
	}

	return e, nil
}

// Vocab returns a copy of the vocabulary.
func (e *TokenEncoder) Vocab() []string {
	out := make([]string, len(e.vocab))
	copy(out, e.vocab)

	return out
}

func (e *TokenEncoder) oovID() int64 {
	return int64(len(e.vocab)) + 1
}

func (e *TokenEncoder) Encode(s string) ([]int64, error) {
	fields := strings.Fields(s)
	ids := make([]int64, len(fields))
	for i, tok := range fields {
		id, ok := e.ids[tok]
		if !ok {
			id = e.oovID()
		}
		ids[i] = id
	}

	return ids, nil
}

func (e *TokenEncoder) Decode(ids []int64) (string, error) {
	toks := make([]string, 0, len(ids))
	for _, id := range ids {
		switch {
		case id == PaddingID:
			continue
		case id == e.oovID():
			toks = append(toks, UnknownToken)
		case id < 1 || id > int64(len(e.vocab)):
			return "", fmt.Errorf("%w: %d", errs.ErrUnknownToken, id)
		default:
			toks = append(toks, e.vocab[id-1])
		}
	}

	return strings.Join(toks, " "), nil
}

// VocabSize counts the padding id, the vocabulary and the out-of-vocabulary id.
func (e *TokenEncoder) VocabSize() int {
	return len(e.vocab) + 2
}

// Save writes the vocabulary one token per line to prefix + ".tokens".
func (e *TokenEncoder) Save(ctx context.Context, fsys storage.FS, prefix string) error {
	return storage.WriteLines(ctx, fsys, prefix+tokenEncoderExt, e.vocab)
}

// TokenEncoderConfig returns the config restoring a TokenEncoder.
func TokenEncoderConfig() EncoderConfig {
	return EncoderConfig{
		Name: "tokens",
		Ext:  tokenEncoderExt,
		Load: func(ctx context.Context, fsys storage.FS, prefix string) (Encoder, error) {
			vocab, err := storage.ReadLines(ctx, fsys, prefix+tokenEncoderExt)
			if err != nil {
				return nil, err
			}

			return NewTokenEncoder(vocab)
		},
	}
}
