// Package text provides encoders that convert text to integer token ids and back.
//
// An Encoder is optional for text features: without one, text is stored as
// UTF-8 strings. With one, each string becomes a []int64 of ids. Id 0 is
// reserved for padding by every encoder in this package.
//
// Encoders persist their vocabulary next to the dataset metadata so that a
// feature configured with only an EncoderConfig can restore the encoder when
// the dataset is loaded:
//
//	enc, _ := text.NewTokenEncoder([]string{"the", "cat"})
//	_ = enc.Save(ctx, fsys, "data/translation-en.text")
//
//	restored, _ := text.TokenEncoderConfig().Load(ctx, fsys, "data/translation-en.text")
package text

import (
	"context"

	"github.com/arloliu/featkit/storage"
)

// PaddingID is the id reserved for padding.
const PaddingID int64 = 0

// Encoder converts between text and integer ids.
type Encoder interface {
	// Encode converts s to a sequence of ids.
	Encode(s string) ([]int64, error)

	// Decode converts ids back to text. PaddingID entries are skipped.
	Decode(ids []int64) (string, error)

	// VocabSize returns the number of distinct ids, padding included.
	VocabSize() int

	// Save persists the encoder state under the given path prefix.
	Save(ctx context.Context, fsys storage.FS, prefix string) error
}

// EncoderConfig describes how to restore an Encoder from metadata.
type EncoderConfig struct {
	// Name identifies the encoder kind, e.g. "bytes" or "tokens".
	Name string

	// Ext is appended to the path prefix to form the vocabulary file name.
	Ext string

	// VocabSize optionally pins the expected vocabulary size; zero disables the check.
	VocabSize int

	// Load restores an encoder from the vocabulary file under prefix.
	Load func(ctx context.Context, fsys storage.FS, prefix string) (Encoder, error)
}

// Filename returns the vocabulary file path for prefix.
func (c EncoderConfig) Filename(prefix string) string {
	return prefix + c.Ext
}
