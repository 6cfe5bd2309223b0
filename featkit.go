// Package featkit provides translation feature connectors for dataset schemas.
//
// A feature connector maps raw example values to an encoded form suitable for
// serialization, maps encoded values back, and persists whatever metadata it
// needs to be reconstructed next to the dataset files.
//
// # Core Features
//
//   - Translation: a fixed set of languages, one text per language
//   - VariableTranslation: any number of texts per language, flattened into two
//     aligned, sorted sequences
//   - Language-list metadata sidecar (<name>.languages.txt) on local disk,
//     in memory or in S3-compatible object storage
//   - Optional text encoders (bytes or whitespace tokens) producing integer ids
//   - Self-describing binary records with optional compression (None, Zstd, S2, LZ4)
//     and xxHash64 checksums
//
// # Basic Usage
//
// Encoding a fixed translation example:
//
//	import "github.com/arloliu/featkit"
//
//	tr, _ := featkit.NewTranslation([]string{"en", "fr"})
//	data, _ := featkit.EncodeExample(tr, map[string]string{
//	    "en": "the cat",
//	    "fr": "le chat",
//	})
//
//	decoded, _ := featkit.DecodeExample(tr, data)
//	fmt.Println(decoded) // map[en:the cat fr:le chat]
//
// Persisting and restoring the language list:
//
//	fsys := featkit.NewLocalFS()
//	_ = tr.SaveMetadata(ctx, fsys, "/data/wmt", "translation")
//
//	restored, _ := featkit.NewTranslation([]string{"en"})
//	_ = restored.LoadMetadata(ctx, fsys, "/data/wmt", "translation")
//	fmt.Println(restored.Languages()) // [en fr]
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the translation,
// record and storage packages. For fine-grained control use them directly.
package featkit

import (
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/format"
	"github.com/arloliu/featkit/internal/hash"
	"github.com/arloliu/featkit/record"
	"github.com/arloliu/featkit/storage"
	"github.com/arloliu/featkit/translation"
)

// FS is the file system abstraction used for feature metadata.
type FS = storage.FS

var defaultRecordOptions = []record.Option{
	record.WithCompression(format.CompressionS2),
}

// NewTranslation creates a fixed-language translation feature.
//
// Every example must provide exactly one text for each language in languages.
// Duplicate codes are collapsed and the languages are kept in ascending order.
//
// Available options:
//   - translation.WithEncoder(text.Encoder)
//   - translation.WithEncoderConfig(text.EncoderConfig)
//   - translation.WithLogger(*slog.Logger)
//   - translation.WithTagValidation()
//
// Example:
//
//	tr, err := featkit.NewTranslation([]string{"en", "fr"},
//	    translation.WithEncoder(text.NewByteEncoder()),
//	)
func NewTranslation(languages []string, opts ...translation.Option) (*translation.Translation, error) {
	return translation.NewTranslation(languages, opts...)
}

// NewVariableTranslation creates a translation feature that accepts a variable
// number of texts per language.
//
// Without translation.WithLanguages any language code is accepted.
func NewVariableTranslation(opts ...translation.Option) (*translation.VariableTranslation, error) {
	return translation.NewVariableTranslation(opts...)
}

// NewRecordEncoder creates a record encoder with custom options.
func NewRecordEncoder(opts ...record.Option) (*record.Encoder, error) {
	return record.NewEncoder(opts...)
}

// NewDefaultRecordEncoder creates a record encoder with S2 payload compression.
func NewDefaultRecordEncoder() (*record.Encoder, error) {
	return record.NewEncoder(defaultRecordOptions...)
}

// EncodeExample encodes example with f and serializes it with the default
// record encoder.
func EncodeExample(f features.Feature, example any) ([]byte, error) {
	enc, err := NewDefaultRecordEncoder()
	if err != nil {
		return nil, err
	}

	return enc.MarshalExample(f, example)
}

// DecodeExample parses a record produced by EncodeExample (or any record
// encoder) and decodes it with f.
func DecodeExample(f features.Feature, data []byte) (any, error) {
	return record.UnmarshalExample(f, data)
}

// NewLocalFS returns a storage.FS backed by the local file system.
func NewLocalFS() *storage.Local {
	return storage.NewLocal()
}

// NewMemoryFS returns an in-process storage.FS.
func NewMemoryFS() *storage.Memory {
	return storage.NewMemory()
}

// NewS3FS returns a storage.FS backed by an S3-compatible bucket.
func NewS3FS(cfg storage.Config) (*storage.S3, error) {
	return storage.NewS3(cfg)
}

// LanguageSetID returns an order-independent 64-bit identifier of a language set.
//
// Two sets with the same members share an ID regardless of order, which makes it
// useful for checking that saved metadata matches a configured feature.
func LanguageSetID(languages []string) uint64 {
	return hash.SetFingerprint(languages)
}
