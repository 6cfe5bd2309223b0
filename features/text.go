package features

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/internal/options"
	"github.com/arloliu/featkit/storage"
	"github.com/arloliu/featkit/text"
)

// textMetadataSuffix is appended to the feature name to form the encoder's
// vocabulary path prefix.
const textMetadataSuffix = ".text"

// Text is a scalar text feature.
//
// Without an encoder, values are kept as UTF-8 strings. With an encoder they
// are encoded to []int64 token ids. A Text configured with only an
// EncoderConfig must restore its encoder through LoadMetadata before encoding.
type Text struct {
	encoder text.Encoder
	config  *text.EncoderConfig
}

var _ Feature = (*Text)(nil)

// TextOption configures a Text feature.
type TextOption = options.Option[*Text]

// WithTextEncoder sets the encoder used to tokenize text.
func WithTextEncoder(enc text.Encoder) TextOption {
	return options.NoError(func(t *Text) {
		t.encoder = enc
	})
}

// WithTextEncoderConfig sets the config used to restore the encoder from metadata.
func WithTextEncoderConfig(cfg text.EncoderConfig) TextOption {
	return options.NoError(func(t *Text) {
		t.config = &cfg
	})
}

// NewText creates a Text feature.
func NewText(opts ...TextOption) (*Text, error) {
	t := &Text{}
	if err := options.Apply(t, opts...); err != nil {
		return nil, err
	}

	if err := t.checkVocabSize(); err != nil {
		return nil, err
	}

	return t, nil
}

// Encoder returns the current encoder, or nil for plain text.
func (t *Text) Encoder() text.Encoder {
	return t.encoder
}

// EncoderConfig returns the encoder config, or nil when none was set.
func (t *Text) EncoderConfig() *text.EncoderConfig {
	return t.config
}

func (t *Text) checkVocabSize() error {
	if t.encoder == nil || t.config == nil || t.config.VocabSize == 0 {
		return nil
	}
	if got := t.encoder.VocabSize(); got != t.config.VocabSize {
		return fmt.Errorf("%w: encoder vocab size %d does not match config %d",
			errs.ErrInvalidValue, got, t.config.VocabSize)
	}

	return nil
}

// Encode accepts a string or UTF-8 []byte.
func (t *Text) Encode(value any) (any, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return nil, typeError("string", value)
	}

	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", errs.ErrInvalidValue)
	}

	if t.encoder == nil {
		if t.config != nil {
			return nil, fmt.Errorf("%w: %s encoder", errs.ErrEncoderNotLoaded, t.config.Name)
		}

		return s, nil
	}

	return t.encoder.Encode(s)
}

// Decode accepts the output of Encode and returns a string.
func (t *Text) Decode(encoded any) (any, error) {
	switch v := encoded.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case []int64:
		if t.encoder == nil {
			return nil, errs.ErrEncoderNotLoaded
		}

		return t.encoder.Decode(v)
	default:
		return nil, typeError("string or []int64", encoded)
	}
}

// SaveMetadata saves the encoder vocabulary, if any.
func (t *Text) SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	if t.encoder == nil {
		return nil
	}

	prefix, err := MetadataPath(fsys, dir, name, textMetadataSuffix)
	if err != nil {
		return err
	}

	if err := t.encoder.Save(ctx, fsys, prefix); err != nil {
		return fmt.Errorf("save text encoder for %q: %w", name, err)
	}

	return nil
}

// LoadMetadata restores the encoder from its vocabulary when an EncoderConfig
// is set and the vocabulary file exists. Otherwise it does nothing.
func (t *Text) LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	if t.config == nil || t.config.Load == nil {
		return nil
	}

	prefix, err := MetadataPath(fsys, dir, name, textMetadataSuffix)
	if err != nil {
		return err
	}

	ok, err := fsys.Exists(ctx, t.config.Filename(prefix))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	enc, err := t.config.Load(ctx, fsys, prefix)
	if err != nil {
		return fmt.Errorf("load text encoder for %q: %w", name, err)
	}
	t.encoder = enc

	return t.checkVocabSize()
}

func (t *Text) String() string {
	if t.encoder != nil {
		return fmt.Sprintf("Text(vocab_size=%d)", t.encoder.VocabSize())
	}

	return "Text"
}
