package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/internal/hash"
	"github.com/arloliu/featkit/internal/logging"
	"github.com/arloliu/featkit/internal/options"
	"github.com/arloliu/featkit/storage"
)

// Translation is a feature for translations with a fixed set of languages.
//
// Input: a map from language code to one translation, with exactly one entry
// per configured language.
//
// Output: a features.Record mapping each language code to its encoded text.
//
//	tr, _ := translation.NewTranslation([]string{"en", "fr", "de"})
//	enc, _ := tr.Encode(map[string]string{
//	    "en": "the cat",
//	    "fr": "le chat",
//	    "de": "die katze",
//	})
type Translation struct {
	languages    languageSet
	dict         *features.FeaturesDict
	textOpts     []features.TextOption
	logger       *slog.Logger
	validateTags bool
}

var _ features.Feature = (*Translation)(nil)

// NewTranslation creates a Translation for languages. Duplicate codes are
// collapsed. Supported options are WithEncoder, WithEncoderConfig,
// WithLogger and WithTagValidation.
func NewTranslation(languages []string, opts ...Option) (*Translation, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.languages != nil {
		return nil, fmt.Errorf("%w: languages are given positionally to NewTranslation", errs.ErrInvalidValue)
	}

	t := &Translation{
		logger:       logging.OrNop(cfg.logger),
		validateTags: cfg.validateTags,
	}
	if cfg.encoder != nil {
		t.textOpts = append(t.textOpts, features.WithTextEncoder(cfg.encoder))
	}
	if cfg.encoderConfig != nil {
		t.textOpts = append(t.textOpts, features.WithTextEncoderConfig(*cfg.encoderConfig))
	}

	if err := t.setLanguages(newLanguageSet(languages)); err != nil {
		return nil, err
	}

	return t, nil
}

// setLanguages replaces the language set and rebuilds one Text per language.
func (t *Translation) setLanguages(langs languageSet) error {
	if len(langs) == 0 {
		return errs.ErrEmptyLanguages
	}
	if t.validateTags {
		if err := validateTags(langs.sorted()); err != nil {
			return err
		}
	}

	children := make(map[string]features.Feature, len(langs))
	for code := range langs {
		f, err := features.NewText(t.textOpts...)
		if err != nil {
			return fmt.Errorf("text feature for %q: %w", code, err)
		}
		children[code] = f
	}

	t.languages = langs
	t.dict = features.NewFeaturesDict(children)

	return nil
}

// Languages returns the language codes in ascending order.
func (t *Translation) Languages() []string {
	return t.languages.sorted()
}

// Features returns the underlying per-language FeaturesDict.
func (t *Translation) Features() *features.FeaturesDict {
	return t.dict
}

// Encode encodes a map[string]string (or map[string]any of strings) holding
// one translation per configured language.
func (t *Translation) Encode(value any) (any, error) {
	return t.dict.Encode(value)
}

// Decode returns a map[string]string of translations.
func (t *Translation) Decode(encoded any) (any, error) {
	dec, err := t.dict.Decode(encoded)
	if err != nil {
		return nil, err
	}

	m, _ := dec.(map[string]any)
	out := make(map[string]string, len(m))
	for code, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: decoded %q is %T", errs.ErrInvalidValue, code, v)
		}
		out[code] = s
	}

	return out, nil
}

// SaveMetadata writes the language list to <dir>/<name>.languages.txt, then
// saves the metadata of every per-language text feature.
func (t *Translation) SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	path, err := LanguagesPath(fsys, dir, name)
	if err != nil {
		return err
	}

	if err := writeLanguages(ctx, fsys, path, t.languages); err != nil {
		return err
	}
	t.logger.DebugContext(ctx, "saved translation languages",
		slog.String("path", path),
		slog.Int("count", len(t.languages)),
		slog.String("fingerprint", fmt.Sprintf("%016x", hash.SetFingerprint(t.Languages()))),
	)

	return t.dict.SaveMetadata(ctx, fsys, dir, name)
}

// LoadMetadata reads the language list written by SaveMetadata, replacing the
// configured languages, then loads the metadata of every text feature.
// A missing language list is an error wrapping errs.ErrMetadataNotFound.
func (t *Translation) LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	path, err := LanguagesPath(fsys, dir, name)
	if err != nil {
		return err
	}

	langs, err := readLanguages(ctx, fsys, path)
	if err != nil {
		if errors.Is(err, errs.ErrMetadataNotFound) {
			t.logger.ErrorContext(ctx, "translation languages missing", slog.String("path", path))
		}

		return err
	}

	if !langs.equal(t.languages) {
		if err := t.setLanguages(langs); err != nil {
			return fmt.Errorf("restore languages from %s: %w", path, err)
		}
	}
	t.logger.DebugContext(ctx, "loaded translation languages",
		slog.String("path", path),
		slog.Int("count", len(langs)),
	)

	return t.dict.LoadMetadata(ctx, fsys, dir, name)
}

func (t *Translation) String() string {
	return fmt.Sprintf("Translation(languages=%v)", t.Languages())
}
