package translation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/internal/logging"
	"github.com/arloliu/featkit/internal/options"
	"github.com/arloliu/featkit/storage"
)

// Keys of the two parallel sequences produced by VariableTranslation.
const (
	LanguageKey    = "language"
	TranslationKey = "translation"
)

// VariableTranslation is a feature for translations whose languages vary
// from example to example.
//
// Input: a map from language code to one translation (string) or several
// ([]string or []any of strings).
//
// Output: a features.Record with two parallel sequences, LanguageKey and
// TranslationKey, sorted ascending by language code and then by text:
//
//	vt, _ := translation.NewVariableTranslation()
//	enc, _ := vt.Encode(map[string]any{
//	    "en": "the cat",
//	    "fr": []string{"le chat", "la chatte"},
//	    "de": "die katze",
//	})
//	// language:    de, en, fr, fr
//	// translation: die katze, the cat, la chatte, le chat
//
// When WithLanguages is given, examples containing other languages are rejected.
type VariableTranslation struct {
	languages    languageSet // nil when not known in advance
	seq          *features.SequenceDict
	logger       *slog.Logger
	validateTags bool
}

var _ features.Feature = (*VariableTranslation)(nil)

// NewVariableTranslation creates a VariableTranslation. Supported options are
// WithLanguages, WithLogger and WithTagValidation.
func NewVariableTranslation(opts ...Option) (*VariableTranslation, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.encoder != nil || cfg.encoderConfig != nil {
		return nil, fmt.Errorf("%w: text encoders are not supported by VariableTranslation", errs.ErrInvalidValue)
	}

	langText, err := features.NewText()
	if err != nil {
		return nil, err
	}
	trText, err := features.NewText()
	if err != nil {
		return nil, err
	}

	v := &VariableTranslation{
		seq: features.NewSequenceDict(map[string]features.Feature{
			LanguageKey:    langText,
			TranslationKey: trText,
		}),
		logger:       logging.OrNop(cfg.logger),
		validateTags: cfg.validateTags,
	}
	if err := v.setLanguages(newLanguageSet(cfg.languages)); err != nil {
		return nil, err
	}

	return v, nil
}

// setLanguages sets the allow-list; an empty set means unknown.
func (v *VariableTranslation) setLanguages(langs languageSet) error {
	if len(langs) == 0 {
		v.languages = nil
		return nil
	}
	if v.validateTags {
		if err := validateTags(langs.sorted()); err != nil {
			return err
		}
	}
	v.languages = langs

	return nil
}

// NumLanguages returns the size of the allow-list. ok is false when the
// languages are not known in advance.
func (v *VariableTranslation) NumLanguages() (n int, ok bool) {
	if v.languages == nil {
		return 0, false
	}

	return len(v.languages), true
}

// Languages returns the allow-list in ascending order. ok is false when the
// languages are not known in advance.
func (v *VariableTranslation) Languages() (languages []string, ok bool) {
	if v.languages == nil {
		return nil, false
	}

	return v.languages.sorted(), true
}

// Encode validates the example against the allow-list, flattens it into
// (language, translation) pairs sorted by language then text, and encodes
// the two aligned sequences.
func (v *VariableTranslation) Encode(value any) (any, error) {
	m, err := asTranslationMap(value)
	if err != nil {
		return nil, err
	}

	if err := v.checkLanguages(m); err != nil {
		return nil, err
	}

	pairs, err := flatten(m)
	if err != nil {
		return nil, err
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].language != pairs[j].language {
			return pairs[i].language < pairs[j].language
		}

		return pairs[i].text < pairs[j].text
	})

	langs := make([]string, len(pairs))
	texts := make([]string, len(pairs))
	for i, p := range pairs {
		langs[i] = p.language
		texts[i] = p.text
	}

	return v.seq.Encode(map[string]any{
		LanguageKey:    langs,
		TranslationKey: texts,
	})
}

// Decode returns a map[string][]string with the LanguageKey and
// TranslationKey sequences.
func (v *VariableTranslation) Decode(encoded any) (any, error) {
	dec, err := v.seq.Decode(encoded)
	if err != nil {
		return nil, err
	}

	seqs, _ := dec.(map[string][]any)
	out := make(map[string][]string, len(seqs))
	for k, elems := range seqs {
		strs := make([]string, len(elems))
		for i, e := range elems {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: decoded %q[%d] is %T", errs.ErrInvalidValue, k, i, e)
			}
			strs[i] = s
		}
		out[k] = strs
	}

	return out, nil
}

func (v *VariableTranslation) checkLanguages(m map[string]any) error {
	if v.languages == nil {
		return nil
	}

	var unknown []string
	for code := range m {
		if !v.languages.has(code) {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	return fmt.Errorf("%w: some languages in example (%s) are not in valid set (%s)",
		errs.ErrUnknownLanguage,
		strings.Join(unknown, ", "),
		strings.Join(v.languages.sorted(), ", "))
}

// SaveMetadata writes the allow-list to <dir>/<name>.languages.txt. Nothing
// is written when the languages are unknown.
func (v *VariableTranslation) SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	if v.languages != nil {
		path, err := LanguagesPath(fsys, dir, name)
		if err != nil {
			return err
		}
		if err := writeLanguages(ctx, fsys, path, v.languages); err != nil {
			return err
		}
		v.logger.DebugContext(ctx, "saved translation languages",
			slog.String("path", path),
			slog.Int("count", len(v.languages)),
		)
	}

	return v.seq.SaveMetadata(ctx, fsys, dir, name)
}

// LoadMetadata restores the allow-list if a language list exists. A missing
// file leaves the languages unknown and is not an error.
func (v *VariableTranslation) LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	path, err := LanguagesPath(fsys, dir, name)
	if err != nil {
		return err
	}

	ok, err := fsys.Exists(ctx, path)
	if err != nil {
		return err
	}
	if ok {
		langs, err := readLanguages(ctx, fsys, path)
		if err != nil {
			return err
		}
		if err := v.setLanguages(langs); err != nil {
			return fmt.Errorf("restore languages from %s: %w", path, err)
		}
		v.logger.DebugContext(ctx, "loaded translation languages",
			slog.String("path", path),
			slog.Int("count", len(langs)),
		)
	} else {
		v.logger.DebugContext(ctx, "no translation languages to load", slog.String("path", path))
	}

	return v.seq.LoadMetadata(ctx, fsys, dir, name)
}

func (v *VariableTranslation) String() string {
	if v.languages == nil {
		return "VariableTranslation(languages=unknown)"
	}

	return fmt.Sprintf("VariableTranslation(languages=%v)", v.languages.sorted())
}

type pair struct {
	language string
	text     string
}

func asTranslationMap(value any) (map[string]any, error) {
	switch m := value.(type) {
	case map[string]any:
		return m, nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}

		return out, nil
	case map[string][]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected map of language to translations, got %T", errs.ErrInvalidValue, value)
	}
}

// flatten expands each language's translations into one pair per text.
func flatten(m map[string]any) ([]pair, error) {
	pairs := make([]pair, 0, len(m))
	for code, val := range m {
		switch t := val.(type) {
		case string:
			pairs = append(pairs, pair{language: code, text: t})
		case []string:
			for _, s := range t {
				pairs = append(pairs, pair{language: code, text: s})
			}
		case []any:
			for i, e := range t {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("%w: translation %q[%d] is %T", errs.ErrInvalidValue, code, i, e)
				}
				pairs = append(pairs, pair{language: code, text: s})
			}
		default:
			return nil, fmt.Errorf("%w: translation %q is %T", errs.ErrInvalidValue, code, val)
		}
	}

	return pairs, nil
}
