package translation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/storage"
)

// LanguagesSuffix is appended to the feature name to form the language list file name.
const LanguagesSuffix = ".languages.txt"

// languageSet is an unordered set of language codes.
type languageSet map[string]struct{}

func newLanguageSet(codes []string) languageSet {
	s := make(languageSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}

	return s
}

func (s languageSet) sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)

	return out
}

func (s languageSet) has(code string) bool {
	_, ok := s[code]
	return ok
}

func (s languageSet) equal(other languageSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.has(c) {
			return false
		}
	}

	return true
}

// LanguagesPath returns <dir>/<name>.languages.txt on fsys.
func LanguagesPath(fsys storage.FS, dir, name string) (string, error) {
	return features.MetadataPath(fsys, dir, name, LanguagesSuffix)
}

// writeLanguages writes the codes in ascending order, one per line, so that
// metadata files are byte-for-byte reproducible.
func writeLanguages(ctx context.Context, fsys storage.FS, path string, langs languageSet) error {
	if err := storage.WriteLines(ctx, fsys, path, langs.sorted()); err != nil {
		return fmt.Errorf("write languages: %w", err)
	}

	return nil
}

func readLanguages(ctx context.Context, fsys storage.FS, path string) (languageSet, error) {
	lines, err := storage.ReadLines(ctx, fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read languages: %w", err)
	}

	return newLanguageSet(lines), nil
}

// validateTags checks that every code parses as a BCP 47 tag.
func validateTags(codes []string) error {
	var bad []string
	for _, c := range codes {
		if _, err := language.Parse(c); err != nil {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: %s", errs.ErrInvalidLanguageCode, strings.Join(bad, ", "))
	}

	return nil
}
