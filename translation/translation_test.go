package translation

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/storage"
	"github.com/arloliu/featkit/text"
)

func TestTranslation_Encode(t *testing.T) {
	tr, err := NewTranslation([]string{"en", "fr"})
	require.NoError(t, err)

	enc, err := tr.Encode(map[string]string{"en": "the cat", "fr": "le chat"})
	require.NoError(t, err)
	require.Equal(t, features.Record{"en": "the cat", "fr": "le chat"}, enc)

	dec, err := tr.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"en": "the cat", "fr": "le chat"}, dec)

	t.Run("language missing from example", func(t *testing.T) {
		_, err := tr.Encode(map[string]string{"en": "the cat"})
		require.ErrorIs(t, err, errs.ErrMissingKey)
	})

	t.Run("extra language in example", func(t *testing.T) {
		_, err := tr.Encode(map[string]any{"en": "the cat", "fr": "le chat", "de": "die katze"})
		require.ErrorIs(t, err, errs.ErrUnexpectedKey)
	})
}

func TestTranslation_Languages(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"sorted", []string{"de", "en", "fr"}, []string{"de", "en", "fr"}},
		{"reversed", []string{"fr", "en", "de"}, []string{"de", "en", "fr"}},
		{"duplicates collapsed", []string{"fr", "en", "fr", "en"}, []string{"en", "fr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTranslation(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, tr.Languages())
			require.Equal(t, tt.want, tr.Features().Keys())
		})
	}
}

func TestNewTranslation_Invalid(t *testing.T) {
	_, err := NewTranslation(nil)
	require.ErrorIs(t, err, errs.ErrEmptyLanguages)

	_, err = NewTranslation([]string{"en"}, WithLanguages([]string{"fr"}))
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, err = NewTranslation([]string{"en", "not a tag"}, WithTagValidation())
	require.ErrorIs(t, err, errs.ErrInvalidLanguageCode)
	require.Contains(t, err.Error(), "not a tag")

	tr, err := NewTranslation([]string{"en", "pt-BR", "zh-Hant"}, WithTagValidation())
	require.NoError(t, err)
	require.Equal(t, []string{"en", "pt-BR", "zh-Hant"}, tr.Languages())
}

func TestTranslation_WithEncoder(t *testing.T) {
	tr, err := NewTranslation([]string{"en", "fr"}, WithEncoder(text.NewByteEncoder()))
	require.NoError(t, err)

	enc, err := tr.Encode(map[string]string{"en": "a", "fr": "b"})
	require.NoError(t, err)
	require.Equal(t, features.Record{"en": []int64{'a' + 1}, "fr": []int64{'b' + 1}}, enc)

	dec, err := tr.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"en": "a", "fr": "b"}, dec)
}

func TestTranslation_Metadata(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		fsys := storage.NewLocal()
		dir := t.TempDir()

		saved, err := NewTranslation([]string{"fr", "en", "de"})
		require.NoError(t, err)
		require.NoError(t, saved.SaveMetadata(ctx, fsys, dir, "translation"))

		raw, err := fsys.ReadFile(ctx, fsys.Join(dir, "translation.languages.txt"))
		require.NoError(t, err)
		require.Equal(t, "de\nen\nfr\n", string(raw))

		loaded, err := NewTranslation([]string{"en"})
		require.NoError(t, err)
		require.NoError(t, loaded.LoadMetadata(ctx, fsys, dir, "translation"))
		require.Equal(t, []string{"de", "en", "fr"}, loaded.Languages())
		require.Equal(t, []string{"de", "en", "fr"}, loaded.Features().Keys())

		_, err = loaded.Encode(map[string]string{"de": "die katze", "en": "the cat", "fr": "le chat"})
		require.NoError(t, err)
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		tr, err := NewTranslation([]string{"en"})
		require.NoError(t, err)

		err = tr.LoadMetadata(ctx, storage.NewMemory(), "data", "translation")
		require.ErrorIs(t, err, errs.ErrMetadataNotFound)
		require.Equal(t, []string{"en"}, tr.Languages())
	})

	t.Run("blank lines ignored", func(t *testing.T) {
		fsys := storage.NewMemory()
		require.NoError(t, fsys.WriteFile(ctx, "data/tr.languages.txt", []byte("\nen\n\n fr \n")))

		tr, err := NewTranslation([]string{"de"})
		require.NoError(t, err)
		require.NoError(t, tr.LoadMetadata(ctx, fsys, "data", "tr"))
		require.Equal(t, []string{"en", "fr"}, tr.Languages())
	})

	t.Run("empty file", func(t *testing.T) {
		fsys := storage.NewMemory()
		require.NoError(t, fsys.WriteFile(ctx, "data/tr.languages.txt", []byte("\n\n")))

		tr, err := NewTranslation([]string{"de"})
		require.NoError(t, err)
		require.ErrorIs(t, tr.LoadMetadata(ctx, fsys, "data", "tr"), errs.ErrEmptyLanguages)
	})

	t.Run("feature name required", func(t *testing.T) {
		tr, err := NewTranslation([]string{"en"})
		require.NoError(t, err)

		fsys := storage.NewMemory()
		require.ErrorIs(t, tr.SaveMetadata(ctx, fsys, "data", ""), errs.ErrMissingFeatureName)
		require.ErrorIs(t, tr.LoadMetadata(ctx, fsys, "data", ""), errs.ErrMissingFeatureName)
	})

	t.Run("encoder vocabulary restored", func(t *testing.T) {
		fsys := storage.NewMemory()
		vocab, err := text.NewTokenEncoder([]string{"the", "cat", "le", "chat"})
		require.NoError(t, err)

		saved, err := NewTranslation([]string{"en", "fr"}, WithEncoder(vocab))
		require.NoError(t, err)
		require.NoError(t, saved.SaveMetadata(ctx, fsys, "data", "tr"))
		require.Equal(t, []string{
			"data/tr-en.text.tokens",
			"data/tr-fr.text.tokens",
			"data/tr.languages.txt",
		}, fsys.Paths())

		loaded, err := NewTranslation([]string{"en", "fr"}, WithEncoderConfig(text.TokenEncoderConfig()))
		require.NoError(t, err)
		require.NoError(t, loaded.LoadMetadata(ctx, fsys, "data", "tr"))

		enc, err := loaded.Encode(map[string]string{"en": "the cat", "fr": "le chat"})
		require.NoError(t, err)
		require.Equal(t, features.Record{"en": []int64{1, 2}, "fr": []int64{3, 4}}, enc)
	})
}

func TestTranslation_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr, err := NewTranslation([]string{"en", "fr"}, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, tr.SaveMetadata(context.Background(), storage.NewMemory(), "data", "tr"))

	require.Contains(t, buf.String(), "saved translation languages")
	require.Contains(t, buf.String(), "count=2")
	require.Contains(t, buf.String(), "fingerprint=")
}

func TestTranslation_String(t *testing.T) {
	tr, err := NewTranslation([]string{"fr", "en"})
	require.NoError(t, err)
	require.Equal(t, "Translation(languages=[en fr])", tr.String())
}
